package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/simplecom/storefront-smoke/internal/apiclient"
	internalcli "github.com/simplecom/storefront-smoke/internal/cli"
	"github.com/simplecom/storefront-smoke/internal/config"
	"github.com/simplecom/storefront-smoke/internal/driver"
	"github.com/simplecom/storefront-smoke/internal/logging"
	"github.com/simplecom/storefront-smoke/internal/perf"
	"github.com/simplecom/storefront-smoke/internal/rules"
)

var version = "0.1.0"

var suiteFlags = []cli.Flag{
	&cli.StringFlag{Name: "base-url", Usage: "storefront root URL (APP_BASE_URL)"},
	&cli.StringFlag{Name: "browser", Usage: "chrome or firefox (BROWSER)"},
	&cli.StringFlag{Name: "grid-url", Usage: "remote browser server endpoint (SELENIUM_GRID_URL)"},
	&cli.StringFlag{Name: "user", Usage: "login username (APP_USER)"},
	&cli.StringFlag{Name: "pass", Usage: "login password (APP_PASS)"},
	&cli.BoolFlag{Name: "headless", Usage: "run the local browser without a window (HEADLESS)"},
	&cli.StringFlag{Name: "api-base", Usage: "users API root URL (API_BASE)"},
	&cli.StringFlag{Name: "api-token", Usage: "bearer token for the users API (API_TOKEN)"},
	&cli.StringFlag{Name: "api-key", Usage: "x-api-key for the users API (API_KEY)"},
	&cli.BoolFlag{Name: "verbose", Usage: "log as the run goes instead of only after a failure"},
}

var a11yFlags = append([]cli.Flag{
	&cli.StringFlag{Name: "axe-url", Usage: "axe-core script injected into each scanned page (AXE_SCRIPT_URL)"},
}, suiteFlags...)

var perfFlags = append([]cli.Flag{
	&cli.IntFlag{Name: "vus", Value: perf.DefaultOptions().VUs, Usage: "concurrent virtual users"},
	&cli.DurationFlag{Name: "duration", Value: perf.DefaultOptions().Duration, Usage: "length of the load run"},
	&cli.DurationFlag{Name: "pace", Value: perf.DefaultOptions().Pace, Usage: "minimum gap between two requests of one user"},
	&cli.DurationFlag{Name: "p95", Value: perf.DefaultOptions().MaxP95, Usage: "fail when the 95th percentile latency reaches this"},
	&cli.Float64Flag{Name: "min-check-rate", Value: perf.DefaultOptions().MinCheckRate, Usage: "fail unless the share of passing requests is above this"},
}, suiteFlags...)

// overridesFrom collects the flags the user actually set.
func overridesFrom(c *cli.Context) config.Overrides {
	o := config.Overrides{
		BaseURL:  c.String("base-url"),
		Browser:  c.String("browser"),
		GridURL:  c.String("grid-url"),
		Username: c.String("user"),
		Password: c.String("pass"),
		APIBase:  c.String("api-base"),
		APIToken: c.String("api-token"),
		APIKey:   c.String("api-key"),
		AxeURL:   c.String("axe-url"),
	}
	if c.IsSet("headless") {
		headless := c.Bool("headless")
		o.Headless = &headless
	}
	return o
}

// buildDependencies loads configuration and creates the session factory
// and API client.
func buildDependencies(c *cli.Context) (internalcli.Dependencies, error) {
	var deps internalcli.Dependencies
	overrides := overridesFrom(c)
	var logger logging.Logger = &logging.Buffer{}
	if c.Bool("verbose") {
		logger = logging.Default()
	}

	deps.App = config.LoadAppConfig(os.Getenv, overrides)
	if !rules.IsValidLogin(deps.App.Credentials.Username, deps.App.Credentials.Password) {
		log.Printf("Warning: credentials for %q look invalid, the login scenarios will likely fail", deps.App.Credentials.Username)
	}

	browserConfig, err := config.LoadBrowserConfig(os.Getenv, overrides)
	if err != nil {
		return deps, fmt.Errorf("invalid browser configuration: %w", err)
	}
	deps.Browser = browserConfig

	deps.Sessions = driver.NewFactory(driver.NewPlaywrightBackend(), logger)
	deps.Client = apiclient.NewClient(config.LoadAPIConfig(os.Getenv, overrides), logger)
	deps.Out = c.App.Writer
	deps.Logger = logger
	return deps, nil
}

// UICommand returns the ui command
func UICommand() *cli.Command {
	return &cli.Command{
		Name:  "ui",
		Usage: "Run the browser smoke scenarios",
		Flags: suiteFlags,
		Action: func(c *cli.Context) error {
			deps, err := buildDependencies(c)
			if err != nil {
				return err
			}
			return internalcli.RunUI(deps, nil)
		},
	}
}

// APICommand returns the api command
func APICommand() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Run the HTTP API smoke checks",
		Flags: suiteFlags,
		Action: func(c *cli.Context) error {
			deps, err := buildDependencies(c)
			if err != nil {
				return err
			}
			return internalcli.RunAPI(deps)
		},
	}
}

// A11yCommand returns the a11y command
func A11yCommand() *cli.Command {
	return &cli.Command{
		Name:  "a11y",
		Usage: "Scan the login and inventory pages for serious accessibility violations",
		Flags: a11yFlags,
		Action: func(c *cli.Context) error {
			deps, err := buildDependencies(c)
			if err != nil {
				return err
			}
			return internalcli.RunA11y(deps, nil)
		},
	}
}

// perfOptionsFrom reads the load shape and thresholds
func perfOptionsFrom(c *cli.Context) (perf.Options, error) {
	opts := perf.Options{
		VUs:          c.Int("vus"),
		Duration:     c.Duration("duration"),
		Pace:         c.Duration("pace"),
		MaxP95:       c.Duration("p95"),
		MinCheckRate: c.Float64("min-check-rate"),
	}
	if opts.VUs < 1 {
		return opts, fmt.Errorf("--vus must be at least 1, got %d", opts.VUs)
	}
	if opts.Duration <= 0 {
		return opts, fmt.Errorf("--duration must be positive, got %s", opts.Duration)
	}
	return opts, nil
}

// PerfCommand returns the perf command
func PerfCommand() *cli.Command {
	return &cli.Command{
		Name:  "perf",
		Usage: "Load the users listing and check latency and success thresholds",
		Flags: perfFlags,
		Action: func(c *cli.Context) error {
			opts, err := perfOptionsFrom(c)
			if err != nil {
				return err
			}
			deps, err := buildDependencies(c)
			if err != nil {
				return err
			}
			return internalcli.RunPerf(c.Context, deps, opts)
		},
	}
}

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Download the browsers the ui command drives",
		ArgsUsage: "[chrome|firefox]...",
		Action: func(c *cli.Context) error {
			return internalcli.RunInstall(c.Args().Slice(), c.App.Writer)
		},
	}
}

// FixtureCommand returns the fixture command
func FixtureCommand() *cli.Command {
	return &cli.Command{
		Name:  "fixture",
		Usage: "Serve a local demo storefront and users API (PORT)",
		Action: func(c *cli.Context) error {
			deps, err := internalcli.BuildServerDependencies(config.LoadServerConfig(os.Getenv))
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "storefront-smoke",
		Usage:   "Smoke tests for the demo storefront and users API",
		Version: version,
		Commands: []*cli.Command{
			InstallCommand(),
			UICommand(),
			APICommand(),
			A11yCommand(),
			PerfCommand(),
			FixtureCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if coder, ok := err.(cli.ExitCoder); ok {
		return coder.ExitCode()
	}
	return 1
}
