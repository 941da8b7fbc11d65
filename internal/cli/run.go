package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/simplecom/storefront-smoke/internal/apiclient"
	"github.com/simplecom/storefront-smoke/internal/config"
	"github.com/simplecom/storefront-smoke/internal/driver"
	"github.com/simplecom/storefront-smoke/internal/logging"
	"github.com/simplecom/storefront-smoke/internal/perf"
	"github.com/simplecom/storefront-smoke/internal/scenario"
)

// exitInterrupted is the conventional status for a run stopped by SIGINT.
const exitInterrupted = 130

// Dependencies holds everything the suite commands need
type Dependencies struct {
	App      config.AppConfig
	Browser  config.BrowserConfig
	Sessions scenario.SessionProvider
	Client   apiclient.Client
	Out      io.Writer
	Logger   logging.Logger
}

// RunUI runs the browser suite, each scenario on a session of its own. If
// interrupt fires first the live session is released straight away and the
// run ends with status 130. A nil interrupt channel is replaced by one
// registered for SIGINT and SIGTERM.
func RunUI(deps Dependencies, interrupt chan os.Signal) error {
	return runBrowserSuite(deps, "ui", scenario.UIScenarios(deps.App), interrupt)
}

// RunA11y runs the accessibility scan with the same session handling as
// RunUI.
func RunA11y(deps Dependencies, interrupt chan os.Signal) error {
	return runBrowserSuite(deps, "a11y", scenario.A11yScenarios(deps.App), interrupt)
}

func runBrowserSuite(deps Dependencies, suite string, scenarios []scenario.Scenario, interrupt chan os.Signal) error {
	if interrupt == nil {
		interrupt = make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(interrupt)
	}

	sessions := &trackingProvider{SessionProvider: deps.Sessions}
	done := make(chan scenario.Results, 1)
	go func() {
		done <- scenario.RunEach(sessions, deps.Browser, scenarios, deps.Logger)
	}()

	select {
	case results := <-done:
		return finish(deps, suite, results)
	case sig := <-interrupt:
		logging.OrDefault(deps.Logger).Printf("Received signal: %v, releasing browser session...", sig)
		sessions.releaseCurrent()
		return cli.Exit("interrupted", exitInterrupted)
	}
}

// RunAPI runs the HTTP suite.
func RunAPI(deps Dependencies) error {
	return finish(deps, "api", scenario.RunChecks(scenario.APIChecks(deps.Client)))
}

// RunPerf drives the users listing with opts.VUs paced users and checks the
// latency and success thresholds. SIGINT or SIGTERM ends the load early and
// the thresholds are checked against what was observed.
func RunPerf(ctx context.Context, deps Dependencies, opts perf.Options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	listUsers := scenario.ListUsers(deps.Client)
	stats := perf.Run(ctx, opts, listUsers.Run, deps.Logger)
	fmt.Fprintf(deps.Out, "%d requests, p95 %s, check rate %.3f\n", stats.Requests(), stats.P95(), stats.CheckRate())
	return finish(deps, "perf", scenario.RunChecks(perf.Checks(stats, opts)))
}

// RunInstall downloads the driver and browser binaries for the named
// browsers, or for every supported browser when none are named.
func RunInstall(browsers []string, out io.Writer) error {
	kinds := []driver.Kind{driver.Chrome, driver.Firefox}
	if len(browsers) > 0 {
		kinds = kinds[:0]
		for _, b := range browsers {
			kinds = append(kinds, driver.ParseKind(b))
		}
	}
	if err := driver.Install(kinds, out); err != nil {
		return fmt.Errorf("failed to install browsers: %w", err)
	}
	return nil
}

// finish reports the results. When deps.Logger is a *logging.Buffer its
// lines are printed only if something failed.
func finish(deps Dependencies, suite string, results scenario.Results) error {
	Report(deps.Out, suite, results)
	if captured, ok := deps.Logger.(*logging.Buffer); ok && !results.OK() {
		_ = captured.Flush(deps.Out, "    ")
	}
	if !results.OK() {
		return cli.Exit(fmt.Sprintf("%d of %d %s scenario(s) failed", results.Failed(), len(results), suite), 1)
	}
	return nil
}

// trackingProvider remembers the session it handed out so it can be
// released from outside the run.
type trackingProvider struct {
	scenario.SessionProvider

	mu      sync.Mutex
	current *driver.Session
}

func (p *trackingProvider) Acquire(cfg config.BrowserConfig) (*driver.Session, error) {
	s, err := p.SessionProvider.Acquire(cfg)
	if err == nil {
		p.mu.Lock()
		p.current = s
		p.mu.Unlock()
	}
	return s, err
}

func (p *trackingProvider) releaseCurrent() {
	p.mu.Lock()
	s := p.current
	p.mu.Unlock()
	if s != nil {
		p.SessionProvider.Release(s)
	}
}
