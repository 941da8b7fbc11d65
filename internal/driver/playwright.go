package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"

	"github.com/simplecom/storefront-smoke/internal/browser"
)

// launchOptionsHeader carries launch options to a playwright browser server.
const launchOptionsHeader = "x-playwright-launch-options"

// PlaywrightBackend starts sessions with playwright-go.
type PlaywrightBackend struct {
	RunOptions *playwright.RunOptions
}

// NewPlaywrightBackend creates a backend whose driver process stays quiet.
func NewPlaywrightBackend() *PlaywrightBackend {
	return &PlaywrightBackend{
		RunOptions: &playwright.RunOptions{
			Verbose: false,
			Stdout:  io.Discard,
			Stderr:  io.Discard,
		},
	}
}

// Launch starts a browser on this machine.
func (b *PlaywrightBackend) Launch(opts LaunchOptions) (browser.Driver, error) {
	pw, err := playwright.Run(b.RunOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	br, err := browserType(pw, opts.Browser).Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     opts.Args,
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", opts.Browser, err)
	}

	return openPage(pw, br, opts)
}

// Connect attaches to a playwright browser server at endpoint. The server
// launches the browser with the same arguments a local launch would use.
func (b *PlaywrightBackend) Connect(endpoint string, opts LaunchOptions) (browser.Driver, error) {
	launchOptions, err := json.Marshal(remoteLaunchOptions{
		Headless: opts.Headless,
		Args:     opts.Args,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal launch options: %w", err)
	}

	pw, err := playwright.Run(b.RunOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	br, err := browserType(pw, opts.Browser).Connect(endpoint, playwright.BrowserTypeConnectOptions{
		Headers: map[string]string{launchOptionsHeader: string(launchOptions)},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}

	return openPage(pw, br, opts)
}

// remoteLaunchOptions is the JSON body of the launch options header.
type remoteLaunchOptions struct {
	Headless bool     `json:"headless"`
	Args     []string `json:"args,omitempty"`
}

func browserType(pw *playwright.Playwright, k Kind) playwright.BrowserType {
	if Engine(k) == "firefox" {
		return pw.Firefox
	}
	return pw.Chromium
}

// openPage creates the context and page, undoing everything on failure.
func openPage(pw *playwright.Playwright, br playwright.Browser, opts LaunchOptions) (browser.Driver, error) {
	ctx, err := br.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	})
	if err != nil {
		br.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		br.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return browser.NewPlaywrightDriver(page, opts.ActionTimeout,
		func() error { return ctx.Close() },
		func() error { return br.Close() },
		pw.Stop,
	), nil
}

// Install downloads the playwright driver and the browsers for kinds.
func Install(kinds []Kind, out io.Writer) error {
	engines := make([]string, 0, len(kinds))
	seen := make(map[string]bool)
	for _, k := range kinds {
		e := Engine(k)
		if !seen[e] {
			seen[e] = true
			engines = append(engines, e)
		}
	}

	if err := playwright.Install(&playwright.RunOptions{
		Browsers: engines,
		Verbose:  true,
		Stdout:   out,
		Stderr:   out,
	}); err != nil {
		return fmt.Errorf("failed to install playwright browsers: %w", err)
	}
	return nil
}
