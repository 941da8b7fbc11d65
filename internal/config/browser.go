package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Browser defaults
const (
	DefaultBrowser        = "chrome"
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 900
	DefaultWaitUnit       = time.Second
)

// BrowserConfig holds everything the driver factory needs to start a session
type BrowserConfig struct {
	// GridURL selects a remote browser server when non-blank
	GridURL        string
	Browser        string
	ViewportWidth  int
	ViewportHeight int
	Headless       bool
	// WaitUnit is the duration of one unit of a page wait budget
	WaitUnit time.Duration
}

// Remote reports whether sessions should be started against GridURL
func (c BrowserConfig) Remote() bool {
	return strings.TrimSpace(c.GridURL) != ""
}

// LoadBrowserConfig resolves the browser config: override, then environment, then default
func LoadBrowserConfig(getenv func(string) string, overrides Overrides) (BrowserConfig, error) {
	config := BrowserConfig{
		GridURL:        resolve(overrides.GridURL, getenv("SELENIUM_GRID_URL")),
		Browser:        strings.ToLower(strings.TrimSpace(resolve(overrides.Browser, getenv("BROWSER"), DefaultBrowser))),
		ViewportWidth:  DefaultViewportWidth,
		ViewportHeight: DefaultViewportHeight,
		Headless:       true,
		WaitUnit:       DefaultWaitUnit,
	}

	switch {
	case overrides.Headless != nil:
		config.Headless = *overrides.Headless
	case strings.TrimSpace(getenv("HEADLESS")) != "":
		headless, err := strconv.ParseBool(strings.TrimSpace(getenv("HEADLESS")))
		if err != nil {
			return BrowserConfig{}, fmt.Errorf("HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	return config, nil
}
