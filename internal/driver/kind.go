package driver

import (
	"fmt"
	"strings"
)

// Kind is a supported browser.
type Kind string

const (
	Chrome  Kind = "chrome"
	Firefox Kind = "firefox"
)

// ParseKind maps a configured browser name to a Kind. Anything that is not
// firefox runs as Chrome.
func ParseKind(name string) Kind {
	if strings.EqualFold(strings.TrimSpace(name), string(Firefox)) {
		return Firefox
	}
	return Chrome
}

// Viewport is the browser window size.
type Viewport struct {
	Width  int
	Height int
}

// profile is the per-browser data the factory needs.
type profile struct {
	// engine is the playwright browser type name.
	engine     string
	windowArgs func(v Viewport) []string
}

var profiles = map[Kind]profile{
	Chrome: {
		engine: "chromium",
		windowArgs: func(v Viewport) []string {
			return []string{fmt.Sprintf("--window-size=%d,%d", v.Width, v.Height)}
		},
	},
	Firefox: {
		engine: "firefox",
		windowArgs: func(v Viewport) []string {
			return []string{
				fmt.Sprintf("-width=%d", v.Width),
				fmt.Sprintf("-height=%d", v.Height),
			}
		},
	},
}

func profileFor(k Kind) profile {
	if p, ok := profiles[k]; ok {
		return p
	}
	return profiles[Chrome]
}

// LaunchArgs returns the browser command line flags that size its window.
func LaunchArgs(k Kind, v Viewport) []string {
	return profileFor(k).windowArgs(v)
}

// Engine returns the playwright browser type name for k.
func Engine(k Kind) string {
	return profileFor(k).engine
}
