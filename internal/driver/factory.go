// Package driver starts and stops the browser sessions the UI suite runs on.
package driver

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simplecom/storefront-smoke/internal/browser"
	"github.com/simplecom/storefront-smoke/internal/config"
	"github.com/simplecom/storefront-smoke/internal/logging"
)

// actionTimeoutUnits bounds the implicit wait inside a single fill or click.
const actionTimeoutUnits = 5

// LaunchOptions is what a Backend needs to bring up one browser page.
type LaunchOptions struct {
	Browser       Kind
	Viewport      Viewport
	Args          []string
	Headless      bool
	ActionTimeout time.Duration
}

// Backend starts browsers either on this machine or on a remote endpoint.
type Backend interface {
	Launch(opts LaunchOptions) (browser.Driver, error)
	Connect(endpoint string, opts LaunchOptions) (browser.Driver, error)
}

// Factory turns a browser configuration into a live Session.
type Factory struct {
	backend Backend
	logger  logging.Logger
}

// NewFactory creates a factory on backend. A nil logger logs to the
// standard logger.
func NewFactory(backend Backend, logger logging.Logger) *Factory {
	return &Factory{
		backend: backend,
		logger:  logging.OrDefault(logger),
	}
}

// Acquire starts exactly one session. A non-blank GridURL connects to that
// endpoint, anything else launches locally. Every failure is returned as a
// *SessionStartupError and nothing is retried.
func (f *Factory) Acquire(cfg config.BrowserConfig) (*Session, error) {
	kind := ParseKind(cfg.Browser)
	viewport := Viewport{Width: cfg.ViewportWidth, Height: cfg.ViewportHeight}
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = Viewport{Width: config.DefaultViewportWidth, Height: config.DefaultViewportHeight}
	}
	unit := cfg.WaitUnit
	if unit <= 0 {
		unit = config.DefaultWaitUnit
	}

	opts := LaunchOptions{
		Browser:       kind,
		Viewport:      viewport,
		Args:          LaunchArgs(kind, viewport),
		Headless:      cfg.Headless,
		ActionTimeout: actionTimeoutUnits * unit,
	}

	target := LocalTarget
	var (
		d   browser.Driver
		err error
	)
	if cfg.Remote() {
		target = strings.TrimSpace(cfg.GridURL)
		d, err = f.backend.Connect(target, opts)
	} else {
		d, err = f.backend.Launch(opts)
	}
	if err == nil && d == nil {
		err = errors.New("backend returned no driver")
	}
	if err != nil {
		f.logger.Printf("Failed to start %s session on %s: %v", kind, target, err)
		return nil, &SessionStartupError{Target: target, Browser: kind, Err: err}
	}

	s := &Session{
		ID:       uuid.NewString(),
		Target:   target,
		Browser:  kind,
		Viewport: viewport,
		WaitUnit: unit,
		Driver:   d,
		Logger:   f.logger,
	}
	f.logger.Printf("Started %s session %s on %s (%dx%d)", kind, s.ID, target, viewport.Width, viewport.Height)
	return s, nil
}

// Release stops the session. It is safe on nil and on sessions that were
// already released, and it never fails: close errors are only logged.
func (f *Factory) Release(s *Session) {
	if s == nil {
		return
	}
	if !s.markReleased() {
		return
	}
	if s.Driver == nil {
		return
	}
	if err := s.Driver.Close(); err != nil {
		f.logger.Printf("Error releasing session %s: %v", s.ID, err)
		return
	}
	f.logger.Printf("Released session %s", s.ID)
}
