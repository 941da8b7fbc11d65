package scenario

import (
	"github.com/simplecom/storefront-smoke/internal/config"
	"github.com/simplecom/storefront-smoke/internal/driver"
	"github.com/simplecom/storefront-smoke/internal/logging"
)

// SessionProvider acquires and releases browser sessions. *driver.Factory
// implements it.
type SessionProvider interface {
	Acquire(cfg config.BrowserConfig) (*driver.Session, error)
	Release(s *driver.Session)
}

// Scenario is one browser flow run on a borrowed session.
type Scenario struct {
	Name string
	Run  func(s *driver.Session) error
}

// RunClass acquires one session, runs every scenario on it in order and
// releases it exactly once, whatever the scenarios did. When the session
// cannot be started no scenario runs and each is reported with the startup
// error.
func RunClass(p SessionProvider, cfg config.BrowserConfig, scenarios []Scenario, logger logging.Logger) Results {
	logger = logging.OrDefault(logger)

	results := make(Results, 0, len(scenarios))
	s, err := p.Acquire(cfg)
	if err != nil {
		logger.Printf("Aborting %d scenario(s): %v", len(scenarios), err)
		for _, sc := range scenarios {
			results = append(results, Result{Name: sc.Name, Err: err})
		}
		return results
	}
	defer p.Release(s)

	for _, sc := range scenarios {
		sc := sc
		logger.Printf("Running %q", sc.Name)
		results = append(results, run(sc.Name, func() error { return sc.Run(s) }))
	}
	return results
}

// RunEach runs every scenario as a class of its own, so each gets a fresh
// session that is released before the next one is acquired.
func RunEach(p SessionProvider, cfg config.BrowserConfig, scenarios []Scenario, logger logging.Logger) Results {
	results := make(Results, 0, len(scenarios))
	for _, sc := range scenarios {
		results = append(results, RunClass(p, cfg, []Scenario{sc}, logger)...)
	}
	return results
}
