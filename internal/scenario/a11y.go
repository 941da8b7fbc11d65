package scenario

import (
	"github.com/simplecom/storefront-smoke/internal/a11y"
	"github.com/simplecom/storefront-smoke/internal/config"
	"github.com/simplecom/storefront-smoke/internal/driver"
	"github.com/simplecom/storefront-smoke/internal/pages"
)

const inventoryContainer = "[data-test='inventory-container']"

// A11yScenarios returns the accessibility suite.
func A11yScenarios(app config.AppConfig) []Scenario {
	return []Scenario{AccessibilityScan(app)}
}

// AccessibilityScan scans the login page, signs in and scans the inventory
// grid. Any serious or critical violation fails the scenario at the page it
// was found on.
func AccessibilityScan(app config.AppConfig) Scenario {
	return Scenario{
		Name: "login and inventory pages have no serious accessibility violations",
		Run: func(s *driver.Session) error {
			login, err := pages.OpenLogin(s, app.BaseURL, "")
			if err != nil {
				return err
			}
			if err := scanPage(s, app, "login page", ""); err != nil {
				return err
			}
			if _, err := login.Login(app.Credentials.Username, app.Credentials.Password); err != nil {
				return err
			}
			return scanPage(s, app, "inventory page", inventoryContainer)
		},
	}
}

func scanPage(s *driver.Session, app config.AppConfig, page, include string) error {
	violations, err := a11y.Scan(s.Driver, app.AxeScriptURL, include)
	if err != nil {
		return err
	}
	serious := a11y.Serious(violations)
	if len(serious) > 0 {
		return Failf("%s", a11y.Format(page, serious))
	}
	s.Logf("%s (%d minor violation(s) ignored)", a11y.Format(page, nil), len(violations))
	return nil
}
