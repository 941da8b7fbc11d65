package scenario

import (
	"strings"

	"github.com/simplecom/storefront-smoke/internal/config"
	"github.com/simplecom/storefront-smoke/internal/driver"
	"github.com/simplecom/storefront-smoke/internal/pages"
	"github.com/simplecom/storefront-smoke/internal/rules"
)

// UIScenarios returns the browser suite in run order.
func UIScenarios(app config.AppConfig) []Scenario {
	return []Scenario{
		LoginSmoke(app),
		CartFlow(app),
	}
}

// LoginSmoke signs in and expects the products page.
func LoginSmoke(app config.AppConfig) Scenario {
	return Scenario{
		Name: "user logs in and sees the products page",
		Run: func(s *driver.Session) error {
			products, err := login(s, app)
			if err != nil {
				return err
			}
			source, err := products.PageSource()
			if err != nil {
				return err
			}
			if !strings.Contains(source, "Products") {
				return Failf("expected the page source to contain %q", "Products")
			}
			return nil
		},
	}
}

// CartFlow signs in, adds the backpack and expects it in the cart.
func CartFlow(app config.AppConfig) Scenario {
	return Scenario{
		Name: "user adds the backpack and sees it in the cart",
		Run: func(s *driver.Session) error {
			products, err := login(s, app)
			if err != nil {
				return err
			}
			if products, err = products.AddBackpackToCart(); err != nil {
				return err
			}

			badge, err := products.CartBadgeCount()
			switch {
			case err != nil:
				s.Logf("Warning: could not read the cart badge: %v", err)
			case !rules.ShouldShowCartBadge(badge):
				s.Logf("Warning: cart badge not shown after adding the backpack")
			}

			cart, err := products.GoToCart()
			if err != nil {
				return err
			}
			ok, err := cart.HasBackpackItem()
			if err != nil {
				return err
			}
			if !ok {
				return Failf("expected 'Sauce Labs Backpack' to be present in cart")
			}
			return nil
		},
	}
}

func login(s *driver.Session, app config.AppConfig) (*pages.ProductsPage, error) {
	page, err := pages.OpenLogin(s, app.BaseURL, "")
	if err != nil {
		return nil, err
	}
	return page.Login(app.Credentials.Username, app.Credentials.Password)
}
