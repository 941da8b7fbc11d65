package pages

import (
	"fmt"

	"github.com/simplecom/storefront-smoke/internal/browser"
	"github.com/simplecom/storefront-smoke/internal/driver"
)

// Cart navigation stays inside an already loaded app, hence the short budget.
const cartWaitUnits = 5

var (
	cartTitle    = browser.XPath("//*[contains(text(),'Your Cart')]")
	backpackItem = browser.XPath("//*[contains(text(),'Sauce Labs Backpack')]")
)

// CartPage is the cart summary.
type CartPage struct {
	session *driver.Session
}

// AwaitCart waits for the cart title.
func AwaitCart(s *driver.Session) (*CartPage, error) {
	if err := s.Wait(cartWaitUnits).Until(browser.VisibilityOf(cartTitle)); err != nil {
		return nil, fmt.Errorf("cart page not ready: %w", err)
	}
	return &CartPage{session: s}, nil
}

// HasBackpackItem waits for the backpack line item, which can render after
// the cart shell, then reports whether it is present.
func (p *CartPage) HasBackpackItem() (bool, error) {
	if err := p.session.Wait(cartWaitUnits).Until(browser.VisibilityOf(backpackItem)); err != nil {
		return false, err
	}
	n, err := p.session.Driver.Count(backpackItem)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
