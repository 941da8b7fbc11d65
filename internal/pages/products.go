package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/simplecom/storefront-smoke/internal/browser"
	"github.com/simplecom/storefront-smoke/internal/driver"
)

const productsWaitUnits = 20

var (
	productsTitle    = browser.XPath("//*[contains(text(),'Products')]")
	inventoryOrTitle = browser.CSS("#inventory_container, .inventory_list, span.title")
	addBackpack      = browser.CSS("[data-test='add-to-cart-sauce-labs-backpack']")
	cartLink         = browser.CSS("[data-test='shopping-cart-link']")
	cartBadge        = browser.CSS("[data-test='shopping-cart-badge'], .shopping_cart_badge")
)

// ProductsPage is the inventory listing shown after login.
type ProductsPage struct {
	session *driver.Session
}

// AwaitProducts waits for the inventory to render. The inventory shows up
// either as the listing markup or as an inventory URL, so the first wait
// accepts both. If that wait fails for any reason the "Products" heading
// gets one more full budget, and its outcome is final.
func AwaitProducts(s *driver.Session) (*ProductsPage, error) {
	primary := browser.Or(
		browser.VisibilityOf(inventoryOrTitle),
		browser.URLContains("inventory"),
	)
	if err := s.Wait(productsWaitUnits).Until(primary); err != nil {
		s.Logf("Products page not detected (%v), waiting for the Products heading instead", err)
		if err := s.Wait(productsWaitUnits).Until(browser.VisibilityOf(productsTitle)); err != nil {
			return nil, fmt.Errorf("products page not ready: %w", err)
		}
	}
	return &ProductsPage{session: s}, nil
}

// AddBackpackToCart waits for the backpack's add button to be clickable and
// clicks it.
func (p *ProductsPage) AddBackpackToCart() (*ProductsPage, error) {
	if err := p.session.Wait(productsWaitUnits).Until(browser.Clickable(addBackpack)); err != nil {
		return nil, fmt.Errorf("backpack cannot be added: %w", err)
	}
	if err := p.session.Driver.Click(addBackpack); err != nil {
		return nil, err
	}
	return p, nil
}

// GoToCart opens the cart and waits for it.
func (p *ProductsPage) GoToCart() (*CartPage, error) {
	if err := p.session.Driver.Click(cartLink); err != nil {
		return nil, err
	}
	return AwaitCart(p.session)
}

// CartBadgeCount reads the number on the header cart badge. No badge means
// an empty cart.
func (p *ProductsPage) CartBadgeCount() (int, error) {
	n, err := p.session.Driver.Count(cartBadge)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	text, err := p.session.Driver.Text(cartBadge)
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("unexpected cart badge %q: %w", text, err)
	}
	return count, nil
}

// PageSource returns the rendered document.
func (p *ProductsPage) PageSource() (string, error) {
	return p.session.Driver.PageSource()
}
