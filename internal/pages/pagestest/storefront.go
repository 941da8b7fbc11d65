// Package pagestest scripts a browsertest.Driver to behave like the demo
// storefront, for tests above the page objects.
package pagestest

import (
	"github.com/simplecom/storefront-smoke/internal/browser"
	"github.com/simplecom/storefront-smoke/internal/browser/browsertest"
)

// BaseURL is the default storefront root.
const BaseURL = "https://www.saucedemo.com"

// Locators the page objects use; kept in step by the pages tests.
var (
	Username     = browser.CSS("[data-test='username'], #user-name")
	Password     = browser.CSS("[data-test='password'], #password")
	LoginButton  = browser.CSS("[data-test='login-button'], #login-button")
	ProductsText = browser.XPath("//*[contains(text(),'Products')]")
	Inventory    = browser.CSS("#inventory_container, .inventory_list, span.title")
	AddBackpack  = browser.CSS("[data-test='add-to-cart-sauce-labs-backpack']")
	CartLink     = browser.CSS("[data-test='shopping-cart-link']")
	CartBadge    = browser.CSS("[data-test='shopping-cart-badge'], .shopping_cart_badge")
	CartTitle    = browser.XPath("//*[contains(text(),'Your Cart')]")
	BackpackItem = browser.XPath("//*[contains(text(),'Sauce Labs Backpack')]")
)

// Storefront scripts d for the happy path: the login form renders on
// navigation, any login succeeds, and the inventory and cart render a few
// polls after their transitions.
func Storefront(d *browsertest.Driver) *browsertest.Driver {
	return d.
		OnNavigate(func(d *browsertest.Driver, url string) {
			d.Show(Username).Show(Password).Show(LoginButton)
		}).
		OnClick(LoginButton, func(d *browsertest.Driver) {
			d.SetURL(BaseURL+"/inventory.html").
				Hide(Username).
				Set(Inventory, browsertest.Element{Count: 1, Visible: true, VisibleAfter: 2}).
				Show(ProductsText).
				Show(AddBackpack).
				Show(CartLink).
				SetSource(`<div class="header_secondary_container"><span class="title" data-test="title">Products</span></div>`)
		}).
		OnClick(AddBackpack, func(d *browsertest.Driver) {
			d.Set(CartBadge, browsertest.Element{Count: 1, Visible: true, Text: "1"})
		}).
		OnClick(CartLink, func(d *browsertest.Driver) {
			d.SetURL(BaseURL+"/cart.html").
				Show(CartTitle).
				Set(BackpackItem, browsertest.Element{Count: 1, Visible: true, VisibleAfter: 1})
		})
}
