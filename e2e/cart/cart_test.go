//go:build e2e

package cart

import (
	"os"
	"testing"

	"github.com/simplecom/storefront-smoke/e2e/e2eutil"
	"github.com/simplecom/storefront-smoke/internal/driver"
	"github.com/simplecom/storefront-smoke/internal/pages"
	"github.com/simplecom/storefront-smoke/internal/rules"
)

var (
	env     e2eutil.Env
	session *driver.Session
)

// TestMain holds one browser session for every test in the package
func TestMain(m *testing.M) {
	os.Exit(e2eutil.RunClass(m, func(e e2eutil.Env, s *driver.Session) {
		env, session = e, s
	}))
}

// TestAddBackpackToCart tests the cart
// Feature: Cart
//
//	As a shopper
//	I want to add a product to my cart
//	So that I can buy it later
func TestAddBackpackToCart(t *testing.T) {
	// Given I am signed in
	login, err := pages.OpenLogin(session, env.App.BaseURL, "")
	if err != nil {
		t.Fatalf("Failed to open login page: %v", err)
	}
	products, err := login.Login(env.App.Credentials.Username, env.App.Credentials.Password)
	if err != nil {
		t.Fatalf("Failed to reach the products page: %v", err)
	}

	// When I add the backpack
	products, err = products.AddBackpackToCart()
	if err != nil {
		t.Fatalf("Failed to add the backpack: %v", err)
	}

	// Then the cart badge should count it
	if count, err := products.CartBadgeCount(); err != nil || !rules.ShouldShowCartBadge(count) {
		t.Logf("Warning: cart badge not shown (count %d, err %v)", count, err)
	}

	// And the cart should list it
	cart, err := products.GoToCart()
	if err != nil {
		t.Fatalf("Failed to open the cart: %v", err)
	}
	ok, err := cart.HasBackpackItem()
	if err != nil {
		t.Fatalf("Failed to find the backpack in the cart: %v", err)
	}
	if !ok {
		t.Error("Expected 'Sauce Labs Backpack' to be present in cart")
	}
}
