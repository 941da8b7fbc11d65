// Package pages models the storefront screens the smoke flow walks through.
// Every page is produced by a function that waits for it to be ready, so a
// page value in hand is always safe to act on. Pages borrow the session and
// never close it.
package pages

import (
	"fmt"
	"strings"

	"github.com/simplecom/storefront-smoke/internal/browser"
	"github.com/simplecom/storefront-smoke/internal/driver"
)

const loginWaitUnits = 20

var (
	usernameInput = browser.CSS("[data-test='username'], #user-name")
	passwordInput = browser.CSS("[data-test='password'], #password")
	loginButton   = browser.CSS("[data-test='login-button'], #login-button")
)

// LoginPage is the storefront's sign-in form.
type LoginPage struct {
	session *driver.Session
}

// OpenLogin navigates to the application root and waits for the username
// field. override wins over defaultBase when it is not blank.
func OpenLogin(s *driver.Session, defaultBase, override string) (*LoginPage, error) {
	root := defaultBase
	if strings.TrimSpace(override) != "" {
		root = override
	}
	url := strings.TrimRight(strings.TrimSpace(root), "/") + "/"

	if err := s.Driver.Navigate(url); err != nil {
		return nil, err
	}
	if err := s.Wait(loginWaitUnits).Until(browser.VisibilityOf(usernameInput)); err != nil {
		return nil, fmt.Errorf("login page not ready: %w", err)
	}
	return &LoginPage{session: s}, nil
}

// Login submits the credentials and waits for the products page. The click
// is never retried; a rejected login surfaces as the products wait failing.
func (p *LoginPage) Login(user, pass string) (*ProductsPage, error) {
	if err := p.session.Driver.Fill(usernameInput, user); err != nil {
		return nil, err
	}
	if err := p.session.Driver.Fill(passwordInput, pass); err != nil {
		return nil, err
	}
	if err := p.session.Driver.Click(loginButton); err != nil {
		return nil, err
	}
	return AwaitProducts(p.session)
}
