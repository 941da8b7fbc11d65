package config

import (
	"strings"
)

// Defaults for the application under test
const (
	DefaultBaseURL  = "https://www.saucedemo.com"
	DefaultUsername = "standard_user"
	DefaultPassword = "secret_sauce"
	// DefaultAxeScriptURL is the axe-core build injected by the a11y scan.
	DefaultAxeScriptURL = "https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.10.2/axe.min.js"
)

// Credentials is the login pair handed to the login page untouched
type Credentials struct {
	Username string
	Password string
}

// AppConfig holds the storefront under test
type AppConfig struct {
	BaseURL      string
	Credentials  Credentials
	AxeScriptURL string
}

// Overrides carries explicit values, usually from command line flags.
// Empty strings and nil pointers mean "not set".
type Overrides struct {
	BaseURL  string
	Username string
	Password string
	Browser  string
	GridURL  string
	Headless *bool
	APIBase  string
	APIToken string
	APIKey   string
	AxeURL   string
}

// LoadAppConfig resolves the application config: override, then environment, then default.
// Credentials come from APP_USER/APP_PASS, or from USER/PASS.
func LoadAppConfig(getenv func(string) string, overrides Overrides) AppConfig {
	return AppConfig{
		BaseURL:      resolve(overrides.BaseURL, getenv("APP_BASE_URL"), DefaultBaseURL),
		AxeScriptURL: resolve(overrides.AxeURL, getenv("AXE_SCRIPT_URL"), DefaultAxeScriptURL),
		Credentials: Credentials{
			Username: resolve(overrides.Username, getenv("APP_USER"), shellUser(getenv), DefaultUsername),
			Password: resolve(overrides.Password, getenv("APP_PASS"), getenv("PASS"), DefaultPassword),
		},
	}
}

// shellUser returns USER only when a password is configured alongside it.
// Login shells always export USER as the OS account name, so on its own it
// does not name a storefront account.
func shellUser(getenv func(string) string) string {
	if strings.TrimSpace(getenv("PASS")) == "" && strings.TrimSpace(getenv("APP_PASS")) == "" {
		return ""
	}
	return getenv("USER")
}

// resolve returns the first non-blank value
func resolve(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
