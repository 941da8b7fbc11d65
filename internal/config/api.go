package config

// DefaultAPIBase is the public demo API root
const DefaultAPIBase = "https://reqres.in/api"

// APIConfig holds configuration for the HTTP smoke suite
type APIConfig struct {
	Base string
	// Token is sent as the Authorization header when it is a well-formed bearer token
	Token string
	// Key is sent as the x-api-key header when set
	Key string
}

// LoadAPIConfig resolves the API config: override, then environment, then default
func LoadAPIConfig(getenv func(string) string, overrides Overrides) APIConfig {
	return APIConfig{
		Base:  resolve(overrides.APIBase, getenv("API_BASE"), DefaultAPIBase),
		Token: resolve(overrides.APIToken, getenv("API_TOKEN")),
		Key:   resolve(overrides.APIKey, getenv("API_KEY")),
	}
}
