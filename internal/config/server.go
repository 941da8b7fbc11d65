package config

// ServerConfig holds settings for the local storefront fixture server
type ServerConfig struct {
	Port string
}

// LoadServerConfig loads fixture server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	return ServerConfig{
		Port: port,
	}
}
