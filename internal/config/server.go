package config

// GetPort returns the TCP port the HTTP server listens on
func GetPort() string {
	return GetEnvOrDefault("PORT", "8080")
}
