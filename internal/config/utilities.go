package config

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" && defaultValue == "" {
		log.Warn().Str("key", key).Msg("Empty value and default for environment variable")
	}
	if value == "" {
		return defaultValue
	}
	return value
}

func parseEnvInt(key string, defaultValue int) int {
	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		log.Warn().Str("key", key).Int("default", defaultValue).Msg("Invalid integer value, using default")
		return defaultValue
	}

	return parsed
}
