package config

import (
	"github.com/rs/zerolog/log"
)

// GetDatabaseURL returns the Postgres connection string for the records store
func GetDatabaseURL() string {
	value := GetEnvOrDefault("DATABASE_URL", "")
	if value == "" {
		log.Warn().Msg("DATABASE_URL not set - records endpoints will be unavailable")
	}
	return value
}

// GetMigrationsPath returns the file source golang-migrate reads from
func GetMigrationsPath() string {
	return GetEnvOrDefault("MIGRATIONS_PATH", "file://migrations")
}
