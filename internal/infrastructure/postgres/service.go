package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/varaher/prana/internal/config"
)

// Service owns the Postgres connection pool for the records store.
type Service struct {
	db *sql.DB
}

// NewService connects to Postgres and applies pending migrations. It returns
// nil when no DATABASE_URL is configured so the rest of the server can still
// come up; only the records endpoints depend on it.
func NewService() *Service {
	log.Info().Msg("Initialising Postgres service")
	connStr := config.GetDatabaseURL()

	if connStr == "" {
		return nil
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Error().Err(err).Msg("Invalid database configuration - records endpoints will be unavailable")
		return nil
	}

	// The database container may still be starting; retry briefly
	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		log.Info().Int("attempt", i+1).Msg("Waiting for database")
		time.Sleep(time.Second)
	}
	if err != nil {
		db.Close()
		log.Error().Err(err).Msg("Could not connect to database - records endpoints will be unavailable")
		return nil
	}

	if err := runMigrations(connStr); err != nil {
		log.Error().Err(err).Msg("Migration failed")
	}

	log.Info().Msg("Connected to database")
	return &Service{db: db}
}

func runMigrations(connStr string) error {
	m, err := migrate.New(config.GetMigrationsPath(), connStr)
	if err != nil {
		return fmt.Errorf("migration init failed: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration up failed: %w", err)
	}
	log.Info().Msg("Migrations applied")
	return nil
}

// DB exposes the underlying pool for repositories.
func (s *Service) DB() *sql.DB {
	return s.db
}

// Close releases the connection pool.
func (s *Service) Close() error {
	return s.db.Close()
}
