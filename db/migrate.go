package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"transportbill/db/migrations"
)

// RunMigrations applies the embedded schema for dbType on a dedicated
// connection to dsn. Mongo has no SQL schema and is a no-op.
func RunMigrations(dbType DBType, dsn string) error {
	if dbType == Mongo {
		return nil
	}

	conn, err := sql.Open(string(dbType), dsn)
	if err != nil {
		return fmt.Errorf("could not connect to %s: %w", dbType, err)
	}
	defer conn.Close()

	var driver database.Driver
	switch dbType {
	case Postgres:
		driver, err = postgres.WithInstance(conn, &postgres.Config{})
	case SQLite:
		driver, err = sqlite.WithInstance(conn, &sqlite.Config{})
	default:
		return fmt.Errorf("no migrations for db type %q", dbType)
	}
	if err != nil {
		return fmt.Errorf("could not start %s migration driver: %w", dbType, err)
	}

	src, err := iofs.New(migrations.FS, string(dbType))
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dbType), driver)
	if err != nil {
		return fmt.Errorf("migration failed to start: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run up migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	slog.Info("migrations applied", "db", dbType, "version", version, "dirty", dirty)
	return nil
}
