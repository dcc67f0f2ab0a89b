// Package sqlite persists league state snapshots in a single-file database,
// so the league survives restarts without any server-side infrastructure.
package sqlite

import (
	"context"
	"embed"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"

	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrations embed.FS

var (
	ErrConnect = errors.New("sqlite connect failed")
	ErrMigrate = errors.New("sqlite schema migration failed")
)

// Store owns the database handle. Repositories hang off it.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database at path, applies pragmas and runs pending
// migrations. An empty path opens an in-memory database, used by tests.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := otelsqlx.Open("sqlite", path,
		otelsql.WithAttributes(semconv.DBSystemNameSQLite),
		otelsql.WithDBName("matchday"),
	)
	if err != nil {
		return nil, errors.WithSecondaryError(ErrConnect, err)
	}

	// Single-device tool: one writer is plenty, and it keeps SQLITE_BUSY
	// out of the picture entirely.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, errors.WithSecondaryError(ErrConnect, err)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.WithSecondaryError(ErrConnect, err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func runMigrations(db *sqlx.DB) error {
	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return errors.WithSecondaryError(ErrMigrate, err)
	}

	source, err := httpfs.New(http.FS(migrations), "migrations")
	if err != nil {
		return errors.WithSecondaryError(ErrMigrate, err)
	}

	migrator, err := migrate.NewWithInstance("httpfs", source, "sqlite", driver)
	if err != nil {
		return errors.WithSecondaryError(ErrMigrate, err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.WithSecondaryError(ErrMigrate, err)
	}

	return nil
}
