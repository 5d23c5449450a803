package db

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migrations
	_ "github.com/lib/pq"                                // postgres driver
	"github.com/sirupsen/logrus"
	"japjap-server/internal/config"
)

var (
	poolMu sync.Mutex
	pool   *sql.DB
)

// Scanner is the Scan method shared by *sql.Row and *sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Instance returns the shared connection pool, connecting on first use
// It panics when Postgres cannot be reached
func Instance() *sql.DB {
	p, err := connect()
	if err != nil {
		panic(err)
	}

	return p
}

// Available reports whether Postgres can be reached, connecting the shared pool if needed
func Available() error {
	p, err := connect()
	if err != nil {
		return err
	}

	return p.Ping()
}

func connect() (*sql.DB, error) {
	poolMu.Lock()
	defer poolMu.Unlock()

	if pool != nil {
		return pool, nil
	}

	p, err := sql.Open("postgres", config.Instance().PGDSN)
	if err != nil {
		return nil, err
	}

	if err := p.Ping(); err != nil {
		_ = p.Close()
		return nil, err
	}

	pool = p
	return pool, nil
}

// Migrate brings the schema up to date with the migrations directory
func Migrate() error {
	dir := config.Instance().MigrationsPath
	logrus.WithField("migrationsPath", dir).Info("running migrations")

	driver, err := postgres.WithInstance(Instance(), &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
