package sqlite

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	msqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/quietstudy/studytrack/internal/store/drivers/sqlite/migrations"
)

// ApplyMigrations runs all pending migrations against the open database.
// It reuses the store's own connection so in-memory databases migrate the
// same instance they serve.
func (s *Store) ApplyMigrations() error {
	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	driver, err := msqlite.WithInstance(s.db, &msqlite.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
