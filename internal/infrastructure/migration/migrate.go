// Package migration applies the versioned postgres schema with golang-migrate.
// SQLite databases are built from the GORM models instead.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var embedded embed.FS

// Migrator wraps a golang-migrate instance bound to one postgres connection.
// Close releases the connection it was built on.
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New binds a Migrator to db. With an empty dir the schema embedded in the
// binary is used, otherwise the *.sql files under dir.
func New(db *sql.DB, dir string, log *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migrate driver: %w", err)
	}

	var m *migrate.Migrate
	if dir == "" {
		src, serr := iofs.New(embedded, "sql")
		if serr != nil {
			return nil, fmt.Errorf("embedded schema: %w", serr)
		}
		m, err = migrate.NewWithInstance("iofs", src, "postgres", driver)
		if err != nil {
			_ = src.Close()
		}
	} else {
		m, err = migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}

	return &Migrator{m: m, log: log.Named("migrate")}, nil
}

// Up applies every pending migration; an up-to-date schema is not an error.
func (mg *Migrator) Up() error {
	return mg.run("up", mg.m.Up)
}

// Down reverts every applied migration.
func (mg *Migrator) Down() error {
	return mg.run("down", mg.m.Down)
}

func (mg *Migrator) run(direction string, step func() error) error {
	mg.log.Info("Migrating schema", zap.String("direction", direction))
	err := step()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		mg.log.Info("Schema unchanged", zap.String("direction", direction))
		return nil
	case err != nil:
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	mg.log.Info("Schema migrated",
		zap.String("direction", direction),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// Version reports the applied schema version; 0 means none.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied and clears the dirty flag without running anything.
func (mg *Migrator) Force(version int) error {
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force schema version %d: %w", version, err)
	}
	mg.log.Warn("Schema version forced", zap.Int("version", version))
	return nil
}

// Close releases the source and the database connection.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}
