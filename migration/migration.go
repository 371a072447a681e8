package migration

import (
	"context"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/moemoe-lab/forum/pkg/xcontext"
)

//go:embed mysql/*.sql
var mysqlFS embed.FS

func Source() (source.Driver, error) {
	return iofs.New(mysqlFS, "mysql")
}

// Migrate applies every pending migration on the database of ctx. The schema
// is already up to date when it returns nil.
func Migrate(ctx context.Context) error {
	sqlDB, err := xcontext.DB(ctx).DB()
	if err != nil {
		return err
	}

	driver, err := mysql.WithInstance(sqlDB, &mysql.Config{})
	if err != nil {
		return err
	}

	src, err := Source()
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Database schema is at version %d (dirty=%t)", version, dirty)
	return nil
}
