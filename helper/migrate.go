package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"salon/config"
	"salon/infras/postgres"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationsSource = "file://migrations/postgres"

var migrationActions = map[string]func(mig *migrate.Migrate) error{
	"up":      func(mig *migrate.Migrate) error { return mig.Up() },
	"down":    func(mig *migrate.Migrate) error { return mig.Steps(-1) },
	"step-up": func(mig *migrate.Migrate) error { return mig.Steps(1) },
	"drop":    func(mig *migrate.Migrate) error { return mig.Down() },
}

func open(config *config.Config) (*migrate.Migrate, error) {
	dsn := postgres.WriteDSN(*config)
	if table := config.DB.Postgres.MigrationTable; table != "" {
		dsn += "&x-migrations-table=" + table
	}

	mig, err := migrate.New(migrationsSource, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one migration action: up, down, step-up or drop. No pending change is not an error.
func Runner(config *config.Config, action string) error {
	run, ok := migrationActions[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := open(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", action, err)
	}

	return logVersion(mig, action)
}

// Force marks version as applied without running it, clearing a dirty state left by a failed migration.
func Force(config *config.Config, version string) error {
	v, err := strconv.Atoi(version)
	if err != nil {
		return fmt.Errorf("invalid migration version %q: %w", version, err)
	}

	mig, err := open(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := mig.Force(v); err != nil {
		return fmt.Errorf("migration force %d failed: %w", v, err)
	}

	return logVersion(mig, "force")
}

func Version(config *config.Config) error {
	mig, err := open(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	return logVersion(mig, "version")
}

func logVersion(mig *migrate.Migrate, action string) error {
	version, dirty, err := mig.Version()

	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info().Str("action", action).Msg("Database has no migrations applied")

		return nil
	case err != nil:
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migrations done")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, "up")
}
