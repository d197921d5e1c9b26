package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/niksmo/storefront/pkg/sigctx"
	"github.com/spf13/pflag"
)

const (
	storagePathFlag   = "storage-path"
	migrationPathFlag = "migrations-path"
	attemptsFlag      = "attempts"
)

func main() {
	sigCtx, stop := sigctx.NotifyContext()
	defer stop()

	storagePath, migrationsPath, attempts := getFlagsValues()
	validateFlags(storagePath, migrationsPath)
	makeMigrations(sigCtx, storagePath, migrationsPath, attempts)
}

type MigrationLogger struct {
	logger  *slog.Logger
	verbose bool
}

func NewMigrationLogger() *MigrationLogger {
	return &MigrationLogger{
		logger:  slog.Default(),
		verbose: true,
	}
}

func (ml *MigrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(fmt.Sprintf(format, v...))
}

func (ml *MigrationLogger) Verbose() bool {
	return ml.verbose
}

func getFlagsValues() (storage, migrations string, attempts int) {
	storagePath := pflag.StringP(storagePathFlag, "s", "",
		"database address without scheme, user:pass@host:port/db")
	migrationsPath := pflag.StringP(migrationPathFlag, "m", "migrations",
		"directory with migration files")
	nAttempts := pflag.IntP(attemptsFlag, "a", 10,
		"connection attempts while the database is starting")
	pflag.Parse()
	return *storagePath, *migrationsPath, *nAttempts
}

func validateFlags(storagePath, migrationsPath string) {
	var errs []error

	if storagePath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", storagePathFlag))
	}

	if migrationsPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationPathFlag))
	}

	if len(errs) != 0 {
		slog.Error("too few args", "err", errors.Join(errs...))
		fallDown()
	}
}

func makeMigrations(
	ctx context.Context, storagePath, migrationsPath string, attempts int,
) {
	retryCfg := retry.RetryConfig{
		MaxAttempts: attempts,
		Backoff:     retry.ConstantBackoff(2 * time.Second),
	}

	m, err := retry.DoWithResult(ctx, retryCfg, func() (*migrate.Migrate, error) {
		m, err := migrate.New(
			fmt.Sprintf("file://%s", migrationsPath),
			fmt.Sprintf("pgx5://%s", storagePath),
		)
		if err != nil {
			slog.Warn("database is not ready", "err", err)
		}
		return m, err
	})
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	defer m.Close()

	m.Log = NewMigrationLogger()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	m.Log.Printf("migration applied\n")
}

func fallDown() {
	os.Exit(2)
}
