package migrate

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/delanoso/safetyhub/pkg/config"
	"github.com/delanoso/safetyhub/pkg/db"
	"github.com/delanoso/safetyhub/pkg/logger"
)

// MaybeRunDev brings a dev Postgres schema up to date on boot when
// SAFETYHUB_AUTO_MIGRATE is set. The migration files are linted first so a
// malformed file fails the boot instead of half-applying. SQLite databases are
// shaped by GORM AutoMigrate in db.New instead.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate || cfg.FeatureFlags.UseSQLite {
		return nil
	}
	if err := ValidateDir(DefaultDir); err != nil {
		return fmt.Errorf("validating migrations: %w", err)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		logg.Warn(ctx, "goose migrations applied; schema version unavailable")
		return nil
	}
	logg.Info(logg.WithField(ctx, "schema_version", version), "goose migrations applied")
	return nil
}
