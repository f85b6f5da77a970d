package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"campus-placement/internal/handler/middleware"
	"campus-placement/internal/infra/db"
	"campus-placement/internal/infra/migrations"
	"campus-placement/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/spf13/cobra"
)

type options struct {
	embedded  bool
	atlasPath string
	timeout   time.Duration
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply the placement schema to the configured Postgres database",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.DB.UsesMemory() {
				return fmt.Errorf("STORE_DRIVER=%s has no schema to migrate", cfg.DB.Driver)
			}
			logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			if opts.embedded {
				err = applyEmbedded(ctx, cfg.DB, logger)
			} else {
				err = applyWithAtlas(ctx, cfg.DB, opts.atlasPath, logger)
			}
			if err != nil {
				logger.Error("migration failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.embedded, "embedded", false, "apply through pgx instead of the atlas CLI")
	cmd.Flags().StringVar(&opts.atlasPath, "atlas", "atlas", "path to the atlas binary")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall migration timeout")

	return cmd
}

func applyWithAtlas(ctx context.Context, cfg config.DBConfig, atlasPath string, logger *slog.Logger) error {
	workdir, err := atlasexec.NewWorkingDir(
		atlasexec.WithMigrations(migrations.FS()),
	)
	if err != nil {
		return fmt.Errorf("prepare atlas working dir: %w", err)
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), atlasPath)
	if err != nil {
		return fmt.Errorf("init atlas client: %w", err)
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL: cfg.BuildDSN(),
	})
	if err != nil {
		return fmt.Errorf("atlas migrate apply: %w", err)
	}
	logger.Info("migrations applied", "tool", "atlas", "count", len(res.Applied), "current", res.Current, "target", res.Target)
	return nil
}

func applyEmbedded(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) error {
	pool, cleanup, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	applied, err := migrations.Apply(ctx, pool)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", "tool", "embedded", "versions", applied)
	return nil
}
