package cli

import (
	"context"

	"disc-quiz-service/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMigrateCmd creates the results schema (and on Postgres the questionnaire table).
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyLogLevel(cfg.Log.Level)
	return runMigrationsWithConfig(ctx, cfg)
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	results, closeResults, err := openResultStore(cfg)
	if err != nil {
		return err
	}
	defer closeResults()

	if err := results.EnsureSchema(ctx); err != nil {
		return err
	}
	logger.Info("migrations applied", zap.String("storage", cfg.Storage.Driver))
	return nil
}
