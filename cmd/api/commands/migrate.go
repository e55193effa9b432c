package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cramr/cramr-backend/internal/config"
	"github.com/cramr/cramr-backend/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
		return migrate(cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func migrate(cfg *config.Config, logger *zap.Logger) error {
	db, cleanup, err := database.NewDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := database.RunMigrations(db); err != nil {
		logger.Error("migration failed", zap.Error(err))
		return err
	}
	logger.Info("migrations applied")
	return nil
}
