package cmd

import (
	"Storefront/config"
	"Storefront/repository"
	"fmt"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "建立或更新資料表",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := config.SetupDatabaseConnection(cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := repository.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			logger.Info("migration finished", "driver", cfg.Database.Driver)
			return nil
		},
	}
}
