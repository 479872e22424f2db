package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/learnpath-backend/internal/app"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := app.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			pg, err := app.OpenDB(log, cfg)
			if err != nil {
				return err
			}
			defer pg.Close()
			log.Info("migrations applied")
			return nil
		},
	}
}
