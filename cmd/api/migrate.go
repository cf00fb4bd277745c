package main

import (
	"accounting/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.NewConnection(cfg.DSN())
		if err != nil {
			return err
		}
		return database.Migrate(db)
	},
}
