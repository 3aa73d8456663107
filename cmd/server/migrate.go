package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/tasknity/tasknity-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		return database.Migrate(db, log)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all data with the demo workspace",
	Long:  "Runs migrations, deletes every row and inserts one account per role. All seeded accounts use the password " + database.SeedPassword + ".",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		if err := database.Migrate(db, log); err != nil {
			return err
		}
		if err := database.Seed(db, log, time.Now()); err != nil {
			return err
		}
		log.Info("database seeded")
		return nil
	},
}
