package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/tasknity/tasknity-api/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tasknity",
	Short: "TaskNity API server",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnvFile(".env")
	},
	// running the binary without a subcommand serves the API
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err.Error())
	}
}
