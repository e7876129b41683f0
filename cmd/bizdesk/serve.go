package main

import (
	"github.com/smallbiznis/bizdesk/internal/migration"
	"github.com/smallbiznis/bizdesk/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := fx.New(
			coreModules(),
			migration.Module,
			server.Module,
		)
		if err := app.Err(); err != nil {
			return err
		}
		app.Run()
		return nil
	},
}
