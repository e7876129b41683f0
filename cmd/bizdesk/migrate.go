package main

import (
	"context"
	"time"

	"github.com/smallbiznis/bizdesk/internal/migration"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const oneShotTimeout = time.Minute

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations and seed the default company",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce(cmd.Context(), fx.Options(coreModules(), migration.Module))
	},
}

// runOnce starts and stops app, leaving the work to its invokes.
func runOnce(ctx context.Context, opts fx.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	app := fx.New(opts)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, oneShotTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), oneShotTimeout)
	defer cancelStop()
	return app.Stop(stopCtx)
}
