package main

import (
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/auth"
	"github.com/smallbiznis/bizdesk/internal/cache"
	"github.com/smallbiznis/bizdesk/internal/client"
	"github.com/smallbiznis/bizdesk/internal/clock"
	"github.com/smallbiznis/bizdesk/internal/company"
	"github.com/smallbiznis/bizdesk/internal/config"
	"github.com/smallbiznis/bizdesk/internal/insight"
	"github.com/smallbiznis/bizdesk/internal/invoice"
	"github.com/smallbiznis/bizdesk/internal/observability"
	"github.com/smallbiznis/bizdesk/internal/payment"
	"github.com/smallbiznis/bizdesk/internal/project"
	"github.com/smallbiznis/bizdesk/internal/providers/pdf"
	"github.com/smallbiznis/bizdesk/internal/ratelimit"
	"github.com/smallbiznis/bizdesk/internal/report"
	"github.com/smallbiznis/bizdesk/internal/seed"
	"github.com/smallbiznis/bizdesk/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "bizdesk",
	Short:         "BizDesk invoicing and reporting backend",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, createUserCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bizdesk: %v\n", err)
		os.Exit(1)
	}
}

// coreModules wires everything except the HTTP server and the startup migration.
func coreModules() fx.Option {
	return fx.Options(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),

		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		cache.Module,

		// Functional Domains
		company.Module,
		auth.Module,
		seed.Module,
		client.Module,
		project.Module,
		pdf.Module,
		invoice.Module,
		payment.Module,
		insight.Module,
		report.Module,
		ratelimit.Module,
	)
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
