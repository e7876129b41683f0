package main

import (
	"context"
	"errors"
	"strings"

	"github.com/smallbiznis/bizdesk/internal/company/domain"
	"github.com/smallbiznis/bizdesk/internal/migration"
	"github.com/smallbiznis/bizdesk/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var createUserFlags struct {
	email       string
	password    string
	displayName string
	company     string
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user inside a company, creating the company when needed",
	Example: `  bizdesk create-user --email owner@example.com --password 's3cret-pass' --company "Acme Trading"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(createUserFlags.email) == "" || createUserFlags.password == "" {
			return errors.New("--email and --password are required")
		}

		return runOnce(cmd.Context(), fx.Options(
			coreModules(),
			migration.Module,
			fx.Invoke(func(seeder *seed.Seeder, companySvc domain.Service, log *zap.Logger) error {
				ctx := context.Background()
				company, err := companySvc.Ensure(ctx, createUserFlags.company)
				if err != nil {
					return err
				}
				user, err := seeder.CreateUser(ctx, company, createUserFlags.email, createUserFlags.password, createUserFlags.displayName)
				if err != nil {
					return err
				}
				if user != nil {
					log.Info("user ready",
						zap.String("user_id", user.ID.String()),
						zap.String("company", company.Slug),
					)
				}
				return nil
			}),
		))
	},
}

func init() {
	flags := createUserCmd.Flags()
	flags.StringVar(&createUserFlags.email, "email", "", "login email")
	flags.StringVar(&createUserFlags.password, "password", "", "initial password, at least 8 characters")
	flags.StringVar(&createUserFlags.displayName, "name", "", "display name, defaults to the email local part")
	flags.StringVar(&createUserFlags.company, "company", "Main", "company name")
}
