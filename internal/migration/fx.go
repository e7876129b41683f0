package migration

import (
	"context"

	"github.com/smallbiznis/bizdesk/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module migrates the schema and seeds the default company before the server starts.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, seeder *seed.Seeder, log *zap.Logger) error {
		if err := Run(conn); err != nil {
			return err
		}
		log.Named("migration").Info("schema up to date", zap.String("dialect", conn.Dialector.Name()))

		_, err := seeder.Run(context.Background())
		return err
	}),
)
