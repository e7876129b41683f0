package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	authdomain "github.com/smallbiznis/bizdesk/internal/auth/domain"
	clientdomain "github.com/smallbiznis/bizdesk/internal/client/domain"
	companydomain "github.com/smallbiznis/bizdesk/internal/company/domain"
	invoicedomain "github.com/smallbiznis/bizdesk/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/bizdesk/internal/payment/domain"
	projectdomain "github.com/smallbiznis/bizdesk/internal/project/domain"
	"gorm.io/gorm"
)

const migrationsDir = "sql"

//go:embed sql/*.sql
var embeddedMigrations embed.FS

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&companydomain.Company{},
		&authdomain.User{},
		&authdomain.Session{},
		&clientdomain.Client{},
		&projectdomain.Project{},
		&invoicedomain.Invoice{},
		&paymentdomain.Payment{},
	}
}

// Run brings the schema up to date. Postgres uses the versioned SQL files;
// other dialects fall back to gorm AutoMigrate.
func Run(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}

	if conn.Dialector.Name() != "postgres" {
		return conn.AutoMigrate(Models()...)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return RunPostgres(sqlDB)
}

func RunPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// migrator.Close would close the shared *sql.DB.

	return nil
}
