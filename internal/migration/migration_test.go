package migration

import (
	"io/fs"
	"testing"

	"github.com/smallbiznis/bizdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	up, err := fs.Glob(embeddedMigrations, "sql/*.up.sql")
	require.NoError(t, err)
	down, err := fs.Glob(embeddedMigrations, "sql/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, up)
	assert.Len(t, down, len(up))
}

func TestRunAutoMigratesSqlite(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	require.NoError(t, Run(conn))

	for _, table := range []string{"companies", "users", "sessions", "clients", "projects", "invoices", "payments"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}
