package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/client/domain"
	"github.com/smallbiznis/bizdesk/internal/client/repository"
	"github.com/smallbiznis/bizdesk/internal/clock"
	"github.com/smallbiznis/bizdesk/internal/companyctx"
	"github.com/smallbiznis/bizdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Client{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(conn),
	})
}

func companyCtx(id int64) context.Context {
	return companyctx.WithCompanyID(context.Background(), snowflake.ID(id))
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(companyCtx(1), domain.CreateClientRequest{Name: "  "})

	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestCreateRequiresCompany(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateClientRequest{Name: "Acme"})

	assert.ErrorIs(t, err, domain.ErrInvalidCompany)
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := companyCtx(1)

	created, err := svc.Create(ctx, domain.CreateClientRequest{Name: " Acme ", Email: "ops@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Name)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "ops@acme.test", got.Email)
}

func TestGetIsScopedToCompany(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(companyCtx(1), domain.CreateClientRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.GetByID(companyCtx(2), created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByID(companyCtx(1), "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestListAllSortsByName(t *testing.T) {
	svc := newTestService(t)
	ctx := companyCtx(1)

	for _, name := range []string{"Zain", "Almarai", "Maaden"} {
		_, err := svc.Create(ctx, domain.CreateClientRequest{Name: name})
		require.NoError(t, err)
	}
	_, err := svc.Create(companyCtx(2), domain.CreateClientRequest{Name: "Other"})
	require.NoError(t, err)

	clients, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, "Almarai", clients[0].Name)
	assert.Equal(t, "Zain", clients[2].Name)

	resp, err := svc.List(ctx, domain.ListClientRequest{Name: "ma"})
	require.NoError(t, err)
	assert.Len(t, resp.Clients, 2)
	assert.False(t, resp.HasMore)
}
