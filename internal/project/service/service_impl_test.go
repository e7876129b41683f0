package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/clock"
	"github.com/smallbiznis/bizdesk/internal/companyctx"
	"github.com/smallbiznis/bizdesk/internal/project/domain"
	"github.com/smallbiznis/bizdesk/internal/project/repository"
	"github.com/smallbiznis/bizdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Project{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(conn),
	})
}

func TestListFiltersByClient(t *testing.T) {
	svc := newTestService(t)
	ctx := companyctx.WithCompanyID(context.Background(), 7)

	_, err := svc.Create(ctx, domain.CreateProjectRequest{Name: "Website", ClientID: "101"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateProjectRequest{Name: "Audit", ClientID: "102"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateProjectRequest{Name: "Internal"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := svc.List(ctx, "101")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Website", scoped[0].Name)

	_, err = svc.List(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidClientID)
}

func TestCreateValidates(t *testing.T) {
	svc := newTestService(t)
	ctx := companyctx.WithCompanyID(context.Background(), 7)

	_, err := svc.Create(ctx, domain.CreateProjectRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateProjectRequest{Name: "X", ClientID: "zz"})
	assert.ErrorIs(t, err, domain.ErrInvalidClientID)

	_, err = svc.GetByID(ctx, "12345")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBelongsTo(t *testing.T) {
	owner := snowflake.ID(5)
	p := domain.Project{ClientID: &owner}

	assert.True(t, p.BelongsTo(0))
	assert.True(t, p.BelongsTo(5))
	assert.False(t, p.BelongsTo(6))
	assert.False(t, domain.Project{}.BelongsTo(5))
}
