package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/clock"
	"github.com/smallbiznis/bizdesk/internal/company/domain"
	"github.com/smallbiznis/bizdesk/internal/company/repository"
	"github.com/smallbiznis/bizdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Company{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(conn),
	})
}

func TestEnsureIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Ensure(ctx, "  Acme Trading Co ")
	require.NoError(t, err)
	assert.Equal(t, "acme-trading-co", first.Slug)
	assert.Equal(t, "Acme Trading Co", first.Name)

	second, err := svc.Ensure(ctx, "acme trading co")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := svc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Slug, got.Slug)
}

func TestEnsureRejectsEmptyName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Ensure(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(context.Background(), 12345)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
