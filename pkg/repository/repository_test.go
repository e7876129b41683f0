package repository

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/smallbiznis/bizdesk/pkg/db"
	"github.com/smallbiznis/bizdesk/pkg/db/option"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID        int64 `gorm:"primaryKey"`
	Owner     int64
	Body      string
	CreatedAt time.Time
}

func newTestStore(t *testing.T) Repository[note] {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&note{}))

	return ProvideStore[note](conn)
}

func TestFindScopesByFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.BatchCreate(ctx, []*note{
		{ID: 1, Owner: 10, Body: "a"},
		{ID: 2, Owner: 10, Body: "b"},
		{ID: 3, Owner: 20, Body: "c"},
	}))

	items, err := store.Find(ctx, &note{Owner: 10}, option.WithOrder("id asc"))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Body)

	count, err := store.Count(ctx, &note{Owner: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFindOneMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	item, err := store.FindOne(context.Background(), &note{ID: 99})
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestUpdateReportsExistence(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &note{ID: 1, Owner: 10, Body: "a"}))

	ok, err := store.Update(ctx, int64(1), map[string]any{"body": "z"})
	require.NoError(t, err)
	assert.True(t, ok)

	item, err := store.FindOne(ctx, &note{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "z", item.Body)

	ok, err = store.Update(ctx, int64(2), map[string]any{"body": "z"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPaginationWalksPages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, store.Create(ctx, &note{ID: i, Owner: 1, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	cursorOf := func(n *note) pagination.Cursor {
		return pagination.Cursor{ID: strconv.FormatInt(n.ID, 10), CreatedAt: n.CreatedAt.Format(time.RFC3339Nano)}
	}

	first, err := store.Find(ctx, &note{Owner: 1}, option.ApplyPagination(pagination.Pagination{PageSize: 2}))
	require.NoError(t, err)
	page, info := pagination.Trim(first, 2, cursorOf)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].ID)
	assert.True(t, info.HasMore)

	second, err := store.Find(ctx, &note{Owner: 1}, option.ApplyPagination(pagination.Pagination{PageSize: 2, PageToken: info.NextPageToken}))
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, int64(1), second[0].ID)
}
