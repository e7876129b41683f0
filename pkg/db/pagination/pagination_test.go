package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id string
}

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "10", CreatedAt: "2025-01-01T00:00:00Z"})
	require.NoError(t, err)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "10", cursor.ID)
	assert.Equal(t, "2025-01-01T00:00:00Z", cursor.CreatedAt)
}

func TestTrimDetectsNextPage(t *testing.T) {
	data := []*row{{id: "3"}, {id: "2"}, {id: "1"}}

	page, info := Trim(data, 2, func(r *row) Cursor { return Cursor{ID: r.id} })

	assert.Len(t, page, 2)
	assert.True(t, info.HasMore)
	assert.NotEmpty(t, info.NextPageToken)

	cursor, err := DecodeCursor(info.NextPageToken)
	require.NoError(t, err)
	assert.Equal(t, "2", cursor.ID)
}

func TestTrimLastPage(t *testing.T) {
	data := []*row{{id: "1"}}

	page, info := Trim(data, 2, func(r *row) Cursor { return Cursor{ID: r.id} })

	assert.Len(t, page, 1)
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, Normalize(0))
	assert.Equal(t, MaxPageSize, Normalize(1000))
	assert.Equal(t, 10, Normalize(10))
}
