package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestAndActor(t *testing.T) {
	ctx := WithRequestID(context.Background(), " req-1 ")
	ctx = WithActor(ctx, "user", "7")

	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	kind, id := ActorFromContext(ctx)
	assert.Equal(t, "user", kind)
	assert.Equal(t, "7", id)
}

func TestEmptyContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	kind, id := ActorFromContext(context.Background())
	assert.Empty(t, kind)
	assert.Empty(t, id)
}
