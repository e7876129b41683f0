package insight

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "bizdesk:insight:"

// Cached serves repeated prompts from redis. Cache failures never fail a call.
type Cached struct {
	next   Generator
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewCached(next Generator, client *redis.Client, ttl time.Duration, log *zap.Logger) *Cached {
	return &Cached{next: next, client: client, ttl: ttl, log: log}
}

func (c *Cached) Name() string { return c.next.Name() }

func (c *Cached) Generate(ctx context.Context, prompt string) (string, error) {
	key := CacheKey(c.next.Name(), prompt)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil && cached != "":
		return cached, nil
	case err != nil && !errors.Is(err, redis.Nil):
		c.log.Warn("insight cache read failed", zap.Error(err))
	}

	out, err := c.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, out, c.ttl).Err(); err != nil {
		c.log.Warn("insight cache write failed", zap.Error(err))
	}
	return out, nil
}

func CacheKey(provider, prompt string) string {
	sum := sha256.Sum256([]byte(provider + "\x00" + prompt))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
