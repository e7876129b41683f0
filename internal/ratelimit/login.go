package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/bizdesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	keyLoginIP    = "bizdesk:login:ip:%s"
	keyLoginEmail = "bizdesk:login:email:%s"
)

// LoginLimiter throttles login attempts per client address and per email.
// A nil or disabled limiter allows everything.
type LoginLimiter struct {
	log    *zap.Logger
	bucket *TokenBucket
	rate   float64
	burst  int
}

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	Redis  *redis.Client `optional:"true"`
}

func NewLoginLimiter(p Params) *LoginLimiter {
	log := p.Log.Named("ratelimit")
	limitCfg := p.Config.RateLimit
	if !limitCfg.Enabled {
		return nil
	}
	if p.Redis == nil {
		log.Warn("rate limiting enabled without redis; login limiter disabled")
		return nil
	}
	if limitCfg.LoginRate <= 0 || limitCfg.LoginBurst <= 0 {
		log.Warn("invalid login rate limit; login limiter disabled",
			zap.Float64("rate", limitCfg.LoginRate),
			zap.Int("burst", limitCfg.LoginBurst),
		)
		return nil
	}

	return &LoginLimiter{
		log:    log,
		bucket: NewTokenBucket(p.Redis),
		rate:   limitCfg.LoginRate,
		burst:  limitCfg.LoginBurst,
	}
}

func (l *LoginLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// Allow consumes one token from both the address and the email bucket.
// Redis failures fail open.
func (l *LoginLimiter) Allow(ctx context.Context, ip, email string) (*Result, bool) {
	if !l.Enabled() {
		return nil, true
	}

	keys := make([]string, 0, 2)
	if ip = strings.TrimSpace(ip); ip != "" {
		keys = append(keys, fmt.Sprintf(keyLoginIP, ip))
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		keys = append(keys, fmt.Sprintf(keyLoginEmail, email))
	}

	for _, key := range keys {
		res, err := l.bucket.Allow(ctx, key, l.rate, l.burst)
		if err != nil {
			l.log.Warn("login rate limit check failed", zap.String("key", key), zap.Error(err))
			continue
		}
		if !res.Allowed {
			return res, false
		}
	}
	return nil, true
}
