package insight

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/bizdesk/internal/config"
	"github.com/smallbiznis/bizdesk/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("insight",
	fx.Provide(NewGenerator),
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.Logger
	Redis     *redis.Client    `optional:"true"`
	Metrics   *metrics.Metrics `optional:"true"`
}

// NewGenerator builds the configured backend wrapped as
// instrumented(cache(breaker(backend))). Static is never wrapped by a breaker.
func NewGenerator(p Params) (Generator, error) {
	log := p.Log.Named("insight")
	cfg := p.Config.Insight

	backend, err := newBackend(p.Lifecycle, cfg, log)
	if err != nil {
		return nil, err
	}

	var gen Generator = backend
	if backend.Name() != config.InsightProviderStatic {
		gen = NewBreaker(gen, BreakerConfig{
			MaxFailures: cfg.BreakerMaxFailures,
			OpenTimeout: cfg.BreakerOpenTimeout,
		}, log)
		if p.Redis != nil && cfg.CacheTTL > 0 {
			gen = NewCached(gen, p.Redis, cfg.CacheTTL, log)
		}
	}

	log.Info("insight generator ready", zap.String("provider", gen.Name()))
	return NewInstrumented(gen, p.Metrics), nil
}

func newBackend(lc fx.Lifecycle, cfg config.InsightConfig, log *zap.Logger) (Generator, error) {
	switch cfg.Provider {
	case config.InsightProviderGemini:
		if cfg.GeminiAPIKey == "" {
			log.Warn("GEMINI_API_KEY not set, falling back to static insight")
			return NewStatic(), nil
		}
		gemini, err := NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return gemini.Close()
			},
		})
		return gemini, nil
	case config.InsightProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			log.Warn("OPENAI_API_KEY not set, falling back to static insight")
			return NewStatic(), nil
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	default:
		return NewStatic(), nil
	}
}
