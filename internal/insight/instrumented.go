package insight

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/bizdesk/internal/observability/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("bizdesk/insight")

// Instrumented records one span and one metric sample per Generate call.
type Instrumented struct {
	next    Generator
	metrics *metrics.Metrics
}

func NewInstrumented(next Generator, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

func (i *Instrumented) Name() string { return i.next.Name() }

func (i *Instrumented) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "insight.generate")
	defer span.End()
	span.SetAttributes(attribute.String("insight.provider", i.next.Name()))

	start := time.Now()
	out, err := i.next.Generate(ctx, prompt)

	outcome := "ok"
	switch {
	case errors.Is(err, ErrUnavailable):
		outcome = "open"
	case err != nil:
		outcome = "error"
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	i.metrics.RecordInsight(ctx, i.next.Name(), outcome, time.Since(start))
	return out, err
}
