package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("provider", "gemini"),
		attribute.String("company_id", "456"),
		attribute.String("outcome", "ok"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	for _, attr := range attrs {
		if attr.Key == "company_id" {
			t.Fatalf("expected company_id to be dropped")
		}
	}
}

func TestNopMetricsAreSafe(t *testing.T) {
	m := NewNop()
	if m == nil {
		t.Fatal("expected metrics")
	}
	m.RecordInvoiceSaved(context.Background(), "SAR")
	m.RecordInsight(context.Background(), "static", "ok", time.Millisecond)

	var missing *Metrics
	missing.RecordLogin(context.Background(), "failed")
}

func TestHTTPMetricsCountsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	r := gin.New()
	r.Use(GinMiddleware(m))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if got := testutil.ToFloat64(m.requests.WithLabelValues("/health", "GET", "200")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}
}
