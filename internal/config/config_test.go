package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("INSIGHT_PROVIDER", "")

	cfg := Load()

	assert.Equal(t, "bizdesk", cfg.AppName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, InsightProviderGemini, cfg.Insight.Provider)
	assert.Equal(t, 15*time.Minute, cfg.Insight.CacheTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.AuthCookieSecure)
}

func TestLoadProductionForcesSecureCookie(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("AUTH_COOKIE_SECURE", "false")

	cfg := Load()

	assert.True(t, cfg.AuthCookieSecure)
	assert.True(t, cfg.IsProduction())
}

func TestUnknownInsightProviderFallsBackToStatic(t *testing.T) {
	t.Setenv("INSIGHT_PROVIDER", "mystery")

	cfg := Load()

	assert.Equal(t, InsightProviderStatic, cfg.Insight.Provider)
}

func TestStaticCompanyProfile(t *testing.T) {
	holder := NewStaticCompanyProfile(CompanyProfile{Name: "Acme", TaxNumber: "300000000000003"})

	assert.Equal(t, "Acme", holder.Get().Name)
	assert.Equal(t, "300000000000003", holder.Get().TaxNumber)
	assert.Error(t, validateCompanyProfile(CompanyProfile{}))
}
