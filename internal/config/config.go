package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName          string
	AppVersion       string
	Environment      string
	HTTPAddr         string
	AuthCookieSecure bool
	DefaultLocale    string

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	Redis     RedisConfig
	Insight   InsightConfig
	RateLimit RateLimitConfig
	Bootstrap BootstrapConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a redis endpoint was configured.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

type InsightConfig struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	CacheTTL     time.Duration

	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

type RateLimitConfig struct {
	Enabled    bool
	LoginRate  float64
	LoginBurst int
}

type BootstrapConfig struct {
	CompanyName   string
	AdminEmail    string
	AdminPassword string
}

const (
	InsightProviderGemini = "gemini"
	InsightProviderOpenAI = "openai"
	InsightProviderStatic = "static"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	cfg := Config{
		AppName:          getenv("APP_SERVICE", "bizdesk"),
		AppVersion:       getenv("APP_VERSION", "0.1.0"),
		Environment:      environment,
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		AuthCookieSecure: authCookieSecure,
		DefaultLocale:    strings.ToLower(getenv("DEFAULT_LOCALE", "ar")),
		OTLPEndpoint:     getenv("OTLP_ENDPOINT", "localhost:4317"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "bizdesk"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 10),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 50),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),

		Redis: RedisConfig{
			Addr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
			Password: strings.TrimSpace(getenv("REDIS_PASSWORD", "")),
			DB:       getenvInt("REDIS_DB", 0),
		},
		Insight: InsightConfig{
			Provider:           normalizeInsightProvider(getenv("INSIGHT_PROVIDER", InsightProviderGemini)),
			GeminiAPIKey:       strings.TrimSpace(getenv("GEMINI_API_KEY", "")),
			GeminiModel:        getenv("GEMINI_MODEL", "gemini-1.5-flash"),
			OpenAIAPIKey:       strings.TrimSpace(getenv("OPENAI_API_KEY", "")),
			OpenAIModel:        getenv("OPENAI_MODEL", "gpt-4o-mini"),
			CacheTTL:           time.Duration(getenvInt64("INSIGHT_CACHE_TTL_SECONDS", 900)) * time.Second,
			BreakerMaxFailures: uint32(getenvInt("INSIGHT_BREAKER_MAX_FAILURES", 3)),
			BreakerOpenTimeout: time.Duration(getenvInt64("INSIGHT_BREAKER_OPEN_SECONDS", 30)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:    getenvBool("RATE_LIMIT_ENABLED", false),
			LoginRate:  getenvFloat("RATE_LIMIT_LOGIN_RATE", 0.2),
			LoginBurst: getenvInt("RATE_LIMIT_LOGIN_BURST", 5),
		},
		Bootstrap: BootstrapConfig{
			CompanyName:   getenv("BOOTSTRAP_COMPANY_NAME", "Main"),
			AdminEmail:    strings.TrimSpace(getenv("BOOTSTRAP_ADMIN_EMAIL", "")),
			AdminPassword: getenv("BOOTSTRAP_ADMIN_PASSWORD", ""),
		},
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func normalizeInsightProvider(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case InsightProviderGemini, InsightProviderOpenAI, InsightProviderStatic:
		return value
	default:
		return InsightProviderStatic
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	return int(getenvInt64(key, int64(def)))
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
