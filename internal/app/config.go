package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/yungbote/learnpath-backend/internal/data/db"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/openai"
)

// Config is read from the environment, optionally seeded by an app.env file.
type Config struct {
	Port            string `mapstructure:"PORT"`
	LogMode         string `mapstructure:"LOG_MODE"`
	Environment     string `mapstructure:"APP_ENV"`
	ShutdownTimeout int    `mapstructure:"SHUTDOWN_TIMEOUT"`
	AllowedOrigins  string `mapstructure:"ALLOWED_ORIGINS"`

	JWTSecretKey    string `mapstructure:"JWT_SECRET_KEY"`
	AccessTokenTTL  int    `mapstructure:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL int    `mapstructure:"REFRESH_TOKEN_TTL"`

	PostgresHost     string `mapstructure:"POSTGRES_HOST"`
	PostgresPort     string `mapstructure:"POSTGRES_PORT"`
	PostgresUser     string `mapstructure:"POSTGRES_USER"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresName     string `mapstructure:"POSTGRES_NAME"`
	PostgresSSLMode  string `mapstructure:"POSTGRES_SSLMODE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	OpenAIAPIKey     string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `mapstructure:"OPENAI_BASE_URL"`
	OpenAIModel      string `mapstructure:"OPENAI_MODEL"`
	OpenAITimeout    int    `mapstructure:"OPENAI_TIMEOUT"`
	OpenAIMaxRetries int    `mapstructure:"OPENAI_MAX_RETRIES"`

	RateLimitRequests int `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow   int `mapstructure:"RATE_LIMIT_WINDOW"`

	MetricsEnabled        bool `mapstructure:"METRICS_ENABLED"`
	MetricsScrapeInterval int  `mapstructure:"METRICS_SCRAPE_INTERVAL"`

	OtelEnabled     bool    `mapstructure:"OTEL_ENABLED"`
	OtelServiceName string  `mapstructure:"OTEL_SERVICE_NAME"`
	OtelEndpoint    string  `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelHeaders     string  `mapstructure:"OTEL_EXPORTER_OTLP_HEADERS"`
	OtelInsecure    bool    `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	OtelSampleRatio float64 `mapstructure:"OTEL_SAMPLER_RATIO"`
}

var configDefaults = map[string]any{
	"PORT":                        "8080",
	"LOG_MODE":                    "development",
	"APP_ENV":                     "development",
	"SHUTDOWN_TIMEOUT":            15,
	"ALLOWED_ORIGINS":             "",
	"JWT_SECRET_KEY":              "",
	"ACCESS_TOKEN_TTL":            3600,
	"REFRESH_TOKEN_TTL":           86400,
	"POSTGRES_HOST":               "localhost",
	"POSTGRES_PORT":               "5432",
	"POSTGRES_USER":               "postgres",
	"POSTGRES_PASSWORD":           "",
	"POSTGRES_NAME":               "learnpath",
	"POSTGRES_SSLMODE":            "disable",
	"REDIS_ADDR":                  "",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"OPENAI_API_KEY":              "",
	"OPENAI_BASE_URL":             "",
	"OPENAI_MODEL":                "",
	"OPENAI_TIMEOUT":              180,
	"OPENAI_MAX_RETRIES":          2,
	"RATE_LIMIT_REQUESTS":         20,
	"RATE_LIMIT_WINDOW":           60,
	"METRICS_ENABLED":             false,
	"METRICS_SCRAPE_INTERVAL":     10,
	"OTEL_ENABLED":                false,
	"OTEL_SERVICE_NAME":           "learnpath",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"OTEL_EXPORTER_OTLP_HEADERS":  "",
	"OTEL_EXPORTER_OTLP_INSECURE": false,
	"OTEL_SAMPLER_RATIO":          0.1,
}

// LoadConfig reads <path>/app.env when present and lets the environment
// override it.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	for k, def := range configDefaults {
		v.SetDefault(k, def)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL and REFRESH_TOKEN_TTL must be positive")
	}
	if c.RateLimitRequests < 0 || c.RateLimitWindow < 0 {
		return errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must not be negative")
	}
	return nil
}

func (c Config) Postgres() db.PostgresConfig {
	return db.PostgresConfig{
		Host:     c.PostgresHost,
		Port:     c.PostgresPort,
		User:     c.PostgresUser,
		Password: c.PostgresPassword,
		Name:     c.PostgresName,
		SSLMode:  c.PostgresSSLMode,
	}
}

func (c Config) OpenAI() openai.Config {
	return openai.Config{
		APIKey:     c.OpenAIAPIKey,
		BaseURL:    c.OpenAIBaseURL,
		Model:      c.OpenAIModel,
		Timeout:    time.Duration(c.OpenAITimeout) * time.Second,
		MaxRetries: c.OpenAIMaxRetries,
	}
}

func (c Config) Otel() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.OtelEnabled,
		ServiceName: c.OtelServiceName,
		Environment: c.Environment,
		Endpoint:    c.OtelEndpoint,
		Headers:     c.OtelHeaders,
		Insecure:    c.OtelInsecure,
		SampleRatio: c.OtelSampleRatio,
	}
}

func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) AccessTTL() time.Duration  { return time.Duration(c.AccessTokenTTL) * time.Second }
func (c Config) RefreshTTL() time.Duration { return time.Duration(c.RefreshTokenTTL) * time.Second }
func (c Config) ShutdownWait() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}
