package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Fetch modes.
const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config holds the extraction service configuration.
type Config struct {
	ServerPort     string        `mapstructure:"SERVER_PORT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	// Empty PostgresURL or RedisAddr selects the in-memory stores.
	PostgresURL   string `mapstructure:"POSTGRES_URL"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	FetchMode          string        `mapstructure:"FETCH_MODE"`
	FetchTimeout       time.Duration `mapstructure:"FETCH_TIMEOUT"`
	BrowserConcurrency int           `mapstructure:"BROWSER_CONCURRENCY"`
	UserAgents         []string      `mapstructure:"USER_AGENTS"`
	Proxies            []string      `mapstructure:"PROXIES"`

	CacheTTL         time.Duration `mapstructure:"CACHE_TTL"`
	ExtractRateLimit float64       `mapstructure:"EXTRACT_RATE_LIMIT"`
	ExtractBurst     int           `mapstructure:"EXTRACT_BURST"`
	AllowedOrigins   []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// FormConfig holds the settings of the terminal posting form.
type FormConfig struct {
	Endpoint string        `mapstructure:"JOBFORM_ENDPOINT"`
	Timeout  time.Duration `mapstructure:"JOBFORM_TIMEOUT"`
	LogLevel string        `mapstructure:"LOG_LEVEL"`
}

// NewViper returns a viper instance reading envFile, when present, and the
// environment. An empty envFile means ".env".
func NewViper(envFile string) *viper.Viper {
	if envFile == "" {
		envFile = ".env"
	}
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present
	// This allows configuration purely through environment variables in production
	_ = v.ReadInConfig()
	return v
}

// Load reads the service configuration from envFile and the environment.
func Load(envFile string) (*Config, error) {
	v := NewViper(envFile)

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REQUEST_TIMEOUT", 60*time.Second)
	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("FETCH_MODE", FetchModeHTTP)
	v.SetDefault("FETCH_TIMEOUT", 10*time.Second)
	v.SetDefault("BROWSER_CONCURRENCY", 2)
	v.SetDefault("USER_AGENTS", []string{})
	v.SetDefault("PROXIES", []string{})
	v.SetDefault("CACHE_TTL", 6*time.Hour)
	v.SetDefault("EXTRACT_RATE_LIMIT", 1.0)
	v.SetDefault("EXTRACT_BURST", 3)
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{})

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.FetchMode = strings.ToLower(strings.TrimSpace(cfg.FetchMode))
	if cfg.FetchMode != FetchModeHTTP && cfg.FetchMode != FetchModeBrowser {
		return nil, fmt.Errorf("FETCH_MODE must be %q or %q, got %q", FetchModeHTTP, FetchModeBrowser, cfg.FetchMode)
	}
	if cfg.FetchTimeout <= 0 {
		return nil, fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", cfg.FetchTimeout)
	}
	return &cfg, nil
}

// LoadForm reads the form configuration from v, which the caller may have
// bound to command line flags.
func LoadForm(v *viper.Viper) (*FormConfig, error) {
	v.SetDefault("JOBFORM_ENDPOINT", "http://localhost:8080")
	v.SetDefault("JOBFORM_TIMEOUT", 15*time.Second)
	v.SetDefault("LOG_LEVEL", "warn")

	var cfg FormConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding form config: %w", err)
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	return &cfg, nil
}
