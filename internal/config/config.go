package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/pricebook/internal/provider/openai"
)

// Config represents the service configuration.
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	OpenAI  openai.Config
	Catalog CatalogConfig
	Pricing PricingConfig
	Redis   RedisConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"30"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// CatalogConfig contains model discovery settings.
type CatalogConfig struct {
	// Provider selects the catalog client: openai or static.
	Provider string        `env:"CATALOG_PROVIDER"  envDefault:"openai"`
	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"6h"`
}

// PricingConfig contains pricing refresh settings.
type PricingConfig struct {
	// Source selects the external pricing source: off, model, or url.
	Source      string        `env:"PRICING_SOURCE"       envDefault:"off"`
	SourceModel string        `env:"PRICING_SOURCE_MODEL" envDefault:"gpt-4o-mini"`
	SourceURL   string        `env:"PRICING_SOURCE_URL"`
	CacheTTL    time.Duration `env:"PRICING_CACHE_TTL"    envDefault:"24h"`
}

// RedisConfig contains optional shared-cache settings. With an empty Addr the
// engine uses in-process snapshot stores.
type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"pricebook"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*openai.Config
	*CatalogConfig
	*PricingConfig
	*RedisConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.OpenAI,
		&cfg.Catalog,
		&cfg.Pricing,
		&cfg.Redis,
	}
}
