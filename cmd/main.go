package main

import (
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/davidbz/pricebook/internal/cache"
	cacheredis "github.com/davidbz/pricebook/internal/cache/redis"
	"github.com/davidbz/pricebook/internal/config"
	"github.com/davidbz/pricebook/internal/domain"
	"github.com/davidbz/pricebook/internal/http"
	"github.com/davidbz/pricebook/internal/http/middleware"
	"github.com/davidbz/pricebook/internal/observability"
	"github.com/davidbz/pricebook/internal/pricing/web"
	"github.com/davidbz/pricebook/internal/provider/openai"
	"github.com/davidbz/pricebook/internal/provider/static"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Engine options
	if err := container.Provide(func(cfg *config.Config) domain.Options {
		opts := domain.DefaultOptions()
		opts.CatalogTTL = cfg.Catalog.CacheTTL
		opts.PricingTTL = cfg.Pricing.CacheTTL
		return opts
	}); err != nil {
		log.Fatalf("Failed to provide engine options: %v", err)
	}

	// Shared Redis client (nil when not configured)
	if err := container.Provide(func(cfg *config.Config) *redis.Client {
		if cfg.Redis.Addr == "" {
			return nil
		}
		return redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	}); err != nil {
		log.Fatalf("Failed to provide redis client: %v", err)
	}

	// Snapshot stores
	if err := container.Provide(func(cfg *config.Config, client *redis.Client) cache.Store[domain.PricingTable] {
		if client != nil {
			return cacheredis.NewStore[domain.PricingTable](client, cfg.Redis.KeyPrefix+":pricing", cfg.Pricing.CacheTTL)
		}
		return cache.NewMemory[domain.PricingTable]()
	}); err != nil {
		log.Fatalf("Failed to provide pricing store: %v", err)
	}
	if err := container.Provide(func(cfg *config.Config, client *redis.Client) cache.Store[[]domain.ModelCatalogEntry] {
		if client != nil {
			return cacheredis.NewStore[[]domain.ModelCatalogEntry](client, cfg.Redis.KeyPrefix+":catalog", cfg.Catalog.CacheTTL)
		}
		return cache.NewMemory[[]domain.ModelCatalogEntry]()
	}); err != nil {
		log.Fatalf("Failed to provide catalog store: %v", err)
	}

	// Catalog client
	if err := container.Provide(func(cfg *config.Config) (domain.CatalogClient, error) {
		if cfg.Catalog.Provider == "static" || cfg.OpenAI.APIKey == "" {
			return static.NewClient(nil), nil
		}
		return openai.NewClient(cfg.OpenAI)
	}); err != nil {
		log.Fatalf("Failed to provide catalog client: %v", err)
	}

	// Pricing source (opt-in; nil means the curated table is authoritative)
	if err := container.Provide(func(cfg *config.Config) (domain.PricingSource, error) {
		switch cfg.Pricing.Source {
		case "model":
			return openai.NewPricingSource(cfg.OpenAI, cfg.Pricing.SourceModel)
		case "url":
			if cfg.Pricing.SourceURL == "" {
				return nil, errors.New("PRICING_SOURCE_URL is required when PRICING_SOURCE=url")
			}
			return web.NewSource(cfg.Pricing.SourceURL, time.Duration(cfg.OpenAI.Timeout)*time.Second), nil
		default:
			return nil, nil
		}
	}); err != nil {
		log.Fatalf("Failed to provide pricing source: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewPricingService); err != nil {
		log.Fatalf("Failed to provide pricing service: %v", err)
	}
	if err := container.Provide(domain.NewCatalogService); err != nil {
		log.Fatalf("Failed to provide catalog service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
