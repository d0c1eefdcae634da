package main

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/llm-workflow/internal/config"
	"github.com/davidbz/llm-workflow/internal/domain"
	embeddingopenai "github.com/davidbz/llm-workflow/internal/embedding/openai"
	"github.com/davidbz/llm-workflow/internal/http"
	"github.com/davidbz/llm-workflow/internal/http/middleware"
	"github.com/davidbz/llm-workflow/internal/observability"
	"github.com/davidbz/llm-workflow/internal/provider/echo"
	"github.com/davidbz/llm-workflow/internal/provider/openai"
	"github.com/davidbz/llm-workflow/internal/storage/sqlite"
	"github.com/davidbz/llm-workflow/internal/vectorindex/memory"
	vectorredis "github.com/davidbz/llm-workflow/internal/vectorindex/redis"
)

const (
	chatProviderEcho = "echo"
	backendRedis     = "redis"
	messageKeyPrefix = "msg:"
)

func buildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []struct {
		name        string
		constructor any
	}{
		// Configuration
		{"config", config.Load},
		{"config dependencies", config.ParseDependenciesConfig},
		{"endpoint", config.ResolveEndpoint},

		// Observability
		{"logger", observability.InitLogger},
		{"event bus", provideEventBus},

		// Gateways
		{"chat gateway", provideChatGateway},
		{"embedding gateway", provideEmbeddingGateway},
		{"embedding gateway interface", func(g *embeddingopenai.Gateway) domain.EmbeddingGateway { return g }},

		// Cost accounting
		{"pricing registry", providePricingRegistry},
		{"cost calculator", func(r domain.PricingRegistry) domain.CostCalculator { return domain.NewStandardCostCalculator(r) }},

		// Storage
		{"database", provideDatabase},
		{"store", sqlite.NewStore},
		{"store interfaces", provideStores},

		// Domain services
		{"message index", provideMessageIndex},
		{"run service", provideRunService},
		{"workspace service", domain.NewWorkspaceService},

		// HTTP layer
		{"middleware chain", middleware.BuildMiddlewareChain},
		{"HTTP handler", http.NewHandler},
		{"HTTP server", http.NewServer},
	}

	for _, p := range providers {
		if err := container.Provide(p.constructor); err != nil {
			return nil, fmt.Errorf("failed to provide %s: %w", p.name, err)
		}
	}

	return container, nil
}

func provideEventBus(logger *zap.Logger) domain.EventPublisher {
	return observability.NewEventBus(logger)
}

func provideChatGateway(cfg *config.ProviderConfig, endpoint config.Endpoint, logger *zap.Logger) domain.ChatGateway {
	if cfg.ChatProvider == chatProviderEcho {
		logger.Info("using offline echo chat gateway")
		return echo.NewGateway()
	}

	if !endpoint.HasCredential() {
		logger.Warn("no provider credential configured, chat calls will fail until OPENROUTER_API_KEY or OPENAI_API_KEY is set")
	} else {
		logger.Info("chat gateway configured",
			observability.String("source", endpoint.Source),
			observability.String("base_url", endpoint.BaseURL))
	}

	return openai.NewGateway(openai.Config{
		APIKey:       endpoint.APIKey,
		BaseURL:      endpoint.BaseURL,
		Source:       endpoint.Source,
		DefaultModel: cfg.DefaultModel,
		Timeout:      cfg.TimeoutDuration(),
		MaxRetries:   cfg.MaxRetries,
		HTTPReferer:  cfg.HTTPReferer,
		AppTitle:     cfg.AppTitle,
	})
}

func provideEmbeddingGateway(cfg *config.ProviderConfig, endpoint config.Endpoint) *embeddingopenai.Gateway {
	return embeddingopenai.NewGateway(embeddingopenai.Config{
		APIKey:       endpoint.APIKey,
		BaseURL:      endpoint.BaseURL,
		DefaultModel: cfg.EmbeddingModel,
		Timeout:      cfg.TimeoutDuration(),
		MaxRetries:   cfg.MaxRetries,
	})
}

func providePricingRegistry() (domain.PricingRegistry, error) {
	ctx := context.Background()
	registry := domain.NewInMemoryPricingRegistry()

	if err := openai.RegisterPricing(ctx, registry); err != nil {
		return nil, fmt.Errorf("failed to register openai pricing: %w", err)
	}
	if err := echo.RegisterPricing(ctx, registry); err != nil {
		return nil, fmt.Errorf("failed to register echo pricing: %w", err)
	}

	return registry, nil
}

func provideDatabase(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sqlite.NewDB(cfg.Path)
	if err != nil {
		return nil, err
	}

	if err := sqlite.MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func provideStores(store *sqlite.Store) (
	domain.ProjectStore,
	domain.PromptStore,
	domain.SessionStore,
	domain.UsageStore,
	domain.EmbeddingStore,
) {
	return store, store, store, store, store
}

// provideMessageIndex returns nil interfaces when indexing is disabled so the
// run service skips indexing and the search endpoint reports it as unavailable.
func provideMessageIndex(
	cfg *config.VectorIndexConfig,
	embeddings *embeddingopenai.Gateway,
	records domain.EmbeddingStore,
	sessions domain.SessionStore,
) (domain.MessageIndexer, http.Searcher, error) {
	if !cfg.Enabled {
		return nil, nil, nil
	}

	index, err := newVectorIndex(context.Background(), cfg, embeddings.Dimension())
	if err != nil {
		return nil, nil, err
	}

	service := domain.NewMessageIndexService(embeddings, index, records, sessions, cfg.Namespace, cfg.Threshold)
	return service, service, nil
}

func newVectorIndex(ctx context.Context, cfg *config.VectorIndexConfig, modelDimension int) (domain.VectorIndex, error) {
	if cfg.Backend != backendRedis {
		index, err := memory.NewIndex(cfg.Namespace)
		if err != nil {
			return nil, err
		}
		return index, nil
	}

	dimension := cfg.Dimension
	if dimension <= 0 {
		dimension = modelDimension
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	index, err := vectorredis.NewIndex(ctx, client, vectorredis.Config{
		IndexName: cfg.RedisIndex,
		KeyPrefix: messageKeyPrefix,
		Dimension: dimension,
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return index, nil
}

func provideRunService(
	chat domain.ChatGateway,
	sessions domain.SessionStore,
	usage domain.UsageStore,
	costCalculator domain.CostCalculator,
	events domain.EventPublisher,
	indexer domain.MessageIndexer,
	cfg *config.ProviderConfig,
) *domain.RunService {
	return domain.NewRunService(chat, sessions, usage, costCalculator, events, indexer, cfg.DefaultModel)
}
