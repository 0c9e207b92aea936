package di

import (
	"context"
	"fmt"
	"time"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/repository"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/handler/api"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/ai"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/cache"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/events"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/quotes"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/ratelimit"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/rates"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/search"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/store"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/usecase"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/config"
	xhttp "github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/http"
	pkgkafka "github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/kafka"
	applogger "github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/logger"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/metrics"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/server"
)

// ProvideLogger builds the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Log.Level
	if level == "" {
		level = "info"
	}
	return applogger.New(&applogger.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideHTTPClient is the shared outbound HTTP client for all connectors.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	timeout := cfg.Chat.ConnectorTimeout
	if timeout <= 0 {
		timeout = usecase.DefaultConnectorTimeout
	}
	return xhttp.NewClient(xhttp.WithTimeout(timeout))
}

// ProvideQuoteCache picks redis or the in-process TTL cache for quotes.
func ProvideQuoteCache(cfg *config.Config) cache.BytesCache {
	if cfg.QuoteCache.Redis.Enabled {
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.QuoteCache.Redis.Addr,
			Password: cfg.QuoteCache.Redis.Password,
			DB:       cfg.QuoteCache.Redis.DB,
		})
	}
	return cache.NewTTLCache()
}

// ProvideSearchCache builds the bounded FIFO cache for web search results.
func ProvideSearchCache(cfg *config.Config) *cache.SearchCache {
	ttl := cfg.SearchCache.TTL
	if ttl <= 0 {
		ttl = cache.DefaultSearchTTL
	}
	capacity := cfg.SearchCache.Capacity
	if capacity <= 0 {
		capacity = cache.DefaultSearchCapacity
	}
	return cache.NewSearchCache(ttl, capacity, time.Now)
}

// ProvideProfileStore creates the Supabase-backed profile store.
func ProvideProfileStore(cfg *config.Config, hc *xhttp.Client) repository.ProfileStore {
	return store.New(cfg.Supabase.URL, cfg.Supabase.ServiceKey, hc)
}

// ProvideRateSource creates the FX rates connector.
func ProvideRateSource(cfg *config.Config, hc *xhttp.Client) repository.RateSource {
	return rates.New(cfg.FX.BaseURL, cfg.FX.AccessKey, hc)
}

// ProvideStockClient creates the equity quote connector with its cache.
func ProvideStockClient(cfg *config.Config, hc *xhttp.Client, bc cache.BytesCache) *quotes.StockClient {
	ttl := cfg.QuoteCache.TTL
	if ttl <= 0 {
		ttl = quotes.DefaultQuoteTTL
	}
	return quotes.NewStockClient(cfg.Stocks.APIKey, cfg.Stocks.BaseURL, hc, bc, ttl)
}

// ProvideQuoteSource exposes the stock client through its read interface.
func ProvideQuoteSource(sc *quotes.StockClient) repository.QuoteSource {
	return sc
}

// ProvideCryptoSource creates the crypto price connector with its cache.
func ProvideCryptoSource(cfg *config.Config, hc *xhttp.Client, bc cache.BytesCache) repository.CryptoSource {
	ttl := cfg.QuoteCache.TTL
	if ttl <= 0 {
		ttl = quotes.DefaultQuoteTTL
	}
	return quotes.NewCryptoClient(cfg.Crypto.BaseURL, hc, bc, ttl)
}

// ProvideSearchSource creates the gated web search connector.
func ProvideSearchSource(cfg *config.Config, hc *xhttp.Client, sc *cache.SearchCache, m repository.Metrics) repository.SearchSource {
	return search.New(cfg.Search.APIKey, cfg.Search.BaseURL, cfg.Search.MaxResults, hc, sc, m)
}

// ProvideResponder creates the model-backed answer generator. Construction
// never fails; without a credential the responder serves heuristic answers.
func ProvideResponder(cfg *config.Config, l *applogger.Logger, m repository.Metrics) repository.Responder {
	return ai.NewResponder(context.Background(), ai.ModelConfig{
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		Region:      cfg.AI.Region,
		Model:       cfg.AI.Model,
		Temperature: float64(cfg.AI.Temperature),
	}, l, m)
}

// ProvidePublisher creates the Kafka answered-events publisher, or nil when
// analytics is disabled.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return events.NewKafkaPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideQuoteStream creates the websocket warm path, or nil when disabled.
func ProvideQuoteStream(cfg *config.Config, sc *quotes.StockClient, l *applogger.Logger) *quotes.Stream {
	s := cfg.Stocks.Stream
	if !s.Enabled || cfg.Stocks.APIKey == "" {
		return nil
	}
	return quotes.NewStream(cfg.Stocks.APIKey, s.WebSocketURL, s.Symbols, s.ReconnectDelay, s.PingInterval, sc, l)
}

// ProvideChatUsecase assembles the answer pipeline.
func ProvideChatUsecase(
	cfg *config.Config,
	profiles repository.ProfileStore,
	fx repository.RateSource,
	stocks repository.QuoteSource,
	crypto repository.CryptoSource,
	web repository.SearchSource,
	responder repository.Responder,
	publisher repository.Publisher,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.Chat {
	return usecase.NewChat(profiles, fx, stocks, crypto, web, responder, publisher, m, l, usecase.Options{
		FXBase:           cfg.FX.Base,
		FXSymbols:        cfg.FX.Symbols,
		VsCurrency:       cfg.Crypto.VsCurrency,
		ConnectorTimeout: cfg.Chat.ConnectorTimeout,
		TransactionLimit: cfg.Chat.TransactionLimit,
	})
}

// ProvideChatHandler binds the pipeline to the HTTP surface.
func ProvideChatHandler(cfg *config.Config, chat *usecase.Chat, m repository.Metrics, l *applogger.Logger) xhttp.Handler {
	return api.NewChatHandler(l, chat, ratelimit.New(), m, api.RateLimit{
		Capacity:     cfg.Chat.RateLimitCapacity,
		RefillPerSec: cfg.Chat.RateLimitRefill,
	}, api.Connectors{
		Store:  cfg.Supabase.URL != "" && cfg.Supabase.ServiceKey != "",
		Stocks: cfg.Stocks.APIKey != "",
		Search: cfg.Search.APIKey != "",
		Model:  cfg.AI.APIKey != "" && cfg.AI.Model != "",
	})
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	stream *quotes.Stream,
	publisher repository.Publisher,
) *server.App {
	return server.New(cfg, l, handler, stream, publisher)
}
