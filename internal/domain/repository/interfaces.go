package repository

import (
	"context"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"
)

// ProfileStore fetches user financial state from the backing store.
type ProfileStore interface {
	Profile(ctx context.Context, userID string) (models.FinancialProfile, error)
	RecentTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
}

// RateSource looks up FX rates for symbols against a base currency.
type RateSource interface {
	Rates(ctx context.Context, base string, symbols []string) (map[string]float64, error)
}

// QuoteSource looks up latest equity prices for symbols.
type QuoteSource interface {
	Quotes(ctx context.Context, symbols []string) (map[string]models.StockQuote, error)
}

// CryptoSource looks up spot prices for crypto symbols in a quote currency.
type CryptoSource interface {
	Prices(ctx context.Context, symbols []string, vsCurrency string) (map[string]float64, error)
}

// SearchSource runs an eligibility-gated web search for a question. It
// returns an empty slice when the question is unsafe to forward, does not
// warrant a search, or no credential is configured.
type SearchSource interface {
	Search(ctx context.Context, question string) ([]models.WebSearchResult, error)
}

// Responder produces exactly one answer for a request. Implementations never
// return an error: any generation failure resolves to a deterministic
// fallback answer.
type Responder interface {
	Answer(ctx context.Context, in *models.AnswerContext) models.Answer
}

// Publisher emits analytics events for answered requests.
type Publisher interface {
	PublishAnswered(ctx context.Context, ev models.AnsweredEvent) error
	Close() error
}

// Metrics records operational counters for the chat pipeline.
type Metrics interface {
	RecordRequest(status string)
	RecordConnectorError(connector string)
	RecordCacheEvent(cache, event string)
	RecordAnswerLatency(mode string, seconds float64)
}
