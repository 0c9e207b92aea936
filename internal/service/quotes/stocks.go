// Package quotes fetches equity and cryptocurrency prices.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/cache"
	xhttp "github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/http"
)

const (
	DefaultStockBaseURL = "https://finnhub.io/api/v1"
	DefaultQuoteTTL     = 10 * time.Minute
)

// StockClient looks up latest equity prices via the Finnhub REST API,
// fronted by a TTL byte cache that the optional trade stream keeps warm.
type StockClient struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
	cache   cache.BytesCache
	ttl     time.Duration
}

func NewStockClient(apiKey, baseURL string, hc *xhttp.Client, bc cache.BytesCache, ttl time.Duration) *StockClient {
	if baseURL == "" {
		baseURL = DefaultStockBaseURL
	}
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	return &StockClient{apiKey: apiKey, baseURL: baseURL, http: hc, cache: bc, ttl: ttl}
}

// Configured reports whether a quote credential is present.
func (c *StockClient) Configured() bool { return c.apiKey != "" }

type quoteResponse struct {
	Current float64 `json:"c"`
}

// Quotes returns symbol→quote for the requested symbols. Empty map when no
// symbols are requested or no credential is configured; partial results plus
// an error when some lookups fail.
func (c *StockClient) Quotes(ctx context.Context, symbols []string) (map[string]models.StockQuote, error) {
	out := map[string]models.StockQuote{}
	if len(symbols) == 0 || !c.Configured() {
		return out, nil
	}

	var firstErr error
	for _, sym := range symbols {
		if q, ok := c.cached(ctx, sym); ok {
			out[sym] = q
			continue
		}

		var resp quoteResponse
		err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: http.MethodGet,
			URL:    c.baseURL + "/quote",
			QueryParams: map[string]string{
				"symbol": sym,
				"token":  c.apiKey,
			},
		}, &resp)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("quote %s: %w", sym, err)
			}
			continue
		}
		if resp.Current == 0 {
			continue
		}
		q := models.StockQuote{Price: resp.Current, Currency: "USD"}
		out[sym] = q
		c.store(ctx, sym, q)
	}
	return out, firstErr
}

// Warm stores a live trade price, letting the websocket stream pre-fill the
// cache so request-path lookups skip the REST round-trip.
func (c *StockClient) Warm(symbol string, price float64) {
	c.store(context.Background(), symbol, models.StockQuote{Price: price, Currency: "USD"})
}

func (c *StockClient) cached(ctx context.Context, symbol string) (models.StockQuote, bool) {
	if c.cache == nil {
		return models.StockQuote{}, false
	}
	b, ok, err := c.cache.GetBytes(ctx, quoteKey(symbol))
	if err != nil || !ok {
		return models.StockQuote{}, false
	}
	var q models.StockQuote
	if err := json.Unmarshal(b, &q); err != nil {
		return models.StockQuote{}, false
	}
	return q, true
}

func (c *StockClient) store(ctx context.Context, symbol string, q models.StockQuote) {
	if c.cache == nil {
		return
	}
	b, err := json.Marshal(q)
	if err != nil {
		return
	}
	_ = c.cache.SetBytes(ctx, quoteKey(symbol), b, c.ttl)
}

func quoteKey(symbol string) string { return "quote:stock:" + symbol }
