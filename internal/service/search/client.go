// Package search wraps the web-search provider behind the safety filter and
// the query cache.
package search

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/repository"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/cache"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/safety"
	xhttp "github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/http"
)

const (
	DefaultBaseURL    = "https://api.tavily.com"
	DefaultMaxResults = 5
)

// Client performs eligibility-gated web searches. A question is only sent to
// the provider when the safety filter allows it, the trigger heuristic wants
// it, and a credential is configured; everything else resolves to no results.
type Client struct {
	apiKey     string
	baseURL    string
	maxResults int
	http       *xhttp.Client
	cache      *cache.SearchCache
	metrics    repository.Metrics
}

func New(apiKey, baseURL string, maxResults int, hc *xhttp.Client, sc *cache.SearchCache, m repository.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxResults <= 0 || maxResults > DefaultMaxResults {
		maxResults = DefaultMaxResults
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		maxResults: maxResults,
		http:       hc,
		cache:      sc,
		metrics:    m,
	}
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search returns up to the configured number of results for question. The
// cache is consulted before the network; only non-empty network results are
// cached.
func (c *Client) Search(ctx context.Context, question string) ([]models.WebSearchResult, error) {
	if c.apiKey == "" {
		return []models.WebSearchResult{}, nil
	}
	if !safety.IsSafeToSearch(question) || !safety.ShouldSearch(question) {
		return []models.WebSearchResult{}, nil
	}

	if cached, ok := c.cache.Get(question); ok {
		c.recordCache("hit")
		return cached, nil
	}
	c.recordCache("miss")

	var resp searchResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: http.MethodPost,
		URL:    c.baseURL + "/search",
		Body: searchRequest{
			APIKey:     c.apiKey,
			Query:      question,
			MaxResults: c.maxResults,
		},
	}, &resp)
	if err != nil {
		return []models.WebSearchResult{}, fmt.Errorf("web search: %w", err)
	}

	out := make([]models.WebSearchResult, 0, c.maxResults)
	for _, r := range resp.Results {
		out = append(out, models.WebSearchResult{Title: r.Title, URL: r.URL, Snippet: r.Content})
		if len(out) == c.maxResults {
			break
		}
	}
	c.cache.Put(question, out)
	return out, nil
}

func (c *Client) recordCache(event string) {
	if c.metrics != nil {
		c.metrics.RecordCacheEvent("search", event)
	}
}
