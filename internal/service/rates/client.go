// Package rates fetches foreign-exchange rates against a base currency.
package rates

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	xhttp "github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/http"
)

const DefaultBaseURL = "https://api.exchangerate.host"

type Client struct {
	baseURL   string
	accessKey string
	http      *xhttp.Client
}

func New(baseURL, accessKey string, hc *xhttp.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, accessKey: accessKey, http: hc}
}

type latestResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Rates returns symbol→rate versus base. Empty map on any failure or when
// no symbols are requested.
func (c *Client) Rates(ctx context.Context, base string, symbols []string) (map[string]float64, error) {
	out := map[string]float64{}
	if len(symbols) == 0 {
		return out, nil
	}

	params := map[string]string{
		"base":    base,
		"symbols": strings.Join(symbols, ","),
	}
	if c.accessKey != "" {
		params["access_key"] = c.accessKey
	}

	var resp latestResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      http.MethodGet,
		URL:         c.baseURL + "/latest",
		QueryParams: params,
	}, &resp)
	if err != nil {
		return out, fmt.Errorf("fetch fx rates: %w", err)
	}

	for _, s := range symbols {
		if r, ok := resp.Rates[s]; ok {
			out[s] = r
		}
	}
	return out, nil
}
