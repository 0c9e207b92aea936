package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/cache"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/instruments"
	xhttp "github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/http"
)

const DefaultCryptoBaseURL = "https://api.coingecko.com/api/v3"

// CryptoClient looks up spot prices via the CoinGecko simple-price API.
// No credential is required; a failure still degrades to an empty map.
type CryptoClient struct {
	baseURL string
	http    *xhttp.Client
	cache   cache.BytesCache
	ttl     time.Duration
}

func NewCryptoClient(baseURL string, hc *xhttp.Client, bc cache.BytesCache, ttl time.Duration) *CryptoClient {
	if baseURL == "" {
		baseURL = DefaultCryptoBaseURL
	}
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	return &CryptoClient{baseURL: baseURL, http: hc, cache: bc, ttl: ttl}
}

// Prices returns symbol→price in vsCurrency for the requested symbols.
// Symbols without a known provider id are skipped. Empty map on failure.
func (c *CryptoClient) Prices(ctx context.Context, symbols []string, vsCurrency string) (map[string]float64, error) {
	out := map[string]float64{}
	if len(symbols) == 0 {
		return out, nil
	}
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	vsCurrency = strings.ToLower(vsCurrency)

	var ids []string
	idToSymbol := make(map[string]string)
	for _, s := range symbols {
		if id, ok := instruments.CryptoIDs[strings.ToUpper(s)]; ok {
			ids = append(ids, id)
			idToSymbol[id] = strings.ToUpper(s)
		}
	}
	if len(ids) == 0 {
		return out, nil
	}

	key := "quote:crypto:" + strings.Join(ids, ",") + ":" + vsCurrency
	prices, ok := c.cachedPrices(ctx, key)
	if !ok {
		var resp map[string]map[string]float64
		err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: http.MethodGet,
			URL:    c.baseURL + "/simple/price",
			QueryParams: map[string]string{
				"ids":           strings.Join(ids, ","),
				"vs_currencies": vsCurrency,
			},
		}, &resp)
		if err != nil {
			return out, fmt.Errorf("fetch crypto prices: %w", err)
		}
		prices = make(map[string]float64, len(resp))
		for id, vs := range resp {
			if p, ok := vs[vsCurrency]; ok {
				prices[id] = p
			}
		}
		c.storePrices(ctx, key, prices)
	}

	for id, p := range prices {
		if sym, ok := idToSymbol[id]; ok {
			out[sym] = p
		}
	}
	return out, nil
}

func (c *CryptoClient) cachedPrices(ctx context.Context, key string) (map[string]float64, bool) {
	if c.cache == nil {
		return nil, false
	}
	b, ok, err := c.cache.GetBytes(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var m map[string]float64
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, false
	}
	return m, true
}

func (c *CryptoClient) storePrices(ctx context.Context, key string, m map[string]float64) {
	if c.cache == nil || len(m) == 0 {
		return
	}
	b, err := json.Marshal(m)
	if err != nil {
		return
	}
	_ = c.cache.SetBytes(ctx, key, b, c.ttl)
}
