// Package store reads user financial state from Supabase via PostgREST.
package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"
	xhttp "github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/http"
)

const defaultTransactionLimit = 25

// Client is the thin PostgREST client over the financial_overview and
// transactions tables. Absent credentials make every call resolve to its
// documented default instead of failing.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
}

func New(baseURL, apiKey string, hc *xhttp.Client) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, http: hc}
}

// Configured reports whether storage credentials are present.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// DefaultProfile is the deterministic profile used when storage is
// unreachable, unconfigured, or has no row for the user.
func DefaultProfile(userID string) models.FinancialProfile {
	return models.FinancialProfile{
		UserID:           userID,
		Currency:         "USD",
		MonthlyIncome:    5200,
		MonthlyFixedCost: 2800,
		AvgDiscretionary: 1400,
		SavingsRate:      0.19,
		Goals: []models.Goal{
			{Name: "Emergency fund", Target: 12000, Progress: 7800},
			{Name: "Japan trip", Target: 4500, Progress: 1200},
		},
	}
}

// Profile returns the user's financial overview. On any failure the default
// profile is returned alongside the error so callers always have a usable
// value.
func (c *Client) Profile(ctx context.Context, userID string) (models.FinancialProfile, error) {
	if !c.Configured() {
		return DefaultProfile(userID), nil
	}

	var rows []models.FinancialProfile
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  http.MethodGet,
		URL:     c.baseURL + "/rest/v1/financial_overview",
		Headers: c.headers(),
		QueryParams: map[string]string{
			"user_id": "eq." + userID,
			"select":  "*",
			"limit":   "1",
		},
	}, &rows)
	if err != nil {
		return DefaultProfile(userID), fmt.Errorf("fetch profile: %w", err)
	}
	if len(rows) == 0 {
		return DefaultProfile(userID), nil
	}

	p := rows[0]
	p.UserID = userID
	return p, nil
}

// RecentTransactions returns up to limit most-recent rows for the user,
// newest first. Empty on any failure.
func (c *Client) RecentTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	if !c.Configured() {
		return []models.Transaction{}, nil
	}
	if limit <= 0 || limit > defaultTransactionLimit {
		limit = defaultTransactionLimit
	}

	var rows []models.Transaction
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  http.MethodGet,
		URL:     c.baseURL + "/rest/v1/transactions",
		Headers: c.headers(),
		QueryParams: map[string]string{
			"user_id": "eq." + userID,
			"select":  "*",
			"order":   "ts.desc",
			"limit":   fmt.Sprintf("%d", limit),
		},
	}, &rows)
	if err != nil {
		return []models.Transaction{}, fmt.Errorf("fetch transactions: %w", err)
	}
	return rows, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"apikey":        c.apiKey,
		"Authorization": "Bearer " + c.apiKey,
	}
}
