package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings goal on a user's financial profile.
type Goal struct {
	Name     string  `json:"name"`
	Target   float64 `json:"target"`
	Progress float64 `json:"progress"`
}

// FinancialProfile is a read-only snapshot of a user's finances, sourced
// from storage or a deterministic default when storage is unreachable.
type FinancialProfile struct {
	UserID           string  `json:"user_id"`
	Currency         string  `json:"currency"`
	MonthlyIncome    float64 `json:"monthly_income"`
	MonthlyFixedCost float64 `json:"monthly_fixed_costs"`
	AvgDiscretionary float64 `json:"avg_discretionary"`
	SavingsRate      float64 `json:"savings_rate"`
	Goals            []Goal  `json:"goals"`
}

// SavingsCapacity is income minus fixed costs minus average discretionary
// spend, computed with exact decimal arithmetic.
func (p FinancialProfile) SavingsCapacity() decimal.Decimal {
	return decimal.NewFromFloat(p.MonthlyIncome).
		Sub(decimal.NewFromFloat(p.MonthlyFixedCost)).
		Sub(decimal.NewFromFloat(p.AvgDiscretionary))
}

// Transaction is one ledger row. Amount is signed, negative = outflow.
type Transaction struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"ts"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

// WebSearchResult is one ranked hit from the search provider.
type WebSearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// StockQuote is a latest-price quote for one equity symbol.
type StockQuote struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// MarketSnapshot aggregates per-request market context. Ephemeral, assembled
// from connector outputs and discarded after the response is produced.
type MarketSnapshot struct {
	FXRates      map[string]float64
	StockQuotes  map[string]StockQuote
	CryptoPrices map[string]float64
}

// AnswerContext is everything the answer generator may draw on.
type AnswerContext struct {
	Question     string
	Conversation []ChatMessage
	Profile      FinancialProfile
	Transactions []Transaction
	Market       MarketSnapshot
	Snippets     []string
	WebResults   []WebSearchResult
}
