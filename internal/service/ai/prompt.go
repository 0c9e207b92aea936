package ai

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"

	"github.com/shopspring/decimal"
)

// systemPrompt establishes the assistant persona and its guardrails.
const systemPrompt = "You are Aurora, a personal finance assistant embedded in a finance dashboard. " +
	"You explain, compare, and surface relevant numbers from the user's own data and current market context. " +
	"You are not a directive-giving advisor: never tell the user they must buy, sell, or hold anything, " +
	"and remind them that significant decisions deserve professional advice. " +
	"Be concise, concrete, and use the figures provided in the context when they help."

// promptWebResultLimit caps how many search results feed the prompt.
const promptWebResultLimit = 4

// buildContextBlock renders the gathered context into one message for the
// model: FX snapshot, profile summary, transactions, quotes, knowledge
// hints, and up to four web results.
func buildContextBlock(in *models.AnswerContext) string {
	var b strings.Builder
	b.WriteString("Context for answering the user's question:\n")

	if len(in.Market.FXRates) > 0 {
		b.WriteString("\nFX rates (base " + in.Profile.Currency + "): ")
		for i, sym := range sortedKeys(in.Market.FXRates) {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%.4f", sym, in.Market.FXRates[sym])
		}
		b.WriteString("\n")
	}

	p := in.Profile
	fmt.Fprintf(&b, "\nUser profile: monthly income %s %s, fixed costs %s, avg discretionary %s, savings rate %.0f%%, estimated monthly savings capacity %s.\n",
		money(p.MonthlyIncome), p.Currency, money(p.MonthlyFixedCost), money(p.AvgDiscretionary),
		p.SavingsRate*100, p.SavingsCapacity().StringFixed(2))
	for _, g := range p.Goals {
		fmt.Fprintf(&b, "Goal %q: %s of %s reached.\n", g.Name, money(g.Progress), money(g.Target))
	}

	if n := len(in.Transactions); n > 0 {
		cats := categorySpend(in.Transactions)
		fmt.Fprintf(&b, "\nRecent transactions: %d rows. Outflow by category: %s.\n", n, cats)
	}

	if len(in.Market.StockQuotes) > 0 {
		b.WriteString("\nStock quotes: ")
		for i, sym := range sortedQuoteKeys(in.Market.StockQuotes) {
			if i > 0 {
				b.WriteString(", ")
			}
			q := in.Market.StockQuotes[sym]
			fmt.Fprintf(&b, "%s %.2f %s", sym, q.Price, q.Currency)
		}
		b.WriteString("\n")
	}

	if len(in.Market.CryptoPrices) > 0 {
		b.WriteString("\nCrypto prices (USD): ")
		for i, sym := range sortedKeys(in.Market.CryptoPrices) {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s %.2f", sym, in.Market.CryptoPrices[sym])
		}
		b.WriteString("\n")
	}

	if len(in.Snippets) > 0 {
		b.WriteString("\nKnowledge hints:\n")
		for _, s := range in.Snippets {
			b.WriteString("- " + s + "\n")
		}
	}

	if len(in.WebResults) > 0 {
		b.WriteString("\nWeb results:\n")
		for i, r := range in.WebResults {
			if i == promptWebResultLimit {
				break
			}
			fmt.Fprintf(&b, "- %s", r.Title)
			if r.Snippet != "" {
				fmt.Fprintf(&b, ": %s", r.Snippet)
			}
			fmt.Fprintf(&b, " (%s)\n", r.URL)
		}
	}

	return b.String()
}

// categorySpend sums outflows per category with exact decimal arithmetic.
func categorySpend(txs []models.Transaction) string {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Amount.IsNegative() {
			sums[t.Category] = sums[t.Category].Add(t.Amount.Neg())
		}
	}
	if len(sums) == 0 {
		return "none"
	}
	cats := make([]string, 0, len(sums))
	for c := range sums {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		parts = append(parts, c+" "+sums[c].StringFixed(2))
	}
	return strings.Join(parts, ", ")
}

func money(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(2)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedQuoteKeys(m map[string]models.StockQuote) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
