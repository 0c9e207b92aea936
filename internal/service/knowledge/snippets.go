// Package knowledge provides static, keyword-triggered educational finance
// statements. No external calls, no state.
package knowledge

import "strings"

// Disclaimer is appended to every snippet set.
const Disclaimer = "Aurora is not a tax, legal, or investment advisor. For decisions involving significant amounts, consider consulting a licensed professional."

type bucket struct {
	keywords []string
	snippet  string
}

var buckets = []bucket{
	{
		keywords: []string{"budget", "spend", "spending", "expense", "expenses"},
		snippet:  "A common starting point is the 50/30/20 rule: about 50% of income to needs, 30% to wants, and 20% to savings or debt repayment. Tracking categories for a month or two shows where the ratios actually land.",
	},
	{
		keywords: []string{"invest", "investing", "stock", "stocks", "etf", "fund", "portfolio"},
		snippet:  "Broad, low-cost index funds historically outperform most actively picked portfolios over long horizons. Time in the market and low fees tend to matter more than timing the market.",
	},
	{
		keywords: []string{"crypto", "bitcoin", "ethereum", "btc", "eth"},
		snippet:  "Cryptocurrencies are highly volatile. A common guideline is to keep speculative assets to a small, loss-tolerable share of a portfolio and never to hold emergency savings in them.",
	},
}

// Snippets returns the educational statements matched by question, always
// ending with the fixed disclaimer.
func Snippets(question string) []string {
	q := strings.ToLower(question)
	var out []string
	for _, b := range buckets {
		for _, kw := range b.keywords {
			if strings.Contains(q, kw) {
				out = append(out, b.snippet)
				break
			}
		}
	}
	return append(out, Disclaimer)
}
