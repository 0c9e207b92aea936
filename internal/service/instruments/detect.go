// Package instruments detects stock tickers and crypto assets mentioned in
// free-form question text by fixed-vocabulary matching.
package instruments

import (
	"regexp"
	"strings"
)

// stockAliases maps lowercase words to tickers. Tickers themselves match
// case-sensitively (uppercase) to avoid flagging ordinary words.
var stockAliases = map[string]string{
	"apple":     "AAPL",
	"tesla":     "TSLA",
	"microsoft": "MSFT",
	"alphabet":  "GOOGL",
	"google":    "GOOGL",
	"amazon":    "AMZN",
	"nvidia":    "NVDA",
}

var stockTickers = []string{"AAPL", "TSLA", "MSFT", "GOOGL", "AMZN", "NVDA"}

// CryptoIDs maps supported crypto symbols to the price provider's asset ids.
var CryptoIDs = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
	"SOL": "solana",
}

var cryptoAliases = map[string]string{
	"bitcoin":  "BTC",
	"btc":      "BTC",
	"ethereum": "ETH",
	"ether":    "ETH",
	"eth":      "ETH",
	"solana":   "SOL",
	"sol":      "SOL",
}

var wordRe = regexp.MustCompile(`[A-Za-z]+`)

// Detect scans question text and returns matched stock tickers and crypto
// symbols, each de-duplicated and in first-mention order.
func Detect(question string) (stocks, crypto []string) {
	seenStock := make(map[string]bool)
	seenCrypto := make(map[string]bool)

	for _, w := range wordRe.FindAllString(question, -1) {
		for _, t := range stockTickers {
			if w == t && !seenStock[t] {
				seenStock[t] = true
				stocks = append(stocks, t)
			}
		}
		lw := strings.ToLower(w)
		if t, ok := stockAliases[lw]; ok && !seenStock[t] {
			seenStock[t] = true
			stocks = append(stocks, t)
		}
		if s, ok := cryptoAliases[lw]; ok && !seenCrypto[s] {
			seenCrypto[s] = true
			crypto = append(crypto, s)
		}
	}
	return stocks, crypto
}
