package ai

import (
	"strings"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"
)

// Confidence levels carried on answers depending on how they were produced.
const (
	ModelConfidence     = 0.92
	HeuristicConfidence = 0.78
	FallbackConfidence  = 0.70
)

const (
	budgetAdvice = "A practical way to get a grip on your budget is to split income into needs, wants, and savings, then review each category against the last two months of spending. Start by capping the one or two categories that grew the most; small recurring costs are usually the easiest wins."

	savingsAdvice = "To raise how much you can save, treat savings like a fixed bill: move a set amount to a separate account right after payday, before discretionary spending. Comparing your income against fixed costs and average discretionary spend shows the realistic monthly amount; automate that and revisit it quarterly."

	investingAdvice = "For long-horizon investing, most people are well served by regular contributions into broadly diversified, low-cost funds rather than picking individual stocks. Decide on an allocation you can hold through downturns, automate the contributions, and rebalance about once a year."

	runwayAdvice = "Your financial runway is your liquid savings divided by your average monthly burn (fixed costs plus typical discretionary spend). Extending it comes from either side: trimming recurring costs has the most immediate effect, while income changes take longer but compound."

	cryptoAdvice = "If you are considering crypto, size the position so that losing it entirely would not change your plans: a small single-digit percentage of your portfolio is a common ceiling. Keep emergency savings and near-term money out of volatile assets entirely."

	genericAdvice = "I can help with budgeting, saving, investing, runway planning, and market questions. Tell me a bit more about what you want to achieve (for example a savings target, a spending category you are worried about, or an instrument you are watching) and I will take it from there."
)

// HeuristicAnswer maps a question to one of a fixed set of guidance
// paragraphs by case-insensitive keyword match. Pure and deterministic; this
// is the universal fallback when no language model is available.
func HeuristicAnswer(question string) models.Answer {
	q := strings.ToLower(question)

	text := genericAdvice
	switch {
	case containsAny(q, "budget", "spend"):
		text = budgetAdvice
	case containsAny(q, "save", "saving"):
		text = savingsAdvice
	case containsAny(q, "invest", "stock", "etf"):
		text = investingAdvice
	case containsAny(q, "runway", "forecast"):
		text = runwayAdvice
	case containsAny(q, "crypto", "bitcoin", "ethereum"):
		text = cryptoAdvice
	}

	return models.Answer{
		Text:       text,
		Confidence: HeuristicConfidence,
		Sources:    []models.WebSearchResult{},
		UsedSearch: false,
	}
}

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
