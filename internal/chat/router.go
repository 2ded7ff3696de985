// Package chat routes free-text messages to canned guidance or advice
// generators through an ordered keyword rule list. The first matching rule
// wins; there is no scoring or multi-intent handling.
package chat

import (
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"finbot/internal/core"
)

const (
	creditGuidance = "I can help you estimate your credit score! Use the Credit Score tab to input your financial information and get a comprehensive analysis."
	budgetGuidance = "Budgeting is key! Add your income and expenses in the Financial Data tab, then generate a budget summary in the Analysis tab."
	stockGuidance  = "I can help with stock analysis! Use the Stock Analysis tab to get live data. Just enter a stock symbol like 'RELIANCE.BSE' or 'AAPL'."
)

var fallbackResponses = []string{
	"I'm here to help with your financial questions! I can assist with budgeting, stock analysis, credit scores, and more.",
	"I'm your finance assistant! Feel free to ask about personal finance, or use the tabs to analyze your budget, stocks, or credit score.",
}

// AdviceFunc produces advice text on demand, typically backed by the
// profile store and ledger.
type AdviceFunc func() string

type rule struct {
	keywords []string
	respond  func(lower string) string
}

// Router classifies messages and records every exchange in an in-memory
// history log. The rand source is injected so fallback selection is
// deterministic under test.
type Router struct {
	rules []rule
	rnd   *rand.Rand
	now   func() time.Time

	mu      sync.Mutex
	history []core.ConversationTurn
}

// NewRouter builds the rule list in priority order: investment terms first,
// then credit, budget and savings terms.
func NewRouter(investment, savings AdviceFunc, rnd *rand.Rand) *Router {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r := &Router{rnd: rnd, now: time.Now}
	r.rules = []rule{
		{
			keywords: []string{"invest", "stock", "share", "market", "portfolio", "mutual fund"},
			respond: func(lower string) string {
				if strings.Contains(lower, "stock") && strings.Contains(lower, "analysis") {
					return stockGuidance
				}
				return investment()
			},
		},
		{
			keywords: []string{"credit", "score", "rating"},
			respond:  func(string) string { return creditGuidance },
		},
		{
			keywords: []string{"budget", "spending", "money"},
			respond:  func(string) string { return budgetGuidance },
		},
		{
			keywords: []string{"save", "savings", "emergency fund"},
			respond:  func(string) string { return savings() },
		},
	}
	return r
}

// Route classifies the message, produces the response and appends the
// exchange to the history log regardless of the branch taken.
func (r *Router) Route(message string) string {
	lower := strings.ToLower(message)

	response := ""
	for _, rule := range r.rules {
		if containsAny(lower, rule.keywords) {
			response = rule.respond(lower)
			break
		}
	}

	// The rand source is not goroutine-safe; it shares the history mutex.
	r.mu.Lock()
	if response == "" {
		response = fallbackResponses[r.rnd.Intn(len(fallbackResponses))]
	}
	r.history = append(r.history, core.ConversationTurn{
		UserMessage:      message,
		AssistantMessage: response,
		Timestamp:        r.now(),
	})
	n := len(r.history)
	r.mu.Unlock()

	slog.Debug("Chat message routed", "history_len", n)
	return response
}

// History returns a copy of the conversation log in insertion order.
func (r *Router) History() []core.ConversationTurn {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.ConversationTurn, len(r.history))
	copy(out, r.history)
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
