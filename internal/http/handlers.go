package http

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finbot/internal/advice"
	"finbot/internal/core"
)

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
}

func writeSuccess(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">` + template.HTMLEscapeString(msg) + `</div>`))
}

// writeResult renders a multi-line text block preserving line breaks.
func writeResult(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<pre class="result">` + template.HTMLEscapeString(text) + `</pre>`))
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	age, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("age")))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Age must be a whole number.")
		return
	}
	familySize, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("family_size")))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Family size must be a whole number.")
		return
	}
	incomeCents, err := core.ParseAmountToCents(r.Form.Get("income"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Monthly income must be a number.")
		return
	}

	p := core.Profile{
		Age:           age,
		MonthlyIncome: core.Money{Cents: incomeCents},
		Location:      sanitizeInput(r.Form.Get("location")),
		FamilySize:    familySize,
		RiskTolerance: core.RiskTolerance(sanitizeInput(r.Form.Get("risk_tolerance"))),
	}
	if err := s.profiles.Set(p); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Risk tolerance must be Conservative, Moderate or Aggressive.")
		return
	}

	slog.InfoContext(r.Context(), "Profile saved", "age", p.Age, "family_size", p.FamilySize, "risk", p.RiskTolerance)
	writeSuccess(w, fmt.Sprintf("Profile saved! Age: %d, Income: %s, Location: %s, Family: %d, Risk: %s",
		p.Age, p.MonthlyIncome.Format(), p.Location, p.FamilySize, p.RiskTolerance))
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	kind, err := core.ParseEntryKind(r.Form.Get("kind"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Entry kind must be income, expense or saving.")
		return
	}

	msg, err := s.ledger.AddEntry(r.Context(), kind,
		r.Form.Get("amount"),
		sanitizeInput(r.Form.Get("description")),
		sanitizeInput(r.Form.Get("category")))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Could not add entry: "+err.Error())
		return
	}
	writeSuccess(w, msg)
}

func (s *Server) handleBulkEntries(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	kind, err := core.ParseEntryKind(r.Form.Get("kind"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Entry kind must be income, expense or saving.")
		return
	}

	res, err := s.ledger.AddBulk(r.Context(), r.Form.Get("text"), kind)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Please provide entries to add, one per line.")
		return
	}
	writeResult(w, res.Summary())
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	if symbol == "" {
		writeError(w, http.StatusUnprocessableEntity, "Please enter a valid stock symbol.")
		return
	}

	if cached, found := s.quoteCache.Get(symbol); found {
		slog.DebugContext(r.Context(), "Quote cache hit", "symbol", symbol)
		writeResult(w, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	text, ok := s.quotes.Fetch(ctx, symbol)
	// Failure messages are transient; caching them would replay the outage
	// for the full TTL.
	if ok {
		s.quoteCache.Set(symbol, text)
	}
	writeResult(w, text)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	var in core.ScoreInputs
	var parseErr error
	num := func(field string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(r.Form.Get(field)), 64)
		if err != nil {
			parseErr = fmt.Errorf("field %s: %w", field, err)
		}
		return v
	}
	in.Income = num("income")
	in.Expenses = num("expenses")
	in.Savings = num("savings")
	in.DebtPayments = num("debt_payments")
	in.CreditUtilization = num("credit_utilization")
	years, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("credit_history_years")))
	if err != nil {
		parseErr = fmt.Errorf("field credit_history_years: %w", err)
	}
	in.CreditHistoryYears = years
	in.PaymentHistory = core.PaymentHistory(sanitizeInput(r.Form.Get("payment_history")))

	if parseErr != nil {
		slog.WarnContext(r.Context(), "Score input rejected", "error", parseErr)
		writeError(w, http.StatusUnprocessableEntity, "All score inputs must be numbers.")
		return
	}

	res := core.ComputeScore(in)
	slog.InfoContext(r.Context(), "Credit score computed", "score", res.Score, "rating", res.Rating)
	writeResult(w, advice.CreditAnalysis(res))
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	totals, err := s.ledger.Totals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger totals error", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not read the ledger.")
		return
	}
	writeResult(w, advice.BudgetSummary(totals))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	message := sanitizeInput(r.Form.Get("message"))
	if message == "" {
		writeError(w, http.StatusUnprocessableEntity, "Please enter a message.")
		return
	}

	response := s.chat.Route(message)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(renderTurn(message, response)))
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	turns := s.chat.History()
	if len(turns) == 0 {
		_, _ = w.Write([]byte(`<div class="placeholder">No messages yet. Ask me about personal finance!</div>`))
		return
	}
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(renderTurn(t.UserMessage, t.AssistantMessage))
	}
	_, _ = w.Write([]byte(b.String()))
}

func renderTurn(user, assistant string) string {
	return `<div class="chat-turn"><div class="chat-user">` +
		template.HTMLEscapeString(user) +
		`</div><pre class="chat-bot">` +
		template.HTMLEscapeString(assistant) +
		`</pre></div>`
}
