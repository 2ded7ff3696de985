package http

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"finbot/internal/advice"
	"finbot/internal/chat"
	"finbot/internal/core"
	"finbot/internal/ledger"
	"finbot/internal/ledger/memory"
	"finbot/internal/profile"
)

type fakeQuotes struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (f *fakeQuotes) Fetch(ctx context.Context, symbol string) (string, bool) {
	f.calls.Add(1)
	if f.fail.Load() {
		return "The request timed out. Please try again later.", false
	}
	return fmt.Sprintf("Stock Analysis: %s\n\nCurrent Price: 123.45", symbol), true
}

func newTestServer(t *testing.T) (*Server, *fakeQuotes, *profile.Store, *ledger.Service) {
	t.Helper()
	store := memory.New()
	svc := ledger.NewService(store, nil)
	profiles := profile.NewStore()

	investment := func() string {
		return advice.Investment(profiles.Get())
	}
	savings := func() string {
		totals, _ := svc.Totals(context.Background())
		return advice.Savings(profiles.Get(), totals)
	}
	router := chat.NewRouter(investment, savings, rand.New(rand.NewSource(1)))

	quotes := &fakeQuotes{}
	srv := NewServer(":0", svc, profiles, router, quotes)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv, quotes, profiles, svc
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := get(srv, "/")
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Finance Assistant") {
		t.Fatalf("index body missing heading")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		if rr := get(srv, path); rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestSaveProfile(t *testing.T) {
	srv, _, profiles, _ := newTestServer(t)

	// Wrong method
	if rr := get(srv, "/profile"); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Non-numeric age
	rr := postForm(srv, "/profile", url.Values{
		"age": {"abc"}, "income": {"50000"}, "location": {"India"},
		"family_size": {"2"}, "risk_tolerance": {"Moderate"},
	})
	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Unknown risk tolerance
	rr = postForm(srv, "/profile", url.Values{
		"age": {"30"}, "income": {"50000"}, "location": {"India"},
		"family_size": {"2"}, "risk_tolerance": {"YOLO"},
	})
	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Valid profile
	rr = postForm(srv, "/profile", url.Values{
		"age": {"30"}, "income": {"50000"}, "location": {"Mumbai"},
		"family_size": {"4"}, "risk_tolerance": {"Aggressive"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Profile saved!") {
		t.Fatalf("missing confirmation: %s", rr.Body.String())
	}
	p := profiles.Get()
	if p == nil || p.Age != 30 || p.Location != "Mumbai" || p.RiskTolerance != core.Aggressive {
		t.Fatalf("stored profile mismatch: %+v", p)
	}
	if p.MonthlyIncome.Cents != 5000000 {
		t.Fatalf("income cents: %d", p.MonthlyIncome.Cents)
	}
}

func TestCreateEntry(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	// Unknown kind
	rr := postForm(srv, "/entries", url.Values{
		"kind": {"loan"}, "amount": {"100"}, "description": {"EMI"},
	})
	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Bad amount
	rr = postForm(srv, "/entries", url.Values{
		"kind": {"savings"}, "amount": {"abc"}, "description": {"Emergency fund"},
	})
	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Valid saving
	rr = postForm(srv, "/entries", url.Values{
		"kind": {"savings"}, "amount": {"10000"}, "description": {"Emergency fund"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Added saving: ₹10,000.00 - Emergency fund") {
		t.Fatalf("unexpected confirmation: %s", rr.Body.String())
	}
}

func TestBulkEntries(t *testing.T) {
	srv, _, _, svc := newTestServer(t)

	// Empty text
	rr := postForm(srv, "/entries/bulk", url.Values{"kind": {"expenses"}, "text": {"  "}})
	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	rr = postForm(srv, "/entries/bulk", url.Values{
		"kind": {"expenses"},
		"text": {"15000, Rent, Housing\nnot a line\n5000, Groceries"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Summary: added 2 expense entries totaling ₹20,000.00") {
		t.Fatalf("missing summary: %s", body)
	}
	if !strings.Contains(body, "Invalid format in line: not a line") {
		t.Fatalf("missing per-line failure: %s", body)
	}

	totals, err := svc.Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Expenses.Cents != 2000000 {
		t.Fatalf("expense total: %d", totals.Expenses.Cents)
	}
}

func TestQuoteCaching(t *testing.T) {
	srv, quotes, _, _ := newTestServer(t)

	// Blank symbol never reaches the fetcher
	if rr := get(srv, "/quote?symbol=++"); rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if n := quotes.calls.Load(); n != 0 {
		t.Fatalf("fetcher called %d times for blank symbol", n)
	}

	rr := get(srv, "/quote?symbol=ibm")
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Stock Analysis: IBM") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}

	// Second lookup for the same symbol is served from cache
	get(srv, "/quote?symbol=IBM")
	if n := quotes.calls.Load(); n != 1 {
		t.Fatalf("expected 1 upstream call, got %d", n)
	}

	get(srv, "/quote?symbol=AAPL")
	if n := quotes.calls.Load(); n != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", n)
	}
}

func TestQuoteFailureNotCached(t *testing.T) {
	srv, quotes, _, _ := newTestServer(t)

	quotes.fail.Store(true)
	rr := get(srv, "/quote?symbol=IBM")
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "timed out") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}

	// A second lookup retries upstream instead of replaying the failure
	get(srv, "/quote?symbol=IBM")
	if n := quotes.calls.Load(); n != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", n)
	}

	// Once the upstream recovers, the quote is served and cached again
	quotes.fail.Store(false)
	rr = get(srv, "/quote?symbol=IBM")
	if !strings.Contains(rr.Body.String(), "Stock Analysis: IBM") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
	get(srv, "/quote?symbol=IBM")
	if n := quotes.calls.Load(); n != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", n)
	}
}

func TestScore(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	// Non-numeric input
	rr := postForm(srv, "/score", url.Values{
		"income": {"abc"}, "expenses": {"25000"}, "savings": {"10000"},
		"debt_payments": {"5000"}, "credit_history_years": {"5"},
		"payment_history": {"Good"}, "credit_utilization": {"0.3"},
	})
	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	rr = postForm(srv, "/score", url.Values{
		"income": {"50000"}, "expenses": {"25000"}, "savings": {"10000"},
		"debt_payments": {"5000"}, "credit_history_years": {"5"},
		"payment_history": {"Good"}, "credit_utilization": {"0.3"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Your Simulated Score:") {
		t.Fatalf("missing score line: %s", body)
	}
	if !strings.Contains(body, "Rating:") {
		t.Fatalf("missing rating line: %s", body)
	}
}

func TestBudget(t *testing.T) {
	srv, _, _, svc := newTestServer(t)

	if _, err := svc.AddEntry(context.Background(), core.KindIncome, "50000", "Salary", "Income"); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if _, err := svc.AddEntry(context.Background(), core.KindExpense, "20000", "Rent", "Housing"); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	rr := get(srv, "/budget")
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Total Income:   ₹50,000.00") {
		t.Fatalf("missing income line: %s", body)
	}
	if !strings.Contains(body, "positive cash flow") {
		t.Fatalf("missing cash flow recommendation: %s", body)
	}
}

func TestChatAndHistory(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	// Empty message
	rr := postForm(srv, "/chat", url.Values{"message": {"   "}})
	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	rr = postForm(srv, "/chat", url.Values{"message": {"How do I improve my credit score?"}})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Credit Score tab") {
		t.Fatalf("expected credit guidance: %s", rr.Body.String())
	}

	rr = get(srv, "/chat/history")
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "How do I improve my credit score?") {
		t.Fatalf("history missing user message: %s", body)
	}
	if !strings.Contains(body, "Credit Score tab") {
		t.Fatalf("history missing response: %s", body)
	}
}
