package ledger

import (
	"context"
	"strings"
	"testing"

	"finbot/internal/core"
	"finbot/internal/ledger/memory"
)

func newTestService() (*Service, *memory.Store) {
	store := memory.New()
	return NewService(store, nil), store
}

func TestAddEntry(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	msg, err := svc.AddEntry(ctx, core.KindSaving, "2500.50", "Emergency fund", "")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if !strings.Contains(msg, "₹2,500.50") || !strings.Contains(msg, "Emergency fund") {
		t.Fatalf("confirmation = %q", msg)
	}

	items, err := store.List(ctx, core.KindSaving)
	if err != nil || len(items) != 1 {
		t.Fatalf("List = %v, %v", items, err)
	}
}

func TestAddEntryRejectsBadInput(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if _, err := svc.AddEntry(ctx, core.KindExpense, "abc", "Rent", ""); err == nil {
		t.Fatalf("expected error for non-numeric amount")
	}
	if _, err := svc.AddEntry(ctx, core.KindExpense, "100", "   ", ""); err == nil {
		t.Fatalf("expected error for blank description")
	}
	items, _ := store.List(ctx, core.KindExpense)
	if len(items) != 0 {
		t.Fatalf("rejected input must not mutate the ledger, got %d entries", len(items))
	}
}

func TestAddEntryDefaultsExpenseCategory(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	if _, err := svc.AddEntry(ctx, core.KindExpense, "100", "Coffee", ""); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	items, _ := store.List(ctx, core.KindExpense)
	if items[0].Category != DefaultExpenseCategory {
		t.Fatalf("category = %q, want %q", items[0].Category, DefaultExpenseCategory)
	}
}

func TestAddBulkPartialSuccess(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	res, err := svc.AddBulk(ctx, "5000, Rent, Housing\noops\n1000, Bad", core.KindExpense)
	if err != nil {
		t.Fatalf("AddBulk: %v", err)
	}
	if res.Added != 2 {
		t.Fatalf("Added = %d, want 2", res.Added)
	}
	if res.TotalCents != 600000 {
		t.Fatalf("TotalCents = %d, want 600000", res.TotalCents)
	}

	items, _ := store.List(ctx, core.KindExpense)
	if len(items) != 2 {
		t.Fatalf("committed %d entries, want 2", len(items))
	}
	if items[0].Description != "Rent" || items[0].Category != "Housing" {
		t.Fatalf("first entry = %+v", items[0])
	}
	// Two fields is legal; the category defaults.
	if items[1].Description != "Bad" || items[1].Category != DefaultExpenseCategory {
		t.Fatalf("second entry = %+v", items[1])
	}

	var failed int
	for _, l := range res.Lines {
		if !l.OK {
			failed++
			if !strings.Contains(l.Message, "oops") {
				t.Fatalf("failure message = %q", l.Message)
			}
		}
	}
	if failed != 1 {
		t.Fatalf("failed lines = %d, want 1", failed)
	}
	if !strings.Contains(res.Summary(), "added 2 expense entries totaling ₹6,000.00") {
		t.Fatalf("summary = %q", res.Summary())
	}
}

func TestAddBulkOnlyInvalidLine(t *testing.T) {
	svc, store := newTestService()
	res, err := svc.AddBulk(context.Background(), "oops", core.KindExpense)
	if err != nil {
		t.Fatalf("AddBulk: %v", err)
	}
	if res.Added != 0 || len(res.Lines) != 1 || res.Lines[0].OK {
		t.Fatalf("result = %+v", res)
	}
	items, _ := store.List(context.Background(), core.KindExpense)
	if len(items) != 0 {
		t.Fatalf("nothing should be committed, got %d", len(items))
	}
}

func TestAddBulkIncomeCategory(t *testing.T) {
	svc, store := newTestService()
	res, err := svc.AddBulk(context.Background(), "50000, Monthly Salary\n\n10000, Freelance", core.KindIncome)
	if err != nil {
		t.Fatalf("AddBulk: %v", err)
	}
	if res.Added != 2 {
		t.Fatalf("Added = %d, want 2 (blank lines skipped)", res.Added)
	}
	items, _ := store.List(context.Background(), core.KindIncome)
	for _, e := range items {
		if e.Category != IncomeCategory {
			t.Fatalf("income category = %q", e.Category)
		}
	}
}

func TestAddBulkEmptyInput(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.AddBulk(context.Background(), "  \n ", core.KindExpense); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestTotals(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.AddBulk(ctx, "50000, Salary", core.KindIncome); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddBulk(ctx, "45000, Rent", core.KindExpense); err != nil {
		t.Fatal(err)
	}
	totals, err := svc.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Income.Cents != 5000000 || totals.Expenses.Cents != 4500000 || totals.Savings.Cents != 0 {
		t.Fatalf("totals = %+v", totals)
	}
}
