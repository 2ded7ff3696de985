package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"finbot/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func entry(kind core.EntryKind, cents int64, desc, category string) core.LedgerEntry {
	return core.LedgerEntry{
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Amount:      core.Money{Cents: cents},
		Description: desc,
		Category:    category,
		Kind:        kind,
	}
}

func TestAppendAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ref1, err := repo.Append(ctx, entry(core.KindExpense, 120000, "Rent", "Housing"))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	ref2, err := repo.Append(ctx, entry(core.KindExpense, 4500, "Coffee", "Food"))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if ref1 == ref2 {
		t.Errorf("expected distinct refs, got %q twice", ref1)
	}

	entries, err := repo.List(ctx, core.KindExpense)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Description != "Rent" || entries[1].Description != "Coffee" {
		t.Errorf("entries out of insertion order: %q, %q",
			entries[0].Description, entries[1].Description)
	}
	if entries[0].Amount.Cents != 120000 {
		t.Errorf("expected 120000 cents, got %d", entries[0].Amount.Cents)
	}
	if entries[0].Category != "Housing" {
		t.Errorf("expected category Housing, got %q", entries[0].Category)
	}
}

func TestListFiltersByKind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Append(ctx, entry(core.KindIncome, 5000000, "Salary", "Income")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := repo.Append(ctx, entry(core.KindExpense, 120000, "Rent", "Housing")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	income, err := repo.List(ctx, core.KindIncome)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(income) != 1 || income[0].Description != "Salary" {
		t.Errorf("unexpected income entries: %+v", income)
	}

	savings, err := repo.List(ctx, core.KindSaving)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(savings) != 0 {
		t.Errorf("expected no saving entries, got %d", len(savings))
	}
}

func TestTotals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, e := range []core.LedgerEntry{
		entry(core.KindIncome, 5000000, "Salary", "Income"),
		entry(core.KindExpense, 120000, "Rent", "Housing"),
		entry(core.KindExpense, 30000, "Groceries", "Food"),
		entry(core.KindSaving, 1000000, "SIP", "Other"),
	} {
		if _, err := repo.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	totals, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Income.Cents != 5000000 {
		t.Errorf("income: expected 5000000, got %d", totals.Income.Cents)
	}
	if totals.Expenses.Cents != 150000 {
		t.Errorf("expenses: expected 150000, got %d", totals.Expenses.Cents)
	}
	if totals.Savings.Cents != 1000000 {
		t.Errorf("savings: expected 1000000, got %d", totals.Savings.Cents)
	}
}

func TestTotalsEmptyLedger(t *testing.T) {
	repo := newTestRepo(t)

	totals, err := repo.Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Income.Cents != 0 || totals.Expenses.Cents != 0 || totals.Savings.Cents != 0 {
		t.Errorf("expected zero totals, got %+v", totals)
	}
}

func TestAppendRejectsInvalidEntry(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Append(ctx, entry(core.KindExpense, 100, "   ", "Other"))
	if !errors.Is(err, core.ErrEmptyDescription) {
		t.Errorf("expected ErrEmptyDescription, got %v", err)
	}

	_, err = repo.Append(ctx, entry("loan", 100, "EMI", "Other"))
	if !errors.Is(err, core.ErrInvalidKind) {
		t.Errorf("expected ErrInvalidKind, got %v", err)
	}

	entries, err := repo.List(ctx, core.KindExpense)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("rejected entries must not be stored, got %d", len(entries))
	}
}
