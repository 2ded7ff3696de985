// Package memory is the default ledger backend: an append-only in-process
// store with no persistence across restarts.
package memory

import (
	"context"
	"fmt"
	"sync"

	"finbot/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.LedgerEntry
}

func New() *Store {
	return &Store{}
}

// Append stores the entry and returns a synthetic row reference. Entries
// keep insertion order and are never edited or removed.
func (s *Store) Append(_ context.Context, e core.LedgerEntry) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

func (s *Store) List(_ context.Context, kind core.EntryKind) ([]core.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.LedgerEntry
	for _, e := range s.items {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) Totals(_ context.Context) (core.LedgerTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var t core.LedgerTotals
	for _, e := range s.items {
		switch e.Kind {
		case core.KindIncome:
			t.Income.Cents += e.Amount.Cents
		case core.KindExpense:
			t.Expenses.Cents += e.Amount.Cents
		case core.KindSaving:
			t.Savings.Cents += e.Amount.Cents
		}
	}
	return t, nil
}
