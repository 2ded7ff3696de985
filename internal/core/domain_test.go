package core

import (
	"strings"
	"testing"
	"time"
)

func TestLedgerEntryValidate(t *testing.T) {
	good := LedgerEntry{
		Date:        time.Now(),
		Amount:      Money{Cents: 100},
		Description: "ok",
		Category:    "Other",
		Kind:        KindExpense,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []LedgerEntry{
		{Description: "a", Kind: "bogus"},
		{Description: "", Kind: KindIncome},
		{Description: "   ", Kind: KindIncome},
		{Description: strings.Repeat("x", 201), Kind: KindSaving},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseEntryKind(t *testing.T) {
	cases := []struct {
		in   string
		want EntryKind
		ok   bool
	}{
		{"income", KindIncome, true},
		{"expenses", KindExpense, true},
		{"expense", KindExpense, true},
		{"savings", KindSaving, true},
		{" Saving ", KindSaving, true},
		{"debt", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseEntryKind(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseEntryKind(%q) = %v, %v", tc.in, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseEntryKind(%q) expected error", tc.in)
		}
	}
}

func TestProfileValidate(t *testing.T) {
	p := Profile{Age: 30, MonthlyIncome: Money{Cents: 5000000}, RiskTolerance: Moderate}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	p.RiskTolerance = "Reckless"
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for unknown risk tolerance")
	}
	// Only the enum is enforced; out-of-range numbers pass through.
	p = Profile{Age: -1, MonthlyIncome: Money{Cents: -100}, RiskTolerance: Aggressive}
	if err := p.Validate(); err != nil {
		t.Fatalf("negative values should be accepted as-is, got %v", err)
	}
}
