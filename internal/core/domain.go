package core

import (
	"errors"
	"strings"
	"time"
)

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
	KindSaving  EntryKind = "saving"
)

const (
	Conservative RiskTolerance = "Conservative"
	Moderate     RiskTolerance = "Moderate"
	Aggressive   RiskTolerance = "Aggressive"
)

const (
	PaymentExcellent PaymentHistory = "Excellent"
	PaymentGood      PaymentHistory = "Good"
	PaymentFair      PaymentHistory = "Fair"
	PaymentPoor      PaymentHistory = "Poor"
)

type (
	EntryKind      string
	RiskTolerance  string
	PaymentHistory string

	Money struct {
		Cents int64
	}

	// LedgerEntry is one recorded income, expense or saving transaction.
	// Entries are immutable once created and only ever appended.
	LedgerEntry struct {
		Date        time.Time
		Amount      Money
		Description string
		Category    string
		Kind        EntryKind
	}

	// Profile holds the user's demographic and risk information. It is
	// replaced wholesale by every set call, never merged.
	Profile struct {
		Age           int
		MonthlyIncome Money
		Location      string
		FamilySize    int
		RiskTolerance RiskTolerance
	}

	// ConversationTurn is one user/assistant exchange in the chat log.
	ConversationTurn struct {
		UserMessage      string
		AssistantMessage string
		Timestamp        time.Time
	}

	// LedgerTotals aggregates the ledger per entry kind.
	LedgerTotals struct {
		Income   Money
		Expenses Money
		Savings  Money
	}
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrEmptyDescription     = errors.New("empty description")
	ErrInvalidKind          = errors.New("invalid entry kind")
	ErrInvalidRiskTolerance = errors.New("invalid risk tolerance")
)

func (k EntryKind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindSaving:
		return true
	}
	return false
}

// ParseEntryKind accepts both singular and plural spellings since the entry
// forms post "income"/"expenses"/"savings".
func ParseEntryKind(s string) (EntryKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return KindIncome, nil
	case "expense", "expenses":
		return KindExpense, nil
	case "saving", "savings":
		return KindSaving, nil
	}
	return "", ErrInvalidKind
}

func (r RiskTolerance) Valid() bool {
	switch r {
	case Conservative, Moderate, Aggressive:
		return true
	}
	return false
}

func (p PaymentHistory) Valid() bool {
	switch p {
	case PaymentExcellent, PaymentGood, PaymentFair, PaymentPoor:
		return true
	}
	return false
}

func (e LedgerEntry) Validate() error {
	if !e.Kind.Valid() {
		return ErrInvalidKind
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

// Validate restricts risk tolerance to the known enum. Other fields are
// accepted as-is; out-of-range ages or incomes are a documented limitation.
func (p Profile) Validate() error {
	if !p.RiskTolerance.Valid() {
		return ErrInvalidRiskTolerance
	}
	return nil
}
