// Package ledger implements the append-only financial ledger: single entry
// validation, bulk text parsing with partial success, and aggregation.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finbot/internal/core"
)

// DefaultExpenseCategory is applied when a bulk expense line omits the
// third field.
const DefaultExpenseCategory = "Other"

// IncomeCategory is the fixed category recorded for bulk income lines.
const IncomeCategory = "Income"

// Service wraps a ledger backend with input validation, user-facing
// confirmations and optional append notifications.
type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier, now: time.Now}
}

// AddEntry validates and appends one entry. The returned string is the
// user-facing confirmation; validation and storage problems come back as
// the error.
func (s *Service) AddEntry(ctx context.Context, kind core.EntryKind, amountText, description, category string) (string, error) {
	cents, err := core.ParseAmountToCents(amountText)
	if err != nil {
		return "", fmt.Errorf("amount %q: %w", amountText, err)
	}
	if category == "" && kind == core.KindExpense {
		category = DefaultExpenseCategory
	}
	e := core.LedgerEntry{
		Date:        s.now(),
		Amount:      core.Money{Cents: cents},
		Description: strings.TrimSpace(description),
		Category:    category,
		Kind:        kind,
	}
	if err := e.Validate(); err != nil {
		return "", err
	}
	ref, err := s.store.Append(ctx, e)
	if err != nil {
		return "", fmt.Errorf("append entry: %w", err)
	}
	s.notify(ctx, e, ref)
	slog.InfoContext(ctx, "Ledger entry added",
		"kind", e.Kind, "amount_cents", e.Amount.Cents, "description", e.Description, "ref", ref)
	return fmt.Sprintf("Added %s: %s - %s", kind, e.Amount.Format(), e.Description), nil
}

// BulkLine is the outcome of one line in a bulk submission.
type BulkLine struct {
	Line    string
	Message string
	OK      bool
}

// BulkResult reports a bulk submission: every valid line is committed, every
// invalid line is reported, and the totals cover the committed lines only.
type BulkResult struct {
	Lines      []BulkLine
	Added      int
	TotalCents int64
	Kind       core.EntryKind
}

// Summary renders the per-line results followed by the aggregate line.
func (r BulkResult) Summary() string {
	var b strings.Builder
	for _, l := range r.Lines {
		b.WriteString(l.Message)
		b.WriteByte('\n')
	}
	total := core.Money{Cents: r.TotalCents}
	fmt.Fprintf(&b, "Summary: added %d %s entries totaling %s", r.Added, r.Kind, total.Format())
	return b.String()
}

// AddBulk parses a text block, one entry per line, comma separated:
// amount, description[, category]. Lines that fail to parse are reported
// individually without blocking the valid ones. Blank lines are skipped.
func (s *Service) AddBulk(ctx context.Context, text string, kind core.EntryKind) (BulkResult, error) {
	res := BulkResult{Kind: kind}
	if strings.TrimSpace(text) == "" {
		return res, fmt.Errorf("input text cannot be empty")
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 {
			res.Lines = append(res.Lines, BulkLine{Line: line, Message: "Invalid format in line: " + line})
			continue
		}
		cents, err := core.ParseAmountToCents(parts[0])
		if err != nil {
			res.Lines = append(res.Lines, BulkLine{Line: line, Message: "Invalid amount in line: " + line})
			continue
		}

		category := ""
		switch kind {
		case core.KindExpense:
			category = DefaultExpenseCategory
			if len(parts) > 2 && parts[2] != "" {
				category = parts[2]
			}
		case core.KindIncome:
			category = IncomeCategory
		default:
			if len(parts) > 2 {
				category = parts[2]
			}
		}

		e := core.LedgerEntry{
			Date:        s.now(),
			Amount:      core.Money{Cents: cents},
			Description: parts[1],
			Category:    category,
			Kind:        kind,
		}
		if err := e.Validate(); err != nil {
			res.Lines = append(res.Lines, BulkLine{Line: line, Message: "Invalid entry in line: " + line})
			continue
		}
		ref, err := s.store.Append(ctx, e)
		if err != nil {
			slog.ErrorContext(ctx, "Bulk append failed", "error", err, "line", line)
			res.Lines = append(res.Lines, BulkLine{Line: line, Message: "Could not save line: " + line})
			continue
		}
		s.notify(ctx, e, ref)

		msg := fmt.Sprintf("%s - %s", e.Amount.Format(), e.Description)
		if kind == core.KindExpense {
			msg += " (" + category + ")"
		}
		res.Lines = append(res.Lines, BulkLine{Line: line, Message: msg, OK: true})
		res.Added++
		res.TotalCents += cents
	}
	return res, nil
}

// Totals exposes the backend aggregation.
func (s *Service) Totals(ctx context.Context) (core.LedgerTotals, error) {
	return s.store.Totals(ctx)
}

func (s *Service) notify(ctx context.Context, e core.LedgerEntry, ref string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.EntryAdded(ctx, e, ref); err != nil {
		// Notifications are best-effort; the entry is already committed.
		slog.WarnContext(ctx, "Ledger notification failed", "error", err, "ref", ref)
	}
}
