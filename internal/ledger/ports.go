package ledger

import (
	"context"

	"finbot/internal/core"
)

// Ports for ledger backends.
type (
	Appender interface {
		Append(ctx context.Context, e core.LedgerEntry) (ref string, err error)
	}

	// Lister returns entries of one kind in insertion order.
	Lister interface {
		List(ctx context.Context, kind core.EntryKind) ([]core.LedgerEntry, error)
	}

	// TotalsReader aggregates amounts per entry kind.
	TotalsReader interface {
		Totals(ctx context.Context) (core.LedgerTotals, error)
	}

	Store interface {
		Appender
		Lister
		TotalsReader
	}

	// Notifier announces committed entries to an external channel. A nil
	// notifier is legal and means notifications are disabled.
	Notifier interface {
		EntryAdded(ctx context.Context, e core.LedgerEntry, ref string) error
	}
)
