// Package storage implements the sqlite ledger backend. With the default
// :memory: path it behaves like the memory backend but keeps SQL
// aggregation; with a file path entries survive restarts.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"finbot/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// An in-memory database exists per connection; the pool must not open
	// a second one.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ledger.Appender.
func (r *SQLiteRepository) Append(ctx context.Context, e core.LedgerEntry) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (kind, amount_cents, description, category, entry_date)
		 VALUES (?, ?, ?, ?, ?)`,
		string(e.Kind), e.Amount.Cents, e.Description, e.Category, e.Date)
	if err != nil {
		return "", fmt.Errorf("insert ledger entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Ledger entry saved to SQLite",
		"id", id,
		"kind", e.Kind,
		"amount_cents", e.Amount.Cents,
		"description", e.Description)

	return strconv.FormatInt(id, 10), nil
}

// List implements ledger.Lister; rows come back in insertion order.
func (r *SQLiteRepository) List(ctx context.Context, kind core.EntryKind) ([]core.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, amount_cents, description, category, entry_date
		 FROM ledger_entries WHERE kind = ? ORDER BY id`,
		string(kind))
	if err != nil {
		return nil, fmt.Errorf("query ledger entries: %w", err)
	}
	defer rows.Close()

	var out []core.LedgerEntry
	for rows.Next() {
		var e core.LedgerEntry
		var k string
		if err := rows.Scan(&k, &e.Amount.Cents, &e.Description, &e.Category, &e.Date); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Kind = core.EntryKind(k)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return out, nil
}

// Totals implements ledger.TotalsReader.
func (r *SQLiteRepository) Totals(ctx context.Context) (core.LedgerTotals, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, COALESCE(SUM(amount_cents), 0) FROM ledger_entries GROUP BY kind`)
	if err != nil {
		return core.LedgerTotals{}, fmt.Errorf("query ledger totals: %w", err)
	}
	defer rows.Close()

	var t core.LedgerTotals
	for rows.Next() {
		var kind string
		var cents int64
		if err := rows.Scan(&kind, &cents); err != nil {
			return core.LedgerTotals{}, fmt.Errorf("scan ledger totals: %w", err)
		}
		switch core.EntryKind(kind) {
		case core.KindIncome:
			t.Income.Cents = cents
		case core.KindExpense:
			t.Expenses.Cents = cents
		case core.KindSaving:
			t.Savings.Cents = cents
		}
	}
	if err := rows.Err(); err != nil {
		return core.LedgerTotals{}, fmt.Errorf("iterate ledger totals: %w", err)
	}
	return t, nil
}
