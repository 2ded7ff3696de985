package notify

import (
	"encoding/json"
	"time"

	"finbot/internal/core"
)

// EntryAddedMessage announces one committed ledger entry.
type EntryAddedMessage struct {
	Ref         string    `json:"ref"`
	Kind        string    `json:"kind"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	EntryDate   time.Time `json:"entry_date"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewEntryAddedMessage(e core.LedgerEntry, ref string) *EntryAddedMessage {
	return &EntryAddedMessage{
		Ref:         ref,
		Kind:        string(e.Kind),
		AmountCents: e.Amount.Cents,
		Description: e.Description,
		Category:    e.Category,
		EntryDate:   e.Date,
		Timestamp:   time.Now(),
	}
}

func (m *EntryAddedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
