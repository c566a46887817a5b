package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

// Wire shape of the serialized aggregate. Kept separate from the domain types
// so field renames in core never silently change the stored format.
type (
	snapshotDoc struct {
		Name         string           `json:"name"`
		Tasks        []taskDoc        `json:"tasks"`
		Transactions []transactionDoc `json:"transactions"`
	}

	taskDoc struct {
		ID        string    `json:"id"`
		Text      string    `json:"text"`
		Completed bool      `json:"completed"`
		Category  string    `json:"category"`
		CreatedAt time.Time `json:"created_at"`
	}

	transactionDoc struct {
		ID          string    `json:"id"`
		Description string    `json:"description"`
		AmountCents int64     `json:"amount_cents"`
		Type        string    `json:"type"`
		Date        time.Time `json:"date"`
	}
)

// EncodeSnapshot serializes the full aggregate.
func EncodeSnapshot(snap core.Snapshot) ([]byte, error) {
	doc := snapshotDoc{
		Name:         snap.Name,
		Tasks:        make([]taskDoc, 0, len(snap.Tasks)),
		Transactions: make([]transactionDoc, 0, len(snap.Transactions)),
	}
	for _, t := range snap.Tasks {
		doc.Tasks = append(doc.Tasks, taskDoc{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Category:  string(t.Category),
			CreatedAt: t.CreatedAt,
		})
	}
	for _, tx := range snap.Transactions {
		doc.Transactions = append(doc.Transactions, transactionDoc{
			ID:          tx.ID,
			Description: tx.Description,
			AmountCents: tx.Amount.Cents,
			Type:        string(tx.Type),
			Date:        tx.Date,
		})
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return payload, nil
}

// DecodeSnapshot parses a serialized aggregate. Corrupt payloads surface as a
// wrapped error instead of a panic.
func DecodeSnapshot(payload []byte) (core.Snapshot, error) {
	var doc snapshotDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return core.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	snap := core.Snapshot{Name: doc.Name}
	for _, t := range doc.Tasks {
		snap.Tasks = append(snap.Tasks, core.Task{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Category:  core.TaskCategory(t.Category),
			CreatedAt: t.CreatedAt,
		})
	}
	for _, tx := range doc.Transactions {
		snap.Transactions = append(snap.Transactions, core.Transaction{
			ID:          tx.ID,
			Description: tx.Description,
			Amount:      core.Money{Cents: tx.AmountCents},
			Type:        core.TxType(tx.Type),
			Date:        tx.Date,
		})
	}
	return snap, nil
}
