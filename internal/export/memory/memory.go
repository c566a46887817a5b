// Package memory is the in-process LedgerWriter used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

type Writer struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New() *Writer {
	return &Writer{}
}

// Append stores the entry and returns a synthetic row reference.
func (w *Writer) Append(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append(w.items, tx)
	return fmt.Sprintf("mem:%d", len(w.items)), nil
}

// Items returns a copy of everything appended so far.
func (w *Writer) Items() []core.Transaction {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]core.Transaction(nil), w.items...)
}
