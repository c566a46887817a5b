package amqp

import (
	"encoding/json"
	"time"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

// LedgerExportMessage carries one ledger entry to the export worker. The
// snapshot store has no per-entry lookup, so the message is self-contained.
type LedgerExportMessage struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewLedgerExportMessage builds a message from a freshly appended transaction.
func NewLedgerExportMessage(tx core.Transaction) *LedgerExportMessage {
	return &LedgerExportMessage{
		ID:          tx.ID,
		Description: tx.Description,
		AmountCents: tx.Amount.Cents,
		Type:        string(tx.Type),
		Date:        tx.Date,
		Timestamp:   time.Now(),
	}
}

// Transaction converts the message back to the domain type.
func (m *LedgerExportMessage) Transaction() core.Transaction {
	return core.Transaction{
		ID:          m.ID,
		Description: m.Description,
		Amount:      core.Money{Cents: m.AmountCents},
		Type:        core.TxType(m.Type),
		Date:        m.Date,
	}
}

func (m *LedgerExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerExportMessageFromJSON(data []byte) (*LedgerExportMessage, error) {
	var msg LedgerExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
