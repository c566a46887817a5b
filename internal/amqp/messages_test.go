package amqp

import (
	"testing"
	"time"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

func TestLedgerExportMessageRoundTrip(t *testing.T) {
	tx := core.Transaction{
		ID:          "x1",
		Description: "Salário",
		Amount:      core.Money{Cents: 100000},
		Type:        core.Income,
		Date:        time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}

	msg := NewLedgerExportMessage(tx)
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	got, err := LedgerExportMessageFromJSON(body)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if back := got.Transaction(); back != tx {
		t.Fatalf("transaction mismatch:\nin  %+v\nout %+v", tx, back)
	}
}

func TestLedgerExportMessageFromJSONInvalid(t *testing.T) {
	if _, err := LedgerExportMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}
