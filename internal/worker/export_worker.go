// Package worker turns consumed export messages into backup rows.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LorenzoOliveira534/youpagev1/internal/amqp"
	"github.com/LorenzoOliveira534/youpagev1/internal/export"
)

type ExportWorker struct {
	writer export.LedgerWriter
}

func NewExportWorker(writer export.LedgerWriter) *ExportWorker {
	return &ExportWorker{writer: writer}
}

// HandleExportMessage appends one ledger entry to the backup. An error here
// makes the consumer requeue the message.
func (w *ExportWorker) HandleExportMessage(ctx context.Context, msg *amqp.LedgerExportMessage) error {
	ref, err := w.writer.Append(ctx, msg.Transaction())
	if err != nil {
		return fmt.Errorf("append ledger entry %s: %w", msg.ID, err)
	}

	slog.InfoContext(ctx, "Ledger entry exported",
		"id", msg.ID,
		"type", msg.Type,
		"ref", ref)
	return nil
}
