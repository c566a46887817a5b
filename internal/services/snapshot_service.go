package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LorenzoOliveira534/youpagev1/internal/amqp"
	"github.com/LorenzoOliveira534/youpagev1/internal/core"
	"github.com/LorenzoOliveira534/youpagev1/internal/store"
)

// LedgerPublisher is the slice of the AMQP client the service needs.
// A nil publisher disables export.
type LedgerPublisher interface {
	PublishLedgerExport(ctx context.Context, msg *amqp.LedgerExportMessage) error
}

// SnapshotService orchestrates every aggregate mutation: load the whole
// snapshot, apply the change, write the whole snapshot back. The store port
// is the only thing it talks to, so any backend slots in.
type SnapshotService struct {
	store     store.SnapshotStore
	publisher LedgerPublisher
}

func NewSnapshotService(st store.SnapshotStore, publisher LedgerPublisher) *SnapshotService {
	return &SnapshotService{store: st, publisher: publisher}
}

// Snapshot returns the current aggregate.
func (s *SnapshotService) Snapshot(ctx context.Context) (core.Snapshot, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// Summary recomputes the finance totals from the current ledger.
func (s *SnapshotService) Summary(ctx context.Context) (core.Summary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(snap.Transactions), nil
}

// AddTask prepends a task and persists the full aggregate.
func (s *SnapshotService) AddTask(ctx context.Context, text string) (core.Task, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return core.Task{}, fmt.Errorf("load snapshot: %w", err)
	}
	task, err := snap.AddTask(text)
	if err != nil {
		return core.Task{}, err
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return core.Task{}, fmt.Errorf("save snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Task added", "id", task.ID, "text", task.Text)
	return task, nil
}

// ToggleTask flips a task's completed flag. Unknown ids are a silent no-op,
// but the aggregate is written back either way, matching the original
// mutate-then-persist flow.
func (s *SnapshotService) ToggleTask(ctx context.Context, id string) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	changed := snap.ToggleTask(id)
	if err := s.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if !changed {
		slog.WarnContext(ctx, "Toggle on unknown task id", "id", id)
	}
	return nil
}

// RemoveTask removes a task by id; removing an unknown id is a no-op.
func (s *SnapshotService) RemoveTask(ctx context.Context, id string) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	changed := snap.RemoveTask(id)
	if err := s.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if !changed {
		slog.WarnContext(ctx, "Remove on unknown task id", "id", id)
	}
	return nil
}

// AddTransaction appends a ledger entry, persists the aggregate and then
// publishes a best-effort export message. Publish failures never fail the
// operation; the entry is already saved locally.
func (s *SnapshotService) AddTransaction(ctx context.Context, description string, amount core.Money, txType core.TxType) (core.Transaction, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load snapshot: %w", err)
	}
	tx, err := snap.AddTransaction(description, amount, txType)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return core.Transaction{}, fmt.Errorf("save snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents)

	if s.publisher != nil {
		if err := s.publisher.PublishLedgerExport(ctx, amqp.NewLedgerExportMessage(tx)); err != nil {
			slog.ErrorContext(ctx, "Failed to publish export message",
				"id", tx.ID, "error", err)
		}
	}

	return tx, nil
}
