package services

import (
	"context"
	"errors"
	"testing"

	"github.com/LorenzoOliveira534/youpagev1/internal/amqp"
	"github.com/LorenzoOliveira534/youpagev1/internal/core"
	storemem "github.com/LorenzoOliveira534/youpagev1/internal/store/memory"
)

type fakePublisher struct {
	msgs []*amqp.LedgerExportMessage
	err  error
}

func (f *fakePublisher) PublishLedgerExport(_ context.Context, msg *amqp.LedgerExportMessage) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func TestAddTaskPersistsEachMutation(t *testing.T) {
	st := storemem.New()
	svc := NewSnapshotService(st, nil)
	ctx := context.Background()

	if _, err := svc.AddTask(ctx, "primeira"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddTask(ctx, "segunda"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddTask(ctx, "   "); !errors.Is(err, core.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}

	snap, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Tasks) != 2 || snap.Tasks[0].Text != "segunda" {
		t.Fatalf("persisted list wrong: %+v", snap.Tasks)
	}
}

func TestToggleAndRemoveThroughStore(t *testing.T) {
	st := storemem.New()
	svc := NewSnapshotService(st, nil)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, "tarefa")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.ToggleTask(ctx, task.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	snap, _ := st.Load(ctx)
	if !snap.Tasks[0].Completed {
		t.Fatal("toggle not persisted")
	}

	if err := svc.ToggleTask(ctx, "unknown"); err != nil {
		t.Fatalf("toggle unknown id must not fail: %v", err)
	}

	if err := svc.RemoveTask(ctx, task.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.RemoveTask(ctx, task.ID); err != nil {
		t.Fatalf("second remove must be a no-op: %v", err)
	}
	snap, _ = st.Load(ctx)
	if len(snap.Tasks) != 0 {
		t.Fatalf("task not removed: %+v", snap.Tasks)
	}
}

func TestAddTransactionPublishesExport(t *testing.T) {
	st := storemem.New()
	pub := &fakePublisher{}
	svc := NewSnapshotService(st, pub)
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, "Salário", core.Money{Cents: 100000}, core.Income)
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	if len(pub.msgs) != 1 || pub.msgs[0].ID != tx.ID {
		t.Fatalf("export message not published: %+v", pub.msgs)
	}

	snap, _ := st.Load(ctx)
	if len(snap.Transactions) != 1 {
		t.Fatal("transaction not persisted")
	}
}

func TestAddTransactionSurvivesPublishFailure(t *testing.T) {
	st := storemem.New()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewSnapshotService(st, pub)
	ctx := context.Background()

	if _, err := svc.AddTransaction(ctx, "Aluguel", core.Money{Cents: 40000}, core.Expense); err != nil {
		t.Fatalf("publish failure must not fail the operation: %v", err)
	}
	snap, _ := st.Load(ctx)
	if len(snap.Transactions) != 1 {
		t.Fatal("transaction must be saved even when publish fails")
	}
}

func TestSummaryScenario(t *testing.T) {
	st := storemem.New()
	svc := NewSnapshotService(st, nil)
	ctx := context.Background()

	if _, err := svc.AddTransaction(ctx, "Salary", core.Money{Cents: 100000}, core.Income); err != nil {
		t.Fatalf("add income: %v", err)
	}
	if _, err := svc.AddTransaction(ctx, "Rent", core.Money{Cents: 40000}, core.Expense); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	sum, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Income.Cents != 100000 || sum.Expense.Cents != 40000 || sum.Balance.Cents != 60000 {
		t.Fatalf("got income=%d expense=%d balance=%d",
			sum.Income.Cents, sum.Expense.Cents, sum.Balance.Cents)
	}
}
