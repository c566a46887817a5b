package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
	storemem "github.com/LorenzoOliveira534/youpagev1/internal/store/memory"
)

func newTestService(st *storemem.Store) *Service {
	return NewService(st, st, "1234", 10*time.Minute)
}

func TestRegisterVerifyEstablishesSession(t *testing.T) {
	st := storemem.New()
	svc := newTestService(st)
	ctx := context.Background()

	flowToken, err := svc.Register(ctx, "Lorenzo", "lorenzo@example.com", "segredo")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	session, err := svc.Verify(ctx, flowToken, "1234")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok, _ := svc.Active(ctx, session); !ok {
		t.Fatal("session must be active after verification")
	}

	snap, _ := st.Load(ctx)
	if snap.Name != "Lorenzo" {
		t.Fatalf("display name not merged: %q", snap.Name)
	}
}

func TestVerifyWrongCodeAllowsRetry(t *testing.T) {
	st := storemem.New()
	svc := newTestService(st)
	ctx := context.Background()

	flowToken, _ := svc.Register(ctx, "Lorenzo", "lorenzo@example.com", "segredo")

	if _, err := svc.Verify(ctx, flowToken, "1235"); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
	// Same token still pending; the retry succeeds.
	if _, err := svc.Verify(ctx, flowToken, "1234"); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestVerifyUnknownToken(t *testing.T) {
	svc := newTestService(storemem.New())
	if _, err := svc.Verify(context.Background(), "nope", "1234"); !errors.Is(err, ErrUnknownFlow) {
		t.Fatalf("expected ErrUnknownFlow, got %v", err)
	}
}

func TestVerifyExpiredFlow(t *testing.T) {
	st := storemem.New()
	svc := NewService(st, st, "1234", -time.Minute) // already expired
	ctx := context.Background()

	flowToken, err := svc.Register(ctx, "Lorenzo", "l@e.com", "x")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Verify(ctx, flowToken, "1234"); !errors.Is(err, ErrUnknownFlow) {
		t.Fatalf("expected ErrUnknownFlow for expired flow, got %v", err)
	}
}

func TestLoginUsesPlaceholderName(t *testing.T) {
	st := storemem.New()
	svc := newTestService(st)
	ctx := context.Background()

	session, err := svc.Login(ctx, "qualquer@exemplo.com", "senha")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if ok, _ := svc.Active(ctx, session); !ok {
		t.Fatal("session must be active after login")
	}
	snap, _ := st.Load(ctx)
	if snap.Name != core.PlaceholderName {
		t.Fatalf("expected placeholder name, got %q", snap.Name)
	}
}

func TestEstablishPreservesExistingData(t *testing.T) {
	st := storemem.New()
	svc := newTestService(st)
	ctx := context.Background()

	var snap core.Snapshot
	snap.Name = "Antiga"
	snap.AddTask("tarefa antiga")
	snap.AddTransaction("Salário", core.Money{Cents: 100000}, core.Income)
	if err := st.Save(ctx, snap); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.Establish(ctx, "Lorenzo"); err != nil {
		t.Fatalf("establish: %v", err)
	}

	got, _ := st.Load(ctx)
	if got.Name != "Lorenzo" {
		t.Fatalf("name not merged: %q", got.Name)
	}
	if len(got.Tasks) != 1 || len(got.Transactions) != 1 {
		t.Fatal("existing tasks/transactions must be preserved")
	}
}

func TestLogoutThenLoginRestoresData(t *testing.T) {
	st := storemem.New()
	svc := newTestService(st)
	ctx := context.Background()

	session, err := svc.Login(ctx, "a@b.c", "x")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	snapSvc := st // snapshot mutations go straight through the store here
	snap, _ := snapSvc.Load(ctx)
	snap.AddTask("persistente")
	snap.AddTransaction("Aluguel", core.Money{Cents: 40000}, core.Expense)
	if err := snapSvc.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := svc.Logout(ctx, session); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if ok, _ := svc.Active(ctx, session); ok {
		t.Fatal("session must be gone after logout")
	}

	if _, err := svc.Login(ctx, "a@b.c", "x"); err != nil {
		t.Fatalf("second login: %v", err)
	}
	got, _ := st.Load(ctx)
	if len(got.Tasks) != 1 || len(got.Transactions) != 1 {
		t.Fatal("logout followed by login must restore the same lists")
	}
}
