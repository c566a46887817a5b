// Package sqlite is the durable store backend. The aggregate is kept as one
// JSON payload in a single row, mirroring the single-entry layout the data
// originally lived in; sessions get their own table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
	"github.com/LorenzoOliveira534/youpagev1/internal/store"
)

// snapshotKey is the fixed identifier the aggregate is stored under.
const snapshotKey = "user-data"

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load implements store.SnapshotStore. An absent row yields the default
// snapshot; a corrupt payload surfaces as an error.
func (s *Store) Load(ctx context.Context) (core.Snapshot, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE key = ?`, snapshotKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DefaultSnapshot(), nil
	}
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	snap, err := store.DecodeSnapshot(payload)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Save implements store.SnapshotStore, overwriting the whole aggregate.
func (s *Store) Save(ctx context.Context, snap core.Snapshot) error {
	payload, err := store.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		snapshotKey, payload)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot saved",
		"tasks", len(snap.Tasks),
		"transactions", len(snap.Transactions))
	return nil
}

// Clear implements store.SnapshotStore.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE key = ?`, snapshotKey); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

// Start implements store.SessionStore.
func (s *Store) Start(ctx context.Context) (string, error) {
	token := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token) VALUES (?)`, token); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// Active implements store.SessionStore.
func (s *Store) Active(ctx context.Context, token string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM sessions WHERE token = ?`, token).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return true, nil
}

// End implements store.SessionStore. Only the flag goes away; the aggregate
// stays so the next login finds the same data.
func (s *Store) End(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}
