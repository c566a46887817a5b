// Package store defines the persistence ports. Every component depends on
// these interfaces, never on a concrete backend, so tests run against the
// in-memory implementation and production against SQLite.
package store

import (
	"context"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

type (
	// SnapshotStore persists the whole aggregate as a single unit. Load never
	// fails for an absent entry; it returns the default snapshot instead.
	SnapshotStore interface {
		Load(ctx context.Context) (core.Snapshot, error)
		Save(ctx context.Context, snap core.Snapshot) error
		// Clear removes the stored entry entirely. Maintenance hook; the main
		// flow never calls it.
		Clear(ctx context.Context) error
	}

	// SessionStore holds the session flag, kept apart from the snapshot so
	// that ending a session leaves the user data intact. A token exists in
	// the store exactly while its session is active.
	SessionStore interface {
		Start(ctx context.Context) (token string, err error)
		Active(ctx context.Context, token string) (bool, error)
		End(ctx context.Context, token string) error
	}
)
