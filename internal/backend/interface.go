package backend

import (
	"context"

	"github.com/LorenzoOliveira534/youpagev1/internal/services"
	"github.com/LorenzoOliveira534/youpagev1/internal/store"
)

// Backend bundles the two store ports a single implementation provides.
type Backend interface {
	store.SnapshotStore
	store.SessionStore
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// BackendResult carries everything the factory wired up: the store, the
// optional export publisher, and the cleanup hook.
type BackendResult struct {
	Backend   Backend
	Publisher services.LedgerPublisher
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Export pipeline (optional for any backend)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
