package export

import (
	"context"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

// LedgerWriter is the outbound port for the backup export: one row per
// ledger entry, append-only like the ledger itself.
type LedgerWriter interface {
	Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
}
