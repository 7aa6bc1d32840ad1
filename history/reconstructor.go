// Package history rebuilds the per-account view of the ledger's
// global transaction log. Every refresh is a full rescan: the ledger
// is the durable source of truth, and staleness is resolved by
// re-deriving the whole view rather than patching it.
package history

import (
	"context"
	"sync"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/gateway"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
)

type Reconstructor struct {
	mu      sync.RWMutex
	account string
	view    []types.HistoryEntry
}

func New(account string) *Reconstructor {
	return &Reconstructor{account: account}
}

func (r *Reconstructor) Account() string {
	return r.account
}

// Refresh walks the log from the newest id down to 1, keeping the
// transactions the account participates in. Iteration order is the
// presentation order (most recent first), so no sort step exists. A
// fetch failure mid-scan aborts the whole reconstruction: the
// previously published view stays visible and the error is reported.
func (r *Reconstructor) Refresh(ctx context.Context, gw gateway.Gateway) error {
	count, err := gw.GetTransactionCount(ctx)
	if err != nil {
		return err
	}

	rebuilt := make([]types.HistoryEntry, 0)
	for id := count; id >= 1; id-- {
		tx, err := gw.GetTransaction(ctx, id)
		if err != nil {
			return err
		}
		if !types.SameAddress(tx.From, r.account) && !types.SameAddress(tx.To, r.account) {
			continue
		}
		rebuilt = append(rebuilt, types.Project(&tx, r.account))
	}

	r.mu.Lock()
	r.view = rebuilt
	r.mu.Unlock()
	return nil
}

// View returns the last successfully reconstructed history, most
// recent first.
func (r *Reconstructor) View() []types.HistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.HistoryEntry, len(r.view))
	copy(out, r.view)
	return out
}
