package gateway

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
)

// Gateway is the client core's view of the remote anti-fraud ledger.
// Every call may fail with a remote-rejection error carrying the
// ledger's human-readable reason, or with a transport error when the
// call never completed. Mutating calls return only after the ledger
// has durably confirmed them.
type Gateway interface {
	// Connect establishes the signing context and returns the account
	// identity it signs for.
	Connect(ctx context.Context) (string, error)

	Owner(ctx context.Context) (string, error)
	GetAccount(ctx context.Context, address string) (types.Account, error)
	GetTransactionCount(ctx context.Context) (uint64, error)
	GetTransaction(ctx context.Context, id uint64) (types.Transaction, error)

	Register(ctx context.Context, name string) error
	Pay(ctx context.Context, to string, amount *uint256.Int) error
	SetStatus(ctx context.Context, account string, status types.AccountStatus) error
}
