// Package profile holds the read-through copy of the connected
// account's ledger profile. The ledger owns the data; the cache is
// replaced wholesale on every successful refresh and never merged
// field by field.
package profile

import (
	"context"
	"sync"

	"github.com/holiman/uint256"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/gateway"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
)

type Cache struct {
	mu      sync.RWMutex
	account string
	current types.Account
}

// NewCache starts with the zero profile for the connected identity.
func NewCache(account string) *Cache {
	return &Cache{
		account: account,
		current: zeroProfile(account),
	}
}

func (c *Cache) Account() string {
	return c.account
}

// Refresh fetches the profile from the ledger. On success the cached
// value is replaced atomically; on failure it is left untouched and
// the error is reported upward.
func (c *Cache) Refresh(ctx context.Context, gw gateway.Gateway) error {
	fetched, err := gw.GetAccount(ctx, c.account)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.current = fetched
	c.mu.Unlock()
	return nil
}

// Profile returns the cached profile as the rest of the system may see
// it. A profile that is not Active is unusable for payments: its name
// and balance read as blank and zero no matter what the ledger said,
// so a suspended or unregistered account is never displayed as a
// funded, named one.
func (c *Cache) Profile() types.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current.Status != types.StatusActive {
		return types.Account{
			Address: c.account,
			Status:  c.current.Status,
			Balance: uint256.NewInt(0),
		}
	}
	out := c.current
	out.Balance = new(uint256.Int).Set(c.current.Balance)
	return out
}

// Status reports the last fetched registration status.
func (c *Cache) Status() types.AccountStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.Status
}

func zeroProfile(account string) types.Account {
	return types.Account{
		Address: account,
		Status:  types.StatusUnregistered,
		Balance: uint256.NewInt(0),
	}
}
