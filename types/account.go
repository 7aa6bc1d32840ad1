package types

import (
	"github.com/holiman/uint256"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/jsonx"
)

// AccountStatus mirrors the ledger's status enum. The numeric values
// are part of the wire contract and must not be reordered.
type AccountStatus int32

const (
	StatusUnregistered AccountStatus = iota
	StatusActive
	StatusSuspended
)

func (s AccountStatus) String() string {
	switch s {
	case StatusUnregistered:
		return "Unregistered"
	case StatusActive:
		return "Active"
	case StatusSuspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

// Account is the ledger-owned profile of one identity. Balance is in
// ledger base units; the cache layer decides what callers may see.
type Account struct {
	Address string        `json:"address"`
	Name    string        `json:"name"`
	Status  AccountStatus `json:"status"`
	Balance *uint256.Int  `json:"balance"`
}

type accountJSON struct {
	Address string        `json:"address"`
	Name    string        `json:"name"`
	Status  AccountStatus `json:"status"`
	Balance string        `json:"balance"`
}

func (a *Account) MarshalJSON() ([]byte, error) {
	balanceStr := "0"
	if a.Balance != nil {
		balanceStr = a.Balance.Dec()
	}

	return jsonx.Marshal(&accountJSON{
		Address: a.Address,
		Name:    a.Name,
		Status:  a.Status,
		Balance: balanceStr,
	})
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var raw accountJSON
	if err := jsonx.Unmarshal(data, &raw); err != nil {
		return err
	}
	balance, err := uint256.FromDecimal(raw.Balance)
	if err != nil {
		return err
	}
	a.Address = raw.Address
	a.Name = raw.Name
	a.Status = raw.Status
	a.Balance = balance
	return nil
}
