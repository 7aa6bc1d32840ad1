package types

import (
	"github.com/holiman/uint256"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/jsonx"
)

// TxStatus mirrors the ledger's transaction status enum. Flagged
// entries were rejected by the fraud rules but recorded for audit.
type TxStatus int32

const (
	TxCompleted TxStatus = iota
	TxFlagged
)

func (s TxStatus) String() string {
	switch s {
	case TxCompleted:
		return "Completed"
	case TxFlagged:
		return "Flagged"
	default:
		return "Unknown"
	}
}

// Transaction is one immutable entry of the ledger's global log.
// ID is 1-based and assigned by the ledger in submission order.
type Transaction struct {
	ID        uint64       `json:"id"`
	From      string       `json:"from"`
	To        string       `json:"to"`
	Amount    *uint256.Int `json:"amount"`
	Timestamp uint64       `json:"timestamp"`
	Status    TxStatus     `json:"status"`
}

type txJSON struct {
	ID        uint64   `json:"id"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	Amount    string   `json:"amount"`
	Timestamp uint64   `json:"timestamp"`
	Status    TxStatus `json:"status"`
}

func (tx *Transaction) MarshalJSON() ([]byte, error) {
	amountStr := "0"
	if tx.Amount != nil {
		amountStr = tx.Amount.Dec()
	}

	return jsonx.Marshal(&txJSON{
		ID:        tx.ID,
		From:      tx.From,
		To:        tx.To,
		Amount:    amountStr,
		Timestamp: tx.Timestamp,
		Status:    tx.Status,
	})
}

func (tx *Transaction) UnmarshalJSON(data []byte) error {
	var raw txJSON
	if err := jsonx.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := uint256.FromDecimal(raw.Amount)
	if err != nil {
		return err
	}
	tx.ID = raw.ID
	tx.From = raw.From
	tx.To = raw.To
	tx.Amount = amount
	tx.Timestamp = raw.Timestamp
	tx.Status = raw.Status
	return nil
}

// Role is the viewing account's side of a transaction.
type Role string

const (
	RoleSent     Role = "sent"
	RoleReceived Role = "received"
)

// HistoryEntry is a ledger transaction projected onto one viewing
// account: role and counterparty are client-derived, never stored.
type HistoryEntry struct {
	ID           uint64       `json:"id"`
	From         string       `json:"from"`
	To           string       `json:"to"`
	Amount       *uint256.Int `json:"amount"`
	Timestamp    uint64       `json:"timestamp"`
	Status       TxStatus     `json:"status"`
	Role         Role         `json:"role"`
	Counterparty string       `json:"counterparty"`
}

type historyEntryJSON struct {
	ID           uint64   `json:"id"`
	From         string   `json:"from"`
	To           string   `json:"to"`
	Amount       string   `json:"amount"`
	Timestamp    uint64   `json:"timestamp"`
	Status       TxStatus `json:"status"`
	Role         Role     `json:"role"`
	Counterparty string   `json:"counterparty"`
}

func (e *HistoryEntry) MarshalJSON() ([]byte, error) {
	amountStr := "0"
	if e.Amount != nil {
		amountStr = e.Amount.Dec()
	}

	return jsonx.Marshal(&historyEntryJSON{
		ID:           e.ID,
		From:         e.From,
		To:           e.To,
		Amount:       amountStr,
		Timestamp:    e.Timestamp,
		Status:       e.Status,
		Role:         e.Role,
		Counterparty: e.Counterparty,
	})
}

func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	var raw historyEntryJSON
	if err := jsonx.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := uint256.FromDecimal(raw.Amount)
	if err != nil {
		return err
	}
	e.ID = raw.ID
	e.From = raw.From
	e.To = raw.To
	e.Amount = amount
	e.Timestamp = raw.Timestamp
	e.Status = raw.Status
	e.Role = raw.Role
	e.Counterparty = raw.Counterparty
	return nil
}

// Project derives the viewing account's history entry for tx.
// The caller must have checked that account participates in tx.
func Project(tx *Transaction, account string) HistoryEntry {
	role := RoleReceived
	counterparty := tx.From
	if SameAddress(tx.From, account) {
		role = RoleSent
		counterparty = tx.To
	}
	return HistoryEntry{
		ID:           tx.ID,
		From:         tx.From,
		To:           tx.To,
		Amount:       tx.Amount,
		Timestamp:    tx.Timestamp,
		Status:       tx.Status,
		Role:         role,
		Counterparty: counterparty,
	}
}
