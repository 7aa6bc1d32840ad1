package types

import (
	"time"
)

// SessionEvent represents any event that occurs in a client session
type SessionEvent interface {
	Type() string
	Timestamp() time.Time
	Address() string
}

// WalletConnected event when a wallet connection completes
type WalletConnected struct {
	address   string
	isOwner   bool
	timestamp time.Time
}

func NewWalletConnected(address string, isOwner bool) *WalletConnected {
	return &WalletConnected{
		address:   address,
		isOwner:   isOwner,
		timestamp: time.Now(),
	}
}

func (e *WalletConnected) Type() string {
	return "WalletConnected"
}

func (e *WalletConnected) Timestamp() time.Time {
	return e.timestamp
}

func (e *WalletConnected) Address() string {
	return e.address
}

func (e *WalletConnected) IsOwner() bool {
	return e.isOwner
}

// WalletDisconnected event when the user explicitly disconnects
type WalletDisconnected struct {
	address   string
	timestamp time.Time
}

func NewWalletDisconnected(address string) *WalletDisconnected {
	return &WalletDisconnected{
		address:   address,
		timestamp: time.Now(),
	}
}

func (e *WalletDisconnected) Type() string {
	return "WalletDisconnected"
}

func (e *WalletDisconnected) Timestamp() time.Time {
	return e.timestamp
}

func (e *WalletDisconnected) Address() string {
	return e.address
}

// ActionSubmitted event when a mutating action passes validation and
// is handed to the ledger
type ActionSubmitted struct {
	address   string
	action    string
	timestamp time.Time
}

func NewActionSubmitted(address, action string) *ActionSubmitted {
	return &ActionSubmitted{
		address:   address,
		action:    action,
		timestamp: time.Now(),
	}
}

func (e *ActionSubmitted) Type() string {
	return "ActionSubmitted"
}

func (e *ActionSubmitted) Timestamp() time.Time {
	return e.timestamp
}

func (e *ActionSubmitted) Address() string {
	return e.address
}

func (e *ActionSubmitted) Action() string {
	return e.action
}

// ActionFinished event when a mutating action cycle returns to idle,
// after reconciliation where that applies
type ActionFinished struct {
	address   string
	action    string
	err       error
	timestamp time.Time
}

func NewActionFinished(address, action string, err error) *ActionFinished {
	return &ActionFinished{
		address:   address,
		action:    action,
		err:       err,
		timestamp: time.Now(),
	}
}

func (e *ActionFinished) Type() string {
	return "ActionFinished"
}

func (e *ActionFinished) Timestamp() time.Time {
	return e.timestamp
}

func (e *ActionFinished) Address() string {
	return e.address
}

func (e *ActionFinished) Action() string {
	return e.action
}

func (e *ActionFinished) Err() error {
	return e.err
}

// ViewRefreshed event when profile and history caches were republished
type ViewRefreshed struct {
	address      string
	historyCount int
	timestamp    time.Time
}

func NewViewRefreshed(address string, historyCount int) *ViewRefreshed {
	return &ViewRefreshed{
		address:      address,
		historyCount: historyCount,
		timestamp:    time.Now(),
	}
}

func (e *ViewRefreshed) Type() string {
	return "ViewRefreshed"
}

func (e *ViewRefreshed) Timestamp() time.Time {
	return e.timestamp
}

func (e *ViewRefreshed) Address() string {
	return e.address
}

func (e *ViewRefreshed) HistoryCount() int {
	return e.historyCount
}
