// Package ledgersim is an in-memory stand-in for the remote anti-fraud
// ledger: the same rule engine (maximum transaction amount, minimum
// inter-transaction interval, per-account status gating) behind the
// same JSON-RPC surface the gateway consumes. It backs the test suite
// and the `afd simnode` development server.
package ledgersim

import (
	"errors"
	"sync"
	"time"

	"github.com/holiman/uint256"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/utils"
)

// Rejection reasons reported to callers. Flagged rules also leave an
// audit entry in the transaction log before rejecting.
const (
	ReasonNameEmpty         = "name must not be empty"
	ReasonAlreadyRegistered = "user already registered"
	ReasonSenderInactive    = "sender is not an active user"
	ReasonRecipientInactive = "recipient is not an active user"
	ReasonZeroAmount        = "amount must be greater than zero"
	ReasonInsufficientFunds = "insufficient balance"
	ReasonAmountExceedsCap  = "amount exceeds limit"
	ReasonTooSoon           = "transaction too soon after previous"
	ReasonNotOwner          = "caller is not the owner"
	ReasonUnknownAccount    = "account is not a registered user"
	ReasonInvalidStatus     = "invalid status"
	ReasonUnknownTx         = "transaction does not exist"
	ReasonBadSigner         = "signer does not match caller"
	ReasonBadSignature      = "invalid signature"
)

type Config struct {
	Owner            string
	MaxTxAmount      *uint256.Int // fraud rule: cap per transaction, base units
	MinIntervalSec   uint64       // fraud rule: seconds between a sender's transactions
	WelcomeBalance   *uint256.Int // credited once at registration
	VerifySignatures bool
}

// DefaultConfig mirrors the deployed contract's constructor arguments:
// a 100-unit cap and a 60 second minimum interval.
func DefaultConfig(owner string) Config {
	maxAmount, _ := utils.ParseAmount("100")
	welcome, _ := utils.ParseAmount("1000")
	return Config{
		Owner:            owner,
		MaxTxAmount:      maxAmount,
		MinIntervalSec:   60,
		WelcomeBalance:   welcome,
		VerifySignatures: true,
	}
}

type account struct {
	name     string
	status   types.AccountStatus
	balance  *uint256.Int
	lastTxAt uint64
}

// Ledger is the append-only log plus account registry. All mutating
// entry points apply the fraud rules before recording anything.
type Ledger struct {
	mu       sync.Mutex
	cfg      Config
	accounts map[string]*account
	txs      []types.Transaction

	// Now is the acceptance clock, replaceable in tests.
	Now func() uint64
}

func New(cfg Config) *Ledger {
	return &Ledger{
		cfg:      cfg,
		accounts: make(map[string]*account),
		Now:      func() uint64 { return uint64(time.Now().Unix()) },
	}
}

func (l *Ledger) Owner() string {
	return l.cfg.Owner
}

// GetAccount returns the profile for any identity; unknown identities
// read as the zero profile (Unregistered, empty name, zero balance).
func (l *Ledger) GetAccount(address string) types.Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[types.NormalizeAddress(address)]
	if !ok {
		return types.Account{
			Address: address,
			Status:  types.StatusUnregistered,
			Balance: uint256.NewInt(0),
		}
	}
	return types.Account{
		Address: address,
		Name:    acct.name,
		Status:  acct.status,
		Balance: new(uint256.Int).Set(acct.balance),
	}
}

func (l *Ledger) TransactionCount() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return uint64(len(l.txs))
}

// GetTransaction fetches one log entry by its 1-based id.
func (l *Ledger) GetTransaction(id uint64) (types.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id == 0 || id > uint64(len(l.txs)) {
		return types.Transaction{}, errors.New(ReasonUnknownTx)
	}
	return l.txs[id-1], nil
}

func (l *Ledger) Register(caller, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" {
		return errors.New(ReasonNameEmpty)
	}
	key := types.NormalizeAddress(caller)
	if acct, ok := l.accounts[key]; ok && acct.status != types.StatusUnregistered {
		return errors.New(ReasonAlreadyRegistered)
	}
	l.accounts[key] = &account{
		name:    name,
		status:  types.StatusActive,
		balance: new(uint256.Int).Set(l.cfg.WelcomeBalance),
	}
	return nil
}

// Pay applies the fraud rules. Rule violations (cap, interval) record
// a Flagged audit entry and still reject the call; structural failures
// (inactive parties, insufficient funds) reject outright with no
// entry. The caller cannot tell the two shapes apart from the error.
func (l *Ledger) Pay(caller, to string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	sender, ok := l.accounts[types.NormalizeAddress(caller)]
	if !ok || sender.status != types.StatusActive {
		return errors.New(ReasonSenderInactive)
	}
	recipient, ok := l.accounts[types.NormalizeAddress(to)]
	if !ok || recipient.status != types.StatusActive {
		return errors.New(ReasonRecipientInactive)
	}
	if amount == nil || amount.IsZero() {
		return errors.New(ReasonZeroAmount)
	}
	if sender.balance.Lt(amount) {
		return errors.New(ReasonInsufficientFunds)
	}

	now := l.Now()
	if l.cfg.MaxTxAmount != nil && amount.Gt(l.cfg.MaxTxAmount) {
		l.record(caller, to, amount, now, types.TxFlagged)
		return errors.New(ReasonAmountExceedsCap)
	}
	if sender.lastTxAt != 0 && now-sender.lastTxAt < l.cfg.MinIntervalSec {
		l.record(caller, to, amount, now, types.TxFlagged)
		return errors.New(ReasonTooSoon)
	}

	sender.balance.Sub(sender.balance, amount)
	recipient.balance.Add(recipient.balance, amount)
	sender.lastTxAt = now
	l.record(caller, to, amount, now, types.TxCompleted)
	return nil
}

func (l *Ledger) SetStatus(caller, address string, status types.AccountStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !types.SameAddress(caller, l.cfg.Owner) {
		return errors.New(ReasonNotOwner)
	}
	if status != types.StatusActive && status != types.StatusSuspended {
		return errors.New(ReasonInvalidStatus)
	}
	acct, ok := l.accounts[types.NormalizeAddress(address)]
	if !ok || acct.status == types.StatusUnregistered {
		return errors.New(ReasonUnknownAccount)
	}
	acct.status = status
	return nil
}

func (l *Ledger) record(from, to string, amount *uint256.Int, at uint64, status types.TxStatus) {
	l.txs = append(l.txs, types.Transaction{
		ID:        uint64(len(l.txs)) + 1,
		From:      from,
		To:        to,
		Amount:    new(uint256.Int).Set(amount),
		Timestamp: at,
		Status:    status,
	})
}
