package ledgersim

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/utils"
)

const (
	simOwner = "0x1111111111111111111111111111111111111111"
	simAlice = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	simBob   = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	cfg := DefaultConfig(simOwner)
	cfg.VerifySignatures = false
	l := New(cfg)
	l.Now = func() uint64 { return 1_000_000 }
	return l
}

func amount(t *testing.T, display string) *uint256.Int {
	t.Helper()
	v, err := utils.ParseAmount(display)
	require.NoError(t, err)
	return v
}

func TestRegisterGrantsWelcomeBalance(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Register(simAlice, "Alice"))

	acct := l.GetAccount(simAlice)
	assert.Equal(t, "Alice", acct.Name)
	assert.Equal(t, types.StatusActive, acct.Status)
	assert.Equal(t, "1000", utils.FormatAmount(acct.Balance))
}

func TestRegisterRejectsEmptyNameAndDoubles(t *testing.T) {
	l := newTestLedger(t)
	assert.EqualError(t, l.Register(simAlice, ""), ReasonNameEmpty)

	require.NoError(t, l.Register(simAlice, "Alice"))
	assert.EqualError(t, l.Register(simAlice, "Alice again"), ReasonAlreadyRegistered)
}

func TestUnknownAccountReadsAsZeroProfile(t *testing.T) {
	l := newTestLedger(t)
	acct := l.GetAccount(simAlice)
	assert.Equal(t, types.StatusUnregistered, acct.Status)
	assert.Empty(t, acct.Name)
	assert.True(t, acct.Balance.IsZero())
}

func TestPayTransfersAndRecords(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Register(simAlice, "Alice"))
	require.NoError(t, l.Register(simBob, "Bob"))

	require.NoError(t, l.Pay(simAlice, simBob, amount(t, "5")))

	assert.Equal(t, "995", utils.FormatAmount(l.GetAccount(simAlice).Balance))
	assert.Equal(t, "1005", utils.FormatAmount(l.GetAccount(simBob).Balance))

	require.Equal(t, uint64(1), l.TransactionCount())
	tx, err := l.GetTransaction(1)
	require.NoError(t, err)
	assert.Equal(t, types.TxCompleted, tx.Status)
	assert.Equal(t, simAlice, tx.From)
	assert.Equal(t, simBob, tx.To)
}

// A cap violation is rejected but still leaves a flagged entry in the
// log; nothing moves.
func TestPayOverCapIsFlaggedAndRejected(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Register(simAlice, "Alice"))
	require.NoError(t, l.Register(simBob, "Bob"))

	err := l.Pay(simAlice, simBob, amount(t, "100.000000000000000001"))
	assert.EqualError(t, err, ReasonAmountExceedsCap)

	assert.Equal(t, "1000", utils.FormatAmount(l.GetAccount(simAlice).Balance))
	require.Equal(t, uint64(1), l.TransactionCount())
	tx, err := l.GetTransaction(1)
	require.NoError(t, err)
	assert.Equal(t, types.TxFlagged, tx.Status)
}

func TestPayTooSoonIsFlaggedAndRejected(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Register(simAlice, "Alice"))
	require.NoError(t, l.Register(simBob, "Bob"))

	now := uint64(1_000_000)
	l.Now = func() uint64 { return now }
	require.NoError(t, l.Pay(simAlice, simBob, amount(t, "1")))

	now += 30
	err := l.Pay(simAlice, simBob, amount(t, "1"))
	assert.EqualError(t, err, ReasonTooSoon)

	tx, err := l.GetTransaction(2)
	require.NoError(t, err)
	assert.Equal(t, types.TxFlagged, tx.Status)

	now += 60
	require.NoError(t, l.Pay(simAlice, simBob, amount(t, "1")))
	tx, err = l.GetTransaction(3)
	require.NoError(t, err)
	assert.Equal(t, types.TxCompleted, tx.Status)
}

// Structural failures reject outright with no audit entry.
func TestPayStructuralFailuresLeaveNoEntry(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Register(simAlice, "Alice"))

	assert.EqualError(t, l.Pay(simAlice, simBob, amount(t, "1")), ReasonRecipientInactive)
	assert.EqualError(t, l.Pay(simBob, simAlice, amount(t, "1")), ReasonSenderInactive)

	require.NoError(t, l.Register(simBob, "Bob"))
	assert.EqualError(t, l.Pay(simAlice, simBob, uint256.NewInt(0)), ReasonZeroAmount)
	assert.EqualError(t, l.Pay(simAlice, simBob, amount(t, "2000")), ReasonInsufficientFunds)

	assert.Equal(t, uint64(0), l.TransactionCount())
}

func TestSetStatusOwnerOnly(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Register(simAlice, "Alice"))

	err := l.SetStatus(simAlice, simAlice, types.StatusSuspended)
	assert.EqualError(t, err, ReasonNotOwner)

	require.NoError(t, l.SetStatus(simOwner, simAlice, types.StatusSuspended))
	assert.Equal(t, types.StatusSuspended, l.GetAccount(simAlice).Status)

	assert.EqualError(t, l.Pay(simAlice, simAlice, amount(t, "1")), ReasonSenderInactive)

	require.NoError(t, l.SetStatus(simOwner, simAlice, types.StatusActive))
	assert.Equal(t, types.StatusActive, l.GetAccount(simAlice).Status)
}

// Owner authority hangs off the owner address, not the owner's own
// status: a suspended owner can still administer accounts.
func TestSuspendedOwnerKeepsAdminAuthority(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Register(simOwner, "Owner"))
	require.NoError(t, l.Register(simAlice, "Alice"))

	require.NoError(t, l.SetStatus(simOwner, simOwner, types.StatusSuspended))
	require.NoError(t, l.SetStatus(simOwner, simAlice, types.StatusSuspended))
	assert.Equal(t, types.StatusSuspended, l.GetAccount(simAlice).Status)
}

func TestSetStatusValidation(t *testing.T) {
	l := newTestLedger(t)
	assert.EqualError(t, l.SetStatus(simOwner, simAlice, types.StatusSuspended), ReasonUnknownAccount)

	require.NoError(t, l.Register(simAlice, "Alice"))
	assert.EqualError(t, l.SetStatus(simOwner, simAlice, types.StatusUnregistered), ReasonInvalidStatus)
}

func TestSetStatusCaseInsensitiveCaller(t *testing.T) {
	cfg := DefaultConfig("0x1111111111111111111111111111111111111111")
	cfg.VerifySignatures = false
	l := New(cfg)
	require.NoError(t, l.Register(simAlice, "Alice"))

	err := l.SetStatus("0X1111111111111111111111111111111111111111", simAlice, types.StatusSuspended)
	require.NoError(t, err)
}

func TestGetTransactionUnknownID(t *testing.T) {
	l := newTestLedger(t)
	_, err := l.GetTransaction(0)
	assert.EqualError(t, err, ReasonUnknownTx)
	_, err = l.GetTransaction(1)
	assert.EqualError(t, err, ReasonUnknownTx)
}
