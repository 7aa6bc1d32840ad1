package types

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/jsonx"
)

const (
	addrA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	addrB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestProjectSent(t *testing.T) {
	tx := Transaction{ID: 7, From: addrA, To: addrB, Amount: uint256.NewInt(5), Status: TxCompleted}

	e := Project(&tx, addrA)
	assert.Equal(t, RoleSent, e.Role)
	assert.Equal(t, addrB, e.Counterparty)
	assert.Equal(t, uint64(7), e.ID)
}

func TestProjectReceivedCaseInsensitive(t *testing.T) {
	tx := Transaction{ID: 8, From: addrA, To: addrB, Amount: uint256.NewInt(5), Status: TxFlagged}

	e := Project(&tx, "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")
	assert.Equal(t, RoleReceived, e.Role)
	assert.Equal(t, addrA, e.Counterparty)
	assert.Equal(t, TxFlagged, e.Status)
}

// Amounts cross every serialization boundary as decimal strings, never
// as JSON numbers.
func TestTransactionJSONAmountIsString(t *testing.T) {
	tx := Transaction{ID: 1, From: addrA, To: addrB, Amount: uint256.NewInt(42), Timestamp: 99}

	data, err := jsonx.Marshal(&tx)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":"42"`)

	var back Transaction
	require.NoError(t, jsonx.Unmarshal(data, &back))
	assert.Equal(t, tx.ID, back.ID)
	assert.True(t, back.Amount.Eq(uint256.NewInt(42)))
}
