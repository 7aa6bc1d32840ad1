package history

import (
	"context"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/errors"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
)

const (
	histAlice = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	histBob   = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	histCarol = "0xcccccccccccccccccccccccccccccccccccccccc"
)

type fakeGateway struct {
	txs      []types.Transaction
	countErr error
	failAtID uint64
}

func (f *fakeGateway) Connect(ctx context.Context) (string, error) { return histAlice, nil }
func (f *fakeGateway) Owner(ctx context.Context) (string, error)   { return "", nil }
func (f *fakeGateway) GetAccount(ctx context.Context, address string) (types.Account, error) {
	return types.Account{}, nil
}
func (f *fakeGateway) GetTransactionCount(ctx context.Context) (uint64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return uint64(len(f.txs)), nil
}
func (f *fakeGateway) GetTransaction(ctx context.Context, id uint64) (types.Transaction, error) {
	if f.failAtID != 0 && id == f.failAtID {
		return types.Transaction{}, errors.Transport("connection reset")
	}
	if id == 0 || id > uint64(len(f.txs)) {
		return types.Transaction{}, errors.RemoteRejection("transaction does not exist")
	}
	return f.txs[id-1], nil
}
func (f *fakeGateway) Register(ctx context.Context, name string) error { return nil }
func (f *fakeGateway) Pay(ctx context.Context, to string, amount *uint256.Int) error {
	return nil
}
func (f *fakeGateway) SetStatus(ctx context.Context, account string, status types.AccountStatus) error {
	return nil
}

func (f *fakeGateway) append(from, to string, status types.TxStatus) {
	f.txs = append(f.txs, types.Transaction{
		ID:     uint64(len(f.txs)) + 1,
		From:   from,
		To:     to,
		Amount: uint256.NewInt(1),
		Status: status,
	})
}

func TestRefreshFiltersAndOrdersDescending(t *testing.T) {
	gw := &fakeGateway{}
	gw.append(histAlice, histBob, types.TxCompleted)   // 1
	gw.append(histBob, histCarol, types.TxCompleted)   // 2, not alice's
	gw.append(histCarol, histAlice, types.TxFlagged)   // 3
	gw.append(histAlice, histCarol, types.TxCompleted) // 4

	r := New(histAlice)
	require.NoError(t, r.Refresh(context.Background(), gw))

	view := r.View()
	require.Len(t, view, 3)
	assert.Equal(t, uint64(4), view[0].ID)
	assert.Equal(t, types.RoleSent, view[0].Role)
	assert.Equal(t, histCarol, view[0].Counterparty)

	assert.Equal(t, uint64(3), view[1].ID)
	assert.Equal(t, types.RoleReceived, view[1].Role)
	assert.Equal(t, types.TxFlagged, view[1].Status)

	assert.Equal(t, uint64(1), view[2].ID)
}

func TestRefreshMatchesParticipantsCaseInsensitively(t *testing.T) {
	gw := &fakeGateway{}
	gw.append("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", histBob, types.TxCompleted)

	r := New(histAlice)
	require.NoError(t, r.Refresh(context.Background(), gw))
	assert.Len(t, r.View(), 1)
}

// A failure mid-scan aborts the rebuild; the previous view stays
// published unchanged.
func TestRefreshAbortRetainsPreviousView(t *testing.T) {
	gw := &fakeGateway{}
	gw.append(histAlice, histBob, types.TxCompleted)
	gw.append(histBob, histAlice, types.TxCompleted)

	r := New(histAlice)
	require.NoError(t, r.Refresh(context.Background(), gw))
	before := r.View()

	gw.append(histAlice, histCarol, types.TxCompleted)
	gw.failAtID = 2
	err := r.Refresh(context.Background(), gw)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
	assert.Equal(t, before, r.View())

	gw.failAtID = 0
	require.NoError(t, r.Refresh(context.Background(), gw))
	assert.Len(t, r.View(), 3)
}

func TestRefreshCountFailureRetainsPreviousView(t *testing.T) {
	gw := &fakeGateway{}
	gw.append(histAlice, histBob, types.TxCompleted)

	r := New(histAlice)
	require.NoError(t, r.Refresh(context.Background(), gw))

	gw.countErr = errors.Transport("connection refused")
	require.Error(t, r.Refresh(context.Background(), gw))
	assert.Len(t, r.View(), 1)
}

// Refreshing against an unchanged log reproduces the same view.
func TestRefreshIsIdempotent(t *testing.T) {
	gw := &fakeGateway{}
	gw.append(histAlice, histBob, types.TxCompleted)
	gw.append(histCarol, histAlice, types.TxFlagged)

	r := New(histAlice)
	require.NoError(t, r.Refresh(context.Background(), gw))
	first := r.View()
	require.NoError(t, r.Refresh(context.Background(), gw))
	assert.Equal(t, first, r.View())
}

// For any log, the reconstructed view is exactly the account's
// transactions in strictly descending id order.
func TestRefreshViewIsExactDescendingSubsequence(t *testing.T) {
	addrs := []string{histAlice, histBob, histCarol}
	f := fuzz.NewWithSeed(1).NilChance(0).NumElements(50, 120)

	var picks []uint8
	f.Fuzz(&picks)
	require.NotEmpty(t, picks)

	gw := &fakeGateway{}
	want := 0
	for _, p := range picks {
		from := addrs[int(p)%3]
		to := addrs[int(p/3)%3]
		if from == to {
			continue
		}
		status := types.TxCompleted
		if p%5 == 0 {
			status = types.TxFlagged
		}
		gw.append(from, to, status)
		if from == histAlice || to == histAlice {
			want++
		}
	}

	r := New(histAlice)
	require.NoError(t, r.Refresh(context.Background(), gw))

	view := r.View()
	assert.Len(t, view, want)
	for i, e := range view {
		assert.True(t, types.SameAddress(e.From, histAlice) || types.SameAddress(e.To, histAlice))
		if i > 0 {
			assert.Less(t, e.ID, view[i-1].ID)
		}
	}
}
