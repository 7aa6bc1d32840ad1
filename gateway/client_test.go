package gateway_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/errors"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/gateway"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/ledgersim"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/utils"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/wallet"
)

// testEnv runs the simulator behind a real HTTP server so the client
// exercises the full JSON-RPC path, signatures included.
type testEnv struct {
	server *httptest.Server
	ledger *ledgersim.Ledger
	owner  *wallet.Wallet
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	owner, err := wallet.New()
	require.NoError(t, err)

	ledger := ledgersim.New(ledgersim.DefaultConfig(owner.Address()))
	server := httptest.NewServer(ledgersim.NewServer(ledger).Bridge())
	t.Cleanup(server.Close)

	return &testEnv{server: server, ledger: ledger, owner: owner}
}

func (e *testEnv) client(t *testing.T, w *wallet.Wallet) *gateway.LedgerClient {
	t.Helper()
	cli, err := gateway.NewClient(gateway.Config{Endpoint: e.server.URL}, w)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cli.Close() })
	return cli
}

func newWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.New()
	require.NoError(t, err)
	return w
}

func TestConnectReturnsWalletIdentity(t *testing.T) {
	env := newTestEnv(t)
	w := newWallet(t)
	cli := env.client(t, w)

	addr, err := cli.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, w.Address(), addr)
}

func TestConnectWithoutWalletFailsLocally(t *testing.T) {
	env := newTestEnv(t)
	cli := env.client(t, nil)

	_, err := cli.Connect(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeLocalValidation))
}

func TestOwnerRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	cli := env.client(t, newWallet(t))

	owner, err := cli.Owner(context.Background())
	require.NoError(t, err)
	assert.True(t, types.SameAddress(owner, env.owner.Address()))
}

func TestRegisterAndGetAccount(t *testing.T) {
	env := newTestEnv(t)
	w := newWallet(t)
	cli := env.client(t, w)
	ctx := context.Background()

	require.NoError(t, cli.Register(ctx, "Alice"))

	acct, err := cli.GetAccount(ctx, w.Address())
	require.NoError(t, err)
	assert.Equal(t, "Alice", acct.Name)
	assert.Equal(t, types.StatusActive, acct.Status)
	assert.Equal(t, "1000", utils.FormatAmount(acct.Balance))
}

func TestPayAndFetchHistory(t *testing.T) {
	env := newTestEnv(t)
	alice := newWallet(t)
	bob := newWallet(t)
	aliceCli := env.client(t, alice)
	bobCli := env.client(t, bob)
	ctx := context.Background()

	require.NoError(t, aliceCli.Register(ctx, "Alice"))
	require.NoError(t, bobCli.Register(ctx, "Bob"))

	amount, err := utils.ParseAmount("5")
	require.NoError(t, err)
	require.NoError(t, aliceCli.Pay(ctx, bob.Address(), amount))

	count, err := aliceCli.GetTransactionCount(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), count)

	tx, err := aliceCli.GetTransaction(ctx, 1)
	require.NoError(t, err)
	assert.True(t, types.SameAddress(tx.From, alice.Address()))
	assert.True(t, types.SameAddress(tx.To, bob.Address()))
	assert.Equal(t, "5", utils.FormatAmount(tx.Amount))
	assert.Equal(t, types.TxCompleted, tx.Status)
}

// The ledger's reason string must survive the wire unchanged.
func TestRejectionReasonCrossesTheWire(t *testing.T) {
	env := newTestEnv(t)
	cli := env.client(t, newWallet(t))
	ctx := context.Background()

	require.NoError(t, cli.Register(ctx, "Alice"))
	err := cli.Register(ctx, "Alice again")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRemoteRejection))
	assert.Equal(t, ledgersim.ReasonAlreadyRegistered, errors.Reason(err))
}

func TestSignatureVerificationRejectsForgedCaller(t *testing.T) {
	env := newTestEnv(t)
	alice := newWallet(t)
	cli := env.client(t, alice)
	ctx := context.Background()

	require.NoError(t, cli.Register(ctx, "Alice"))

	// owner-only call from a non-owner wallet is declined remotely
	err := cli.SetStatus(ctx, alice.Address(), types.StatusSuspended)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRemoteRejection))
	assert.Equal(t, ledgersim.ReasonNotOwner, errors.Reason(err))
}

func TestUnreachableEndpointIsTransportError(t *testing.T) {
	env := newTestEnv(t)
	cli := env.client(t, newWallet(t))
	env.server.Close()

	_, err := cli.Owner(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
}

func TestMutatingCallWithoutWalletFailsLocally(t *testing.T) {
	env := newTestEnv(t)
	cli := env.client(t, nil)

	err := cli.Register(context.Background(), "Alice")
	assert.True(t, errors.IsCode(err, errors.ErrCodeLocalValidation))
}
