package gateway

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/holiman/uint256"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/errors"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/jsonx"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/utils"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/wallet"
)

type Config struct {
	Endpoint string
}

// LedgerClient talks JSON-RPC over HTTP to the ledger service and owns
// the signing context for mutating calls.
type LedgerClient struct {
	cfg    Config
	wallet *wallet.Wallet
	ch     *jhttp.Channel
	cli    *jrpc2.Client
}

var _ Gateway = (*LedgerClient)(nil)

// NewClient connects a wallet to the ledger endpoint. The wallet may
// be nil for read-only use; mutating calls then fail locally.
func NewClient(cfg Config, w *wallet.Wallet) (*LedgerClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("ledger endpoint is required")
	}

	ch := jhttp.NewChannel(cfg.Endpoint, nil)
	cli := jrpc2.NewClient(ch, nil)

	return &LedgerClient{
		cfg:    cfg,
		wallet: w,
		ch:     ch,
		cli:    cli,
	}, nil
}

// Close releases the underlying channel.
func (c *LedgerClient) Close() error {
	if c.cli != nil {
		return c.cli.Close()
	}
	return nil
}

// Connect reports the identity of the attached wallet. A connection
// without a wallet has no identity to act as.
func (c *LedgerClient) Connect(ctx context.Context) (string, error) {
	w, err := c.signer()
	if err != nil {
		return "", err
	}
	return w.Address(), nil
}

func (c *LedgerClient) Owner(ctx context.Context) (string, error) {
	var res GetOwnerResult
	if err := c.call(ctx, MethodGetOwner, nil, &res); err != nil {
		return "", err
	}
	return res.Owner, nil
}

func (c *LedgerClient) GetAccount(ctx context.Context, address string) (types.Account, error) {
	var res GetAccountResult
	if err := c.call(ctx, MethodGetAcct, &GetAccountParams{Address: address}, &res); err != nil {
		return types.Account{}, err
	}
	balance, err := utils.Uint256FromString(res.Balance)
	if err != nil {
		return types.Account{}, errors.Transport(fmt.Sprintf("malformed balance from ledger: %v", err))
	}
	return types.Account{
		Address: res.Address,
		Name:    res.Name,
		Status:  types.AccountStatus(res.Status),
		Balance: balance,
	}, nil
}

func (c *LedgerClient) GetTransactionCount(ctx context.Context) (uint64, error) {
	var res GetCountResult
	if err := c.call(ctx, MethodGetCount, nil, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

func (c *LedgerClient) GetTransaction(ctx context.Context, id uint64) (types.Transaction, error) {
	var res GetByIDResult
	if err := c.call(ctx, MethodGetByID, &GetByIDParams{ID: id}, &res); err != nil {
		return types.Transaction{}, err
	}
	amount, err := utils.Uint256FromString(res.Amount)
	if err != nil {
		return types.Transaction{}, errors.Transport(fmt.Sprintf("malformed amount from ledger: %v", err))
	}
	return types.Transaction{
		ID:        res.ID,
		From:      res.From,
		To:        res.To,
		Amount:    amount,
		Timestamp: res.Timestamp,
		Status:    types.TxStatus(res.Status),
	}, nil
}

func (c *LedgerClient) Register(ctx context.Context, name string) error {
	w, err := c.signer()
	if err != nil {
		return err
	}
	caller := w.Address()
	params := &RegisterParams{
		Caller:       caller,
		Name:         name,
		SignerPubkey: w.PublicKeyHex(),
		Signature:    w.Sign(RegisterPayload(caller, name)),
	}
	var res ConfirmationResult
	return c.call(ctx, MethodRegister, params, &res)
}

func (c *LedgerClient) Pay(ctx context.Context, to string, amount *uint256.Int) error {
	w, err := c.signer()
	if err != nil {
		return err
	}
	caller := w.Address()
	amountStr := utils.Uint256ToString(amount)
	params := &PayParams{
		Caller:       caller,
		Recipient:    to,
		Amount:       amountStr,
		SignerPubkey: w.PublicKeyHex(),
		Signature:    w.Sign(PayPayload(caller, to, amountStr)),
	}
	var res ConfirmationResult
	return c.call(ctx, MethodPay, params, &res)
}

func (c *LedgerClient) SetStatus(ctx context.Context, account string, status types.AccountStatus) error {
	w, err := c.signer()
	if err != nil {
		return err
	}
	caller := w.Address()
	params := &SetStatusParams{
		Caller:       caller,
		Account:      account,
		Status:       int32(status),
		SignerPubkey: w.PublicKeyHex(),
		Signature:    w.Sign(SetStatusPayload(caller, account, int32(status))),
	}
	var res ConfirmationResult
	return c.call(ctx, MethodSetStatus, params, &res)
}

func (c *LedgerClient) signer() (*wallet.Wallet, error) {
	if c.wallet == nil {
		return nil, errors.LocalValidation("no signing wallet attached to this connection")
	}
	return c.wallet, nil
}

// call issues one JSON-RPC request and maps the outcome into the
// client error taxonomy: an answered-but-declined call becomes a
// remote rejection carrying the ledger's reason, anything else a
// transport error. Only the ledger's rejection code counts as a
// rejection; protocol-level errors share the transport bucket.
func (c *LedgerClient) call(ctx context.Context, method string, params, result interface{}) error {
	err := c.cli.CallResult(ctx, method, params, result)
	if err == nil {
		return nil
	}
	var rpcErr *jrpc2.Error
	if stderrors.As(err, &rpcErr) && rpcErr.Code == CodeRejected {
		return errors.RemoteRejection(rejectionReason(rpcErr))
	}
	return errors.Transport(err.Error())
}

func rejectionReason(rpcErr *jrpc2.Error) string {
	if len(rpcErr.Data) > 0 {
		var data RejectionData
		if err := jsonx.Unmarshal(rpcErr.Data, &data); err == nil && data.Reason != "" {
			return data.Reason
		}
	}
	return rpcErr.Message
}
