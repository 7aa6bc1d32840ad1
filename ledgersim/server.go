package ledgersim

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/gateway"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/utils"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/wallet"
)

// Server exposes a Ledger over the same JSON-RPC bridge the real
// service uses, so the gateway client cannot tell them apart.
type Server struct {
	ledger *Ledger
}

func NewServer(ledger *Ledger) *Server {
	return &Server{ledger: ledger}
}

// Bridge returns the HTTP handler for the JSON-RPC surface.
func (s *Server) Bridge() http.Handler {
	return jhttp.NewBridge(s.methods(), &jhttp.BridgeOptions{Server: &jrpc2.ServerOptions{}})
}

// ListenAndServe runs the simulator node until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	logx.Info("SIMNODE", "Serving ledger simulator at ", addr)
	return http.ListenAndServe(addr, s.Bridge())
}

func reject(reason string) error {
	return jrpc2.Errorf(gateway.CodeRejected, "%s", reason).WithData(gateway.RejectionData{Reason: reason})
}

func (s *Server) methods() handler.Map {
	return handler.Map{
		gateway.MethodGetOwner: handler.New(func(ctx context.Context) (*gateway.GetOwnerResult, error) {
			return &gateway.GetOwnerResult{Owner: s.ledger.Owner()}, nil
		}),
		gateway.MethodGetAcct: handler.New(func(ctx context.Context, p gateway.GetAccountParams) (*gateway.GetAccountResult, error) {
			acct := s.ledger.GetAccount(p.Address)
			return &gateway.GetAccountResult{
				Address: acct.Address,
				Name:    acct.Name,
				Status:  int32(acct.Status),
				Balance: utils.Uint256ToString(acct.Balance),
			}, nil
		}),
		gateway.MethodGetCount: handler.New(func(ctx context.Context) (*gateway.GetCountResult, error) {
			return &gateway.GetCountResult{Count: s.ledger.TransactionCount()}, nil
		}),
		gateway.MethodGetByID: handler.New(func(ctx context.Context, p gateway.GetByIDParams) (*gateway.GetByIDResult, error) {
			tx, err := s.ledger.GetTransaction(p.ID)
			if err != nil {
				return nil, reject(err.Error())
			}
			return &gateway.GetByIDResult{
				ID:        tx.ID,
				From:      tx.From,
				To:        tx.To,
				Amount:    utils.Uint256ToString(tx.Amount),
				Timestamp: tx.Timestamp,
				Status:    int32(tx.Status),
			}, nil
		}),
		gateway.MethodRegister: handler.New(func(ctx context.Context, p gateway.RegisterParams) (*gateway.ConfirmationResult, error) {
			if err := s.verifyCaller(p.Caller, p.SignerPubkey, p.Signature, gateway.RegisterPayload(p.Caller, p.Name)); err != nil {
				return nil, err
			}
			if err := s.ledger.Register(p.Caller, p.Name); err != nil {
				return nil, reject(err.Error())
			}
			return &gateway.ConfirmationResult{Ok: true}, nil
		}),
		gateway.MethodPay: handler.New(func(ctx context.Context, p gateway.PayParams) (*gateway.ConfirmationResult, error) {
			if err := s.verifyCaller(p.Caller, p.SignerPubkey, p.Signature, gateway.PayPayload(p.Caller, p.Recipient, p.Amount)); err != nil {
				return nil, err
			}
			amount, err := utils.Uint256FromString(p.Amount)
			if err != nil {
				return nil, reject(ReasonZeroAmount)
			}
			if err := s.ledger.Pay(p.Caller, p.Recipient, amount); err != nil {
				return nil, reject(err.Error())
			}
			return &gateway.ConfirmationResult{Ok: true}, nil
		}),
		gateway.MethodSetStatus: handler.New(func(ctx context.Context, p gateway.SetStatusParams) (*gateway.ConfirmationResult, error) {
			if err := s.verifyCaller(p.Caller, p.SignerPubkey, p.Signature, gateway.SetStatusPayload(p.Caller, p.Account, p.Status)); err != nil {
				return nil, err
			}
			if err := s.ledger.SetStatus(p.Caller, p.Account, types.AccountStatus(p.Status)); err != nil {
				return nil, reject(err.Error())
			}
			return &gateway.ConfirmationResult{Ok: true}, nil
		}),
	}
}

// verifyCaller checks that the submitted public key derives the caller
// address and that the signature covers the canonical payload.
func (s *Server) verifyCaller(caller, pubHex, sigHex string, payload []byte) error {
	if !s.ledger.cfg.VerifySignatures {
		return nil
	}
	pub, err := decodePub(pubHex)
	if err != nil {
		return reject(ReasonBadSigner)
	}
	if !types.SameAddress(wallet.DeriveAddress(pub), caller) {
		return reject(ReasonBadSigner)
	}
	if !wallet.Verify(pubHex, payload, sigHex) {
		return reject(ReasonBadSignature)
	}
	return nil
}

func decodePub(pubHex string) (ed25519.PublicKey, error) {
	pub, err := hex.DecodeString(pubHex)
	if err != nil {
		return nil, err
	}
	if len(pub) != ed25519.PublicKeySize {
		return nil, errors.New(ReasonBadSigner)
	}
	return ed25519.PublicKey(pub), nil
}
