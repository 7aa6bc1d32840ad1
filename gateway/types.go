package gateway

import (
	"fmt"

	"github.com/creachadair/jrpc2"
)

// CodeRejected is the JSON-RPC error code the ledger uses for calls
// its rule engine declined. The human-readable reason travels in the
// error data as RejectionData.
const CodeRejected jrpc2.Code = -32000

// JSON-RPC method names of the ledger service.
const (
	MethodGetOwner  = "ledger.getowner"
	MethodGetCount  = "tx.getcount"
	MethodGetByID   = "tx.getbyid"
	MethodPay       = "tx.pay"
	MethodGetAcct   = "account.getaccount"
	MethodRegister  = "account.register"
	MethodSetStatus = "account.setstatus"
)

// --- Params/Results mirroring the ledger's wire messages ---

type GetOwnerResult struct {
	Owner string `json:"owner"`
}

type GetAccountParams struct {
	Address string `json:"address"`
}

type GetAccountResult struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Status  int32  `json:"status"`
	Balance string `json:"balance"`
}

type GetCountResult struct {
	Count uint64 `json:"count"`
}

type GetByIDParams struct {
	ID uint64 `json:"id"`
}

type GetByIDResult struct {
	ID        uint64 `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Timestamp uint64 `json:"timestamp"`
	Status    int32  `json:"status"`
}

type RegisterParams struct {
	Caller       string `json:"caller"`
	Name         string `json:"name"`
	SignerPubkey string `json:"signer_pubkey"`
	Signature    string `json:"signature"`
}

type PayParams struct {
	Caller       string `json:"caller"`
	Recipient    string `json:"recipient"`
	Amount       string `json:"amount"`
	SignerPubkey string `json:"signer_pubkey"`
	Signature    string `json:"signature"`
}

type SetStatusParams struct {
	Caller       string `json:"caller"`
	Account      string `json:"account"`
	Status       int32  `json:"status"`
	SignerPubkey string `json:"signer_pubkey"`
	Signature    string `json:"signature"`
}

type ConfirmationResult struct {
	Ok bool `json:"ok"`
}

// RejectionData is the optional structured payload attached to a
// remote rejection: { "reason": "..." }. Absence of the reason implies
// the unknown-error fallback.
type RejectionData struct {
	Reason string `json:"reason,omitempty"`
}

// --- Canonical signing payloads ---
//
// Each mutating call is signed over a stable serialization so the
// ledger can verify the caller controls the claimed address. Both ends
// of the wire build these with the same functions.

func RegisterPayload(caller, name string) []byte {
	return []byte(fmt.Sprintf("register|%s|%s", caller, name))
}

func PayPayload(caller, recipient, amount string) []byte {
	return []byte(fmt.Sprintf("pay|%s|%s|%s", caller, recipient, amount))
}

func SetStatusPayload(caller, account string, status int32) []byte {
	return []byte(fmt.Sprintf("setstatus|%s|%s|%d", caller, account, status))
}
