package errors

import (
	stderrors "errors"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/jsonx"
)

// ClientErrorCode represents standardized error codes for client-side operations
type ClientErrorCode string

const (
	// Precondition failed before any remote call was made
	ErrCodeLocalValidation ClientErrorCode = "local_validation"

	// The ledger declined the call and reported a reason
	ErrCodeRemoteRejection ClientErrorCode = "remote_rejection"

	// The call never completed (connectivity, provider absent)
	ErrCodeTransport ClientErrorCode = "transport"

	// A refresh failed; the previously published view is still current
	ErrCodeStaleView ClientErrorCode = "stale_view"
)

// ErrMsgUnknown is surfaced whenever the ledger rejects a call without
// supplying a reason of its own.
const ErrMsgUnknown = "An unknown error occurred."

// ClientError is the standardized error carried through the client core.
// Message is always human-readable and safe to surface to the user.
type ClientError struct {
	Code    ClientErrorCode `json:"code"`
	Message string          `json:"message"`
}

// Error implements the error interface
func (e *ClientError) Error() string {
	out, _ := jsonx.Marshal(ClientError{
		Code:    e.Code,
		Message: e.Message,
	})
	return string(out)
}

// NewError creates a new ClientError and returns it as error interface
func NewError(code ClientErrorCode, message string) error {
	return &ClientError{
		Code:    code,
		Message: message,
	}
}

// LocalValidation wraps a failed precondition check. Actions failing
// this way never reach the ledger and never trigger reconciliation.
func LocalValidation(message string) error {
	return NewError(ErrCodeLocalValidation, message)
}

// RemoteRejection wraps a rejection reason reported by the ledger.
// An empty reason falls back to ErrMsgUnknown.
func RemoteRejection(reason string) error {
	if reason == "" {
		reason = ErrMsgUnknown
	}
	return NewError(ErrCodeRemoteRejection, reason)
}

// Transport wraps a call that could not complete at all.
func Transport(message string) error {
	return NewError(ErrCodeTransport, message)
}

// StaleView marks a refresh that did not complete; callers keep serving
// the previously published view.
func StaleView(message string) error {
	return NewError(ErrCodeStaleView, message)
}

// CodeOf returns the ClientErrorCode of err, or "" for foreign errors.
func CodeOf(err error) ClientErrorCode {
	var ce *ClientError
	if stderrors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// IsCode reports whether err is a ClientError with the given code.
func IsCode(err error, code ClientErrorCode) bool {
	return CodeOf(err) == code
}

// Reason returns the user-facing message of err. Foreign errors map to
// the unknown-error fallback so raw internals never reach the user.
func Reason(err error) string {
	var ce *ClientError
	if stderrors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return ErrMsgUnknown
}
