package core

import "errors"

// Exit codes surfaced to callers when a message handler rejects a message.
// The first four are fixed by the public contract behavior; the rest are
// stable per deployment but only observable as a generic failed transaction.
const (
	ExitUnauthorized          = 132
	ExitInvalidRole           = 666
	ExitSelfOnly              = 777
	ExitMaxSupplyExceeded     = 7878
	ExitInvalidSender         = 4429
	ExitMintClosed            = 18668
	ExitInsufficientBalance   = 62972
	ExitInsufficientAllowance = 47499
	ExitNoPendingTransfer     = 55418
	ExitInvalidAmount         = 6125
	ExitUnknownMessage        = 130

	// ExitFailed is reported for handler errors that carry no exit code.
	ExitFailed = 1
)

// Error is a contract-level rejection with a stable, caller-visible exit code.
type Error struct {
	Code int
	Text string
}

func (e *Error) Error() string { return e.Text }

var (
	ErrUnauthorized          = &Error{Code: ExitUnauthorized, Text: "access denied"}
	ErrInvalidRole           = &Error{Code: ExitInvalidRole, Text: "unknown role"}
	ErrSelfOnly              = &Error{Code: ExitSelfOnly, Text: "can only renounce roles for self"}
	ErrMaxSupplyExceeded     = &Error{Code: ExitMaxSupplyExceeded, Text: "max supply exceeded"}
	ErrInvalidSender         = &Error{Code: ExitInvalidSender, Text: "invalid sender"}
	ErrMintClosed            = &Error{Code: ExitMintClosed, Text: "mint is closed"}
	ErrInsufficientBalance   = &Error{Code: ExitInsufficientBalance, Text: "invalid balance"}
	ErrInsufficientAllowance = &Error{Code: ExitInsufficientAllowance, Text: "insufficient allowance"}
	ErrNoPendingTransfer     = &Error{Code: ExitNoPendingTransfer, Text: "no pending ownership transfer"}
	ErrInvalidAmount         = &Error{Code: ExitInvalidAmount, Text: "invalid amount"}
	ErrUnknownMessage        = &Error{Code: ExitUnknownMessage, Text: "invalid incoming message"}
)

// ExitCodeOf extracts the exit code from a handler error.
func ExitCodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ExitFailed
}
