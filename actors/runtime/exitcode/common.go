package exitcode

import (
	"errors"

	"golang.org/x/xerrors"
)

// Common error codes that may be shared by different actors.
// Actors may also define their own codes, starting at FirstActorSpecificExitCode.
const (
	// Indicates a method parameter is invalid.
	ErrIllegalArgument = FirstActorErrorCode + iota
	// Indicates a requested resource does not exist.
	ErrNotFound
	// Indicates an action is disallowed.
	ErrForbidden
	// Indicates a balance of funds is insufficient.
	ErrInsufficientFunds
	// Indicates an actor's internal state is invalid.
	ErrIllegalState
	// Indicates de/serialization failure within actor code.
	ErrSerialization

	// Common error codes stop here. If you define a common error code above
	// this value it will have conflicting interpretations.
	FirstActorSpecificExitCode = ExitCode(32)
)

var names = map[ExitCode]string{
	Ok:                      "Ok",
	SysErrSenderInvalid:     "SysErrSenderInvalid",
	SysErrInvalidReceiver:   "SysErrInvalidReceiver",
	SysErrInvalidMethod:     "SysErrInvalidMethod",
	SysErrInvalidParameters: "SysErrInvalidParameters",
	SysErrInsufficientFunds: "SysErrInsufficientFunds",
	SysErrInvalidCallSeqNum: "SysErrInvalidCallSeqNum",
	SysErrOutOfGas:          "SysErrOutOfGas",
	SysErrForbidden:         "SysErrForbidden",
	SysErrorIllegalActor:    "SysErrorIllegalActor",
	SysErrorIllegalArgument: "SysErrorIllegalArgument",
	SysErrSerialization:     "SysErrSerialization",
	SysErrInternal:          "SysErrInternal",
	ErrIllegalArgument:      "ErrIllegalArgument",
	ErrNotFound:             "ErrNotFound",
	ErrForbidden:            "ErrForbidden",
	ErrInsufficientFunds:    "ErrInsufficientFunds",
	ErrIllegalState:         "ErrIllegalState",
	ErrSerialization:        "ErrSerialization",
}

// Wrapf attaches an error code to an error message.
func (x ExitCode) Wrapf(msg string, args ...interface{}) error {
	return &codedErr{code: x, next: xerrors.Errorf(msg, args...)}
}

// Unwrap extracts an error code from an error, returning the default code if none is found.
// The outermost code in the chain wins.
func Unwrap(err error, defaultExitCode ExitCode) (code ExitCode) {
	code = defaultExitCode
	errors.As(err, &code)
	return
}

// A coded error does not expose its cause to errors.Unwrap, so that a code attached further out
// shadows any code attached to the cause.
type codedErr struct {
	code ExitCode
	next error
}

func (ce *codedErr) Error() string {
	return ce.next.Error()
}

func (ce *codedErr) Is(target error) bool {
	if x, ok := target.(ExitCode); ok {
		return x == ce.code
	}
	return false
}

func (ce *codedErr) As(target interface{}) bool {
	if x, ok := target.(*ExitCode); ok {
		*x = ce.code
		return true
	}
	return false
}
