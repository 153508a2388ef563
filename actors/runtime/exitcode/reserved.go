package exitcode

import "strconv"

type ExitCode int64

func (x ExitCode) IsSuccess() bool {
	return x == Ok
}

func (x ExitCode) IsError() bool {
	return !x.IsSuccess()
}

// Whether an exit code is reserved for the VM and must not be raised by actor code.
func (x ExitCode) IsSystem() bool {
	return x > Ok && x < FirstActorErrorCode
}

// Implement error to trigger Go compiler checking of exit code return values.
func (x ExitCode) Error() string {
	return strconv.FormatInt(int64(x), 10)
}

func (x ExitCode) String() string {
	if name, ok := names[x]; ok {
		return name + "(" + strconv.FormatInt(int64(x), 10) + ")"
	}
	return strconv.FormatInt(int64(x), 10)
}

const (
	Ok = ExitCode(0)

	// Indicates the message sender does not exist or is not a signable account.
	SysErrSenderInvalid = ExitCode(1)

	// Indicates the message receiver does not exist and cannot be created implicitly.
	SysErrInvalidReceiver = ExitCode(2)

	// Indicates failure to find a method in an actor.
	SysErrInvalidMethod = ExitCode(3)

	// Indicates syntactically invalid parameters for a method.
	SysErrInvalidParameters = ExitCode(4)

	// Indicates a message sender has insufficient funds for a message's execution.
	SysErrInsufficientFunds = ExitCode(5)

	// Indicates a message invocation out of sequence.
	SysErrInvalidCallSeqNum = ExitCode(6)

	// Reserved. Token transfers carry no execution cost here.
	SysErrOutOfGas = ExitCode(7)

	// Indicates a message execution is forbidden for the caller.
	// Raised by the VM when an invocation re-enters an actor that already has an active frame.
	SysErrForbidden = ExitCode(8)

	// Indicates actor code performed a disallowed operation. Disallowed operations include:
	// - mutating state outside of a state transaction
	// - sending a message or opening a transaction from inside a state transaction
	// - failing to invoke caller validation
	// - aborting with a reserved exit code (including success or a system error).
	SysErrorIllegalActor = ExitCode(9)

	// Indicates an invalid argument passed to a runtime method.
	SysErrorIllegalArgument = ExitCode(10)

	// Indicates an object failed to de/serialize for storage.
	SysErrSerialization = ExitCode(11)

	// Reserved exit codes, do not use.
	SysErrorReserved1 = ExitCode(12)
	SysErrorReserved2 = ExitCode(13)
	SysErrorReserved3 = ExitCode(14)

	// Indicates something broken within the VM.
	SysErrInternal = ExitCode(15)
)

// The initial range of exit codes is reserved for system errors.
// Actors may define codes starting with this one.
const FirstActorErrorCode = ExitCode(16)
