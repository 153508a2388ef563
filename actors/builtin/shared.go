package builtin

import (
	"io"

	addr "github.com/filecoin-project/go-address"
	"github.com/ipfs/go-cid"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
)

///// Code shared by multiple built-in actors. /////

// Aborts with an ErrIllegalArgument if predicate is not true.
func RequireParam(rt runtime.Runtime, predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.ErrIllegalArgument, msg, args...)
	}
}

// Aborts with an ErrIllegalState if predicate is not true.
func RequireState(rt runtime.Runtime, predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.ErrIllegalState, msg, args...)
	}
}

// Aborts with a formatted message if err is not nil.
// The provided message will be suffixed by ": %s" and the provided args suffixed by the err.
func RequireNoErr(rt runtime.Runtime, err error, defaultExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	if err != nil {
		newMsg := msg + ": %s"
		newArgs := append(args, err)
		code := exitcode.Unwrap(err, defaultExitCode)
		rt.Abortf(code, newMsg, newArgs...)
	}
}

// Propagates a failed send by aborting the current method with the same exit code.
func RequireSuccess(rt runtime.Runtime, e exitcode.ExitCode, msg string, args ...interface{}) {
	if !e.IsSuccess() {
		rt.Abortf(e, msg, args...)
	}
}

// Resolves an address to an ID address and verifies that it is the address of an actor with the given code.
func ResolveToIDAddrWithCode(rt runtime.Runtime, raw addr.Address, code cid.Cid) (addr.Address, error) {
	resolved, ok := rt.ResolveAddress(raw)
	if !ok {
		return addr.Undef, exitcode.ErrIllegalArgument.Wrapf("unable to resolve address %v", raw)
	}
	actual, ok := rt.GetActorCodeCID(resolved)
	if !ok {
		return addr.Undef, exitcode.ErrIllegalArgument.Wrapf("no code for address %v", resolved)
	}
	if actual != code {
		return addr.Undef, exitcode.ErrIllegalArgument.Wrapf("actor %v has code %s, expected %s",
			resolved, ActorNameByCode(actual), ActorNameByCode(code))
	}
	return resolved, nil
}

// Resolves an address to an ID address, failing with ErrIllegalArgument if it is not known to the init actor.
func ResolveToIDAddr(rt runtime.Runtime, raw addr.Address) (addr.Address, error) {
	if raw == addr.Undef {
		return addr.Undef, exitcode.ErrIllegalArgument.Wrapf("undefined address")
	}
	resolved, ok := rt.ResolveAddress(raw)
	if !ok {
		return addr.Undef, exitcode.ErrIllegalArgument.Wrapf("unable to resolve address %v", raw)
	}
	return resolved, nil
}

// Discard is a helper for sends whose return value is not needed.
type Discard struct{}

func (d *Discard) MarshalCBOR(_ io.Writer) error {
	// serialization is a noop
	return nil
}

func (d *Discard) UnmarshalCBOR(_ io.Reader) error {
	// deserialization is a noop
	return nil
}
