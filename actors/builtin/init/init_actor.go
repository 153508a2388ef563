package init

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/util/adt"
)

// The init actor uniquely has the power to create new actors.
// It maintains a table resolving pubkey and temporary actor addresses to the canonical ID-addresses.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.Exec,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.InitActorCodeID
}

func (a Actor) IsSingleton() bool {
	return true
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

type ConstructorParams struct {
	NetworkName string
}

func (a Actor) Constructor(rt runtime.Runtime, params *ConstructorParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.SystemActorAddr)
	st, err := ConstructState(adt.AsStore(rt), params.NetworkName)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.StateCreate(st)
	return nil
}

type ExecParams struct {
	CodeCID           cid.Cid `checked:"true"` // invalid CIDs won't get committed to the state tree
	ConstructorParams []byte
}

type ExecReturn struct {
	IDAddress     addr.Address // The canonical ID-based address for the actor.
	RobustAddress addr.Address // A more expensive but re-org-safe address for the newly created actor.
}

func (a Actor) Exec(rt runtime.Runtime, params *ExecParams) *ExecReturn {
	rt.ValidateImmediateCallerType(builtin.CallerTypesSignable...)
	if !canExec(params.CodeCID) {
		rt.Abortf(exitcode.ErrForbidden, "caller %v cannot exec actor of type %v", rt.Caller(), builtin.ActorNameByCode(params.CodeCID))
	}

	// Compute a re-org-stable address.
	// This address exists for use by messages coming from outside the system, in order to
	// stably address the newly created actor even if a chain re-org causes it to end up with
	// a different ID.
	uniqueAddress := rt.NewActorAddress()

	// Allocate an ID for this actor.
	// Store mapping of actor addresses to the actor ID.
	var idAddr addr.Address
	var st State
	rt.StateTransaction(&st, func() {
		var err error
		idAddr, err = st.MapAddressToNewID(adt.AsStore(rt), uniqueAddress)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to allocate ID address")
	})

	// Create an empty actor.
	rt.CreateActor(params.CodeCID, idAddr)

	// Invoke constructor.
	code := rt.Send(idAddr, builtin.MethodConstructor, runtime.CBORBytes(params.ConstructorParams), &builtin.Discard{})
	builtin.RequireSuccess(rt, code, "constructor failed")

	rt.Log(rtt.INFO, "created %s actor %v (%v)", builtin.ActorNameByCode(params.CodeCID), idAddr, uniqueAddress)
	return &ExecReturn{IDAddress: idAddr, RobustAddress: uniqueAddress}
}

// Only application actors may be deployed. Accounts are created implicitly by the VM and
// singletons exist from genesis.
func canExec(execCodeID cid.Cid) bool {
	return execCodeID == builtin.TokenActorCodeID || execCodeID == builtin.VestingActorCodeID
}
