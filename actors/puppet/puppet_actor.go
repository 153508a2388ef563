package puppet

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
)

// The puppet actor sends arbitrary messages on behalf of a test, so that scenarios can drive the VM
// into situations no builtin actor produces on its own (re-entrant calls, sends inside a transaction).
// It is never part of a deployed network.
type Actor struct{}

var PuppetActorCodeID cid.Cid

func init() {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	c, err := builder.Sum([]byte("jace/1/puppet"))
	if err != nil {
		panic(err)
	}
	PuppetActorCodeID = c
}

var MethodsPuppet = struct {
	Constructor       abi.MethodNum
	Send              abi.MethodNum
	SendInTransaction abi.MethodNum
	Emit              abi.MethodNum
}{builtin.MethodConstructor, 2, 3, 4}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.Send,
		3:                         a.SendInTransaction,
		4:                         a.Emit,
	}
}

func (a Actor) Code() cid.Cid {
	return PuppetActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

func (a Actor) IsSingleton() bool {
	return false
}

var _ runtime.VMActor = Actor{}

type State struct {
	Calls uint64
}

func (a Actor) Constructor(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	rt.StateCreate(&State{})
	return nil
}

type SendParams struct {
	To     addr.Address
	Method abi.MethodNum
	Params []byte
}

type SendReturn struct {
	Return []byte
	Code   exitcode.ExitCode
}

// Sends a message and reports the callee's exit code and raw return instead of aborting.
func (a Actor) Send(rt runtime.Runtime, params *SendParams) *SendReturn {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.StateTransaction(&st, func() {
		st.Calls++
	})

	var ret cbg.Deferred
	code := rt.Send(params.To, params.Method, runtime.CBORBytes(params.Params), &ret)
	return &SendReturn{Return: ret.Raw, Code: code}
}

// Sends a message from inside a state transaction, which the runtime forbids.
func (a Actor) SendInTransaction(rt runtime.Runtime, params *SendParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.StateTransaction(&st, func() {
		st.Calls++
		rt.Send(params.To, params.Method, runtime.CBORBytes(params.Params), &builtin.Discard{})
	})
	return nil
}

type EmitParams struct {
	Type      string
	Payload   []byte
	AbortCode exitcode.ExitCode
}

// Emits an event then, if asked, aborts with the given code.
func (a Actor) Emit(rt runtime.Runtime, params *EmitParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.StateTransaction(&st, func() {
		st.Calls++
	})
	rt.EmitEvent(params.Type, runtime.CBORBytes(params.Payload))
	if params.AbortCode != exitcode.Ok {
		rt.Abortf(params.AbortCode, "puppet asked to abort")
	}
	return nil
}
