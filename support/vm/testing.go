package vm

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/account"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/exported"
	init_ "github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/init"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/system"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/puppet"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/states"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/support/ipld"
	actor_testing "github.com/jaceteam/Jace-Token-Lock-Team-v1/support/testing"
)

const TestNetworkName = "jacenet"

//
// Genesis like setup
//

// Returns the code lookup for every actor the test VM can run, including the puppet.
func TestActorImpls() ActorImplLookup {
	lookup := ActorImplLookup{}
	for _, ba := range exported.BuiltinActors() {
		lookup[ba.Code()] = ba
	}
	lookup[puppet.PuppetActorCodeID] = puppet.Actor{}
	return lookup
}

// Creates a new VM and initializes the system and init singletons.
func NewVMWithSingletons(ctx context.Context, t testing.TB) *VM {
	vm := NewVM(ctx, TestActorImpls(), ipld.NewBlockStoreInMemory(), TestNetworkName)

	initializeActor(t, vm, &system.State{}, builtin.SystemActorCodeID, builtin.SystemActorAddr)

	initState, err := init_.ConstructState(vm.store, TestNetworkName)
	require.NoError(t, err)
	initializeActor(t, vm, initState, builtin.InitActorCodeID, builtin.InitActorAddr)

	_, err = vm.checkpoint()
	require.NoError(t, err)

	return vm
}

// Creates n account actors in the VM with distinct BLS keys and returns their ID addresses.
func CreateAccounts(ctx context.Context, t testing.TB, vm *VM, n int, seed int64) []address.Address {
	var initState init_.State
	err := vm.GetState(builtin.InitActorAddr, &initState)
	require.NoError(t, err)

	pubAddrs := make([]address.Address, n)
	idAddrs := make([]address.Address, n)
	for i := range idAddrs {
		pubAddrs[i] = actor_testing.NewBLSAddr(t, seed+int64(i))
		idAddrs[i], err = initState.MapAddressToNewID(vm.store, pubAddrs[i])
		require.NoError(t, err)
	}
	err = vm.setActorState(builtin.InitActorAddr, &initState)
	require.NoError(t, err)

	for i := range idAddrs {
		initializeActor(t, vm, &account.State{Address: pubAddrs[i]}, builtin.AccountActorCodeID, idAddrs[i])
	}
	_, err = vm.checkpoint()
	require.NoError(t, err)
	return idAddrs
}

// Installs an actor with the given code and state directly into the tree, bypassing construction.
// Returns the new actor's ID address.
func InstallActor(t testing.TB, vm *VM, code cid.Cid, state cbor.Marshaler) address.Address {
	var initState init_.State
	err := vm.GetState(builtin.InitActorAddr, &initState)
	require.NoError(t, err)

	robust := actor_testing.NewActorAddr(t, fmt.Sprintf("installed-%d", initState.NextID))
	idAddr, err := initState.MapAddressToNewID(vm.store, robust)
	require.NoError(t, err)
	err = vm.setActorState(builtin.InitActorAddr, &initState)
	require.NoError(t, err)

	initializeActor(t, vm, state, code, idAddr)
	_, err = vm.checkpoint()
	require.NoError(t, err)
	return idAddr
}

//
// Message application
//

// Applies a message and requires it to succeed, returning the method's return value.
func ApplyOk(t testing.TB, v *VM, from, to address.Address, method abi.MethodNum, params cbor.Marshaler) cbor.Marshaler {
	return ApplyCode(t, v, from, to, method, params, exitcode.Ok)
}

// Applies a message and requires the given exit code.
func ApplyCode(t testing.TB, v *VM, from, to address.Address, method abi.MethodNum, params cbor.Marshaler, code exitcode.ExitCode) cbor.Marshaler {
	result, err := v.ApplyMessage(from, to, method, params, t.Name())
	require.NoError(t, err)
	require.Equal(t, code, result.Code, "unexpected exit code applying method %d to %v", method, to)
	return result.Ret
}

//
// Invocation expectations
//

func ExpectObject(v cbor.Marshaler) *objectExpectation {
	return &objectExpectation{v}
}

// distinguishes a non-expectation from an expectation of nil
type objectExpectation struct {
	val cbor.Marshaler
}

func ExpectAddress(addr address.Address) *address.Address      { return &addr }
func ExpectBytes(b []byte) *objectExpectation                  { return ExpectObject(runtime.CBORBytes(b)) }
func ExpectExitCode(code exitcode.ExitCode) *exitcode.ExitCode { return &code }

// match by cbor encoding to avoid inconsistencies in internal representations of effectively equal objects
func (oe objectExpectation) matches(obj interface{}) bool {
	if oe.val == nil || obj == nil {
		return oe.val == nil && obj == nil
	}

	paramBuf1 := new(bytes.Buffer)
	oe.val.MarshalCBOR(paramBuf1) // nolint: errcheck
	marshaller, ok := obj.(cbor.Marshaler)
	if !ok {
		return false
	}
	paramBuf2 := new(bytes.Buffer)
	if marshaller != nil {
		marshaller.MarshalCBOR(paramBuf2) // nolint: errcheck
	}
	return bytes.Equal(paramBuf1.Bytes(), paramBuf2.Bytes())
}

type ExpectInvocation struct {
	To       address.Address
	Method   abi.MethodNum
	Exitcode exitcode.ExitCode

	From           *address.Address
	Params         *objectExpectation
	Ret            *objectExpectation
	SubInvocations []ExpectInvocation
}

func (ei ExpectInvocation) Matches(t testing.TB, invocations *Invocation) {
	ei.matches(t, "", invocations)
}

func (ei ExpectInvocation) matches(t testing.TB, breadcrumb string, invocation *Invocation) {
	identifier := fmt.Sprintf("%s[%s:%d]", breadcrumb, invocation.Msg.to, invocation.Msg.method)

	// mismatch of to or method probably indicates skipped message or messages out of order. halt.
	require.Equal(t, ei.To, invocation.Msg.to, "%s unexpected `to` address", identifier)
	require.Equal(t, ei.Method, invocation.Msg.method, "%s unexpected method", identifier)

	// other expectations are optional
	if ei.From != nil {
		assert.Equal(t, *ei.From, invocation.Msg.from, "%s unexpected from address", identifier)
	}
	if ei.Params != nil {
		assert.True(t, ei.Params.matches(invocation.Msg.params), "%s params aren't equal (%v != %v)", identifier, ei.Params.val, invocation.Msg.params)
	}
	if ei.SubInvocations != nil {
		for i, invk := range invocation.SubInvocations {
			subidentifier := fmt.Sprintf("%s%d:", identifier, i)
			require.Greater(t, len(ei.SubInvocations), i, "%s unexpected subinvocation [%s:%d]", subidentifier, invk.Msg.to, invk.Msg.method)
			ei.SubInvocations[i].matches(t, subidentifier, invk)
		}
		missingInvocations := len(ei.SubInvocations) - len(invocation.SubInvocations)
		if missingInvocations > 0 {
			missingIndex := len(invocation.SubInvocations)
			missingExpect := ei.SubInvocations[missingIndex]
			require.Failf(t, "missing subinvocation", "%s%d: expected invocation [%s:%d]", identifier, missingIndex, missingExpect.To, missingExpect.Method)
		}
	}

	// expect results
	assert.Equal(t, ei.Exitcode, invocation.Exitcode, "%s unexpected exitcode", identifier)
	if ei.Ret != nil {
		assert.True(t, ei.Ret.matches(invocation.Ret), "%s unexpected return value (%v != %v)", identifier, ei.Ret, invocation.Ret)
	}
}

func ParamsForInvocation(t testing.TB, vm *VM, idxs ...int) interface{} {
	invocations := vm.Invocations()
	var invocation *Invocation
	for _, idx := range idxs {
		require.Greater(t, len(invocations), idx)
		invocation = invocations[idx]
		invocations = invocation.SubInvocations
	}
	require.NotNil(t, invocation)
	return invocation.Msg.params
}

// Requires that the committed state satisfies every actor's invariants.
func AssertStateInvariants(t testing.TB, v *VM) {
	acc, err := v.CheckStateInvariants()
	require.NoError(t, err)
	acc.AssertEmpty(t)
}

//
//  internal stuff
//

func initializeActor(t testing.TB, vm *VM, state cbor.Marshaler, code cid.Cid, a address.Address) {
	stateCID, err := vm.store.Put(vm.ctx, state)
	require.NoError(t, err)
	actor := &states.Actor{
		Head: stateCID,
		Code: code,
	}
	err = vm.setActor(a, actor)
	require.NoError(t, err)
}
