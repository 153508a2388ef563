package vm_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/account"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/puppet"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
	tutil "github.com/jaceteam/Jace-Token-Lock-Team-v1/support/testing"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/support/vm"
)

func TestReentrantCallIsRejected(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	sender := vm.CreateAccounts(ctx, t, v, 1, 1)[0]
	a := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})
	b := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})

	// a -> b -> a
	callBack := &puppet.SendParams{To: a, Method: puppet.MethodsPuppet.Send, Params: serialize(t, &puppet.SendParams{
		To:     sender,
		Method: builtin.MethodsAccount.PubkeyAddress,
	})}
	params := &puppet.SendParams{To: b, Method: puppet.MethodsPuppet.Send, Params: serialize(t, callBack)}
	ret := vm.ApplyOk(t, v, sender, a, puppet.MethodsPuppet.Send, params).(*puppet.SendReturn)
	require.Equal(t, exitcode.Ok, ret.Code)

	var inner puppet.SendReturn
	require.NoError(t, inner.UnmarshalCBOR(bytes.NewReader(ret.Return)))
	assert.Equal(t, exitcode.SysErrForbidden, inner.Code)

	vm.ExpectInvocation{
		To:       a,
		Method:   puppet.MethodsPuppet.Send,
		From:     vm.ExpectAddress(sender),
		Params:   vm.ExpectObject(params),
		Exitcode: exitcode.Ok,
		SubInvocations: []vm.ExpectInvocation{{
			To:     b,
			Method: puppet.MethodsPuppet.Send,
			From:   vm.ExpectAddress(a),
			SubInvocations: []vm.ExpectInvocation{{
				To:             a,
				Method:         puppet.MethodsPuppet.Send,
				From:           vm.ExpectAddress(b),
				Exitcode:       exitcode.SysErrForbidden,
				SubInvocations: []vm.ExpectInvocation{},
			}},
		}},
	}.Matches(t, v.LastInvocation())

	// both outer frames committed, the rejected frame left no trace
	assert.Equal(t, uint64(1), puppetCalls(t, v, a))
	assert.Equal(t, uint64(1), puppetCalls(t, v, b))

	// a fresh message may call a again
	vm.ApplyOk(t, v, sender, a, puppet.MethodsPuppet.Send, &puppet.SendParams{
		To:     sender,
		Method: builtin.MethodsAccount.PubkeyAddress,
	})
	assert.Equal(t, uint64(2), puppetCalls(t, v, a))
}

func TestSideEffectsForbiddenInTransaction(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	sender := vm.CreateAccounts(ctx, t, v, 1, 1)[0]
	p := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})
	before := v.StateRoot()

	vm.ApplyCode(t, v, sender, p, puppet.MethodsPuppet.SendInTransaction, &puppet.SendParams{
		To:     sender,
		Method: builtin.MethodsAccount.PubkeyAddress,
	}, exitcode.SysErrorIllegalActor)

	assert.Equal(t, uint64(0), puppetCalls(t, v, p))
	assert.NotEqual(t, before, v.StateRoot(), "sender call sequence advances")
	// the rejected send is never dispatched
	assert.Empty(t, v.LastInvocation().SubInvocations)
}

func TestEvents(t *testing.T) {
	ctx := context.Background()
	payload := []byte{0x43, 0x01, 0x02, 0x03}

	t.Run("committed events are logged in order", func(t *testing.T) {
		v := vm.NewVMWithSingletons(ctx, t)
		sender := vm.CreateAccounts(ctx, t, v, 1, 1)[0]
		p := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})
		require.NoError(t, v.SetEpoch(17))

		vm.ApplyOk(t, v, sender, p, puppet.MethodsPuppet.Emit, &puppet.EmitParams{Type: "first", Payload: payload})
		vm.ApplyOk(t, v, sender, p, puppet.MethodsPuppet.Emit, &puppet.EmitParams{Type: "second", Payload: payload})

		all, err := v.Events("")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "first", all[0].Type)
		assert.Equal(t, "second", all[1].Type)
		assert.Equal(t, p, all[0].Emitter)
		assert.Equal(t, abi.ChainEpoch(17), all[0].Epoch)
		assert.Equal(t, payload, all[0].Payload)

		second, err := v.Events("second")
		require.NoError(t, err)
		assert.Len(t, second, 1)
	})

	t.Run("aborted message discards its events", func(t *testing.T) {
		v := vm.NewVMWithSingletons(ctx, t)
		sender := vm.CreateAccounts(ctx, t, v, 1, 1)[0]
		p := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})

		vm.ApplyCode(t, v, sender, p, puppet.MethodsPuppet.Emit, &puppet.EmitParams{
			Type:      "doomed",
			Payload:   payload,
			AbortCode: exitcode.ErrIllegalState,
		}, exitcode.ErrIllegalState)

		all, err := v.Events("")
		require.NoError(t, err)
		assert.Empty(t, all)
		assert.Equal(t, uint64(0), puppetCalls(t, v, p))
	})

	t.Run("failed nested call discards only its own events", func(t *testing.T) {
		v := vm.NewVMWithSingletons(ctx, t)
		sender := vm.CreateAccounts(ctx, t, v, 1, 1)[0]
		outer := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})
		inner := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})

		ret := vm.ApplyOk(t, v, sender, outer, puppet.MethodsPuppet.Send, &puppet.SendParams{
			To:     inner,
			Method: puppet.MethodsPuppet.Emit,
			Params: serialize(t, &puppet.EmitParams{Type: "doomed", Payload: payload, AbortCode: exitcode.ErrForbidden}),
		}).(*puppet.SendReturn)
		assert.Equal(t, exitcode.ErrForbidden, ret.Code)

		all, err := v.Events("")
		require.NoError(t, err)
		assert.Empty(t, all)
		assert.Equal(t, uint64(1), puppetCalls(t, v, outer))
		assert.Equal(t, uint64(0), puppetCalls(t, v, inner))
	})

	t.Run("successful nested call events are kept", func(t *testing.T) {
		v := vm.NewVMWithSingletons(ctx, t)
		sender := vm.CreateAccounts(ctx, t, v, 1, 1)[0]
		outer := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})
		inner := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})

		vm.ApplyOk(t, v, sender, outer, puppet.MethodsPuppet.Send, &puppet.SendParams{
			To:     inner,
			Method: puppet.MethodsPuppet.Emit,
			Params: serialize(t, &puppet.EmitParams{Type: "kept", Payload: payload}),
		})

		all, err := v.Events("kept")
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, inner, all[0].Emitter)
	})
}

func TestImplicitAccountCreation(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	sender := vm.CreateAccounts(ctx, t, v, 1, 1)[0]
	p := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})
	pubkey := tutil.NewBLSAddr(t, 1234)

	ret := vm.ApplyOk(t, v, sender, p, puppet.MethodsPuppet.Send, &puppet.SendParams{
		To:     pubkey,
		Method: builtin.MethodsAccount.PubkeyAddress,
	}).(*puppet.SendReturn)
	require.Equal(t, exitcode.Ok, ret.Code)

	var echoed address.Address
	require.NoError(t, echoed.UnmarshalCBOR(bytes.NewReader(ret.Return)))
	assert.Equal(t, pubkey, echoed)

	id, found := v.NormalizeAddress(pubkey)
	require.True(t, found)
	var st account.State
	require.NoError(t, v.GetState(id, &st))
	assert.Equal(t, pubkey, st.Address)

	t.Run("actor addresses are not created implicitly", func(t *testing.T) {
		ret := vm.ApplyOk(t, v, sender, p, puppet.MethodsPuppet.Send, &puppet.SendParams{
			To:     tutil.NewActorAddr(t, "nobody"),
			Method: builtin.MethodsAccount.PubkeyAddress,
		}).(*puppet.SendReturn)
		assert.Equal(t, exitcode.SysErrInvalidReceiver, ret.Code)
	})
}

func TestApplyMessageRejectsInvalidSender(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	p := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})

	for _, from := range []address.Address{tutil.NewBLSAddr(t, 99), p} {
		result, err := v.ApplyMessage(from, p, puppet.MethodsPuppet.Emit, &puppet.EmitParams{}, t.Name())
		require.NoError(t, err)
		assert.Equal(t, exitcode.SysErrSenderInvalid, result.Code)
	}
}

func TestMissingParamsAbortWithSerializationError(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	sender := vm.CreateAccounts(ctx, t, v, 1, 3)[0]
	p := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})
	q := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})

	t.Run("top level message", func(t *testing.T) {
		result, err := v.ApplyMessage(sender, p, puppet.MethodsPuppet.Emit, nil, t.Name())
		require.NoError(t, err)
		assert.Equal(t, exitcode.ErrSerialization, result.Code)
		assert.Equal(t, uint64(0), puppetCalls(t, v, p))
	})

	t.Run("nested send", func(t *testing.T) {
		ret := vm.ApplyOk(t, v, sender, p, puppet.MethodsPuppet.Send, &puppet.SendParams{
			To:     q,
			Method: puppet.MethodsPuppet.Emit,
		}).(*puppet.SendReturn)
		assert.Equal(t, exitcode.ErrSerialization, ret.Code)
		assert.Equal(t, uint64(1), puppetCalls(t, v, p))
		assert.Equal(t, uint64(0), puppetCalls(t, v, q))
	})

	t.Run("empty params are optional", func(t *testing.T) {
		ret := vm.ApplyOk(t, v, sender, sender, builtin.MethodsAccount.PubkeyAddress, nil)
		assert.NotNil(t, ret)
	})
}

func TestClockOnlyMovesForward(t *testing.T) {
	v := vm.NewVMWithSingletons(context.Background(), t)
	require.NoError(t, v.SetEpoch(100))
	require.NoError(t, v.SetEpoch(100))
	assert.Error(t, v.SetEpoch(99))
	assert.Equal(t, abi.ChainEpoch(100), v.GetEpoch())
}

func TestCARRoundTrip(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	sender := vm.CreateAccounts(ctx, t, v, 2, 7)[0]
	p := vm.InstallActor(t, v, puppet.PuppetActorCodeID, &puppet.State{})
	vm.ApplyOk(t, v, sender, p, puppet.MethodsPuppet.Emit, &puppet.EmitParams{Type: "exported", Payload: []byte{0x40}})

	var buf bytes.Buffer
	require.NoError(t, v.ExportCAR(&buf))

	loaded, err := vm.LoadVMFromCAR(ctx, vm.TestActorImpls(), &buf, vm.TestNetworkName)
	require.NoError(t, err)
	assert.Equal(t, v.StateRoot(), loaded.StateRoot())

	wantRoot, err := v.EventsRoot()
	require.NoError(t, err)
	gotRoot, err := loaded.EventsRoot()
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)

	events, err := loaded.Events("exported")
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// the loaded tree is live
	vm.ApplyOk(t, loaded, sender, p, puppet.MethodsPuppet.Emit, &puppet.EmitParams{Type: "exported", Payload: []byte{0x40}})
	assert.Equal(t, uint64(2), puppetCalls(t, loaded, p))
	assert.Equal(t, uint64(1), puppetCalls(t, v, p))
	vm.AssertStateInvariants(t, loaded)

	t.Run("rejects truncated input", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, v.ExportCAR(&buf))
		_, err := vm.LoadVMFromCAR(ctx, vm.TestActorImpls(), bytes.NewReader(buf.Bytes()[:buf.Len()/2]), vm.TestNetworkName)
		assert.Error(t, err)
	})
}

func puppetCalls(t *testing.T, v *vm.VM, p address.Address) uint64 {
	var st puppet.State
	require.NoError(t, v.GetState(p, &st))
	return st.Calls
}

func serialize(t *testing.T, o cbor.Marshaler) []byte {
	var buf bytes.Buffer
	require.NoError(t, o.MarshalCBOR(&buf))
	return buf.Bytes()
}
