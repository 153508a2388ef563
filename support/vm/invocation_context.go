package vm

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"reflect"
	"time"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	init_ "github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/init"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/states"
)

var typeOfRuntimeInterface = reflect.TypeOf((*runtime.Runtime)(nil)).Elem()
var typeOfCborUnmarshaler = reflect.TypeOf((*cbor.Unmarshaler)(nil)).Elem()
var typeOfCborMarshaler = reflect.TypeOf((*cbor.Marshaler)(nil)).Elem()
var typeOfEmptyValue = reflect.TypeOf(abi.EmptyValue{})

// Context for an individual message invocation, including inter-actor sends.
type invocationContext struct {
	rt               *VM
	topLevel         *topLevelContext
	msg              internalMessage // The message being processed
	fromActor        *states.Actor   // The immediate calling actor
	toActor          *states.Actor   // The actor to which message is addressed
	emptyObject      cid.Cid
	allowSideEffects bool
	callerValidated  bool
	// Events emitted by this invocation and its successful sub-invocations.
	events         []*states.Event
	subInvocations []*Invocation
}

// Context for a top-level invocation sequence
type topLevelContext struct {
	originatorStableAddress address.Address // Stable (public key) address of the top-level message sender.
	originatorCallSeq       uint64          // Call sequence number of the top-level message.
	newActorAddressCount    uint64          // Count of calls to NewActorAddress (mutable).
	// Receivers with a frame on the call stack. An actor may not be entered again until it returns.
	active map[address.Address]struct{}
}

func newInvocationContext(rt *VM, topLevel *topLevelContext, msg internalMessage, fromActor *states.Actor, emptyObject cid.Cid) invocationContext {
	// Note: the toActor and stateHandle are loaded during the `invoke()`
	return invocationContext{
		rt:               rt,
		topLevel:         topLevel,
		msg:              msg,
		fromActor:        fromActor,
		toActor:          nil,
		emptyObject:      emptyObject,
		allowSideEffects: true,
		callerValidated:  false,
	}
}

var _ runtime.StateHandle = (*invocationContext)(nil)

func (ic *invocationContext) loadState(obj cbor.Unmarshaler) cid.Cid {
	// The actor must be loaded from store every time since the state may have changed via a different state handle
	// (e.g. in a recursive call).
	actr := ic.loadActor()
	c := actr.Head
	if !c.Defined() {
		ic.Abortf(exitcode.SysErrorIllegalActor, "failed to load undefined state, must construct first")
	}
	err := ic.rt.store.Get(ic.rt.ctx, c, obj)
	if err != nil {
		panic(fmt.Errorf("failed to load state for actor %s, CID %s: %w", ic.msg.to, c, err))
	}
	return c
}

func (ic *invocationContext) loadActor() *states.Actor {
	actr, found, err := ic.rt.actors.GetActor(ic.msg.to)
	if err != nil {
		panic(err)
	}
	if !found {
		panic(fmt.Errorf("failed to find actor %s for state", ic.msg.to))
	}
	return actr
}

// Stores the state and updates the actor's head.
func (ic *invocationContext) storeActor(obj cbor.Marshaler) {
	c, err := ic.rt.store.Put(ic.rt.ctx, obj)
	if err != nil {
		ic.Abortf(exitcode.SysErrSerialization, "failed to store state: %s", err)
	}
	actr := ic.loadActor()
	actr.Head = c
	if err := ic.rt.setActor(ic.msg.to, actr); err != nil {
		panic(err)
	}
	ic.toActor = actr
}

/////////////////////////////////////////////
//          Runtime methods
/////////////////////////////////////////////

var _ runtime.Runtime = (*invocationContext)(nil)

func (ic *invocationContext) Caller() address.Address {
	return ic.msg.from
}

func (ic *invocationContext) Receiver() address.Address {
	return ic.msg.to
}

func (ic *invocationContext) StateCreate(obj cbor.Marshaler) {
	actr := ic.loadActor()
	if actr.Head.Defined() && !ic.emptyObject.Equals(actr.Head) {
		ic.Abortf(exitcode.SysErrorIllegalActor, "failed to construct actor state: already initialized")
	}
	ic.storeActor(obj)
}

func (ic *invocationContext) StateReadonly(obj cbor.Unmarshaler) {
	ic.loadState(obj)
}

func (ic *invocationContext) StateTransaction(obj cbor.Er, f func()) {
	if obj == nil {
		ic.Abortf(exitcode.SysErrorIllegalActor, "Must not pass nil to Transaction()")
	}
	if !ic.allowSideEffects {
		ic.Abortf(exitcode.SysErrorIllegalActor, "nested transaction")
	}

	// Load state to obj.
	ic.loadState(obj)

	// Call user code allowing mutation but not side-effects
	ic.allowSideEffects = false
	f()
	ic.allowSideEffects = true

	ic.storeActor(obj)
}

func (ic *invocationContext) StoreGet(c cid.Cid, o cbor.Unmarshaler) bool {
	if !ic.rt.bs.Has(c) {
		return false
	}
	if err := ic.rt.store.Get(ic.rt.ctx, c, o); err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to load %v: %s", c, err)
	}
	return true
}

func (ic *invocationContext) StorePut(x cbor.Marshaler) cid.Cid {
	c, err := ic.rt.store.Put(ic.rt.ctx, x)
	if err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to store: %s", err)
	}
	return c
}

func (ic *invocationContext) NetworkName() string {
	return ic.rt.networkName
}

func (ic *invocationContext) CurrEpoch() abi.ChainEpoch {
	return ic.rt.currentEpoch
}

func (ic *invocationContext) ValidateImmediateCallerAcceptAny() {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
}

func (ic *invocationContext) ValidateImmediateCallerIs(addrs ...address.Address) {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
	for _, addr := range addrs {
		if ic.msg.from == addr {
			return
		}
	}
	ic.Abortf(exitcode.ErrForbidden, "caller address %v forbidden, allowed: %v", ic.msg.from, addrs)
}

func (ic *invocationContext) ValidateImmediateCallerType(types ...cid.Cid) {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
	for _, t := range types {
		if t.Equals(ic.fromActor.Code) {
			return
		}
	}
	ic.Abortf(exitcode.ErrForbidden, "caller type %v forbidden, allowed: %v", ic.fromActor.Code, types)
}

func (ic *invocationContext) ResolveAddress(address address.Address) (address.Address, bool) {
	return ic.rt.normalizeAddress(address)
}

func (ic *invocationContext) GetActorCodeCID(a address.Address) (ret cid.Cid, ok bool) {
	idAddr, found := ic.rt.normalizeAddress(a)
	if !found {
		return cid.Undef, false
	}
	entry, found, err := ic.rt.actors.GetActor(idAddr)
	if err != nil {
		panic(err)
	}
	if !found {
		return cid.Undef, false
	}
	return entry.Code, true
}

func (ic *invocationContext) Send(toAddr address.Address, methodNum abi.MethodNum, params cbor.Marshaler, out cbor.Er) exitcode.ExitCode {
	// check if side-effects are allowed
	if !ic.allowSideEffects {
		ic.Abortf(exitcode.SysErrorIllegalActor, "Calling Send() is not allowed during side-effect lock")
	}
	// prepare
	// 1. alias fromActor
	from := ic.msg.to
	fromActor := ic.toActor

	// 2. build internal message
	newMsg := internalMessage{
		from:   from,
		to:     toAddr,
		method: methodNum,
		params: params,
	}

	// 3. build new context
	newCtx := newInvocationContext(ic.rt, ic.topLevel, newMsg, fromActor, ic.emptyObject)

	// 4. invoke
	ret, code := newCtx.invoke()
	ic.subInvocations = append(ic.subInvocations, newCtx.record(ret, code))
	if !code.IsSuccess() {
		return code
	}

	ic.events = append(ic.events, newCtx.events...)
	if out != nil && ret.inner != nil {
		if err := ret.Into(out); err != nil {
			ic.Abortf(exitcode.ErrSerialization, "failed to unmarshal return value: %s", err)
		}
	}
	return code
}

func (ic *invocationContext) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	ic.rt.Abortf(errExitCode, msg, args...)
}

func (ic *invocationContext) NewActorAddress() address.Address {
	var buf bytes.Buffer

	b1, err := ic.topLevel.originatorStableAddress.Marshal()
	if err != nil {
		panic(err)
	}
	_, err = buf.Write(b1)
	if err != nil {
		panic(err)
	}

	err = binary.Write(&buf, binary.BigEndian, ic.topLevel.originatorCallSeq)
	if err != nil {
		panic(err)
	}

	err = binary.Write(&buf, binary.BigEndian, ic.topLevel.newActorAddressCount)
	if err != nil {
		panic(err)
	}

	actorAddress, err := address.NewActorAddress(buf.Bytes())
	if err != nil {
		panic(err)
	}
	ic.topLevel.newActorAddressCount++
	return actorAddress
}

func (ic *invocationContext) CreateActor(codeID cid.Cid, addr address.Address) {
	if !ic.allowSideEffects {
		ic.Abortf(exitcode.SysErrorIllegalActor, "Calling CreateActor() is not allowed during side-effect lock")
	}
	if ic.msg.to != builtin.InitActorAddr {
		ic.Abortf(exitcode.ErrForbidden, "only the init actor may create actors, not %v", ic.msg.to)
	}
	ic.createActor(codeID, addr)
}

func (ic *invocationContext) createActor(codeID cid.Cid, addr address.Address) {
	impl, ok := ic.rt.actorImpls[codeID]
	if !ok {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "Can only create built-in actors.")
	}
	if impl.IsSingleton() {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "Can only have one instance of singleton actors.")
	}

	_, found, err := ic.rt.actors.GetActor(addr)
	if err != nil {
		panic(err)
	}
	if found {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "Actor address already exists")
	}

	newActor := &states.Actor{
		Head: ic.emptyObject,
		Code: codeID,
	}
	if err := ic.rt.setActor(addr, newActor); err != nil {
		panic(err)
	}
}

func (ic *invocationContext) Context() context.Context {
	return ic.rt.ctx
}

func (ic *invocationContext) StartSpan(name string) func() {
	start := time.Now()
	return func() {
		log.Debugw("span", "name", name, "actor", ic.msg.to.String(), "elapsed", time.Since(start))
	}
}

func (ic *invocationContext) Log(level rtt.LogLevel, msg string, args ...interface{}) {
	if level < builtin.GetCodeLogLevel(ic.toActor.Code, rtt.DEBUG) {
		return
	}
	line := fmt.Sprintf(msg, args...)
	ic.rt.logs = append(ic.rt.logs, line)

	fields := []interface{}{"actor", ic.msg.to.String(), "epoch", ic.rt.currentEpoch}
	switch level {
	case rtt.DEBUG:
		log.Debugw(line, fields...)
	case rtt.INFO:
		log.Infow(line, fields...)
	case rtt.WARN:
		log.Warnw(line, fields...)
	default:
		log.Errorw(line, fields...)
	}
}

func (ic *invocationContext) EmitEvent(eventType string, payload cbor.Marshaler) {
	if !ic.allowSideEffects {
		ic.Abortf(exitcode.SysErrorIllegalActor, "Calling EmitEvent() is not allowed during side-effect lock")
	}
	buf := new(bytes.Buffer)
	if err := payload.MarshalCBOR(buf); err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to serialize %s event: %s", eventType, err)
	}
	ic.events = append(ic.events, &states.Event{
		Emitter: ic.msg.to,
		Epoch:   ic.rt.currentEpoch,
		Type:    eventType,
		Payload: buf.Bytes(),
	})
}

/////////////////////////////////////////////
//          Dispatch
/////////////////////////////////////////////

func (ic *invocationContext) invoke() (ret returnWrapper, errcode exitcode.ExitCode) {
	// Checkpoint state, for restoration on revert
	priorRoot, err := ic.rt.checkpoint()
	if err != nil {
		panic(err)
	}

	// Install handler for abort, which rolls back all state changes from this and any nested invocations.
	// This is the only path by which a non-OK exit code may be returned.
	defer func() {
		if r := recover(); r != nil {
			if err := ic.rt.rollback(priorRoot); err != nil {
				panic(err)
			}
			switch r := r.(type) {
			case abort:
				log.Debugw("abort", "actor", ic.msg.to.String(), "method", ic.msg.method, "code", r.code, "msg", r.msg)
				ret = returnWrapper{inner: nil}
				errcode = r.code
				ic.events = nil
				return
			default:
				panic(r)
			}
		}
	}()

	// 1. resolve target: get or create receiver actor
	ic.toActor, ic.msg.to = ic.resolveTarget(ic.msg.to)

	// 2. guard against re-entry into an actor that already has a frame on the stack
	if _, active := ic.topLevel.active[ic.msg.to]; active {
		ic.Abortf(exitcode.SysErrForbidden, "re-entrant call into actor %v", ic.msg.to)
	}
	ic.topLevel.active[ic.msg.to] = struct{}{}
	defer delete(ic.topLevel.active, ic.msg.to)

	// 3. load target actor code
	actorImpl := ic.rt.getActorImpl(ic.toActor.Code)

	// 4. find the method
	exports := actorImpl.Exports()
	if uint64(len(exports)) <= uint64(ic.msg.method) || exports[ic.msg.method] == nil {
		ic.Abortf(exitcode.SysErrInvalidMethod, "no method %d on actor %v", ic.msg.method, ic.msg.to)
	}
	method := reflect.ValueOf(exports[ic.msg.method])
	ic.checkMethodType(method)

	// 5. decode params
	paramType := method.Type().In(1).Elem()
	paramValue := reflect.New(paramType)
	present, err := decodeParams(ic.msg.params, paramValue.Interface().(cbor.Unmarshaler))
	if err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to decode parameters for method %d: %s", ic.msg.method, err)
	}
	if !present && paramType != typeOfEmptyValue {
		ic.Abortf(exitcode.ErrSerialization, "method %d on actor %v requires parameters", ic.msg.method, ic.msg.to)
	}

	// 6. dispatch
	out := method.Call([]reflect.Value{reflect.ValueOf(ic), paramValue})

	if !ic.callerValidated {
		ic.Abortf(exitcode.SysErrorIllegalActor, "Caller MUST be validated during method execution")
	}

	retVal := out[0]
	if retVal.IsNil() {
		return returnWrapper{inner: nil}, exitcode.Ok
	}
	return returnWrapper{inner: retVal.Interface().(cbor.Marshaler)}, exitcode.Ok
}

// resolveTarget loads and actor and returns its ActorID address.
//
// If the target actor does not exist, and the target address is a pub-key address,
// a new account actor will be created.
// Otherwise, this method will abort execution.
func (ic *invocationContext) resolveTarget(target address.Address) (*states.Actor, address.Address) {
	// resolve the target address via the InitActor, and attempt to load state.
	initActorEntry, found, err := ic.rt.actors.GetActor(builtin.InitActorAddr)
	if err != nil {
		panic(err)
	}
	if !found {
		ic.Abortf(exitcode.SysErrSenderInvalid, "init actor not found")
	}

	if target == builtin.InitActorAddr {
		return initActorEntry, target
	}

	// get a view into the actor state
	var state init_.State
	if err := ic.rt.store.Get(ic.rt.ctx, initActorEntry.Head, &state); err != nil {
		panic(err)
	}

	// lookup the ActorID based on the address
	targetIDAddr, found, err := state.ResolveAddress(ic.rt.store, target)
	created := false
	if err != nil {
		panic(err)
	} else if !found {
		if target.Protocol() != address.SECP256K1 && target.Protocol() != address.BLS {
			// Don't implicitly create an account actor for an address without an associated key.
			ic.Abortf(exitcode.SysErrInvalidReceiver, "cannot create account for address type")
		}

		targetIDAddr, err = state.MapAddressToNewID(ic.rt.store, target)
		if err != nil {
			panic(err)
		}
		// store new state
		initHead, err := ic.rt.store.Put(ic.rt.ctx, &state)
		if err != nil {
			panic(err)
		}
		// update init actor
		initActorEntry.Head = initHead
		if err := ic.rt.setActor(builtin.InitActorAddr, initActorEntry); err != nil {
			panic(err)
		}

		ic.createActor(builtin.AccountActorCodeID, targetIDAddr)

		// call constructor on account
		systemActor, found, err := ic.rt.actors.GetActor(builtin.SystemActorAddr)
		if err != nil {
			panic(err)
		}
		if !found {
			ic.Abortf(exitcode.SysErrInvalidReceiver, "system actor not found")
		}
		newMsg := internalMessage{
			from:   builtin.SystemActorAddr,
			to:     targetIDAddr,
			method: builtin.MethodsAccount.Constructor,
			params: &target,
		}

		newCtx := newInvocationContext(ic.rt, ic.topLevel, newMsg, systemActor, ic.emptyObject)
		_, code := newCtx.invoke()
		if code.IsError() {
			// we failed to construct an account actor..
			ic.Abortf(code, "failed to construct account actor")
		}

		created = true
	}

	// load actor
	targetActor, found, err := ic.rt.actors.GetActor(targetIDAddr)
	if err != nil {
		panic(err)
	}
	if !found && created {
		panic(fmt.Errorf("unreachable: actor is supposed to exist but it does not. addr: %s, idAddr: %s", target, targetIDAddr))
	}
	if !found {
		ic.Abortf(exitcode.SysErrInvalidReceiver, "actor at address %s registered but not found", targetIDAddr.String())
	}

	return targetActor, targetIDAddr
}

func (ic *invocationContext) checkMethodType(meth reflect.Value) {
	t := meth.Type()
	ok := t.Kind() == reflect.Func &&
		t.NumIn() == 2 &&
		t.In(0) == typeOfRuntimeInterface &&
		t.In(1).Kind() == reflect.Ptr &&
		t.In(1).Implements(typeOfCborUnmarshaler) &&
		t.NumOut() == 1 &&
		t.Out(0).Implements(typeOfCborMarshaler)
	if !ok {
		ic.Abortf(exitcode.SysErrorIllegalActor, "method %d on actor %v has invalid signature %v", ic.msg.method, ic.msg.to, t)
	}
}

func (ic *invocationContext) assertf(condition bool, msg string, args ...interface{}) {
	if !condition {
		ic.Abortf(exitcode.SysErrorIllegalActor, msg, args...)
	}
}

// Builds the trace record of this invocation.
func (ic *invocationContext) record(ret returnWrapper, code exitcode.ExitCode) *Invocation {
	return &Invocation{
		Msg:            ic.msg,
		Exitcode:       code,
		Ret:            ret.inner,
		SubInvocations: ic.subInvocations,
	}
}

// Serializes params and decodes them into the method's parameter type. Absent params decode as the zero value.
// Decodes message params into the method's parameter value, reporting whether any params were supplied.
func decodeParams(params cbor.Marshaler, into cbor.Unmarshaler) (bool, error) {
	if params == nil {
		return false, nil
	}
	buf := new(bytes.Buffer)
	if err := params.MarshalCBOR(buf); err != nil {
		return false, err
	}
	if buf.Len() == 0 {
		return false, nil
	}
	return true, into.UnmarshalCBOR(buf)
}

type returnWrapper struct {
	inner cbor.Marshaler
}

func (r returnWrapper) Into(o cbor.Unmarshaler) error {
	if r.inner == nil {
		return fmt.Errorf("failed to unmarshal nil return (did you mean abi.Empty?)")
	}
	b := bytes.Buffer{}
	if err := r.inner.MarshalCBOR(&b); err != nil {
		return err
	}
	if b.Len() == 0 {
		return nil
	}
	return o.UnmarshalCBOR(&b)
}

// An invocation of an actor method, with the messages it sent in turn.
type Invocation struct {
	Msg            internalMessage
	Exitcode       exitcode.ExitCode
	Ret            cbor.Marshaler
	SubInvocations []*Invocation
}
