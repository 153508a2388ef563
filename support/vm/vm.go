package vm

import (
	"context"
	"fmt"
	"sync"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/account"
	init_ "github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/init"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/states"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/util/adt"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/support/ipld"
)

var log = logging.Logger("vm")

// VM holds the state and executes messages over the state.
// Messages are applied one at a time; the VM may be shared between goroutines.
type VM struct {
	ctx   context.Context
	bs    *ipld.BlockStoreInMemory
	store adt.Store
	mu    sync.Mutex

	currentEpoch abi.ChainEpoch
	networkName  string

	actorImpls  ActorImplLookup
	stateRoot   cid.Cid      // The last committed root.
	actors      *states.Tree // The current (not necessarily committed) root node.
	actorsDirty bool
	events      *states.EventLog

	emptyObject cid.Cid

	logs        []string
	invocations []*Invocation

	vectorGen *vectorGen
}

type ActorImplLookup map[cid.Cid]runtime.VMActor

type internalMessage struct {
	from   address.Address
	to     address.Address
	method abi.MethodNum
	params cbor.Marshaler
}

type MessageResult struct {
	Ret  cbor.Marshaler
	Code exitcode.ExitCode
}

// NewVM creates a new runtime for executing messages.
func NewVM(ctx context.Context, actorImpls ActorImplLookup, bs *ipld.BlockStoreInMemory, networkName string) *VM {
	store := adt.WrapBlockStore(ctx, bs)
	actors, err := states.NewTree(store)
	if err != nil {
		panic(err)
	}
	actorRoot, err := actors.Flush()
	if err != nil {
		panic(err)
	}
	events, err := states.NewEventLog(store)
	if err != nil {
		panic(err)
	}

	emptyObject, err := store.Put(ctx, []struct{}{})
	if err != nil {
		panic(err)
	}

	return &VM{
		ctx:         ctx,
		bs:          bs,
		store:       store,
		networkName: networkName,
		actorImpls:  actorImpls,
		actors:      actors,
		stateRoot:   actorRoot,
		actorsDirty: false,
		events:      events,
		emptyObject: emptyObject,
		vectorGen:   newVectorGen(),
	}
}

func (vm *VM) rollback(root cid.Cid) error {
	var err error
	vm.actors, err = states.LoadTree(vm.store, root)
	if err != nil {
		return xerrors.Errorf("failed to load node for %s: %w", root, err)
	}

	// reset the root node
	vm.stateRoot = root
	vm.actorsDirty = false
	return nil
}

func (vm *VM) GetActor(a address.Address) (*states.Actor, bool, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.getActor(a)
}

func (vm *VM) getActor(a address.Address) (*states.Actor, bool, error) {
	idAddr, found := vm.normalizeAddress(a)
	if !found {
		return nil, false, nil
	}
	return vm.actors.GetActor(idAddr)
}

// setActor sets the the actor to the given value whether it previously existed or not.
//
// This method will not check if the actor previously existed, it will blindly overwrite it.
func (vm *VM) setActor(key address.Address, a *states.Actor) error {
	if err := vm.actors.SetActor(key, a); err != nil {
		return xerrors.Errorf("setting actor in state tree failed: %w", err)
	}
	vm.actorsDirty = true
	return nil
}

// setActorState stores the state and updates the addressed actor
func (vm *VM) setActorState(key address.Address, state cbor.Marshaler) error {
	stateCid, err := vm.store.Put(vm.ctx, state)
	if err != nil {
		return err
	}
	a, found, err := vm.getActor(key)
	if err != nil {
		return err
	}
	if !found {
		return xerrors.Errorf("actor %v not found", key)
	}
	a.Head = stateCid
	return vm.setActor(key, a)
}

func (vm *VM) checkpoint() (cid.Cid, error) {
	// commit the vm state
	root, err := vm.actors.Flush()
	if err != nil {
		return cid.Undef, err
	}
	vm.stateRoot = root
	vm.actorsDirty = false

	return root, nil
}

func (vm *VM) normalizeAddress(addr address.Address) (address.Address, bool) {
	// short-circuit if the address is already an ID address
	if addr.Protocol() == address.ID {
		return addr, true
	}

	// resolve the target address via the InitActor, and attempt to load state.
	initActorEntry, found, err := vm.actors.GetActor(builtin.InitActorAddr)
	if err != nil {
		panic(xerrors.Errorf("failed to load init actor: %w", err))
	}
	if !found {
		panic(xerrors.Errorf("no init actor"))
	}

	// get a view into the actor state
	var state init_.State
	if err := vm.store.Get(vm.ctx, initActorEntry.Head, &state); err != nil {
		panic(err)
	}

	idAddr, found, err := state.ResolveAddress(vm.store, addr)
	if err != nil {
		panic(err)
	}
	return idAddr, found
}

// NormalizeAddress resolves any address to its ID address, if the init actor knows it.
func (vm *VM) NormalizeAddress(addr address.Address) (address.Address, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.normalizeAddress(addr)
}

// ApplyMessage applies the message to the current state.
// A message that aborts leaves no trace in the state tree or event log beyond the sender's call sequence
// number. A Go error is returned only when the VM itself is broken.
func (vm *VM) ApplyMessage(from, to address.Address, method abi.MethodNum, params cbor.Marshaler, name string) (MessageResult, error) {
	// This method does not actually execute the message itself,
	// but rather deals with the pre/post processing of a message.
	// (see: `invocationContext.invoke()` for the dispatch and execution)
	vm.mu.Lock()
	defer vm.mu.Unlock()

	// load actor from global state
	fromID, ok := vm.normalizeAddress(from)
	if !ok {
		return MessageResult{Code: exitcode.SysErrSenderInvalid}, nil
	}

	fromActor, found, err := vm.actors.GetActor(fromID)
	if err != nil {
		return MessageResult{}, err
	}
	if !found {
		// Execution error; sender does not exist at time of message execution.
		return MessageResult{Code: exitcode.SysErrSenderInvalid}, nil
	}

	if !fromActor.Code.Equals(builtin.AccountActorCodeID) {
		// Execution error; sender is not an account.
		return MessageResult{Code: exitcode.SysErrSenderInvalid}, nil
	}

	// Load sender account state to obtain stable pubkey address.
	var senderState account.State
	if err := vm.store.Get(vm.ctx, fromActor.Head, &senderState); err != nil {
		return MessageResult{}, err
	}

	if err := vm.vectorGen.before(vm); err != nil {
		return MessageResult{}, xerrors.Errorf("failed to record vector preconditions: %w", err)
	}

	// Even if the message fails the call sequence number increment is applied.
	callSeq := fromActor.CallSeqNum
	fromActor.CallSeqNum++
	if err := vm.setActor(fromID, fromActor); err != nil {
		return MessageResult{}, err
	}

	// checkpoint state
	priorRoot, err := vm.checkpoint()
	if err != nil {
		return MessageResult{}, err
	}

	// send
	// 1. build internal message
	// 2. build invocation context
	// 3. process the msg

	topLevel := topLevelContext{
		originatorStableAddress: senderState.Address,
		originatorCallSeq:       callSeq,
		newActorAddressCount:    0,
		active:                  make(map[address.Address]struct{}),
	}

	// build internal msg
	imsg := internalMessage{
		from:   fromID,
		to:     to,
		method: method,
		params: params,
	}

	// build invocation context
	ctx := newInvocationContext(vm, &topLevel, imsg, fromActor, vm.emptyObject)

	// 3. invoke
	ret, exitCode := ctx.invoke()

	// Roll back all state if the receipt's exit code is not ok.
	// This is required in addition to rollback within the invocation context since top level messages can fail for
	// more reasons than internal ones. Invocation context still needs its own rollback so actors can recover and
	// proceed from a nested call failure.
	if exitCode != exitcode.Ok {
		if err := vm.rollback(priorRoot); err != nil {
			return MessageResult{}, err
		}
	} else {
		if err := vm.events.Append(ctx.events...); err != nil {
			return MessageResult{}, err
		}
		if _, err := vm.checkpoint(); err != nil {
			return MessageResult{}, err
		}
	}

	vm.invocations = append(vm.invocations, ctx.record(ret, exitCode))

	result := MessageResult{Code: exitCode, Ret: ret.inner}
	if err := vm.vectorGen.after(vm, from, to, method, params, callSeq, result, name); err != nil {
		return MessageResult{}, xerrors.Errorf("failed to write vector: %w", err)
	}
	return result, nil
}

func (vm *VM) GetState(addr address.Address, out cbor.Unmarshaler) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	act, found, err := vm.getActor(addr)
	if err != nil {
		return err
	}
	if !found {
		return xerrors.Errorf("actor %v not found", addr)
	}
	return vm.store.Get(vm.ctx, act.Head, out)
}

func (vm *VM) Store() adt.Store {
	return vm.store
}

// StateRoot returns the root of the last committed state tree.
func (vm *VM) StateRoot() cid.Cid {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.stateRoot
}

// EventsRoot returns the root of the event log.
func (vm *VM) EventsRoot() (cid.Cid, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.events.Root()
}

// Events returns all committed events of a type, or all events if the type is empty, in emission order.
func (vm *VM) Events(eventType string) ([]states.Event, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.events.Collect(eventType)
}

// Advances the clock. The clock never moves backwards.
func (vm *VM) SetEpoch(epoch abi.ChainEpoch) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if epoch < vm.currentEpoch {
		return xerrors.Errorf("cannot move epoch backwards from %d to %d", vm.currentEpoch, epoch)
	}
	vm.currentEpoch = epoch
	return nil
}

func (vm *VM) GetEpoch() abi.ChainEpoch {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.currentEpoch
}

// Invocations returns the invocation trees of all messages applied so far.
func (vm *VM) Invocations() []*Invocation {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.invocations
}

// LastInvocation returns the invocation tree of the most recently applied message.
func (vm *VM) LastInvocation() *Invocation {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if len(vm.invocations) == 0 {
		return nil
	}
	return vm.invocations[len(vm.invocations)-1]
}

// Logs returns the actor log lines that passed level filtering.
func (vm *VM) Logs() []string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]string(nil), vm.logs...)
}

// Checks the state invariants of every actor, and those that span actors.
func (vm *VM) CheckStateInvariants() (*builtin.MessageAccumulator, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return states.CheckStateInvariants(vm.actors, vm.currentEpoch)
}

func (vm *VM) getActorImpl(code cid.Cid) runtime.VMActor {
	actorImpl, ok := vm.actorImpls[code]
	if !ok {
		vm.Abortf(exitcode.SysErrInvalidReceiver, "actor implementation not found for code %v", code)
	}
	return actorImpl
}

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (vm *VM) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

//
// implement runtime.Message for internalMessage
//

var _ runtime.Message = (*internalMessage)(nil)

// Caller implements runtime.Message.
func (msg internalMessage) Caller() address.Address {
	return msg.from
}

// Receiver implements runtime.Message.
func (msg internalMessage) Receiver() address.Address {
	return msg.to
}
