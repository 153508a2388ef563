package token

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/util/adt"
)

// Event types emitted by the token actor.
const (
	EventTransfer = "transfer"
	EventApproval = "approval"
)

// Maximum length of a token name or symbol.
const MaxNameLength = 64

type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.Transfer,
		3:                         a.Approve,
		4:                         a.TransferFrom,
		5:                         a.BalanceOf,
		6:                         a.Allowance,
		7:                         a.TotalSupply,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.TokenActorCodeID
}

func (a Actor) IsSingleton() bool {
	return false
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

type ConstructorParams struct {
	Name          string
	Symbol        string
	Decimals      uint64
	InitialHolder addr.Address
	InitialSupply abi.TokenAmount
}

func (a Actor) Constructor(rt runtime.Runtime, params *ConstructorParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.InitActorAddr)

	builtin.RequireParam(rt, len(params.Name) > 0 && len(params.Name) <= MaxNameLength, "invalid name %q", params.Name)
	builtin.RequireParam(rt, len(params.Symbol) > 0 && len(params.Symbol) <= MaxNameLength, "invalid symbol %q", params.Symbol)
	builtin.RequireParam(rt, params.InitialSupply.Sign() >= 0, "negative initial supply %v", params.InitialSupply)

	store := adt.AsStore(rt)
	st, err := ConstructState(store, params.Name, params.Symbol, params.Decimals)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")

	if params.InitialSupply.Sign() > 0 {
		holder, err := builtin.ResolveToIDAddr(rt, params.InitialHolder)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid initial holder %v", params.InitialHolder)
		err = st.Mint(store, holder, params.InitialSupply)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to mint initial supply")
		rt.EmitEvent(EventTransfer, &TransferEvent{From: rt.Receiver(), To: holder, Amount: params.InitialSupply})
	}
	rt.StateCreate(st)
	return nil
}

type TransferParams struct {
	To     addr.Address
	Amount abi.TokenAmount
}

// Moves Amount from the caller's balance to To.
func (a Actor) Transfer(rt runtime.Runtime, params *TransferParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	from := rt.Caller()
	to, err := builtin.ResolveToIDAddr(rt, params.To)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid recipient %v", params.To)

	var st State
	rt.StateTransaction(&st, func() {
		err := st.Transfer(adt.AsStore(rt), from, to, params.Amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to transfer %v from %v to %v", params.Amount, from, to)
	})

	rt.EmitEvent(EventTransfer, &TransferEvent{From: from, To: to, Amount: params.Amount})
	rt.Log(rtt.DEBUG, "transfer %v from %v to %v", params.Amount, from, to)
	return nil
}

type ApproveParams struct {
	Spender addr.Address
	Amount  abi.TokenAmount
}

// Sets the amount Spender may transfer out of the caller's balance, replacing any previous allowance.
func (a Actor) Approve(rt runtime.Runtime, params *ApproveParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	owner := rt.Caller()
	spender, err := builtin.ResolveToIDAddr(rt, params.Spender)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid spender %v", params.Spender)

	var st State
	rt.StateTransaction(&st, func() {
		err := st.SetAllowance(adt.AsStore(rt), owner, spender, params.Amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to approve %v for %v", params.Amount, spender)
	})

	rt.EmitEvent(EventApproval, &ApprovalEvent{Owner: owner, Spender: spender, Amount: params.Amount})
	return nil
}

type TransferFromParams struct {
	From   addr.Address
	To     addr.Address
	Amount abi.TokenAmount
}

// Moves Amount from From to To, consuming the allowance From granted the caller.
func (a Actor) TransferFrom(rt runtime.Runtime, params *TransferFromParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	spender := rt.Caller()
	from, err := builtin.ResolveToIDAddr(rt, params.From)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid holder %v", params.From)
	to, err := builtin.ResolveToIDAddr(rt, params.To)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid recipient %v", params.To)

	var st State
	rt.StateTransaction(&st, func() {
		err := st.TransferFrom(adt.AsStore(rt), spender, from, to, params.Amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to transfer %v from %v to %v", params.Amount, from, to)
	})

	rt.EmitEvent(EventTransfer, &TransferEvent{From: from, To: to, Amount: params.Amount})
	rt.Log(rtt.DEBUG, "transfer %v from %v to %v by %v", params.Amount, from, to, spender)
	return nil
}

// Balance of a holder. Unknown addresses hold nothing.
func (a Actor) BalanceOf(rt runtime.Runtime, holder *addr.Address) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	balance := big.Zero()
	id, ok := rt.ResolveAddress(*holder)
	if !ok {
		return &balance
	}

	var st State
	rt.StateReadonly(&st)
	balance, err := st.BalanceOf(adt.AsStore(rt), id)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get balance of %v", id)
	return &balance
}

type AllowanceParams struct {
	Owner   addr.Address
	Spender addr.Address
}

func (a Actor) Allowance(rt runtime.Runtime, params *AllowanceParams) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	allowance := big.Zero()
	owner, ok := rt.ResolveAddress(params.Owner)
	if !ok {
		return &allowance
	}
	spender, ok := rt.ResolveAddress(params.Spender)
	if !ok {
		return &allowance
	}

	var st State
	rt.StateReadonly(&st)
	allowance, err := st.AllowanceOf(adt.AsStore(rt), owner, spender)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get allowance of %v for %v", owner, spender)
	return &allowance
}

func (a Actor) TotalSupply(rt runtime.Runtime, _ *abi.EmptyValue) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.StateReadonly(&st)
	return &st.TotalSupply
}

type TransferEvent struct {
	From   addr.Address
	To     addr.Address
	Amount abi.TokenAmount
}

type ApprovalEvent struct {
	Owner   addr.Address
	Spender addr.Address
	Amount  abi.TokenAmount
}
