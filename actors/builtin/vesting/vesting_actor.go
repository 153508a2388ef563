package vesting

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/token"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/util/adt"
)

// Vesting actor error codes.
const (
	// The schedule has not reached the epoch the operation requires.
	ErrScheduleNotElapsed = exitcode.FirstActorSpecificExitCode + iota
	// The caller has no released amount outstanding.
	ErrNothingToClaim
	// A withdrawal destination is undefined or unknown.
	ErrInvalidRecipient
)

type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.Lock,
		3:                         a.Claim,
		4:                         a.WithdrawResidual,
		5:                         a.CustodyBalance,
		6:                         a.GetSchedule,
		7:                         a.GetBeneficiaries,
		8:                         a.GetRecord,
		9:                         a.GetInfo,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.VestingActorCodeID
}

func (a Actor) IsSingleton() bool {
	return false
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

type ConstructorParams struct {
	Token         addr.Address
	Admin         addr.Address
	Schedule      []abi.ChainEpoch
	Beneficiaries []addr.Address
}

func (a Actor) Constructor(rt runtime.Runtime, params *ConstructorParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.InitActorAddr)

	schedule := Schedule(params.Schedule)
	builtin.RequireNoErr(rt, schedule.Validate(), exitcode.ErrIllegalArgument, "invalid schedule")

	tokenAddr, err := builtin.ResolveToIDAddrWithCode(rt, params.Token, builtin.TokenActorCodeID)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid token %v", params.Token)
	admin, err := builtin.ResolveToIDAddr(rt, params.Admin)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid admin %v", params.Admin)

	builtin.RequireParam(rt, len(params.Beneficiaries) > 0, "must specify at least one beneficiary")
	builtin.RequireParam(rt, len(params.Beneficiaries) <= MaxBeneficiaries, "too many beneficiaries %d, max %d",
		len(params.Beneficiaries), MaxBeneficiaries)

	resolved := make([]addr.Address, 0, len(params.Beneficiaries))
	seen := make(map[addr.Address]struct{}, len(params.Beneficiaries))
	for _, b := range params.Beneficiaries {
		id, err := builtin.ResolveToIDAddr(rt, b)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid beneficiary %v", b)
		if _, dup := seen[id]; dup {
			rt.Abortf(exitcode.ErrIllegalArgument, "duplicate beneficiary %v", b)
		}
		seen[id] = struct{}{}
		resolved = append(resolved, id)
	}

	st, err := ConstructState(adt.AsStore(rt), tokenAddr, admin, schedule, resolved)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.StateCreate(st)
	return nil
}

type LockParams struct {
	Amount abi.TokenAmount
}

// Moves Amount of the caller's tokens into custody, adding it to the caller's locked total.
// The caller must have approved this actor to spend at least Amount.
func (a Actor) Lock(rt runtime.Runtime, params *LockParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerType(builtin.CallerTypesSignable...)
	caller := rt.Caller()

	var st State
	rt.StateReadonly(&st)
	if !st.IsBeneficiary(caller) {
		rt.Abortf(exitcode.ErrForbidden, "%v is not a registered beneficiary", caller)
	}
	builtin.RequireParam(rt, params.Amount.Sign() > 0, "lock amount must be positive, got %v", params.Amount)

	balance := queryBalance(rt, st.Token, caller)
	if balance.LessThan(params.Amount) {
		rt.Abortf(exitcode.ErrInsufficientFunds, "balance %v less than lock amount %v", balance, params.Amount)
	}
	allowance := queryAllowance(rt, st.Token, caller, rt.Receiver())
	if allowance.LessThan(params.Amount) {
		rt.Abortf(exitcode.ErrInsufficientFunds, "allowance %v less than lock amount %v", allowance, params.Amount)
	}

	var record *VestingRecord
	rt.StateTransaction(&st, func() {
		var err error
		record, err = st.AddLocked(adt.AsStore(rt), caller, params.Amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to lock %v for %v", params.Amount, caller)
	})

	code := rt.Send(st.Token, builtin.MethodsToken.TransferFrom, &token.TransferFromParams{
		From:   caller,
		To:     rt.Receiver(),
		Amount: params.Amount,
	}, &builtin.Discard{})
	builtin.RequireSuccess(rt, code, "failed to transfer %v from %v into custody", params.Amount, caller)

	rt.EmitEvent(EventLock, &LockEvent{Beneficiary: caller, Amount: params.Amount})
	rt.Log(rtt.INFO, "locked %v for %v, total %v on %s plan", params.Amount, caller, record.TotalLocked, record.Plan().Type)
	return nil
}

type ClaimReturn struct {
	Amount abi.TokenAmount
}

// Releases to the caller everything its elapsed checkpoints entitle it to and it has not yet claimed.
func (a Actor) Claim(rt runtime.Runtime, _ *abi.EmptyValue) *ClaimReturn {
	rt.ValidateImmediateCallerType(builtin.CallerTypesSignable...)
	caller := rt.Caller()

	var st State
	var amount abi.TokenAmount
	rt.StateTransaction(&st, func() {
		var err error
		amount, err = st.Claim(adt.AsStore(rt), caller, rt.CurrEpoch())
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to claim for %v", caller)
	})

	code := rt.Send(st.Token, builtin.MethodsToken.Transfer, &token.TransferParams{
		To:     caller,
		Amount: amount,
	}, &builtin.Discard{})
	builtin.RequireSuccess(rt, code, "failed to transfer %v to %v", amount, caller)

	rt.EmitEvent(EventClaim, &ClaimEvent{Beneficiary: caller, Amount: amount})
	rt.Log(rtt.INFO, "released %v to %v at epoch %d", amount, caller, rt.CurrEpoch())
	return &ClaimReturn{Amount: amount}
}

type WithdrawResidualParams struct {
	Destination addr.Address
}

type WithdrawResidualReturn struct {
	Amount abi.TokenAmount
}

// Transfers the entire custody balance to Destination once the grace period after the final checkpoint
// has passed. Unclaimed entitlements are swept too; ledger records are left unchanged.
func (a Actor) WithdrawResidual(rt runtime.Runtime, params *WithdrawResidualParams) *WithdrawResidualReturn {
	rt.ValidateImmediateCallerType(builtin.CallerTypesSignable...)

	var st State
	rt.StateReadonly(&st)
	if rt.Caller() != st.Admin {
		rt.Abortf(exitcode.ErrForbidden, "%v is not the administrator", rt.Caller())
	}
	if sweepEpoch := st.SweepEpoch(); rt.CurrEpoch() < sweepEpoch {
		rt.Abortf(ErrScheduleNotElapsed, "residual withdrawal opens at epoch %d, current epoch %d", sweepEpoch, rt.CurrEpoch())
	}
	if params.Destination == addr.Undef {
		rt.Abortf(ErrInvalidRecipient, "destination must be defined")
	}
	dest, ok := rt.ResolveAddress(params.Destination)
	if !ok {
		rt.Abortf(ErrInvalidRecipient, "unable to resolve destination %v", params.Destination)
	}

	custody := queryBalance(rt, st.Token, rt.Receiver())
	if custody.Sign() <= 0 {
		rt.Abortf(exitcode.ErrInsufficientFunds, "no custody balance to withdraw")
	}

	code := rt.Send(st.Token, builtin.MethodsToken.Transfer, &token.TransferParams{
		To:     dest,
		Amount: custody,
	}, &builtin.Discard{})
	builtin.RequireSuccess(rt, code, "failed to transfer residual %v to %v", custody, dest)

	rt.EmitEvent(EventSweep, &SweepEvent{Destination: dest, Amount: custody})
	rt.Log(rtt.WARN, "swept residual custody %v to %v, outstanding entitlements %v", custody, dest, st.Outstanding())
	return &WithdrawResidualReturn{Amount: custody}
}

// Token balance held in custody by this actor.
func (a Actor) CustodyBalance(rt runtime.Runtime, _ *abi.EmptyValue) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.StateReadonly(&st)
	balance := queryBalance(rt, st.Token, rt.Receiver())
	return &balance
}

type ScheduleReturn struct {
	Checkpoints []abi.ChainEpoch
}

func (a Actor) GetSchedule(rt runtime.Runtime, _ *abi.EmptyValue) *ScheduleReturn {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.StateReadonly(&st)
	return &ScheduleReturn{Checkpoints: st.Schedule}
}

type BeneficiariesReturn struct {
	Beneficiaries []addr.Address
}

func (a Actor) GetBeneficiaries(rt runtime.Runtime, _ *abi.EmptyValue) *BeneficiariesReturn {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.StateReadonly(&st)
	return &BeneficiariesReturn{Beneficiaries: st.Beneficiaries}
}

type RecordView struct {
	TotalLocked  abi.TokenAmount
	TotalClaimed abi.TokenAmount
	Plan         PlanType
	// Amount a claim at the current epoch would release. Zero when a claim would be rejected.
	Claimable abi.TokenAmount
}

// Reports a beneficiary's record. Unknown addresses and absent records report zeros on the short plan.
func (a Actor) GetRecord(rt runtime.Runtime, who *addr.Address) *RecordView {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.StateReadonly(&st)

	view := &RecordView{
		TotalLocked:  big.Zero(),
		TotalClaimed: big.Zero(),
		Plan:         ShortPlan.Type,
		Claimable:    big.Zero(),
	}
	id, ok := rt.ResolveAddress(*who)
	if !ok {
		return view
	}

	store := adt.AsStore(rt)
	record, found, err := st.LoadRecord(store, id)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load record for %v", id)
	if !found {
		return view
	}
	view.TotalLocked = record.TotalLocked
	view.TotalClaimed = record.TotalClaimed
	view.Plan = record.Plan().Type

	claimable, _, err := st.ClaimableAt(store, id, rt.CurrEpoch())
	if err == nil {
		view.Claimable = claimable
	} else if code := exitcode.Unwrap(err, exitcode.ErrIllegalState); code != ErrNothingToClaim && code != ErrScheduleNotElapsed {
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to compute claimable for %v", id)
	}
	return view
}

type InfoReturn struct {
	Token        addr.Address
	Admin        addr.Address
	TotalLocked  abi.TokenAmount
	TotalClaimed abi.TokenAmount
	SweepEpoch   abi.ChainEpoch
}

func (a Actor) GetInfo(rt runtime.Runtime, _ *abi.EmptyValue) *InfoReturn {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.StateReadonly(&st)
	return &InfoReturn{
		Token:        st.Token,
		Admin:        st.Admin,
		TotalLocked:  st.TotalLocked,
		TotalClaimed: st.TotalClaimed,
		SweepEpoch:   st.SweepEpoch(),
	}
}

func queryBalance(rt runtime.Runtime, tokenAddr, holder addr.Address) abi.TokenAmount {
	var balance abi.TokenAmount
	code := rt.Send(tokenAddr, builtin.MethodsToken.BalanceOf, &holder, &balance)
	builtin.RequireSuccess(rt, code, "failed to query token balance of %v", holder)
	return balance
}

func queryAllowance(rt runtime.Runtime, tokenAddr, owner, spender addr.Address) abi.TokenAmount {
	var allowance abi.TokenAmount
	code := rt.Send(tokenAddr, builtin.MethodsToken.Allowance, &token.AllowanceParams{
		Owner:   owner,
		Spender: spender,
	}, &allowance)
	builtin.RequireSuccess(rt, code, "failed to query token allowance of %v for %v", owner, spender)
	return allowance
}
