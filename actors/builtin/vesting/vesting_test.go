package vesting_test

import (
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/token"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/vesting"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/util/adt"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/support/mock"
	tutil "github.com/jaceteam/Jace-Token-Lock-Team-v1/support/testing"
)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, vesting.Actor{})
}

func TestConstruction(t *testing.T) {
	h := newHarness(t)

	t.Run("valid construction", func(t *testing.T) {
		rt := h.builder().Build(t)
		h.constructAndVerify(rt)

		var st vesting.State
		rt.GetState(&st)
		assert.Equal(t, h.token, st.Token)
		assert.Equal(t, h.admin, st.Admin)
		assert.Equal(t, []abi.ChainEpoch(h.schedule), st.Schedule)
		assert.Equal(t, h.beneficiaries, st.Beneficiaries)
		assert.True(t, st.TotalLocked.IsZero())
		assert.True(t, st.TotalClaimed.IsZero())
		h.checkState(rt)
	})

	t.Run("resolves robust addresses", func(t *testing.T) {
		robust := tutil.NewBLSAddr(t, 42)
		rt := h.builder().WithEpoch(h.schedule[4]).WithIDAddress(robust, h.anne).Build(t)
		rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
		rt.Call(h.Constructor, &vesting.ConstructorParams{
			Token:         h.token,
			Admin:         h.admin,
			Schedule:      h.schedule,
			Beneficiaries: []addr.Address{robust},
		})
		rt.Verify()

		var st vesting.State
		rt.GetState(&st)
		assert.Equal(t, []addr.Address{h.anne}, st.Beneficiaries)
	})

	badSchedule := append([]abi.ChainEpoch{}, h.schedule...)
	badSchedule[3] = badSchedule[2]
	tooMany := make([]addr.Address, vesting.MaxBeneficiaries+1)
	for i := range tooMany {
		tooMany[i] = tutil.NewIDAddr(t, uint64(1_000+i))
	}

	for name, params := range map[string]*vesting.ConstructorParams{
		"short schedule":         {Token: h.token, Admin: h.admin, Schedule: h.schedule[:9], Beneficiaries: h.beneficiaries},
		"non-increasing":         {Token: h.token, Admin: h.admin, Schedule: badSchedule, Beneficiaries: h.beneficiaries},
		"token is not a token":   {Token: h.admin, Admin: h.admin, Schedule: h.schedule, Beneficiaries: h.beneficiaries},
		"unresolvable admin":     {Token: h.token, Admin: tutil.NewBLSAddr(t, 1), Schedule: h.schedule, Beneficiaries: h.beneficiaries},
		"no beneficiaries":       {Token: h.token, Admin: h.admin, Schedule: h.schedule, Beneficiaries: nil},
		"duplicate beneficiary":  {Token: h.token, Admin: h.admin, Schedule: h.schedule, Beneficiaries: []addr.Address{h.anne, h.anne}},
		"too many beneficiaries": {Token: h.token, Admin: h.admin, Schedule: h.schedule, Beneficiaries: tooMany},
		"undefined beneficiary":  {Token: h.token, Admin: h.admin, Schedule: h.schedule, Beneficiaries: []addr.Address{addr.Undef}},
	} {
		t.Run(name, func(t *testing.T) {
			rt := h.builder().WithActorType(h.admin, builtin.AccountActorCodeID).Build(t)
			rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
			rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
				rt.Call(h.Constructor, params)
			})
			rt.Verify()
		})
	}

	t.Run("only init may construct", func(t *testing.T) {
		rt := h.builder().WithCaller(h.anne, builtin.AccountActorCodeID).Build(t)
		rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(h.Constructor, h.constructorParams())
		})
		rt.Verify()
	})
}

func TestLock(t *testing.T) {
	h := newHarness(t)

	t.Run("creates a short plan record", func(t *testing.T) {
		rt := h.constructed(t)
		h.lock(rt, h.anne, abi.NewTokenAmount(1_000))

		view := h.getRecord(rt, h.anne)
		assert.Equal(t, abi.NewTokenAmount(1_000), view.TotalLocked)
		assert.True(t, view.TotalClaimed.IsZero())
		assert.Equal(t, vesting.PlanShort, view.Plan)
		h.checkState(rt)
	})

	t.Run("cumulative locks cross the threshold", func(t *testing.T) {
		rt := h.constructed(t)
		a := big.Div(vesting.LongPlanThreshold, big.NewInt(4))
		b := big.Sub(vesting.LongPlanThreshold, a)

		h.lock(rt, h.anne, a)
		assert.Equal(t, vesting.PlanShort, h.getRecord(rt, h.anne).Plan)
		h.lock(rt, h.anne, b)
		view := h.getRecord(rt, h.anne)
		assert.Equal(t, vesting.PlanLong, view.Plan)
		assert.Equal(t, vesting.LongPlanThreshold, view.TotalLocked)

		// one unit short of the threshold stays short
		h.lock(rt, h.bob, big.Sub(vesting.LongPlanThreshold, big.NewInt(1)))
		assert.Equal(t, vesting.PlanShort, h.getRecord(rt, h.bob).Plan)

		info := h.getInfo(rt)
		assert.Equal(t, big.Sub(big.Mul(vesting.LongPlanThreshold, big.NewInt(2)), big.NewInt(1)), info.TotalLocked)
		h.checkState(rt)
	})

	t.Run("outsider is rejected without effects", func(t *testing.T) {
		rt := h.constructed(t)
		before := rt.StateRoot()
		rt.SetCaller(h.outsider, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(h.Lock, &vesting.LockParams{Amount: abi.NewTokenAmount(1)})
		})
		rt.Verify()
		assert.Equal(t, before, rt.StateRoot())
	})

	t.Run("non-positive amount", func(t *testing.T) {
		rt := h.constructed(t)
		for _, amount := range []abi.TokenAmount{big.Zero(), abi.NewTokenAmount(-1)} {
			rt.SetCaller(h.anne, builtin.AccountActorCodeID)
			rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
			rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
				rt.Call(h.Lock, &vesting.LockParams{Amount: amount})
			})
			rt.Verify()
		}
	})

	t.Run("insufficient balance", func(t *testing.T) {
		rt := h.constructed(t)
		before := rt.StateRoot()
		amount := abi.NewTokenAmount(1_000)
		balance := abi.NewTokenAmount(999)

		rt.SetCaller(h.anne, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectSend(h.token, builtin.MethodsToken.BalanceOf, &h.anne, &balance, exitcode.Ok)
		rt.ExpectAbort(exitcode.ErrInsufficientFunds, func() {
			rt.Call(h.Lock, &vesting.LockParams{Amount: amount})
		})
		rt.Verify()
		assert.Equal(t, before, rt.StateRoot())
	})

	t.Run("insufficient allowance", func(t *testing.T) {
		rt := h.constructed(t)
		amount := abi.NewTokenAmount(1_000)
		allowance := abi.NewTokenAmount(10)

		rt.SetCaller(h.anne, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectSend(h.token, builtin.MethodsToken.BalanceOf, &h.anne, &amount, exitcode.Ok)
		rt.ExpectSend(h.token, builtin.MethodsToken.Allowance, &token.AllowanceParams{Owner: h.anne, Spender: h.receiver}, &allowance, exitcode.Ok)
		rt.ExpectAbort(exitcode.ErrInsufficientFunds, func() {
			rt.Call(h.Lock, &vesting.LockParams{Amount: amount})
		})
		rt.Verify()
	})

	t.Run("failed transfer rolls back the record", func(t *testing.T) {
		rt := h.constructed(t)
		before := rt.StateRoot()
		amount := abi.NewTokenAmount(1_000)

		rt.SetCaller(h.anne, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectSend(h.token, builtin.MethodsToken.BalanceOf, &h.anne, &amount, exitcode.Ok)
		rt.ExpectSend(h.token, builtin.MethodsToken.Allowance, &token.AllowanceParams{Owner: h.anne, Spender: h.receiver}, &amount, exitcode.Ok)
		rt.ExpectSend(h.token, builtin.MethodsToken.TransferFrom, &token.TransferFromParams{From: h.anne, To: h.receiver, Amount: amount}, nil, exitcode.ErrInsufficientFunds)
		rt.ExpectAbort(exitcode.ErrInsufficientFunds, func() {
			rt.Call(h.Lock, &vesting.LockParams{Amount: amount})
		})
		rt.Verify()
		assert.Equal(t, before, rt.StateRoot())
	})
}

func TestClaim(t *testing.T) {
	h := newHarness(t)

	t.Run("before the first checkpoint", func(t *testing.T) {
		rt := h.constructed(t)
		h.lock(rt, h.anne, abi.NewTokenAmount(1_000))
		before := rt.StateRoot()

		rt.SetEpoch(h.schedule[0] - 1)
		h.claimFails(rt, h.anne, vesting.ErrScheduleNotElapsed)
		assert.Equal(t, before, rt.StateRoot())
	})

	t.Run("nothing locked", func(t *testing.T) {
		rt := h.constructed(t)
		rt.SetEpoch(h.schedule[9])
		h.claimFails(rt, h.anne, vesting.ErrNothingToClaim)
	})

	t.Run("outsider is rejected", func(t *testing.T) {
		rt := h.constructed(t)
		rt.SetEpoch(h.schedule[9])
		h.claimFails(rt, h.outsider, exitcode.ErrForbidden)
	})

	t.Run("short plan releases truncated shares per checkpoint", func(t *testing.T) {
		rt := h.constructed(t)
		locked := abi.NewTokenAmount(1_234_567)
		share := abi.NewTokenAmount(246_913) // 1234567 * 20 / 100, truncated
		h.lock(rt, h.anne, locked)

		// three of five checkpoints: three truncated shares rather than 60% of the total
		rt.SetEpoch(h.schedule[2])
		h.claim(rt, h.anne, big.Mul(share, big.NewInt(3)))

		// an immediate repeat releases nothing
		h.claimFails(rt, h.anne, vesting.ErrNothingToClaim)

		// a new checkpoint releases one share
		rt.SetEpoch(h.schedule[3])
		h.claim(rt, h.anne, share)

		// later checkpoints of the schedule do not extend the short plan
		rt.SetEpoch(h.schedule[9])
		h.claim(rt, h.anne, share)
		h.claimFails(rt, h.anne, vesting.ErrNothingToClaim)

		view := h.getRecord(rt, h.anne)
		assert.Equal(t, big.Mul(share, big.NewInt(5)), view.TotalClaimed)
		assert.Equal(t, abi.NewTokenAmount(2), big.Sub(view.TotalLocked, view.TotalClaimed))
		h.checkState(rt)
	})

	t.Run("long plan releases all but dust", func(t *testing.T) {
		rt := h.constructed(t)
		locked := big.Add(vesting.LongPlanThreshold, big.NewInt(9))
		h.lock(rt, h.bob, locked)

		rt.SetEpoch(h.schedule[9])
		share := big.Div(locked, big.NewInt(10))
		h.claim(rt, h.bob, big.Mul(share, big.NewInt(10)))

		view := h.getRecord(rt, h.bob)
		dust := big.Sub(view.TotalLocked, view.TotalClaimed)
		assert.True(t, dust.LessThanEqual(big.NewInt(9)), "dust %v", dust)
		h.claimFails(rt, h.bob, vesting.ErrNothingToClaim)
		h.checkState(rt)
	})

	t.Run("plan upgrade applies to claimed balance", func(t *testing.T) {
		rt := h.constructed(t)
		first := big.Mul(big.NewInt(60_000), builtin.TokenPrecision)
		second := big.Mul(big.NewInt(40_000), builtin.TokenPrecision)
		h.lock(rt, h.anne, first)

		rt.SetEpoch(h.schedule[0])
		h.claim(rt, h.anne, big.Mul(big.NewInt(12_000), builtin.TokenPrecision))

		// crossing the threshold moves the whole balance onto the long plan, whose first checkpoint
		// entitles less than was already claimed
		h.lock(rt, h.anne, second)
		assert.Equal(t, vesting.PlanLong, h.getRecord(rt, h.anne).Plan)
		h.claimFails(rt, h.anne, vesting.ErrNothingToClaim)

		rt.SetEpoch(h.schedule[2])
		h.claim(rt, h.anne, big.Mul(big.NewInt(18_000), builtin.TokenPrecision))
		h.checkState(rt)
	})

	t.Run("failed transfer rolls back the claim", func(t *testing.T) {
		rt := h.constructed(t)
		h.lock(rt, h.anne, abi.NewTokenAmount(1_000))
		rt.SetEpoch(h.schedule[0])
		before := rt.StateRoot()

		rt.SetCaller(h.anne, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectSend(h.token, builtin.MethodsToken.Transfer, &token.TransferParams{To: h.anne, Amount: abi.NewTokenAmount(200)}, nil, exitcode.ErrInsufficientFunds)
		rt.ExpectAbort(exitcode.ErrInsufficientFunds, func() {
			rt.Call(h.Claim, nil)
		})
		rt.Verify()
		assert.Equal(t, before, rt.StateRoot())
	})
}

func TestWithdrawResidual(t *testing.T) {
	h := newHarness(t)
	dest := tutil.NewIDAddr(t, 900)

	t.Run("sweeps the whole custody balance", func(t *testing.T) {
		rt := h.constructed(t)
		h.lock(rt, h.anne, abi.NewTokenAmount(1_000))
		h.lock(rt, h.bob, abi.NewTokenAmount(5_000))
		rt.SetEpoch(h.schedule[0])
		h.claim(rt, h.anne, abi.NewTokenAmount(200))

		var st vesting.State
		rt.GetState(&st)
		rt.SetEpoch(st.SweepEpoch())
		custody := abi.NewTokenAmount(5_800)
		before := rt.StateRoot()

		rt.SetCaller(h.admin, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectSend(h.token, builtin.MethodsToken.BalanceOf, &h.receiver, &custody, exitcode.Ok)
		rt.ExpectSend(h.token, builtin.MethodsToken.Transfer, &token.TransferParams{To: dest, Amount: custody}, nil, exitcode.Ok)
		rt.ExpectEmitEvent(vesting.EventSweep, &vesting.SweepEvent{Destination: dest, Amount: custody})
		rt.ExpectLogsContain("swept residual custody")
		ret := rt.Call(h.WithdrawResidual, &vesting.WithdrawResidualParams{Destination: dest}).(*vesting.WithdrawResidualReturn)
		rt.Verify()
		assert.Equal(t, custody, ret.Amount)

		// ledger records are untouched
		assert.Equal(t, before, rt.StateRoot())
	})

	t.Run("only the admin", func(t *testing.T) {
		rt := h.constructed(t)
		rt.SetEpoch(h.schedule[9] + vesting.ResidualGracePeriod)
		rt.SetCaller(h.anne, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbortContainsMessage(exitcode.ErrForbidden, "is not the administrator", func() {
			rt.Call(h.WithdrawResidual, &vesting.WithdrawResidualParams{Destination: dest})
		})
		rt.Verify()
	})

	t.Run("before the grace period ends", func(t *testing.T) {
		rt := h.constructed(t)
		rt.SetEpoch(h.schedule[9] + vesting.ResidualGracePeriod - 1)
		rt.SetCaller(h.admin, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbort(vesting.ErrScheduleNotElapsed, func() {
			rt.Call(h.WithdrawResidual, &vesting.WithdrawResidualParams{Destination: dest})
		})
		rt.Verify()
	})

	t.Run("invalid destination", func(t *testing.T) {
		rt := h.constructed(t)
		rt.SetEpoch(h.schedule[9] + vesting.ResidualGracePeriod)
		for _, d := range []addr.Address{addr.Undef, tutil.NewBLSAddr(t, 77)} {
			rt.SetCaller(h.admin, builtin.AccountActorCodeID)
			rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
			rt.ExpectAbort(vesting.ErrInvalidRecipient, func() {
				rt.Call(h.WithdrawResidual, &vesting.WithdrawResidualParams{Destination: d})
			})
			rt.Verify()
		}
	})

	t.Run("empty custody", func(t *testing.T) {
		rt := h.constructed(t)
		rt.SetEpoch(h.schedule[9] + vesting.ResidualGracePeriod)
		custody := big.Zero()
		rt.SetCaller(h.admin, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectSend(h.token, builtin.MethodsToken.BalanceOf, &h.receiver, &custody, exitcode.Ok)
		rt.ExpectAbort(exitcode.ErrInsufficientFunds, func() {
			rt.Call(h.WithdrawResidual, &vesting.WithdrawResidualParams{Destination: dest})
		})
		rt.Verify()
	})
}

func TestQueries(t *testing.T) {
	h := newHarness(t)
	rt := h.constructed(t)
	h.lock(rt, h.anne, abi.NewTokenAmount(1_000))

	rt.ExpectValidateCallerAny()
	schedule := rt.Call(h.GetSchedule, nil).(*vesting.ScheduleReturn)
	rt.Verify()
	assert.Equal(t, []abi.ChainEpoch(h.schedule), schedule.Checkpoints)

	rt.ExpectValidateCallerAny()
	beneficiaries := rt.Call(h.GetBeneficiaries, nil).(*vesting.BeneficiariesReturn)
	rt.Verify()
	assert.Equal(t, h.beneficiaries, beneficiaries.Beneficiaries)

	custody := abi.NewTokenAmount(1_000)
	rt.ExpectValidateCallerAny()
	rt.ExpectSend(h.token, builtin.MethodsToken.BalanceOf, &h.receiver, &custody, exitcode.Ok)
	balance := rt.Call(h.CustodyBalance, nil).(*abi.TokenAmount)
	rt.Verify()
	assert.Equal(t, custody, *balance)

	t.Run("absent records report zeros", func(t *testing.T) {
		for _, who := range []addr.Address{h.bob, h.outsider, tutil.NewBLSAddr(t, 5)} {
			view := h.getRecord(rt, who)
			assert.True(t, view.TotalLocked.IsZero())
			assert.True(t, view.TotalClaimed.IsZero())
			assert.True(t, view.Claimable.IsZero())
			assert.Equal(t, vesting.PlanShort, view.Plan)
		}
	})

	t.Run("claimable follows the clock", func(t *testing.T) {
		rt.SetEpoch(0)
		assert.True(t, h.getRecord(rt, h.anne).Claimable.IsZero())
		rt.SetEpoch(h.schedule[1])
		assert.Equal(t, abi.NewTokenAmount(400), h.getRecord(rt, h.anne).Claimable)
	})

	info := h.getInfo(rt)
	assert.Equal(t, h.token, info.Token)
	assert.Equal(t, h.admin, info.Admin)
	assert.Equal(t, abi.NewTokenAmount(1_000), info.TotalLocked)
	assert.True(t, info.TotalClaimed.IsZero())
	assert.Equal(t, h.schedule[9]+vesting.ResidualGracePeriod, info.SweepEpoch)
}

type harness struct {
	vesting.Actor
	t testing.TB

	receiver      addr.Address
	token         addr.Address
	admin         addr.Address
	anne          addr.Address
	bob           addr.Address
	outsider      addr.Address
	beneficiaries []addr.Address
	schedule      vesting.Schedule
}

func newHarness(t testing.TB) *harness {
	h := &harness{
		t:        t,
		receiver: tutil.NewIDAddr(t, 400),
		token:    tutil.NewIDAddr(t, 300),
		admin:    tutil.NewIDAddr(t, 200),
		anne:     tutil.NewIDAddr(t, 101),
		bob:      tutil.NewIDAddr(t, 102),
		outsider: tutil.NewIDAddr(t, 500),
		schedule: evenSchedule(1_000, 1_000),
	}
	h.beneficiaries = []addr.Address{h.anne, h.bob}
	return h
}

func (h *harness) builder() *mock.RuntimeBuilder {
	return mock.NewBuilder(h.receiver).
		WithCaller(builtin.InitActorAddr, builtin.InitActorCodeID).
		WithActorType(h.token, builtin.TokenActorCodeID)
}

func (h *harness) constructorParams() *vesting.ConstructorParams {
	return &vesting.ConstructorParams{
		Token:         h.token,
		Admin:         h.admin,
		Schedule:      h.schedule,
		Beneficiaries: h.beneficiaries,
	}
}

func (h *harness) constructed(t testing.TB) *mock.Runtime {
	rt := h.builder().Build(t)
	h.constructAndVerify(rt)
	return rt
}

func (h *harness) constructAndVerify(rt *mock.Runtime) {
	rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
	ret := rt.Call(h.Constructor, h.constructorParams())
	assert.Nil(h.t, ret)
	rt.Verify()
}

func (h *harness) lock(rt *mock.Runtime, who addr.Address, amount abi.TokenAmount) {
	rt.SetCaller(who, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
	rt.ExpectSend(h.token, builtin.MethodsToken.BalanceOf, &who, &amount, exitcode.Ok)
	rt.ExpectSend(h.token, builtin.MethodsToken.Allowance, &token.AllowanceParams{Owner: who, Spender: h.receiver}, &amount, exitcode.Ok)
	rt.ExpectSend(h.token, builtin.MethodsToken.TransferFrom, &token.TransferFromParams{From: who, To: h.receiver, Amount: amount}, nil, exitcode.Ok)
	rt.ExpectEmitEvent(vesting.EventLock, &vesting.LockEvent{Beneficiary: who, Amount: amount})
	rt.ExpectLogsContain("locked")
	ret := rt.Call(h.Lock, &vesting.LockParams{Amount: amount})
	assert.Nil(h.t, ret)
	rt.Verify()
}

func (h *harness) claim(rt *mock.Runtime, who addr.Address, expected abi.TokenAmount) {
	rt.SetCaller(who, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
	rt.ExpectSend(h.token, builtin.MethodsToken.Transfer, &token.TransferParams{To: who, Amount: expected}, nil, exitcode.Ok)
	rt.ExpectEmitEvent(vesting.EventClaim, &vesting.ClaimEvent{Beneficiary: who, Amount: expected})
	ret := rt.Call(h.Claim, nil).(*vesting.ClaimReturn)
	rt.Verify()
	assert.Equal(h.t, expected, ret.Amount)
}

func (h *harness) claimFails(rt *mock.Runtime, who addr.Address, code exitcode.ExitCode) {
	rt.SetCaller(who, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
	rt.ExpectAbort(code, func() {
		rt.Call(h.Claim, nil)
	})
	rt.Verify()
}

func (h *harness) getRecord(rt *mock.Runtime, who addr.Address) *vesting.RecordView {
	rt.ExpectValidateCallerAny()
	view := rt.Call(h.GetRecord, &who).(*vesting.RecordView)
	rt.Verify()
	return view
}

func (h *harness) getInfo(rt *mock.Runtime) *vesting.InfoReturn {
	rt.ExpectValidateCallerAny()
	info := rt.Call(h.GetInfo, nil).(*vesting.InfoReturn)
	rt.Verify()
	return info
}

func (h *harness) checkState(rt *mock.Runtime) *vesting.StateSummary {
	var st vesting.State
	rt.GetState(&st)
	summary, msgs := vesting.CheckStateInvariants(&st, adt.AsStore(rt))
	require.True(h.t, msgs.IsEmpty(), msgs.Messages())
	return summary
}
