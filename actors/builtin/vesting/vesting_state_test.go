package vesting_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/golden"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/vesting"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/util/adt"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/support/ipld"
	tutil "github.com/jaceteam/Jace-Token-Lock-Team-v1/support/testing"
)

func TestScheduleValidate(t *testing.T) {
	valid := evenSchedule(100, 100)
	require.NoError(t, valid.Validate())

	short := valid[:9]
	long := append(append(vesting.Schedule{}, valid...), 1100)
	repeated := append(vesting.Schedule{}, valid...)
	repeated[4] = repeated[3]
	decreasing := append(vesting.Schedule{}, valid...)
	decreasing[9] = 50
	negative := append(vesting.Schedule{}, valid...)
	negative[0] = -1

	for name, s := range map[string]vesting.Schedule{
		"too few":    short,
		"too many":   long,
		"repeated":   repeated,
		"decreasing": decreasing,
		"negative":   negative,
		"empty":      nil,
	} {
		t.Run(name, func(t *testing.T) {
			err := s.Validate()
			require.Error(t, err)
			assert.Equal(t, exitcode.ErrIllegalArgument, exitcode.Unwrap(err, exitcode.Ok))
		})
	}

	// the first checkpoint may be at genesis
	require.NoError(t, evenSchedule(0, 1).Validate())
}

func TestPlanForTotal(t *testing.T) {
	assert.Equal(t, vesting.ShortPlan, vesting.PlanForTotal(big.Zero()))
	assert.Equal(t, vesting.ShortPlan, vesting.PlanForTotal(big.Sub(vesting.LongPlanThreshold, big.NewInt(1))))
	assert.Equal(t, vesting.LongPlan, vesting.PlanForTotal(vesting.LongPlanThreshold))
	assert.Equal(t, vesting.LongPlan, vesting.PlanForTotal(big.Mul(vesting.LongPlanThreshold, big.NewInt(3))))

	for _, p := range []vesting.Plan{vesting.ShortPlan, vesting.LongPlan} {
		assert.Equal(t, int64(100), int64(p.ReleaseStages)*p.PercentPerCycle, "plan %s", p.Type)
	}
	assert.Equal(t, "short", vesting.PlanShort.String())
	assert.Equal(t, "long", vesting.PlanLong.String())
}

func TestCumulativeEntitlement(t *testing.T) {
	schedule := evenSchedule(100, 100)

	t.Run("nothing before the first checkpoint", func(t *testing.T) {
		assert.True(t, schedule.CumulativeEntitlement(abi.NewTokenAmount(1_000), 99).Sign() == 0)
	})

	t.Run("short plan sums truncated shares", func(t *testing.T) {
		locked := abi.NewTokenAmount(1_234_567)
		// 3 of 5 checkpoints: 3 * floor(1234567 * 20 / 100), not floor(1234567 * 60 / 100)
		assert.Equal(t, abi.NewTokenAmount(740_739), schedule.CumulativeEntitlement(locked, 300))
		assert.NotEqual(t, big.Div(big.Mul(locked, big.NewInt(60)), big.NewInt(100)), schedule.CumulativeEntitlement(locked, 300))

		// checkpoints past the fifth release nothing more
		assert.Equal(t, abi.NewTokenAmount(1_234_565), schedule.CumulativeEntitlement(locked, 500))
		assert.Equal(t, abi.NewTokenAmount(1_234_565), schedule.CumulativeEntitlement(locked, 1_000))
	})

	t.Run("long plan leaves at most nine units of dust", func(t *testing.T) {
		locked := big.Add(vesting.LongPlanThreshold, big.NewInt(9))
		full := schedule.CumulativeEntitlement(locked, 1_000)
		dust := big.Sub(locked, full)
		assert.True(t, dust.GreaterThanEqual(big.Zero()))
		assert.True(t, dust.LessThanEqual(big.NewInt(9)), "dust %v", dust)
		assert.Equal(t, big.Div(big.Mul(full, big.NewInt(5)), big.NewInt(10)), schedule.CumulativeEntitlement(locked, 500))
	})
}

func TestCumulativeEntitlementTable(t *testing.T) {
	schedule := evenSchedule(10, 10)
	e18 := builtin.TokenPrecision
	amounts := []abi.TokenAmount{
		big.NewInt(1),
		big.NewInt(9),
		big.NewInt(99),
		big.NewInt(1_234_567),
		big.Sub(vesting.LongPlanThreshold, big.NewInt(1)),
		vesting.LongPlanThreshold,
		big.Add(vesting.LongPlanThreshold, big.NewInt(7)),
		big.Add(big.Mul(big.NewInt(333_333), e18), big.NewInt(1)),
	}

	b := &bytes.Buffer{}
	b.WriteString("locked, plan, epoch, cumulative\n")
	for _, locked := range amounts {
		plan := vesting.PlanForTotal(locked)
		for now := abi.ChainEpoch(0); now <= 100; now += 10 {
			fmt.Fprintf(b, "%s,%s,%d,%s\n", locked.String(), plan.Type, now, schedule.CumulativeEntitlement(locked, now).String())
		}
	}
	golden.Assert(t, b.Bytes())
}

func TestStateClaims(t *testing.T) {
	store := ipld.NewADTStore(context.Background())
	token := tutil.NewIDAddr(t, 300)
	admin := tutil.NewIDAddr(t, 200)
	anne := tutil.NewIDAddr(t, 101)
	bob := tutil.NewIDAddr(t, 102)
	outsider := tutil.NewIDAddr(t, 500)

	newState := func(t *testing.T) *vesting.State {
		st, err := vesting.ConstructState(store, token, admin, evenSchedule(100, 100), []addr.Address{anne, bob})
		require.NoError(t, err)
		return st
	}

	t.Run("construct rejects invalid schedule", func(t *testing.T) {
		_, err := vesting.ConstructState(store, token, admin, evenSchedule(100, 100)[1:], []addr.Address{anne})
		require.Error(t, err)
	})

	t.Run("lock accumulates and upgrades plan", func(t *testing.T) {
		st := newState(t)
		half := big.Div(vesting.LongPlanThreshold, big.NewInt(2))

		record, err := st.AddLocked(store, anne, half)
		require.NoError(t, err)
		assert.Equal(t, vesting.PlanShort, record.Plan().Type)

		record, err = st.AddLocked(store, anne, half)
		require.NoError(t, err)
		assert.Equal(t, vesting.PlanLong, record.Plan().Type)
		assert.Equal(t, vesting.LongPlanThreshold, record.TotalLocked)
		assert.Equal(t, vesting.LongPlanThreshold, st.TotalLocked)

		loaded, found, err := st.LoadRecord(store, anne)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, record.TotalLocked, loaded.TotalLocked)
		assert.True(t, loaded.TotalClaimed.IsZero())
		checkState(t, st, store)
	})

	t.Run("lock rejects outsiders and non-positive amounts", func(t *testing.T) {
		st := newState(t)
		_, err := st.AddLocked(store, outsider, abi.NewTokenAmount(1))
		assert.Equal(t, exitcode.ErrForbidden, exitcode.Unwrap(err, exitcode.Ok))
		_, err = st.AddLocked(store, anne, big.Zero())
		assert.Equal(t, exitcode.ErrIllegalArgument, exitcode.Unwrap(err, exitcode.Ok))
		_, err = st.AddLocked(store, anne, abi.NewTokenAmount(-5))
		assert.Equal(t, exitcode.ErrIllegalArgument, exitcode.Unwrap(err, exitcode.Ok))

		_, found, err := st.LoadRecord(store, anne)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("claim rejections", func(t *testing.T) {
		st := newState(t)
		_, err := st.Claim(store, outsider, 1_000)
		assert.Equal(t, exitcode.ErrForbidden, exitcode.Unwrap(err, exitcode.Ok))
		_, err = st.Claim(store, anne, 1_000)
		assert.Equal(t, vesting.ErrNothingToClaim, exitcode.Unwrap(err, exitcode.Ok))

		_, err = st.AddLocked(store, anne, abi.NewTokenAmount(1_000))
		require.NoError(t, err)
		_, err = st.Claim(store, anne, 99)
		assert.Equal(t, vesting.ErrScheduleNotElapsed, exitcode.Unwrap(err, exitcode.Ok))

		amount, err := st.Claim(store, anne, 100)
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(200), amount)
		_, err = st.Claim(store, anne, 199)
		assert.Equal(t, vesting.ErrNothingToClaim, exitcode.Unwrap(err, exitcode.Ok))
		checkState(t, st, store)
	})

	t.Run("claims never exceed locked total", func(t *testing.T) {
		st := newState(t)
		locked := abi.NewTokenAmount(1_234_567)
		_, err := st.AddLocked(store, bob, locked)
		require.NoError(t, err)

		released := big.Zero()
		for now := abi.ChainEpoch(100); now <= 1_000; now += 100 {
			amount, err := st.Claim(store, bob, now)
			if now > 500 {
				assert.Equal(t, vesting.ErrNothingToClaim, exitcode.Unwrap(err, exitcode.Ok))
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, abi.NewTokenAmount(246_913), amount)
			released = big.Add(released, amount)

			record, _, err := st.LoadRecord(store, bob)
			require.NoError(t, err)
			assert.True(t, record.TotalClaimed.LessThanEqual(record.TotalLocked))
			checkState(t, st, store)
		}
		assert.Equal(t, abi.NewTokenAmount(1_234_565), released)
		assert.Equal(t, abi.NewTokenAmount(2), st.Outstanding())
	})

	t.Run("claimable at does not mutate", func(t *testing.T) {
		st := newState(t)
		_, err := st.AddLocked(store, anne, abi.NewTokenAmount(1_000))
		require.NoError(t, err)
		before := st.Records

		claimable, _, err := st.ClaimableAt(store, anne, 300)
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(600), claimable)
		assert.Equal(t, before, st.Records)
		assert.True(t, st.TotalClaimed.IsZero())
	})

	t.Run("sweep epoch follows last checkpoint", func(t *testing.T) {
		st := newState(t)
		assert.Equal(t, abi.ChainEpoch(1_000)+vesting.ResidualGracePeriod, st.SweepEpoch())
	})
}

func TestStateInvariants(t *testing.T) {
	store := ipld.NewADTStore(context.Background())
	anne := tutil.NewIDAddr(t, 101)
	st, err := vesting.ConstructState(store, tutil.NewIDAddr(t, 300), tutil.NewIDAddr(t, 200), evenSchedule(100, 100), []addr.Address{anne})
	require.NoError(t, err)
	_, err = st.AddLocked(store, anne, abi.NewTokenAmount(500))
	require.NoError(t, err)

	summary, msgs := vesting.CheckStateInvariants(st, store)
	assert.True(t, msgs.IsEmpty(), msgs.Messages())
	assert.Equal(t, 1, summary.RecordCount)

	// a pool sum out of line with its records is reported
	st.TotalLocked = abi.NewTokenAmount(501)
	_, msgs = vesting.CheckStateInvariants(st, store)
	assert.False(t, msgs.IsEmpty())
}

// Ten checkpoints starting at `first`, `step` epochs apart.
func evenSchedule(first, step abi.ChainEpoch) vesting.Schedule {
	s := make(vesting.Schedule, vesting.CheckpointCount)
	for i := range s {
		s[i] = first + abi.ChainEpoch(i)*step
	}
	return s
}

func checkState(t *testing.T, st *vesting.State, store adt.Store) {
	t.Helper()
	_, msgs := vesting.CheckStateInvariants(st, store)
	assert.True(t, msgs.IsEmpty(), msgs.Messages())
}
