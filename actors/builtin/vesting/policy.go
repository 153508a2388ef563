package vesting

import (
	"fmt"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
)

// Number of release checkpoints in every schedule.
const CheckpointCount = 10

// Maximum number of beneficiaries a ledger may register at construction.
const MaxBeneficiaries = 256

// Cumulative locked amount, per beneficiary, from which the long plan applies.
var LongPlanThreshold = big.Mul(big.NewInt(100_000), builtin.TokenPrecision)

type PlanType uint64

const (
	PlanShort PlanType = iota
	PlanLong
)

func (p PlanType) String() string {
	switch p {
	case PlanShort:
		return "short"
	case PlanLong:
		return "long"
	default:
		return fmt.Sprintf("PlanType(%d)", uint64(p))
	}
}

// A release plan: the first ReleaseStages checkpoints of the schedule each release PercentPerCycle
// percent of the locked total. ReleaseStages * PercentPerCycle is always 100.
type Plan struct {
	Type            PlanType
	ReleaseStages   int
	PercentPerCycle int64
}

var (
	ShortPlan = Plan{Type: PlanShort, ReleaseStages: 5, PercentPerCycle: 20}
	LongPlan  = Plan{Type: PlanLong, ReleaseStages: 10, PercentPerCycle: 10}
)

// PlanForTotal selects the release plan for a cumulative locked total.
// The plan is never stored; it is re-derived from the total on every read, so later locks that cross
// the threshold move the whole balance onto the long plan.
func PlanForTotal(totalLocked abi.TokenAmount) Plan {
	if totalLocked.GreaterThanEqual(LongPlanThreshold) {
		return LongPlan
	}
	return ShortPlan
}

// The amount a single checkpoint releases for a locked total, truncated to whole base units.
func (p Plan) ShareOf(totalLocked abi.TokenAmount) abi.TokenAmount {
	return big.Div(big.Mul(totalLocked, big.NewInt(p.PercentPerCycle)), big.NewInt(100))
}

func init() {
	for _, p := range []Plan{ShortPlan, LongPlan} {
		if int64(p.ReleaseStages)*p.PercentPerCycle != 100 {
			panic(fmt.Sprintf("plan %s releases %d%%", p.Type, int64(p.ReleaseStages)*p.PercentPerCycle))
		}
		if p.ReleaseStages > CheckpointCount {
			panic(fmt.Sprintf("plan %s has %d stages for %d checkpoints", p.Type, p.ReleaseStages, CheckpointCount))
		}
	}
}
