package vesting

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
)

// Schedule is the ordered list of absolute release epochs.
type Schedule []abi.ChainEpoch

// Validate checks that a schedule has exactly CheckpointCount non-negative, strictly increasing epochs.
func (s Schedule) Validate() error {
	if len(s) != CheckpointCount {
		return exitcode.ErrIllegalArgument.Wrapf("schedule must have %d checkpoints, got %d", CheckpointCount, len(s))
	}
	for i, e := range s {
		if e < 0 {
			return exitcode.ErrIllegalArgument.Wrapf("checkpoint %d at negative epoch %d", i, e)
		}
		if i > 0 && e <= s[i-1] {
			return exitcode.ErrIllegalArgument.Wrapf("checkpoint %d at epoch %d not after checkpoint %d at epoch %d", i, e, i-1, s[i-1])
		}
	}
	return nil
}

// Number of the first `stages` checkpoints at or before `now`.
func (s Schedule) ElapsedCheckpoints(now abi.ChainEpoch, stages int) int {
	n := 0
	for i := 0; i < stages && i < len(s); i++ {
		if s[i] <= now {
			n++
		}
	}
	return n
}

// Whether no checkpoint has been reached yet.
func (s Schedule) NotStarted(now abi.ChainEpoch) bool {
	return len(s) == 0 || now < s[0]
}

func (s Schedule) Last() abi.ChainEpoch {
	return s[len(s)-1]
}

// CumulativeEntitlement is the total a beneficiary with `totalLocked` is entitled to have claimed by
// `now`: the truncated per-checkpoint share summed over each elapsed checkpoint of its plan.
// Truncating each checkpoint's share (rather than the cumulative product) leaves up to
// ReleaseStages-1 base units unreleased after the final checkpoint.
func (s Schedule) CumulativeEntitlement(totalLocked abi.TokenAmount, now abi.ChainEpoch) abi.TokenAmount {
	plan := PlanForTotal(totalLocked)
	share := plan.ShareOf(totalLocked)
	cumulative := big.Zero()
	for i := 0; i < plan.ReleaseStages; i++ {
		if s[i] <= now {
			cumulative = big.Add(cumulative, share)
		}
	}
	return cumulative
}
