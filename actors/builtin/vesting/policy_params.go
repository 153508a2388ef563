//go:build !testground
// +build !testground

package vesting

import (
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
)

// Period after the final checkpoint before the administrator may sweep residual custody.
const ResidualGracePeriod = abi.ChainEpoch(30 * builtin.EpochsInDay) // 30 days
