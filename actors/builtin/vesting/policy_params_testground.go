//go:build testground
// +build testground

package vesting

import (
	"github.com/filecoin-project/go-state-types/abi"
)

// Period after the final checkpoint before the administrator may sweep residual custody.
const ResidualGracePeriod = abi.ChainEpoch(120) // 2 minutes at 1s epochs instead of 30 days
