package vesting

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

// Event types emitted by the vesting actor.
const (
	EventLock  = "lock"
	EventClaim = "claim"
	EventSweep = "sweep"
)

type LockEvent struct {
	Beneficiary addr.Address
	Amount      abi.TokenAmount
}

type ClaimEvent struct {
	Beneficiary addr.Address
	Amount      abi.TokenAmount
}

type SweepEvent struct {
	Destination addr.Address
	Amount      abi.TokenAmount
}
