package vesting

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/util/adt"
)

type State struct {
	// Token actor holding custody of locked funds (ID address).
	Token addr.Address
	// Principal allowed to sweep residual custody (ID address).
	Admin addr.Address
	// Absolute release epochs, fixed at construction.
	Schedule []abi.ChainEpoch
	// Registered beneficiaries (ID addresses), fixed at construction.
	Beneficiaries []addr.Address
	// HAMT[ID address]VestingRecord
	Records cid.Cid
	// Sum of TotalLocked over all records.
	TotalLocked abi.TokenAmount
	// Sum of TotalClaimed over all records.
	TotalClaimed abi.TokenAmount
}

type VestingRecord struct {
	TotalLocked  abi.TokenAmount
	TotalClaimed abi.TokenAmount
}

// Remaining locked balance not yet released.
func (r *VestingRecord) Outstanding() abi.TokenAmount {
	return big.Sub(r.TotalLocked, r.TotalClaimed)
}

func (r *VestingRecord) Plan() Plan {
	return PlanForTotal(r.TotalLocked)
}

func ConstructState(store adt.Store, token, admin addr.Address, schedule Schedule, beneficiaries []addr.Address) (*State, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	emptyRecords, err := adt.StoreEmptyMap(store, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty map: %w", err)
	}

	return &State{
		Token:         token,
		Admin:         admin,
		Schedule:      append([]abi.ChainEpoch(nil), schedule...),
		Beneficiaries: append([]addr.Address(nil), beneficiaries...),
		Records:       emptyRecords,
		TotalLocked:   big.Zero(),
		TotalClaimed:  big.Zero(),
	}, nil
}

func (st *State) IsBeneficiary(a addr.Address) bool {
	for _, b := range st.Beneficiaries {
		if b == a {
			return true
		}
	}
	return false
}

// First epoch at which residual custody may be swept.
func (st *State) SweepEpoch() abi.ChainEpoch {
	return Schedule(st.Schedule).Last() + ResidualGracePeriod
}

// Loads a beneficiary's record. An absent record is returned as zeros.
func (st *State) LoadRecord(store adt.Store, who addr.Address) (*VestingRecord, bool, error) {
	records, err := adt.AsMap(store, st.Records, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load vesting records: %w", err)
	}
	var out VestingRecord
	found, err := records.Get(abi.AddrKey(who), &out)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load record for %v: %w", who, err)
	}
	if !found {
		return &VestingRecord{TotalLocked: big.Zero(), TotalClaimed: big.Zero()}, false, nil
	}
	return &out, true, nil
}

func (st *State) saveRecord(store adt.Store, who addr.Address, record *VestingRecord) error {
	records, err := adt.AsMap(store, st.Records, builtin.DefaultHamtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load vesting records: %w", err)
	}
	if err := records.Put(abi.AddrKey(who), record); err != nil {
		return xerrors.Errorf("failed to put record for %v: %w", who, err)
	}
	if st.Records, err = records.Root(); err != nil {
		return xerrors.Errorf("failed to flush vesting records: %w", err)
	}
	return nil
}

// Adds a positive amount to a beneficiary's locked total, creating the record if needed.
// Returns the updated record.
func (st *State) AddLocked(store adt.Store, who addr.Address, amount abi.TokenAmount) (*VestingRecord, error) {
	if !st.IsBeneficiary(who) {
		return nil, exitcode.ErrForbidden.Wrapf("%v is not a registered beneficiary", who)
	}
	if amount.Sign() <= 0 {
		return nil, exitcode.ErrIllegalArgument.Wrapf("lock amount must be positive, got %v", amount)
	}
	record, _, err := st.LoadRecord(store, who)
	if err != nil {
		return nil, err
	}

	record.TotalLocked = big.Add(record.TotalLocked, amount)
	if err := st.saveRecord(store, who, record); err != nil {
		return nil, err
	}
	st.TotalLocked = big.Add(st.TotalLocked, amount)
	return record, nil
}

// Amount a claim by `who` at `now` would release, or a coded error explaining why a claim would be rejected.
func (st *State) ClaimableAt(store adt.Store, who addr.Address, now abi.ChainEpoch) (abi.TokenAmount, *VestingRecord, error) {
	record, found, err := st.LoadRecord(store, who)
	if err != nil {
		return big.Zero(), nil, err
	}
	if !found || record.TotalLocked.Sign() <= 0 {
		return big.Zero(), record, ErrNothingToClaim.Wrapf("%v has nothing locked", who)
	}
	schedule := Schedule(st.Schedule)
	if schedule.NotStarted(now) {
		return big.Zero(), record, ErrScheduleNotElapsed.Wrapf("first checkpoint at epoch %d, current epoch %d", schedule[0], now)
	}
	if record.TotalClaimed.GreaterThanEqual(record.TotalLocked) {
		return big.Zero(), record, ErrNothingToClaim.Wrapf("%v has claimed its full allocation", who)
	}

	cumulative := schedule.CumulativeEntitlement(record.TotalLocked, now)
	claimable := big.Sub(cumulative, record.TotalClaimed)
	if claimable.Sign() <= 0 {
		return big.Zero(), record, ErrNothingToClaim.Wrapf("no new checkpoint for %v: entitled %v, claimed %v", who, cumulative, record.TotalClaimed)
	}
	return claimable, record, nil
}

// Releases everything claimable by `who` at `now`, returning the amount released.
func (st *State) Claim(store adt.Store, who addr.Address, now abi.ChainEpoch) (abi.TokenAmount, error) {
	if !st.IsBeneficiary(who) {
		return big.Zero(), exitcode.ErrForbidden.Wrapf("%v is not a registered beneficiary", who)
	}
	claimable, record, err := st.ClaimableAt(store, who, now)
	if err != nil {
		return big.Zero(), err
	}

	record.TotalClaimed = big.Add(record.TotalClaimed, claimable)
	if err := st.saveRecord(store, who, record); err != nil {
		return big.Zero(), err
	}
	st.TotalClaimed = big.Add(st.TotalClaimed, claimable)
	return claimable, nil
}

// Total locked funds not yet released, which custody must cover until the sweep epoch.
func (st *State) Outstanding() abi.TokenAmount {
	return big.Sub(st.TotalLocked, st.TotalClaimed)
}
