package vesting

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/util/adt"
)

type StateSummary struct {
	Token        addr.Address
	TotalLocked  abi.TokenAmount
	TotalClaimed abi.TokenAmount
	SweepEpoch   abi.ChainEpoch
	RecordCount  int
}

// Checks internal invariants of vesting state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}

	acc.RequireNoError(Schedule(st.Schedule).Validate(), "invalid schedule")
	acc.Require(st.Token.Protocol() == addr.ID, "token address %v is not an ID address", st.Token)
	acc.Require(st.Admin.Protocol() == addr.ID, "admin address %v is not an ID address", st.Admin)
	acc.Require(len(st.Beneficiaries) > 0, "no beneficiaries")

	seen := make(map[addr.Address]struct{}, len(st.Beneficiaries))
	for _, b := range st.Beneficiaries {
		acc.Require(b.Protocol() == addr.ID, "beneficiary %v is not an ID address", b)
		if _, dup := seen[b]; dup {
			acc.Addf("duplicate beneficiary %v", b)
		}
		seen[b] = struct{}{}
	}

	summary := &StateSummary{
		Token:        st.Token,
		TotalLocked:  st.TotalLocked,
		TotalClaimed: st.TotalClaimed,
	}
	if len(st.Schedule) == CheckpointCount {
		summary.SweepEpoch = st.SweepEpoch()
	}

	sumLocked := big.Zero()
	sumClaimed := big.Zero()
	if records, err := adt.AsMap(store, st.Records, builtin.DefaultHamtBitwidth); err != nil {
		acc.Addf("error loading records: %v", err)
	} else {
		var record VestingRecord
		err = records.ForEach(&record, func(key string) error {
			who, err := addr.NewFromBytes([]byte(key))
			if err != nil {
				return err
			}
			acc := acc.WithPrefix("record %v: ", who) // Intentional shadow
			_, registered := seen[who]
			acc.Require(registered, "record for unregistered beneficiary")
			acc.Require(record.TotalLocked.Sign() > 0, "non-positive locked total %v", record.TotalLocked)
			acc.Require(record.TotalClaimed.Sign() >= 0, "negative claimed total %v", record.TotalClaimed)
			acc.Require(record.TotalClaimed.LessThanEqual(record.TotalLocked),
				"claimed %v exceeds locked %v", record.TotalClaimed, record.TotalLocked)

			sumLocked = big.Add(sumLocked, record.TotalLocked)
			sumClaimed = big.Add(sumClaimed, record.TotalClaimed)
			summary.RecordCount++
			return nil
		})
		acc.RequireNoError(err, "error iterating records")
	}

	acc.Require(sumLocked.Equals(st.TotalLocked), "pool locked %v does not match sum of records %v", st.TotalLocked, sumLocked)
	acc.Require(sumClaimed.Equals(st.TotalClaimed), "pool claimed %v does not match sum of records %v", st.TotalClaimed, sumClaimed)

	return summary, acc
}
