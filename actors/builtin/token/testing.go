package token

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/util/adt"
)

type StateSummary struct {
	TotalSupply abi.TokenAmount
	Balances    map[addr.Address]abi.TokenAmount
}

// Checks internal invariants of token state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{
		TotalSupply: st.TotalSupply,
		Balances:    make(map[addr.Address]abi.TokenAmount),
	}

	acc.Require(st.TotalSupply.Sign() >= 0, "negative total supply %v", st.TotalSupply)

	sum := big.Zero()
	if balances, err := adt.AsBalanceTable(store, st.Balances); err != nil {
		acc.Addf("error loading balances: %v", err)
	} else {
		err = balances.ForEach(func(holder addr.Address, balance abi.TokenAmount) error {
			acc.Require(holder.Protocol() == addr.ID, "balance key %v is not an ID address", holder)
			acc.Require(balance.Sign() > 0, "balance of %v is %v", holder, balance)
			summary.Balances[holder] = balance
			sum = big.Add(sum, balance)
			return nil
		})
		acc.RequireNoError(err, "error iterating balances")
	}
	acc.Require(sum.Equals(st.TotalSupply), "sum of balances %v does not match total supply %v", sum, st.TotalSupply)

	if allowances, err := adt.AsMap(store, st.Allowances, builtin.DefaultHamtBitwidth); err != nil {
		acc.Addf("error loading allowances: %v", err)
	} else {
		var root cbg.CborCid
		err = allowances.ForEach(&root, func(ownerKey string) error {
			owner, err := addr.NewFromBytes([]byte(ownerKey))
			if err != nil {
				return err
			}
			spenders, err := adt.AsMap(store, cid.Cid(root), builtin.DefaultHamtBitwidth)
			if err != nil {
				return err
			}
			var allowance abi.TokenAmount
			return spenders.ForEach(&allowance, func(spenderKey string) error {
				spender, err := addr.NewFromBytes([]byte(spenderKey))
				if err != nil {
					return err
				}
				acc.Require(allowance.Sign() > 0, "allowance of %v for %v is %v", owner, spender, allowance)
				return nil
			})
		})
		acc.RequireNoError(err, "error iterating allowances")
	}

	return summary, acc
}
