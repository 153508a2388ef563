package token

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/util/adt"
)

type State struct {
	Name        string
	Symbol      string
	Decimals    uint64
	TotalSupply abi.TokenAmount
	// BalanceTable (HAMT[ID address]TokenAmount)
	Balances cid.Cid
	// HAMT[owner ID address]HAMT[spender ID address]TokenAmount
	Allowances cid.Cid
}

func ConstructState(store adt.Store, name, symbol string, decimals uint64) (*State, error) {
	emptyBalances, err := adt.StoreEmptyMap(store, adt.BalanceTableBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty balance table: %w", err)
	}
	emptyAllowances, err := adt.StoreEmptyMap(store, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty allowances: %w", err)
	}
	return &State{
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		TotalSupply: big.Zero(),
		Balances:    emptyBalances,
		Allowances:  emptyAllowances,
	}, nil
}

func (st *State) BalanceOf(store adt.Store, holder addr.Address) (abi.TokenAmount, error) {
	balances, err := adt.AsBalanceTable(store, st.Balances)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to load balances: %w", err)
	}
	return balances.Get(holder)
}

// Creates new tokens credited to `to`.
func (st *State) Mint(store adt.Store, to addr.Address, amount abi.TokenAmount) error {
	if amount.Sign() < 0 {
		return exitcode.ErrIllegalArgument.Wrapf("negative mint amount %v", amount)
	}
	balances, err := adt.AsBalanceTable(store, st.Balances)
	if err != nil {
		return xerrors.Errorf("failed to load balances: %w", err)
	}
	if err := balances.Add(to, amount); err != nil {
		return xerrors.Errorf("failed to credit %v: %w", to, err)
	}
	if st.Balances, err = balances.Root(); err != nil {
		return xerrors.Errorf("failed to flush balances: %w", err)
	}
	st.TotalSupply = big.Add(st.TotalSupply, amount)
	return nil
}

// Moves `amount` from `from` to `to`, failing with ErrInsufficientFunds if `from` holds less.
func (st *State) Transfer(store adt.Store, from, to addr.Address, amount abi.TokenAmount) error {
	if amount.Sign() < 0 {
		return exitcode.ErrIllegalArgument.Wrapf("negative transfer amount %v", amount)
	}
	balances, err := adt.AsBalanceTable(store, st.Balances)
	if err != nil {
		return xerrors.Errorf("failed to load balances: %w", err)
	}
	balance, err := balances.Get(from)
	if err != nil {
		return xerrors.Errorf("failed to get balance of %v: %w", from, err)
	}
	if balance.LessThan(amount) {
		return exitcode.ErrInsufficientFunds.Wrapf("balance of %v is %v, transfer requires %v", from, balance, amount)
	}
	if err := balances.MustSubtract(from, amount); err != nil {
		return xerrors.Errorf("failed to debit %v: %w", from, err)
	}
	if err := balances.Add(to, amount); err != nil {
		return xerrors.Errorf("failed to credit %v: %w", to, err)
	}
	if st.Balances, err = balances.Root(); err != nil {
		return xerrors.Errorf("failed to flush balances: %w", err)
	}
	return nil
}

func (st *State) AllowanceOf(store adt.Store, owner, spender addr.Address) (abi.TokenAmount, error) {
	spenders, found, err := st.loadSpenders(store, owner)
	if err != nil || !found {
		return big.Zero(), err
	}
	var allowance abi.TokenAmount
	found, err = spenders.Get(abi.AddrKey(spender), &allowance)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to get allowance of %v for %v: %w", owner, spender, err)
	}
	if !found {
		return big.Zero(), nil
	}
	return allowance, nil
}

// Sets the amount `spender` may transfer out of `owner`'s balance. A zero amount removes the entry.
func (st *State) SetAllowance(store adt.Store, owner, spender addr.Address, amount abi.TokenAmount) error {
	if amount.Sign() < 0 {
		return exitcode.ErrIllegalArgument.Wrapf("negative allowance %v", amount)
	}
	allowances, err := adt.AsMap(store, st.Allowances, builtin.DefaultHamtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load allowances: %w", err)
	}
	spenders, found, err := st.loadSpenders(store, owner)
	if err != nil {
		return err
	}
	if !found {
		if spenders, err = adt.MakeEmptyMap(store, builtin.DefaultHamtBitwidth); err != nil {
			return xerrors.Errorf("failed to create allowances of %v: %w", owner, err)
		}
	}

	if amount.IsZero() {
		if _, err := spenders.TryDelete(abi.AddrKey(spender)); err != nil {
			return xerrors.Errorf("failed to clear allowance of %v for %v: %w", owner, spender, err)
		}
	} else if err := spenders.Put(abi.AddrKey(spender), &amount); err != nil {
		return xerrors.Errorf("failed to set allowance of %v for %v: %w", owner, spender, err)
	}

	spendersRoot, err := spenders.Root()
	if err != nil {
		return xerrors.Errorf("failed to flush spenders of %v: %w", owner, err)
	}
	c := cbg.CborCid(spendersRoot)
	if err := allowances.Put(abi.AddrKey(owner), &c); err != nil {
		return xerrors.Errorf("failed to put spenders of %v: %w", owner, err)
	}
	if st.Allowances, err = allowances.Root(); err != nil {
		return xerrors.Errorf("failed to flush allowances: %w", err)
	}
	return nil
}

// Transfers `amount` from `owner` to `to` on behalf of `spender`, consuming allowance.
func (st *State) TransferFrom(store adt.Store, spender, owner, to addr.Address, amount abi.TokenAmount) error {
	allowance, err := st.AllowanceOf(store, owner, spender)
	if err != nil {
		return err
	}
	if allowance.LessThan(amount) {
		return exitcode.ErrInsufficientFunds.Wrapf("allowance of %v for %v is %v, transfer requires %v", owner, spender, allowance, amount)
	}
	if err := st.Transfer(store, owner, to, amount); err != nil {
		return err
	}
	return st.SetAllowance(store, owner, spender, big.Sub(allowance, amount))
}

func (st *State) loadSpenders(store adt.Store, owner addr.Address) (*adt.Map, bool, error) {
	allowances, err := adt.AsMap(store, st.Allowances, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load allowances: %w", err)
	}
	var root cbg.CborCid
	found, err := allowances.Get(abi.AddrKey(owner), &root)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to get spenders of %v: %w", owner, err)
	}
	if !found {
		return nil, false, nil
	}
	spenders, err := adt.AsMap(store, cid.Cid(root), builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load spenders of %v: %w", owner, err)
	}
	return spenders, true, nil
}
