package adt_test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/util/adt"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/support/ipld"
	tutil "github.com/jaceteam/Jace-Token-Lock-Team-v1/support/testing"
)

func newEmptyBalanceTable(t *testing.T) *adt.BalanceTable {
	store := ipld.NewADTStore(context.Background())
	emptyRoot, err := adt.StoreEmptyMap(store, adt.BalanceTableBitwidth)
	require.NoError(t, err)
	bt, err := adt.AsBalanceTable(store, emptyRoot)
	require.NoError(t, err)
	return bt
}

func TestBalanceTable(t *testing.T) {
	addr1 := tutil.NewIDAddr(t, 100)
	addr2 := tutil.NewIDAddr(t, 101)

	t.Run("absent keys have zero balance", func(t *testing.T) {
		bt := newEmptyBalanceTable(t)
		amount, err := bt.Get(addr1)
		require.NoError(t, err)
		assert.Equal(t, big.Zero(), amount)
	})

	t.Run("Add adds or creates", func(t *testing.T) {
		bt := newEmptyBalanceTable(t)

		require.NoError(t, bt.Add(addr1, abi.NewTokenAmount(10)))
		amount, err := bt.Get(addr1)
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(10), amount)

		require.NoError(t, bt.Add(addr1, abi.NewTokenAmount(20)))
		amount, err = bt.Get(addr1)
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(30), amount)
	})

	t.Run("Add rejects negative results", func(t *testing.T) {
		bt := newEmptyBalanceTable(t)
		require.NoError(t, bt.Add(addr1, abi.NewTokenAmount(5)))
		assert.Error(t, bt.Add(addr1, abi.NewTokenAmount(-6)))
	})

	t.Run("draining a balance removes the entry", func(t *testing.T) {
		bt := newEmptyBalanceTable(t)
		require.NoError(t, bt.Add(addr1, abi.NewTokenAmount(5)))
		require.NoError(t, bt.Add(addr1, abi.NewTokenAmount(-5)))
		require.NoError(t, bt.Add(addr2, big.Zero()))

		count := 0
		require.NoError(t, bt.ForEach(func(_ addr.Address, _ abi.TokenAmount) error {
			count++
			return nil
		}))
		assert.Zero(t, count)
	})

	t.Run("SubtractWithMinimum", func(t *testing.T) {
		bt := newEmptyBalanceTable(t)
		require.NoError(t, bt.Add(addr1, abi.NewTokenAmount(80)))

		sub, err := bt.SubtractWithMinimum(addr1, abi.NewTokenAmount(20), abi.NewTokenAmount(70))
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(10), sub)

		sub, err = bt.SubtractWithMinimum(addr1, abi.NewTokenAmount(20), abi.NewTokenAmount(70))
		require.NoError(t, err)
		assert.Equal(t, big.Zero(), sub)
	})

	t.Run("MustSubtract fails when short", func(t *testing.T) {
		bt := newEmptyBalanceTable(t)
		require.NoError(t, bt.Add(addr1, abi.NewTokenAmount(5)))
		assert.Error(t, bt.MustSubtract(addr1, abi.NewTokenAmount(6)))

		bal, err := bt.Get(addr1)
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(5), bal)

		require.NoError(t, bt.MustSubtract(addr1, abi.NewTokenAmount(5)))
		bal, err = bt.Get(addr1)
		require.NoError(t, err)
		assert.True(t, bal.IsZero())
	})

	t.Run("Total sums balances", func(t *testing.T) {
		bt := newEmptyBalanceTable(t)
		require.NoError(t, bt.Add(addr1, abi.NewTokenAmount(5)))
		require.NoError(t, bt.Add(addr2, abi.NewTokenAmount(7)))

		total, err := bt.Total()
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(12), total)
	})
}
