package states_test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/account"
	init_ "github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/init"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/token"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/vesting"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/states"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/support/ipld"
	tutil "github.com/jaceteam/Jace-Token-Lock-Team-v1/support/testing"
)

func TestCheckAccountsAgainstInit(t *testing.T) {
	pubkey := tutil.NewBLSAddr(t, 1)
	other := tutil.NewBLSAddr(t, 2)
	initSummary := &init_.StateSummary{
		AddrIDs: map[addr.Address]abi.ActorID{pubkey: 100},
		NextID:  101,
	}

	t.Run("consistent", func(t *testing.T) {
		acc := &builtin.MessageAccumulator{}
		states.CheckAccountsAgainstInit(acc, map[addr.Address]*account.StateSummary{
			tutil.NewIDAddr(t, 100): {PubKeyAddr: pubkey},
		}, initSummary)
		assert.True(t, acc.IsEmpty(), acc.Messages())
	})

	t.Run("unmapped or mismatched pubkey", func(t *testing.T) {
		acc := &builtin.MessageAccumulator{}
		states.CheckAccountsAgainstInit(acc, map[addr.Address]*account.StateSummary{
			tutil.NewIDAddr(t, 100): {PubKeyAddr: other},
			tutil.NewIDAddr(t, 105): {PubKeyAddr: pubkey},
		}, initSummary)
		assert.Len(t, acc.Messages(), 2)
	})

	t.Run("missing init", func(t *testing.T) {
		acc := &builtin.MessageAccumulator{}
		states.CheckAccountsAgainstInit(acc, nil, nil)
		assert.Equal(t, []string{"no init actor in state tree"}, acc.Messages())
	})
}

func TestCheckVestingAgainstToken(t *testing.T) {
	tokenAddr := tutil.NewIDAddr(t, 300)
	ledger := tutil.NewIDAddr(t, 400)
	summary := &vesting.StateSummary{
		Token:        tokenAddr,
		TotalLocked:  abi.NewTokenAmount(1_000),
		TotalClaimed: abi.NewTokenAmount(400),
		SweepEpoch:   5_000,
	}
	check := func(custody abi.TokenAmount, epoch abi.ChainEpoch) []string {
		acc := &builtin.MessageAccumulator{}
		balances := map[addr.Address]abi.TokenAmount{}
		if !custody.IsZero() {
			balances[ledger] = custody
		}
		states.CheckVestingAgainstToken(acc,
			map[addr.Address]*vesting.StateSummary{ledger: summary},
			map[addr.Address]*token.StateSummary{tokenAddr: {TotalSupply: custody, Balances: balances}},
			epoch)
		return acc.Messages()
	}

	assert.Empty(t, check(abi.NewTokenAmount(600), 0))
	assert.Empty(t, check(abi.NewTokenAmount(2_000), 0))
	assert.Len(t, check(abi.NewTokenAmount(599), 0), 1)
	assert.Len(t, check(big.Zero(), 4_999), 1)
	// after the sweep epoch custody may be drained
	assert.Empty(t, check(big.Zero(), 5_000))

	t.Run("custody token is not a token", func(t *testing.T) {
		acc := &builtin.MessageAccumulator{}
		states.CheckVestingAgainstToken(acc, map[addr.Address]*vesting.StateSummary{ledger: summary}, nil, 0)
		assert.Len(t, acc.Messages(), 1)
	})
}

func TestCheckStateInvariantsTree(t *testing.T) {
	ctx := context.Background()
	store := ipld.NewADTStore(ctx)
	tree, err := states.NewTree(store)
	require.NoError(t, err)

	initState, err := init_.ConstructState(store, "checknet")
	require.NoError(t, err)
	pubkey := tutil.NewBLSAddr(t, 8)
	id, err := initState.MapAddressToNewID(store, pubkey)
	require.NoError(t, err)

	put := func(a addr.Address, code cid.Cid, st interface{}) {
		head, err := store.Put(ctx, st)
		require.NoError(t, err)
		require.NoError(t, tree.SetActor(a, &states.Actor{Code: code, Head: head}))
	}
	put(builtin.InitActorAddr, builtin.InitActorCodeID, initState)
	put(id, builtin.AccountActorCodeID, &account.State{Address: pubkey})

	acc, err := states.CheckStateInvariants(tree, 0)
	require.NoError(t, err)
	assert.True(t, acc.IsEmpty(), acc.Messages())

	// an account the init actor does not know about
	put(tutil.NewIDAddr(t, 999), builtin.AccountActorCodeID, &account.State{Address: tutil.NewBLSAddr(t, 9)})
	acc, err = states.CheckStateInvariants(tree, 0)
	require.NoError(t, err)
	require.Len(t, acc.Messages(), 1)
	assert.Contains(t, acc.Messages()[0], "not in init table")
}
