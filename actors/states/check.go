package states

import (
	"sync"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/account"
	init_ "github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/init"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/token"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/vesting"
)

type summaries struct {
	mu       sync.Mutex
	init     *init_.StateSummary
	accounts map[addr.Address]*account.StateSummary
	tokens   map[addr.Address]*token.StateSummary
	vestings map[addr.Address]*vesting.StateSummary
}

// Within this code, Go errors are not expected, but are often converted to messages so that execution
// can continue to find more errors rather than fail with no insight.
// Only errors thar are particularly troublesome to recover from should propagate as Go errors.
// Actors are checked concurrently; cross-actor checks run once all of them are summarized.
func CheckStateInvariants(tree *Tree, priorEpoch abi.ChainEpoch) (*builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}
	sums := &summaries{
		accounts: map[addr.Address]*account.StateSummary{},
		tokens:   map[addr.Address]*token.StateSummary{},
		vestings: map[addr.Address]*vesting.StateSummary{},
	}

	type entry struct {
		key   addr.Address
		actor Actor
	}
	var entries []entry
	if err := tree.ForEach(func(key addr.Address, actor *Actor) error {
		entries = append(entries, entry{key, *actor})
		return nil
	}); err != nil {
		return nil, err
	}

	var eg errgroup.Group
	for _, e := range entries {
		e := e
		acc := acc.WithPrefix("%v ", e.key) // Intentional shadow
		eg.Go(func() error {
			return checkActor(tree, acc, sums, e.key, &e.actor)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	//
	// Perform cross-actor checks from state summaries here.
	//

	CheckAccountsAgainstInit(acc, sums.accounts, sums.init)
	CheckVestingAgainstToken(acc, sums.vestings, sums.tokens, priorEpoch)

	return acc, nil
}

func checkActor(tree *Tree, acc *builtin.MessageAccumulator, sums *summaries, key addr.Address, actor *Actor) error {
	if key.Protocol() != addr.ID {
		acc.Addf("unexpected address protocol in state tree root: %v", key)
	}

	switch actor.Code {
	case builtin.SystemActorCodeID:

	case builtin.InitActorCodeID:
		var st init_.State
		if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
			return err
		}
		summary, msgs := init_.CheckStateInvariants(&st, tree.Store)
		acc.WithPrefix("init: ").AddAll(msgs)
		sums.mu.Lock()
		sums.init = summary
		sums.mu.Unlock()

	case builtin.AccountActorCodeID:
		var st account.State
		if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
			return err
		}
		summary, msgs := account.CheckStateInvariants(&st)
		acc.WithPrefix("account: ").AddAll(msgs)
		sums.mu.Lock()
		sums.accounts[key] = summary
		sums.mu.Unlock()

	case builtin.TokenActorCodeID:
		var st token.State
		if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
			return err
		}
		summary, msgs := token.CheckStateInvariants(&st, tree.Store)
		acc.WithPrefix("token: ").AddAll(msgs)
		sums.mu.Lock()
		sums.tokens[key] = summary
		sums.mu.Unlock()

	case builtin.VestingActorCodeID:
		var st vesting.State
		if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
			return err
		}
		summary, msgs := vesting.CheckStateInvariants(&st, tree.Store)
		acc.WithPrefix("vesting: ").AddAll(msgs)
		sums.mu.Lock()
		sums.vestings[key] = summary
		sums.mu.Unlock()

	default:
		if !builtin.IsBuiltinActor(actor.Code) {
			// Test-only actors carry no invariants.
			return nil
		}
		return xerrors.Errorf("unexpected actor code CID %v for address %v", actor.Code, key)
	}
	return nil
}

// Every account must be reachable from its public key through the init actor's table.
func CheckAccountsAgainstInit(acc *builtin.MessageAccumulator, accountSummaries map[addr.Address]*account.StateSummary, initSummary *init_.StateSummary) {
	if initSummary == nil {
		acc.Addf("no init actor in state tree")
		return
	}
	for idAddr, summary := range accountSummaries { // nolint:nomaprange
		id, err := addr.IDFromAddress(idAddr)
		if err != nil {
			acc.Addf("account %v has a non-ID key", idAddr)
			continue
		}
		mapped, ok := initSummary.AddrIDs[summary.PubKeyAddr]
		acc.Require(ok, "account %v pubkey %v not in init table", idAddr, summary.PubKeyAddr)
		if ok {
			acc.Require(uint64(mapped) == id, "account %v pubkey %v maps to id %d", idAddr, summary.PubKeyAddr, mapped)
		}
	}
}

// Until residual custody may be swept, the token balance held by each vesting ledger must cover
// everything its beneficiaries can still claim.
func CheckVestingAgainstToken(acc *builtin.MessageAccumulator, vestingSummaries map[addr.Address]*vesting.StateSummary,
	tokenSummaries map[addr.Address]*token.StateSummary, priorEpoch abi.ChainEpoch) {
	for vestingAddr, summary := range vestingSummaries { // nolint:nomaprange
		tokenSummary, ok := tokenSummaries[summary.Token]
		acc.Require(ok, "vesting %v custody token %v is not a token actor", vestingAddr, summary.Token)
		if !ok {
			continue
		}
		custody, ok := tokenSummary.Balances[vestingAddr]
		if !ok {
			custody = big.Zero()
		}
		outstanding := big.Sub(summary.TotalLocked, summary.TotalClaimed)
		if priorEpoch < summary.SweepEpoch {
			acc.Require(custody.GreaterThanEqual(outstanding),
				"vesting %v custody %v below outstanding %v", vestingAddr, custody, outstanding)
		}
	}
}
