package vm

import (
	"context"
	"io"

	blocks "github.com/ipfs/go-block-format"
	cid "github.com/ipfs/go-cid"
	cbornode "github.com/ipfs/go-ipld-cbor"
	car "github.com/ipld/go-car"
	carutil "github.com/ipld/go-car/util"
	mh "github.com/multiformats/go-multihash"
	"golang.org/x/xerrors"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/states"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/support/ipld"
)

// ExportCAR writes the committed state tree and the event log as a CAR archive.
// The archive roots are the state root followed by the event log root.
func (vm *VM) ExportCAR(w io.Writer) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	eventsRoot, err := vm.events.Root()
	if err != nil {
		return err
	}
	return writeCAR(vm.bs, w, vm.stateRoot, eventsRoot)
}

// Writes every block reachable from the roots, each once, in depth-first order.
func writeCAR(bs *ipld.BlockStoreInMemory, w io.Writer, roots ...cid.Cid) error {
	if err := car.WriteHeader(&car.CarHeader{Roots: roots, Version: 1}, w); err != nil {
		return xerrors.Errorf("failed to write car header: %w", err)
	}

	seen := cid.NewSet()
	var walk func(c cid.Cid) error
	walk = func(c cid.Cid) error {
		if !seen.Visit(c) {
			return nil
		}
		// identity cids carry their data inline
		if c.Prefix().MhType == mh.IDENTITY {
			return nil
		}
		blk, err := bs.Get(c)
		if err != nil {
			return xerrors.Errorf("failed to get block %s: %w", c, err)
		}
		if err := carutil.LdWrite(w, c.Bytes(), blk.RawData()); err != nil {
			return xerrors.Errorf("failed to write block %s: %w", c, err)
		}
		if c.Prefix().Codec != cid.DagCBOR {
			return nil
		}
		nd, err := cbornode.DecodeBlock(blk)
		if err != nil {
			return xerrors.Errorf("failed to decode block %s: %w", c, err)
		}
		for _, lnk := range nd.Links() {
			if err := walk(lnk.Cid); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := walk(root); err != nil {
			return err
		}
	}
	return nil
}

type blockLoader struct {
	bs *ipld.BlockStoreInMemory
}

func (l blockLoader) Put(b blocks.Block) error {
	return l.bs.Put(b)
}

// LoadVMFromCAR reconstructs a VM from an archive written by ExportCAR.
// The loaded VM starts at epoch zero; callers restore the clock with SetEpoch.
func LoadVMFromCAR(ctx context.Context, actorImpls ActorImplLookup, r io.Reader, networkName string) (*VM, error) {
	bs := ipld.NewBlockStoreInMemory()
	header, err := car.LoadCar(blockLoader{bs}, r)
	if err != nil {
		return nil, xerrors.Errorf("failed to load car: %w", err)
	}
	if len(header.Roots) != 2 {
		return nil, xerrors.Errorf("expected state and event roots, got %d roots", len(header.Roots))
	}

	vm := NewVM(ctx, actorImpls, bs, networkName)
	vm.actors, err = states.LoadTree(vm.store, header.Roots[0])
	if err != nil {
		return nil, xerrors.Errorf("failed to load state tree: %w", err)
	}
	vm.stateRoot = header.Roots[0]
	vm.events, err = states.LoadEventLog(vm.store, header.Roots[1])
	if err != nil {
		return nil, xerrors.Errorf("failed to load event log: %w", err)
	}
	return vm, nil
}
