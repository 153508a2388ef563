package runtime

import (
	"fmt"
	"io"

	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"
)

// Concrete types associated with the runtime interface.

// VMActor is the interface all actor implementations satisfy for the VM to dispatch into them.
type VMActor interface {
	// Exports returns a slice of methods exported by this actor, indexed by method number.
	// Skipped/deprecated method numbers will be nil.
	Exports() []interface{}

	// Code returns the code ID for this actor.
	Code() cid.Cid

	// State returns a new State object for this actor. This can be used to
	// decode the actor's state.
	State() cbor.Er

	// IsSingleton returns true if only one instance of this actor should ever be created.
	IsSingleton() bool
}

type EmptyReturn struct{}

var _ cbor.Marshaler = (*EmptyReturn)(nil)
var _ cbor.Unmarshaler = (*EmptyReturn)(nil)

// 0x80 is empty list (major type 4 with zero length)
// This is encoded with empty-list since we use tuple-encoding for everything.
const emptyListEncoded = 0x80

func (EmptyReturn) MarshalCBOR(w io.Writer) error {
	_, err := w.Write([]byte{emptyListEncoded})
	return err
}

func (EmptyReturn) UnmarshalCBOR(r io.Reader) error {
	buf := make([]byte, 1)
	_, err := io.ReadFull(r, buf)
	if err != nil {
		return err
	}
	if buf[0] != emptyListEncoded {
		return fmt.Errorf("invalid empty return %x", buf[0])
	}
	return nil
}

// Wraps already-serialized bytes as CBOR-marshalable.
type CBORBytes []byte

func (b CBORBytes) MarshalCBOR(w io.Writer) error {
	_, err := w.Write(b)
	return err
}
