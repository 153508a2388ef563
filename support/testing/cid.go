package testing

import (
	"fmt"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// NewCodeCIDGetter returns a closure that yields a distinct actor code CID on each call, built the
// same way as builtin codes but outside the builtin namespace. The codes are unique wrt the closure
// returned, not globally.
func NewCodeCIDGetter(prefix string) func() cid.Cid {
	i := 0
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	return func() cid.Cid {
		c, err := builder.Sum([]byte(fmt.Sprintf("%s/%d", prefix, i)))
		if err != nil {
			panic(err)
		}
		i++
		return c
	}
}
