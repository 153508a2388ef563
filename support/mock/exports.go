package mock

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// CheckActorExports checks that every exported method has the shape expected by the VM dispatcher:
// a runtime and a CBOR-unmarshalable pointer in, a single CBOR-marshalable value out.
func CheckActorExports(t *testing.T, act interface{ Exports() []interface{} }) {
	exports := act.Exports()
	require.Greater(t, len(exports), 1, "actor exports no methods")
	require.Nil(t, exports[0], "method zero is reserved")

	for i, m := range exports {
		if i == 0 || m == nil {
			continue
		}
		t.Run(fmt.Sprintf("method%d-type", i), func(t *testing.T) {
			mrt := &Runtime{t: t}
			mrt.verifyExportedMethodType(reflect.ValueOf(m))
		})
	}
}
