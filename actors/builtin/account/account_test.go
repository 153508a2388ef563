package account_test

import (
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/assert"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/account"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/support/mock"
	tutil "github.com/jaceteam/Jace-Token-Lock-Team-v1/support/testing"
)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, account.Actor{})
}

func TestAccountactor(t *testing.T) {
	actor := account.Actor{}

	receiver := tutil.NewIDAddr(t, 100)
	builder := mock.NewBuilder(receiver).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)

	testCases := []struct {
		desc string
		addr addr.Address

		exitCode exitcode.ExitCode
	}{
		{"happy path construct SECP256K1 address", tutil.NewSECP256K1Addr(t, "secpaddress"), exitcode.Ok},
		{"happy path construct BLS address", tutil.NewBLSAddr(t, 1), exitcode.Ok},
		{"fail to construct account actor using ID address", tutil.NewIDAddr(t, 1), exitcode.ErrIllegalArgument},
		{"fail to construct account actor using Actor address", tutil.NewActorAddr(t, "actoraddress"), exitcode.ErrIllegalArgument},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			rt := builder.Build(t)
			rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)

			if tc.exitCode.IsSuccess() {
				rt.Call(actor.Constructor, &tc.addr)

				var st account.State
				rt.GetState(&st)
				assert.Equal(t, tc.addr, st.Address)

				rt.ExpectValidateCallerAny()
				pubkeyAddress := rt.Call(actor.PubkeyAddress, nil).(*addr.Address)
				assert.Equal(t, tc.addr, *pubkeyAddress)

				_, msgs := account.CheckStateInvariants(&st)
				assert.True(t, msgs.IsEmpty(), msgs.Messages())
			} else {
				rt.ExpectAbort(tc.exitCode, func() {
					rt.Call(actor.Constructor, &tc.addr)
				})
			}
			rt.Verify()
		})
	}
}
