package test

import (
	"bytes"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	init_ "github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/init"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/token"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/vesting"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/support/vm"
)

// Whole tokens in base units.
func tokens(n int64) abi.TokenAmount {
	return big.Mul(big.NewInt(n), builtin.TokenPrecision)
}

func exec(t *testing.T, v *vm.VM, from addr.Address, code cid.Cid, params cbor.Marshaler) *init_.ExecReturn {
	buf := new(bytes.Buffer)
	require.NoError(t, params.MarshalCBOR(buf))
	ret := vm.ApplyOk(t, v, from, builtin.InitActorAddr, builtin.MethodsInit.Exec, &init_.ExecParams{
		CodeCID:           code,
		ConstructorParams: buf.Bytes(),
	})
	execRet, ok := ret.(*init_.ExecReturn)
	require.True(t, ok)
	return execRet
}

func deployToken(t *testing.T, v *vm.VM, holder addr.Address, supply abi.TokenAmount) addr.Address {
	return exec(t, v, holder, builtin.TokenActorCodeID, &token.ConstructorParams{
		Name:          "Jace",
		Symbol:        "JACE",
		Decimals:      18,
		InitialHolder: holder,
		InitialSupply: supply,
	}).IDAddress
}

func deployLedger(t *testing.T, v *vm.VM, admin, tokenAddr addr.Address, schedule vesting.Schedule, beneficiaries ...addr.Address) addr.Address {
	return exec(t, v, admin, builtin.VestingActorCodeID, &vesting.ConstructorParams{
		Token:         tokenAddr,
		Admin:         admin,
		Schedule:      schedule,
		Beneficiaries: beneficiaries,
	}).IDAddress
}

func transfer(t *testing.T, v *vm.VM, tokenAddr, from, to addr.Address, amount abi.TokenAmount) {
	vm.ApplyOk(t, v, from, tokenAddr, builtin.MethodsToken.Transfer, &token.TransferParams{To: to, Amount: amount})
}

func approve(t *testing.T, v *vm.VM, tokenAddr, owner, spender addr.Address, amount abi.TokenAmount) {
	vm.ApplyOk(t, v, owner, tokenAddr, builtin.MethodsToken.Approve, &token.ApproveParams{Spender: spender, Amount: amount})
}

func balanceOf(t *testing.T, v *vm.VM, caller, tokenAddr, holder addr.Address) abi.TokenAmount {
	ret := vm.ApplyOk(t, v, caller, tokenAddr, builtin.MethodsToken.BalanceOf, &holder)
	return *ret.(*abi.TokenAmount)
}

func claim(t *testing.T, v *vm.VM, ledger, who addr.Address) abi.TokenAmount {
	ret := vm.ApplyOk(t, v, who, ledger, builtin.MethodsVesting.Claim, nil)
	return ret.(*vesting.ClaimReturn).Amount
}

func getRecord(t *testing.T, v *vm.VM, caller, ledger, who addr.Address) *vesting.RecordView {
	ret := vm.ApplyOk(t, v, caller, ledger, builtin.MethodsVesting.GetRecord, &who)
	return ret.(*vesting.RecordView)
}

func advance(t *testing.T, v *vm.VM, epoch abi.ChainEpoch) {
	require.NoError(t, v.SetEpoch(epoch))
}

// Logs each beneficiary's record in whole tokens.
func printLedger(t *testing.T, v *vm.VM, caller, ledger addr.Address, who ...addr.Address) {
	p := message.NewPrinter(language.English) // For readable large numbers
	for _, w := range who {
		r := getRecord(t, v, caller, ledger, w)
		t.Log(p.Sprintf("epoch %d %v: locked %d claimed %d claimable %d (%s plan)", v.GetEpoch(), w,
			big.Div(r.TotalLocked, builtin.TokenPrecision).Int64(),
			big.Div(r.TotalClaimed, builtin.TokenPrecision).Int64(),
			big.Div(r.Claimable, builtin.TokenPrecision).Int64(),
			r.Plan))
	}
}
