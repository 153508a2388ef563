package builtin

import (
	"github.com/filecoin-project/go-state-types/abi"
)

const (
	MethodConstructor = abi.MethodNum(1)
)

var MethodsAccount = struct {
	Constructor   abi.MethodNum
	PubkeyAddress abi.MethodNum
}{MethodConstructor, 2}

var MethodsInit = struct {
	Constructor abi.MethodNum
	Exec        abi.MethodNum
}{MethodConstructor, 2}

var MethodsToken = struct {
	Constructor  abi.MethodNum
	Transfer     abi.MethodNum
	Approve      abi.MethodNum
	TransferFrom abi.MethodNum
	BalanceOf    abi.MethodNum
	Allowance    abi.MethodNum
	TotalSupply  abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5, 6, 7}

var MethodsVesting = struct {
	Constructor      abi.MethodNum
	Lock             abi.MethodNum
	Claim            abi.MethodNum
	WithdrawResidual abi.MethodNum
	CustodyBalance   abi.MethodNum
	GetSchedule      abi.MethodNum
	GetBeneficiaries abi.MethodNum
	GetRecord        abi.MethodNum
	GetInfo          abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5, 6, 7, 8, 9}
