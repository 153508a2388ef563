package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/account"
	init_ "github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/init"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/system"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/token"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/vesting"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/puppet"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/states"
)

func main() {
	// State tree
	if err := gen.WriteTupleEncodersToFile("./actors/states/cbor_gen.go", "states",
		states.Actor{},
		states.Event{},
	); err != nil {
		panic(err)
	}

	// Actors
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/system/cbor_gen.go", "system",
		// actor state
		system.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/account/cbor_gen.go", "account",
		// actor state
		account.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/init/cbor_gen.go", "init",
		// actor state
		init_.State{},
		// method params and returns
		init_.ConstructorParams{},
		init_.ExecParams{},
		init_.ExecReturn{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/token/cbor_gen.go", "token",
		// actor state
		token.State{},
		// method params and returns
		token.ConstructorParams{},
		token.TransferParams{},
		token.ApproveParams{},
		token.TransferFromParams{},
		token.AllowanceParams{},
		// events
		token.TransferEvent{},
		token.ApprovalEvent{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/vesting/cbor_gen.go", "vesting",
		// actor state
		vesting.State{},
		vesting.VestingRecord{},
		// method params and returns
		vesting.ConstructorParams{},
		vesting.LockParams{},
		vesting.ClaimReturn{},
		vesting.WithdrawResidualParams{},
		vesting.WithdrawResidualReturn{},
		vesting.ScheduleReturn{},
		vesting.BeneficiariesReturn{},
		vesting.RecordView{},
		vesting.InfoReturn{},
		// events
		vesting.LockEvent{},
		vesting.ClaimEvent{},
		vesting.SweepEvent{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/puppet/cbor_gen.go", "puppet",
		// actor state
		puppet.State{},
		// method params and returns
		puppet.SendParams{},
		puppet.SendReturn{},
		puppet.EmitParams{},
	); err != nil {
		panic(err)
	}
}
