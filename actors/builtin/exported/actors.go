package exported

import (
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/account"
	init_ "github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/init"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/system"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/token"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin/vesting"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime"
)

func BuiltinActors() []runtime.VMActor {
	return []runtime.VMActor{
		account.Actor{},
		init_.Actor{},
		system.Actor{},
		token.Actor{},
		vesting.Actor{},
	}
}
