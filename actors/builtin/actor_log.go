package builtin

import (
	"sync"

	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime"
)

// Minimum log level per actor code. Messages below an actor's level are dropped by the runtime.
type ActorLog struct {
	sync.RWMutex
	Actors map[cid.Cid]rtt.LogLevel
}

var actorLogSingle = &ActorLog{Actors: make(map[cid.Cid]rtt.LogLevel)}

func SetActorsLogLevel(logLevel rtt.LogLevel, actors ...runtime.VMActor) {
	actorLogSingle.Lock()
	defer actorLogSingle.Unlock()

	for _, actor := range actors {
		actorLogSingle.Actors[actor.Code()] = logLevel
	}
}

func GetActorLogLevel(actor runtime.VMActor, defValue rtt.LogLevel) rtt.LogLevel {
	return GetCodeLogLevel(actor.Code(), defValue)
}

// Like GetActorLogLevel, for callers that only know an actor's code.
func GetCodeLogLevel(code cid.Cid, defValue rtt.LogLevel) rtt.LogLevel {
	actorLogSingle.RLock()
	defer actorLogSingle.RUnlock()

	actorLogLevel, ok := actorLogSingle.Actors[code]
	if ok {
		return actorLogLevel
	}
	return defValue
}

// Clears all configured levels.
func ResetActorsLogLevel() {
	actorLogSingle.Lock()
	defer actorLogSingle.Unlock()
	actorLogSingle.Actors = make(map[cid.Cid]rtt.LogLevel)
}
