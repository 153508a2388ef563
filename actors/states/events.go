package states

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	cid "github.com/ipfs/go-cid"
	xerrors "golang.org/x/xerrors"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/util/adt"
)

const EventLogBitwidth = 3

// An observable record emitted by an actor during a committed message.
type Event struct {
	Emitter address.Address
	Epoch   abi.ChainEpoch
	Type    string
	Payload []byte // CBOR-encoded, type-specific
}

// An append-only log of events, in emission order.
type EventLog struct {
	arr *adt.Array
}

func NewEventLog(s adt.Store) (*EventLog, error) {
	arr, err := adt.MakeEmptyArray(s, EventLogBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create event log: %w", err)
	}
	return &EventLog{arr: arr}, nil
}

func LoadEventLog(s adt.Store, r cid.Cid) (*EventLog, error) {
	arr, err := adt.AsArray(s, r, EventLogBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to load event log %v: %w", r, err)
	}
	return &EventLog{arr: arr}, nil
}

func (l *EventLog) Append(events ...*Event) error {
	for _, e := range events {
		if err := l.arr.AppendContinuous(e); err != nil {
			return xerrors.Errorf("failed to append %s event: %w", e.Type, err)
		}
	}
	return nil
}

func (l *EventLog) Length() uint64 {
	return l.arr.Length()
}

func (l *EventLog) Root() (cid.Cid, error) {
	return l.arr.Root()
}

// Loads every event in the log, optionally only those of one type.
func (l *EventLog) Collect(eventType string) ([]Event, error) {
	var out []Event
	var e Event
	err := l.arr.ForEach(&e, func(_ int64) error {
		if eventType == "" || e.Type == eventType {
			out = append(out, e)
		}
		return nil
	})
	return out, err
}
