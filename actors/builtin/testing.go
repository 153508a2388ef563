package builtin

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Accumulates a sequence of messages (e.g. validation failures).
// Accumulators derived with WithPrefix share the underlying message list and may be used from
// concurrent goroutines.
type MessageAccumulator struct {
	// Optional prefix to all messages, e.g. name of actor or sub-component
	prefix string
	// Shared buffer of messages
	msgs *messages
}

type messages struct {
	mu   sync.Mutex
	list []string
}

func (ma *MessageAccumulator) initialize() {
	if ma.msgs == nil {
		ma.msgs = &messages{}
	}
}

// Returns a new accumulator backed by the same collection, that will prefix each new message with
// a formatted string.
func (ma *MessageAccumulator) WithPrefix(format string, args ...interface{}) *MessageAccumulator {
	ma.initialize()
	return &MessageAccumulator{
		prefix: ma.prefix + fmt.Sprintf(format, args...),
		msgs:   ma.msgs,
	}
}

func (ma *MessageAccumulator) IsEmpty() bool {
	return len(ma.Messages()) == 0
}

func (ma *MessageAccumulator) Messages() []string {
	if ma.msgs == nil {
		return nil
	}
	ma.msgs.mu.Lock()
	defer ma.msgs.mu.Unlock()
	return append([]string(nil), ma.msgs.list...)
}

// Adds messages to the accumulator.
func (ma *MessageAccumulator) Add(msgs ...string) {
	ma.initialize()
	ma.msgs.mu.Lock()
	defer ma.msgs.mu.Unlock()
	for _, m := range msgs {
		ma.msgs.list = append(ma.msgs.list, ma.prefix+m)
	}
}

// Adds a message to the accumulator
func (ma *MessageAccumulator) Addf(format string, args ...interface{}) {
	ma.Add(fmt.Sprintf(format, args...))
}

// Adds messages from another accumulator to this one.
func (ma *MessageAccumulator) AddAll(other *MessageAccumulator) {
	ma.Add(other.Messages()...)
}

// Adds a message if predicate is false.
func (ma *MessageAccumulator) Require(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		ma.Addf(msg, args...)
	}
}

func (ma *MessageAccumulator) RequireNoError(err error, msg string, args ...interface{}) {
	if err != nil {
		msg = msg + ": %v"
		args = append(args, err)
		ma.Addf(msg, args...)
	}
}

// Fails the test if any messages were accumulated.
func (ma *MessageAccumulator) AssertEmpty(t testing.TB) {
	require.Empty(t, ma.Messages(), "invariant violations")
}
