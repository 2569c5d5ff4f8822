package swap

import (
	"sync"

	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/log"
)

// Event is published after an ask changed state and the change was
// committed.
type Event interface {
	// Name returns the event name, for example "AskFilled".
	Name() string
	Fingerprint() Fingerprint
}

// AskCreated is published when an ask becomes active.
type AskCreated struct {
	FP  Fingerprint
	Ask *Ask
}

func (e AskCreated) Name() string             { return "AskCreated" }
func (e AskCreated) Fingerprint() Fingerprint { return e.FP }

// AskCancelled is published when the asker cancels an ask.
type AskCancelled struct {
	Asker swapsies.Address
	FP    Fingerprint
	Ask   *Ask
}

func (e AskCancelled) Name() string             { return "AskCancelled" }
func (e AskCancelled) Fingerprint() Fingerprint { return e.FP }

// AskFilled is published when an ask was filled and all assets moved.
type AskFilled struct {
	FP  Fingerprint
	Ask *Ask
}

func (e AskFilled) Name() string             { return "AskFilled" }
func (e AskFilled) Fingerprint() Fingerprint { return e.FP }

// EventSink receives published events. Publish must not block for long,
// as it is called while the engine is locked.
type EventSink interface {
	Publish(Event)
}

// MultiSink publishes every event to all sinks, in order.
type MultiSink []EventSink

// Publish passes the event to every sink in order.
func (m MultiSink) Publish(e Event) {
	for _, s := range m {
		s.Publish(e)
	}
}

// LogSink writes every event to a logger.
type LogSink struct {
	Logger log.Logger
}

// Publish writes the event as one info entry with the event name, the
// fingerprint and the addresses of the parties as key value pairs.
func (s LogSink) Publish(e Event) {
	kv := []interface{}{"event", e.Name(), "fingerprint", e.Fingerprint().String()}
	switch ev := e.(type) {
	case AskCreated:
		kv = append(kv, "asker", ev.Ask.Asker.String(), "filler", ev.Ask.Filler.String())
	case AskCancelled:
		kv = append(kv, "asker", ev.Asker.String())
	case AskFilled:
		kv = append(kv, "asker", ev.Ask.Asker.String(), "filler", ev.Ask.Filler.String())
	}
	s.Logger.Info("event", kv...)
}

// EventRecorder keeps all published events in memory. It is safe for
// concurrent use.
type EventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *EventRecorder) Publish(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of all recorded events, oldest first.
func (r *EventRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Reset drops all recorded events.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

type nopSink struct{}

func (nopSink) Publish(Event) {}
