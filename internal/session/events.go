package session

import "github.com/yildizm/CalcBuilder/internal/calculator"

// EventKind names what changed in a session
type EventKind string

const (
	EventInput   EventKind = "input"
	EventUndo    EventKind = "undo"
	EventRedo    EventKind = "redo"
	EventTiles   EventKind = "tiles"
	EventRestore EventKind = "restore"
	EventReset   EventKind = "reset"
)

// Event is delivered to listeners after every change
type Event struct {
	Kind   EventKind
	Symbol string // set for EventInput
	State  calculator.State
}

// Listener observes session changes. Listeners run synchronously, in
// registration order, after the change has been applied.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers a listener and returns a function that removes it
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) emit(ev Event) {
	// Snapshot so listeners may unsubscribe while being notified
	subs := make([]subscription, len(s.listeners))
	copy(subs, s.listeners)
	for _, sub := range subs {
		sub.fn(ev)
	}
}
