// Package history provides a linear undo/redo log of state snapshots.
//
// Each entry records the state that was current before a change. Undoing an entry
// restores that snapshot and remembers the state it replaced so that a following
// redo can bring it back exactly. Pushing after an undo discards every entry beyond
// the cursor.
package history

import "fmt"

// Entry is one recorded snapshot plus the state to return to on redo
type Entry[T comparable] struct {
	Snapshot T
	Redo     T
	HasRedo  bool
}

// Stack is a cursor-based undo/redo history. The zero value is not usable; call New.
type Stack[T comparable] struct {
	entries []Entry[T]
	cursor  int
}

// New creates an empty history
func New[T comparable]() *Stack[T] {
	return &Stack[T]{
		entries: make([]Entry[T], 0),
		cursor:  -1,
	}
}

// Push records a snapshot, dropping any entries that could still be redone
func (s *Stack[T]) Push(snapshot T) {
	s.entries = append(s.entries[:s.cursor+1], Entry[T]{Snapshot: snapshot})
	s.cursor = len(s.entries) - 1
}

// Undo returns the snapshot at the cursor and moves the cursor back.
// current is the live state being replaced; Redo will return it.
func (s *Stack[T]) Undo(current T) (T, bool) {
	if !s.CanUndo() {
		var zero T
		return zero, false
	}

	entry := &s.entries[s.cursor]
	entry.Redo = current
	entry.HasRedo = true
	s.cursor--

	return entry.Snapshot, true
}

// Redo moves the cursor forward and returns the state the matching undo replaced
func (s *Stack[T]) Redo() (T, bool) {
	if !s.CanRedo() {
		var zero T
		return zero, false
	}

	s.cursor++
	entry := s.entries[s.cursor]
	if !entry.HasRedo {
		// Restored from a record that carried no redo target
		return entry.Snapshot, true
	}
	return entry.Redo, true
}

// CanUndo reports whether Undo would move the cursor
func (s *Stack[T]) CanUndo() bool {
	return s.cursor > -1
}

// CanRedo reports whether Redo would move the cursor
func (s *Stack[T]) CanRedo() bool {
	return s.cursor < len(s.entries)-1
}

// Cursor returns the index of the most recently applied entry, or -1
func (s *Stack[T]) Cursor() int {
	return s.cursor
}

// Len returns the number of recorded entries
func (s *Stack[T]) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the recorded entries
func (s *Stack[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(s.entries))
	copy(out, s.entries)
	return out
}

// Restore replaces the history with previously exported entries
func (s *Stack[T]) Restore(entries []Entry[T], cursor int) error {
	if cursor < -1 || cursor > len(entries)-1 {
		return fmt.Errorf("history cursor %d out of range [-1, %d]", cursor, len(entries)-1)
	}

	s.entries = make([]Entry[T], len(entries))
	copy(s.entries, entries)
	s.cursor = cursor
	return nil
}

// Reset empties the history
func (s *Stack[T]) Reset() {
	s.entries = s.entries[:0]
	s.cursor = -1
}
