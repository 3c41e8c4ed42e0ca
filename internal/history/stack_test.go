package history

import (
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"
)

func TestNewStackIsEmpty(t *testing.T) {
	g := NewWithT(t)
	s := New[string]()

	g.Expect(s.Cursor()).To(Equal(-1))
	g.Expect(s.Len()).To(BeZero())
	g.Expect(s.CanUndo()).To(BeFalse())
	g.Expect(s.CanRedo()).To(BeFalse())
}

func TestBoundaryUndoRedoAreNoOps(t *testing.T) {
	g := NewWithT(t)
	s := New[string]()

	_, ok := s.Undo("live")
	g.Expect(ok).To(BeFalse())
	_, ok = s.Redo()
	g.Expect(ok).To(BeFalse())
	g.Expect(s.Cursor()).To(Equal(-1))

	s.Push("a")
	_, ok = s.Redo()
	g.Expect(ok).To(BeFalse(), "nothing to redo at the newest entry")
	g.Expect(s.Cursor()).To(Equal(0))
}

func TestUndoRestoresPrecedingSnapshot(t *testing.T) {
	g := NewWithT(t)
	s := New[string]()

	// live state goes "0" -> "1" -> "12"
	s.Push("0")
	s.Push("1")

	got, ok := s.Undo("12")
	g.Expect(ok).To(BeTrue())
	g.Expect(got).To(Equal("1"))
	g.Expect(s.Cursor()).To(Equal(0))

	got, ok = s.Undo("1")
	g.Expect(ok).To(BeTrue())
	g.Expect(got).To(Equal("0"))
	g.Expect(s.Cursor()).To(Equal(-1))
}

func TestRedoReturnsUndoneState(t *testing.T) {
	g := NewWithT(t)
	s := New[string]()
	s.Push("0")
	s.Push("1")

	s.Undo("12")
	s.Undo("1")

	got, ok := s.Redo()
	g.Expect(ok).To(BeTrue())
	g.Expect(got).To(Equal("1"))

	got, ok = s.Redo()
	g.Expect(ok).To(BeTrue())
	g.Expect(got).To(Equal("12"))
	g.Expect(s.CanRedo()).To(BeFalse())
}

func TestPushAfterUndoTruncates(t *testing.T) {
	g := NewWithT(t)
	s := New[string]()
	s.Push("a")
	s.Push("b")
	s.Push("c")

	s.Undo("d")
	s.Undo("c")
	g.Expect(s.Cursor()).To(Equal(0))

	s.Push("x")
	g.Expect(s.Len()).To(Equal(2))
	g.Expect(s.Cursor()).To(Equal(1))
	g.Expect(s.CanRedo()).To(BeFalse())

	entries := s.Entries()
	g.Expect(entries[0].Snapshot).To(Equal("a"))
	g.Expect(entries[1].Snapshot).To(Equal("x"))
}

func TestRestoreValidatesCursor(t *testing.T) {
	g := NewWithT(t)
	s := New[int]()
	entries := []Entry[int]{{Snapshot: 1}, {Snapshot: 2}}

	g.Expect(s.Restore(entries, 2)).To(HaveOccurred())
	g.Expect(s.Restore(entries, -2)).To(HaveOccurred())
	g.Expect(s.Restore(entries, 1)).To(Succeed())
	g.Expect(s.Cursor()).To(Equal(1))
	g.Expect(s.Len()).To(Equal(2))

	// Redo of an entry without a recorded target falls back to its snapshot
	g.Expect(s.Restore(entries, -1)).To(Succeed())
	got, ok := s.Redo()
	g.Expect(ok).To(BeTrue())
	g.Expect(got).To(Equal(1))
}

// TestHistoryMatchesModel drives the stack with random operations and checks it
// against a plain list of live states.
func TestHistoryMatchesModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := New[int]()
		live := 0
		next := 1
		// timeline[i] is the live state after i applied changes
		timeline := []int{0}
		applied := 0

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				s.Push(live)
				live = next
				next++
				timeline = append(timeline[:applied+1], live)
				applied++
			case 1:
				got, ok := s.Undo(live)
				if ok != (applied > 0) {
					rt.Fatalf("undo ok=%v with %d applied", ok, applied)
				}
				if ok {
					applied--
					live = got
				}
			case 2:
				got, ok := s.Redo()
				if ok != (applied < len(timeline)-1) {
					rt.Fatalf("redo ok=%v with %d applied of %d", ok, applied, len(timeline)-1)
				}
				if ok {
					applied++
					live = got
				}
			}

			if live != timeline[applied] {
				rt.Fatalf("live state %d, model expects %d", live, timeline[applied])
			}
			if s.Cursor() != applied-1 {
				rt.Fatalf("cursor %d, model expects %d", s.Cursor(), applied-1)
			}
			if s.Cursor() < -1 || s.Cursor() > s.Len()-1 {
				rt.Fatalf("cursor %d escaped [-1, %d]", s.Cursor(), s.Len()-1)
			}
		}
	})
}
