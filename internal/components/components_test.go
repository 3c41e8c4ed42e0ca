package components

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// sequentialIDs returns a deterministic generator: t1, t2, ...
func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func values(items []Component) string {
	parts := make([]string, 0, len(items))
	for _, c := range items {
		parts = append(parts, c.Value)
	}
	return strings.Join(parts, "")
}

func newListWith(t *testing.T, tiles string) *List {
	t.Helper()
	l := NewList(sequentialIDs())
	for _, r := range tiles {
		if _, err := l.Add(string(r)); err != nil {
			t.Fatalf("Add(%q) failed: %v", r, err)
		}
	}
	return l
}

func TestPaletteOrder(t *testing.T) {
	var b strings.Builder
	for _, tmpl := range Palette() {
		b.WriteString(tmpl.Value)
	}
	if b.String() != "7894561230+-*/=C" {
		t.Errorf("Unexpected palette order %q", b.String())
	}

	tmpl, ok := Lookup("=")
	if !ok || tmpl.Kind != KindOperator {
		t.Errorf("Expected '=' to be an operator tile, got %+v (found=%v)", tmpl, ok)
	}
	tmpl, ok = Lookup("0")
	if !ok || tmpl.Kind != KindNumber {
		t.Errorf("Expected '0' to be a number tile, got %+v (found=%v)", tmpl, ok)
	}
}

func TestAddAssignsFreshIDs(t *testing.T) {
	l := NewList(nil)

	a, err := l.Add("5")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	b, err := l.Add("5")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if a.ID == b.ID {
		t.Error("Expected distinct ids for tiles with the same value")
	}
	if _, err := uuid.Parse(a.ID); err != nil {
		t.Errorf("Expected a UUID id, got %q: %v", a.ID, err)
	}
	if l.Len() != 2 {
		t.Errorf("Expected 2 tiles, got %d", l.Len())
	}
}

func TestAddRejectsUnknownValue(t *testing.T) {
	l := NewList(sequentialIDs())
	_, err := l.Add("%")
	if !errors.Is(err, ErrUnknownTile) {
		t.Errorf("Expected ErrUnknownTile, got %v", err)
	}
	if l.Len() != 0 {
		t.Error("Expected list to stay empty")
	}
}

func TestAddRejectsDuplicateGeneratedID(t *testing.T) {
	l := NewList(func() string { return "same" })
	if _, err := l.Add("1"); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if _, err := l.Add("2"); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	l := newListWith(t, "123")

	if !l.Remove("t2") {
		t.Fatal("Expected t2 to be removed")
	}
	if got := values(l.Items()); got != "13" {
		t.Errorf("Expected remaining tiles 13, got %s", got)
	}
	if l.Remove("t2") {
		t.Error("Expected second removal to report false")
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     string
	}{
		{name: "forward", from: 0, to: 3, want: "23415"},
		{name: "backward", from: 4, to: 1, want: "15234"},
		{name: "same index", from: 2, to: 2, want: "12345"},
		{name: "adjacent", from: 1, to: 2, want: "13245"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newListWith(t, "12345")
			if err := l.Move(tt.from, tt.to); err != nil {
				t.Fatalf("Move failed: %v", err)
			}
			if got := values(l.Items()); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestMoveOutOfRange(t *testing.T) {
	l := newListWith(t, "12")
	for _, idx := range [][2]int{{-1, 0}, {0, 2}, {5, 0}} {
		if err := l.Move(idx[0], idx[1]); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Move(%d, %d): expected ErrOutOfRange, got %v", idx[0], idx[1], err)
		}
	}
}

func TestMoveByID(t *testing.T) {
	l := newListWith(t, "+-*/")

	if err := l.MoveByID("t4", "t1"); err != nil {
		t.Fatalf("MoveByID failed: %v", err)
	}
	if got := values(l.Items()); got != "/+-*" {
		t.Errorf("Expected /+-*, got %s", got)
	}

	if err := l.MoveByID("t2", "t2"); err != nil {
		t.Errorf("Expected dropping onto itself to be a no-op, got %v", err)
	}
	if err := l.MoveByID("missing", "t1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	l := newListWith(t, "1")
	items := l.Items()
	items[0].Value = "9"

	if c, _ := l.At(0); c.Value != "1" {
		t.Error("Expected Items to return a defensive copy")
	}
}

func TestReplaceValidates(t *testing.T) {
	tests := []struct {
		name    string
		items   []Component
		wantErr error
	}{
		{
			name:  "valid",
			items: []Component{{ID: "a", Kind: KindNumber, Value: "1"}, {ID: "b", Kind: KindOperator, Value: "="}},
		},
		{
			name:    "duplicate id",
			items:   []Component{{ID: "a", Kind: KindNumber, Value: "1"}, {ID: "a", Kind: KindNumber, Value: "2"}},
			wantErr: ErrDuplicateID,
		},
		{
			name:    "unknown value",
			items:   []Component{{ID: "a", Kind: KindNumber, Value: "11"}},
			wantErr: ErrUnknownTile,
		},
		{
			name:    "wrong kind",
			items:   []Component{{ID: "a", Kind: KindNumber, Value: "+"}},
			wantErr: ErrKindMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewList(sequentialIDs())
			err := l.Replace(tt.items)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if l.Len() != len(tt.items) {
					t.Errorf("Expected %d tiles, got %d", len(tt.items), l.Len())
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
