// Package components manages the ordered arrangement of calculator tiles.
package components

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind distinguishes number tiles from operator tiles
type Kind string

const (
	KindNumber   Kind = "number"
	KindOperator Kind = "operator"
)

// Component is a tile placed in the builder
type Component struct {
	ID    string `json:"id" yaml:"id"`
	Kind  Kind   `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Template is a palette entry; placing it produces a Component with a fresh ID
type Template struct {
	Kind  Kind
	Value string
}

// palette lists the available tiles in display order
var palette = []Template{
	{KindNumber, "7"}, {KindNumber, "8"}, {KindNumber, "9"},
	{KindNumber, "4"}, {KindNumber, "5"}, {KindNumber, "6"},
	{KindNumber, "1"}, {KindNumber, "2"}, {KindNumber, "3"},
	{KindNumber, "0"},
	{KindOperator, "+"}, {KindOperator, "-"}, {KindOperator, "*"}, {KindOperator, "/"},
	{KindOperator, "="}, {KindOperator, "C"},
}

// Errors returned by list operations
var (
	ErrUnknownTile  = errors.New("unknown tile value")
	ErrNotFound     = errors.New("tile not found")
	ErrOutOfRange   = errors.New("tile index out of range")
	ErrDuplicateID  = errors.New("duplicate tile id")
	ErrKindMismatch = errors.New("tile kind does not match its value")
)

// Palette returns a copy of the available tiles
func Palette() []Template {
	out := make([]Template, len(palette))
	copy(out, palette)
	return out
}

// Lookup finds the palette entry for a tile value
func Lookup(value string) (Template, bool) {
	for _, t := range palette {
		if t.Value == value {
			return t, true
		}
	}
	return Template{}, false
}

// IDGenerator produces unique tile identifiers
type IDGenerator func() string

// NewUUID is the default IDGenerator
func NewUUID() string {
	return uuid.New().String()
}

// List is an ordered sequence of tiles with unique IDs
type List struct {
	items []Component
	newID IDGenerator
}

// NewList creates an empty list. A nil generator falls back to NewUUID.
func NewList(gen IDGenerator) *List {
	if gen == nil {
		gen = NewUUID
	}
	return &List{
		items: make([]Component, 0),
		newID: gen,
	}
}

// Add appends a tile for the given palette value
func (l *List) Add(value string) (Component, error) {
	tmpl, ok := Lookup(value)
	if !ok {
		return Component{}, fmt.Errorf("%w: %q", ErrUnknownTile, value)
	}

	c := Component{ID: l.newID(), Kind: tmpl.Kind, Value: tmpl.Value}
	if l.indexOf(c.ID) >= 0 {
		return Component{}, fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
	}

	l.items = append(l.items, c)
	return c, nil
}

// Remove deletes the tile with the given ID and reports whether it existed
func (l *List) Remove(id string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Move relocates the tile at index from to index to, shifting the tiles in between
func (l *List) Move(from, to int) error {
	if from < 0 || from >= len(l.items) {
		return fmt.Errorf("%w: from=%d (len %d)", ErrOutOfRange, from, len(l.items))
	}
	if to < 0 || to >= len(l.items) {
		return fmt.Errorf("%w: to=%d (len %d)", ErrOutOfRange, to, len(l.items))
	}
	if from == to {
		return nil
	}

	moved := l.items[from]
	if from < to {
		copy(l.items[from:to], l.items[from+1:to+1])
	} else {
		copy(l.items[to+1:from+1], l.items[to:from])
	}
	l.items[to] = moved
	return nil
}

// MoveByID drops the active tile onto the position of the over tile
func (l *List) MoveByID(activeID, overID string) error {
	if activeID == overID {
		return nil
	}
	from := l.indexOf(activeID)
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, activeID)
	}
	to := l.indexOf(overID)
	if to < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, overID)
	}
	return l.Move(from, to)
}

// Get returns the tile with the given ID
func (l *List) Get(id string) (Component, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return Component{}, false
	}
	return l.items[i], true
}

// IndexOf returns the position of the tile with the given ID, or -1
func (l *List) IndexOf(id string) int {
	return l.indexOf(id)
}

// At returns the tile at position i
func (l *List) At(i int) (Component, bool) {
	if i < 0 || i >= len(l.items) {
		return Component{}, false
	}
	return l.items[i], true
}

// Items returns a copy of the tiles in order
func (l *List) Items() []Component {
	out := make([]Component, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of tiles
func (l *List) Len() int {
	return len(l.items)
}

// Replace swaps in a previously exported arrangement after validating it
func (l *List) Replace(items []Component) error {
	seen := make(map[string]bool, len(items))
	for _, c := range items {
		if c.ID == "" {
			return fmt.Errorf("tile %q has an empty id", c.Value)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		seen[c.ID] = true

		tmpl, ok := Lookup(c.Value)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTile, c.Value)
		}
		if tmpl.Kind != c.Kind {
			return fmt.Errorf("%w: %q is a %s tile, not %s", ErrKindMismatch, c.Value, tmpl.Kind, c.Kind)
		}
	}

	l.items = make([]Component, len(items))
	copy(l.items, items)
	return nil
}

func (l *List) indexOf(id string) int {
	for i, c := range l.items {
		if c.ID == id {
			return i
		}
	}
	return -1
}
