// Package session owns a calculator builder's live state: the calculator display
// state, its undo/redo history and the tile arrangement.
//
// A Session is an explicit state object. Front ends (TUI, CLI commands) drive it
// through its methods and observe it by registering listeners; persistence and the
// input journal are listeners too. A Session is not safe for concurrent use.
package session

import (
	"fmt"
	"strings"

	"github.com/yildizm/CalcBuilder/internal/calculator"
	"github.com/yildizm/CalcBuilder/internal/components"
	"github.com/yildizm/CalcBuilder/internal/history"
	"github.com/yildizm/CalcBuilder/internal/logger"
	"github.com/yildizm/CalcBuilder/internal/stats"
)

// Session is a calculator builder's state with history and observers
type Session struct {
	state   calculator.State
	history *history.Stack[calculator.State]
	tiles   *components.List
	idGen   components.IDGenerator

	listeners []subscription
	nextSubID int

	log   *logger.Logger
	stats *stats.Stats
}

// Option configures a Session
type Option func(*options)

type options struct {
	log   *logger.Logger
	idGen components.IDGenerator
	stats *stats.Stats
}

// WithLogger sets the session logger
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithIDGenerator overrides how tile ids are produced
func WithIDGenerator(gen components.IDGenerator) Option {
	return func(o *options) { o.idGen = gen }
}

// WithStats shares a counter set with the caller
func WithStats(s *stats.Stats) Option {
	return func(o *options) { o.stats = s }
}

// New creates a session in the power-on state
func New(opts ...Option) *Session {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Discard()
	}
	if o.stats == nil {
		o.stats = stats.New()
	}

	return &Session{
		state:   calculator.Initial(),
		history: history.New[calculator.State](),
		tiles:   components.NewList(o.idGen),
		idGen:   o.idGen,
		log:     o.log.WithComponent("session"),
		stats:   o.stats,
	}
}

// Press applies one input symbol. It reports whether the state changed; no-op
// inputs leave history untouched. Unknown symbols are rejected with an error.
func (s *Session) Press(symbol string) (bool, error) {
	sym, err := calculator.ParseSymbol(symbol)
	if err != nil {
		s.stats.Ignored.Inc()
		return false, err
	}

	prev := s.state
	next, changed := calculator.Apply(prev, sym)
	if !changed {
		s.stats.Ignored.Inc()
		s.log.DebugWithFields("ignored input", []logger.Field{logger.Symbol(symbol), logger.Display(prev.Display)})
		return false, nil
	}

	s.history.Push(prev)
	s.state = next
	s.stats.Inputs.Inc()

	if evaluates(prev, sym) {
		s.stats.Evaluations.Inc()
		if strings.HasPrefix(next.Display, calculator.ErrorDisplay) {
			s.stats.Errors.Inc()
		}
	}

	s.log.DebugWithFields("input applied", []logger.Field{
		logger.Symbol(symbol),
		logger.Display(next.Display),
		logger.F("cursor", s.history.Cursor()),
	})
	s.emit(Event{Kind: EventInput, Symbol: symbol, State: next})
	return true, nil
}

// PressTile presses the value of the tile with the given id
func (s *Session) PressTile(id string) (bool, error) {
	tile, ok := s.tiles.Get(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", components.ErrNotFound, id)
	}
	return s.Press(tile.Value)
}

// evaluates reports whether sym causes the pending operation to be computed
func evaluates(prev calculator.State, sym calculator.Symbol) bool {
	switch sym.Kind {
	case calculator.SymbolEquals:
		return prev.Pending.IsSome()
	case calculator.SymbolOperator:
		return prev.Pending.IsSome() && !prev.WaitingForNewNumber
	default:
		return false
	}
}

// Undo restores the previous snapshot. It returns false at the start of history.
func (s *Session) Undo() bool {
	restored, ok := s.history.Undo(s.state)
	if !ok {
		return false
	}
	s.state = restored
	s.stats.Undos.Inc()
	s.log.DebugWithFields("undo", []logger.Field{logger.Display(restored.Display), logger.F("cursor", s.history.Cursor())})
	s.emit(Event{Kind: EventUndo, State: restored})
	return true
}

// Redo re-applies the most recently undone change. It returns false when nothing was undone.
func (s *Session) Redo() bool {
	restored, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.state = restored
	s.stats.Redos.Inc()
	s.log.DebugWithFields("redo", []logger.Field{logger.Display(restored.Display), logger.F("cursor", s.history.Cursor())})
	s.emit(Event{Kind: EventRedo, State: restored})
	return true
}

// CanUndo reports whether Undo would do anything
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would do anything
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// Display returns the text to render
func (s *Session) Display() string {
	return s.state.Display
}

// State returns the current calculator state
func (s *Session) State() calculator.State {
	return s.state
}

// AddTile places a new tile for a palette value at the end of the arrangement
func (s *Session) AddTile(value string) (components.Component, error) {
	c, err := s.tiles.Add(value)
	if err != nil {
		return components.Component{}, err
	}
	s.stats.TileChanges.Inc()
	s.emit(Event{Kind: EventTiles, State: s.state})
	return c, nil
}

// RemoveTile deletes a tile and reports whether it existed
func (s *Session) RemoveTile(id string) bool {
	if !s.tiles.Remove(id) {
		return false
	}
	s.stats.TileChanges.Inc()
	s.emit(Event{Kind: EventTiles, State: s.state})
	return true
}

// MoveTile moves the tile at index from to index to
func (s *Session) MoveTile(from, to int) error {
	if err := s.tiles.Move(from, to); err != nil {
		return err
	}
	if from != to {
		s.stats.TileChanges.Inc()
		s.emit(Event{Kind: EventTiles, State: s.state})
	}
	return nil
}

// MoveTileByID drops the active tile onto the position of the over tile
func (s *Session) MoveTileByID(activeID, overID string) error {
	if activeID == overID {
		return nil
	}
	if err := s.tiles.MoveByID(activeID, overID); err != nil {
		return err
	}
	s.stats.TileChanges.Inc()
	s.emit(Event{Kind: EventTiles, State: s.state})
	return nil
}

// Tiles returns the current arrangement
func (s *Session) Tiles() []components.Component {
	return s.tiles.Items()
}

// Tile returns the tile at position i
func (s *Session) Tile(i int) (components.Component, bool) {
	return s.tiles.At(i)
}

// Stats returns the session counters
func (s *Session) Stats() *stats.Stats {
	return s.stats
}

// Reset returns to the power-on state, forgetting history and tiles
func (s *Session) Reset() {
	s.state = calculator.Initial()
	s.history.Reset()
	s.tiles = components.NewList(s.idGen)
	s.stats.Reset()
	s.emit(Event{Kind: EventReset, State: s.state})
}

// Export captures the session as a serializable record
func (s *Session) Export() Record {
	current := toStateRecord(s.state)
	return Record{
		Components:          s.tiles.Items(),
		DisplayValue:        current.DisplayValue,
		PreviousValue:       current.PreviousValue,
		CurrentOperation:    current.CurrentOperation,
		WaitingForNewNumber: current.WaitingForNewNumber,
		CalculationHistory:  toHistoryRecords(s.history.Entries()),
		CurrentHistoryIndex: s.history.Cursor(),
	}
}

// Restore replaces the session with a previously exported record.
// Nothing changes if the record is invalid.
func (s *Session) Restore(rec Record) error {
	state, err := toState(rec.State())
	if err != nil {
		return &RestoreError{Field: "state", Err: err}
	}

	entries, err := toHistoryEntries(rec.CalculationHistory)
	if err != nil {
		return err
	}

	hist := history.New[calculator.State]()
	if err := hist.Restore(entries, rec.CurrentHistoryIndex); err != nil {
		return &RestoreError{Field: "currentHistoryIndex", Err: err}
	}

	tiles := components.NewList(s.idGen)
	if err := tiles.Replace(rec.Components); err != nil {
		return &RestoreError{Field: "components", Err: err}
	}

	s.state = state
	s.history = hist
	s.tiles = tiles
	s.log.Debug("restored session with %d history entries and %d tiles", hist.Len(), tiles.Len())
	s.emit(Event{Kind: EventRestore, State: state})
	return nil
}
