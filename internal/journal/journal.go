// Package journal records session inputs as JSON lines and replays them.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/yildizm/go-logparser"

	"github.com/yildizm/CalcBuilder/internal/logger"
	"github.com/yildizm/CalcBuilder/internal/session"
)

// ActionKind is a replayable journal entry type
type ActionKind string

const (
	ActionPress ActionKind = "press"
	ActionUndo  ActionKind = "undo"
	ActionRedo  ActionKind = "redo"
	ActionReset ActionKind = "reset"
)

// Action is one replayable step read from a journal
type Action struct {
	Kind    ActionKind
	Symbol  string
	Display string // display recorded after the action, if any
	Time    time.Time
}

// ErrEmptyJournal is returned when a journal holds no recognizable actions
var ErrEmptyJournal = errors.New("journal contains no actions")

type line struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Symbol    string `json:"symbol,omitempty"`
	Display   string `json:"display"`
}

// Writer appends session events to an io.Writer, one JSON object per line
type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
	log *logger.Logger
}

// NewWriter creates a journal writer
func NewWriter(w io.Writer, log *logger.Logger) *Writer {
	if log == nil {
		log = logger.Discard()
	}
	return &Writer{w: w, now: time.Now, log: log.WithComponent("journal")}
}

// Write records one event. Events that cannot be replayed are skipped.
func (j *Writer) Write(ev session.Event) error {
	msg, ok := message(ev)
	if !ok {
		return nil
	}

	data, err := json.Marshal(line{
		Timestamp: j.now().UTC().Format(time.RFC3339Nano),
		Level:     "info",
		Message:   msg,
		Symbol:    ev.Symbol,
		Display:   ev.State.Display,
	})
	if err != nil {
		return fmt.Errorf("failed to encode journal line: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}

func message(ev session.Event) (string, bool) {
	switch ev.Kind {
	case session.EventInput:
		return string(ActionPress) + " " + ev.Symbol, true
	case session.EventUndo:
		return string(ActionUndo), true
	case session.EventRedo:
		return string(ActionRedo), true
	case session.EventReset:
		return string(ActionReset), true
	default:
		return "", false
	}
}

// Attach journals every event of s and returns the unsubscribe func.
// Write failures are logged.
func Attach(s *session.Session, w *Writer) func() {
	return s.Subscribe(func(ev session.Event) {
		if err := w.Write(ev); err != nil {
			w.log.WarnWithFields("journal write failed", []logger.Field{logger.F("event", string(ev.Kind)), logger.Error(err)})
		}
	})
}

// Read parses a journal. Lines that are not journal actions are ignored.
func Read(r io.Reader) ([]Action, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrEmptyJournal
	}

	p := logparser.NewWithFormat(logparser.FormatJSON)
	entries, err := p.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse journal: %w", err)
	}

	actions := make([]Action, 0, len(entries))
	for i := range entries {
		if a, ok := toAction(&entries[i]); ok {
			actions = append(actions, a)
		}
	}
	if len(actions) == 0 {
		return nil, ErrEmptyJournal
	}
	return actions, nil
}

func toAction(entry *logparser.LogEntry) (Action, bool) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(entry.Message), " ")
	a := Action{
		Kind:    ActionKind(kind),
		Time:    entry.Timestamp,
		Display: fieldString(entry.Fields, "display"),
	}

	switch a.Kind {
	case ActionPress:
		a.Symbol = fieldString(entry.Fields, "symbol")
		if a.Symbol == "" {
			a.Symbol = arg
		}
		return a, a.Symbol != ""
	case ActionUndo, ActionRedo, ActionReset:
		return a, true
	default:
		return Action{}, false
	}
}

func fieldString(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// Replay applies actions to s in order. It stops at the first rejected symbol.
func Replay(s *session.Session, actions []Action) error {
	for i, a := range actions {
		switch a.Kind {
		case ActionPress:
			if _, err := s.Press(a.Symbol); err != nil {
				return fmt.Errorf("action %d: %w", i+1, err)
			}
		case ActionUndo:
			s.Undo()
		case ActionRedo:
			s.Redo()
		case ActionReset:
			s.Reset()
		default:
			return fmt.Errorf("action %d: unknown kind %q", i+1, a.Kind)
		}
	}
	return nil
}

// Mismatch describes a replayed step whose display differs from the journal
type Mismatch struct {
	Index int
	Want  string
	Got   string
}

// Verify replays actions onto s and reports every step whose display differs
// from the recorded one.
func Verify(s *session.Session, actions []Action) ([]Mismatch, error) {
	var mismatches []Mismatch
	for i, a := range actions {
		if err := Replay(s, actions[i:i+1]); err != nil {
			return mismatches, fmt.Errorf("action %d: %w", i+1, errors.Unwrap(err))
		}
		if a.Display != "" && a.Display != s.Display() {
			mismatches = append(mismatches, Mismatch{Index: i, Want: a.Display, Got: s.Display()})
		}
	}
	return mismatches, nil
}
