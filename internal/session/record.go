package session

import (
	"errors"
	"fmt"

	"github.com/yildizm/CalcBuilder/internal/calculator"
	"github.com/yildizm/CalcBuilder/internal/components"
	"github.com/yildizm/CalcBuilder/internal/history"
)

// ErrInvalidRecord is wrapped by every RestoreError
var ErrInvalidRecord = errors.New("invalid session record")

// RestoreError reports which part of a record failed validation
type RestoreError struct {
	Field string
	Err   error
}

// Error implements the error interface
func (e *RestoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrInvalidRecord, e.Field, e.Err)
}

// Unwrap exposes both the sentinel and the cause
func (e *RestoreError) Unwrap() []error {
	return []error{ErrInvalidRecord, e.Err}
}

// StateRecord is the persisted form of a calculator state
type StateRecord struct {
	DisplayValue        string  `json:"displayValue"`
	PreviousValue       *string `json:"previousValue"`
	CurrentOperation    *string `json:"currentOperation"`
	WaitingForNewNumber bool    `json:"waitingForNewNumber"`
}

// HistoryRecord is one persisted history entry. Redo is absent until the entry is undone.
type HistoryRecord struct {
	StateRecord
	Redo *StateRecord `json:"redo,omitempty"`
}

// Record is the flat, serializable form of a whole session
type Record struct {
	Components          []components.Component `json:"components"`
	DisplayValue        string                 `json:"displayValue"`
	PreviousValue       *string                `json:"previousValue"`
	CurrentOperation    *string                `json:"currentOperation"`
	WaitingForNewNumber bool                   `json:"waitingForNewNumber"`
	CalculationHistory  []HistoryRecord        `json:"calculationHistory"`
	CurrentHistoryIndex int                    `json:"currentHistoryIndex"`
}

// NewRecord returns the record of a fresh session
func NewRecord() Record {
	return Record{
		Components:          []components.Component{},
		DisplayValue:        "0",
		CalculationHistory:  []HistoryRecord{},
		CurrentHistoryIndex: -1,
	}
}

// State returns the current display state portion of the record
func (r Record) State() StateRecord {
	return StateRecord{
		DisplayValue:        r.DisplayValue,
		PreviousValue:       r.PreviousValue,
		CurrentOperation:    r.CurrentOperation,
		WaitingForNewNumber: r.WaitingForNewNumber,
	}
}

// toStateRecord flattens the pending option into the two nullable fields
func toStateRecord(s calculator.State) StateRecord {
	rec := StateRecord{
		DisplayValue:        s.Display,
		WaitingForNewNumber: s.WaitingForNewNumber,
	}
	if pending, ok := s.Pending.Get(); ok {
		left := pending.Left
		op := string(pending.Op)
		rec.PreviousValue = &left
		rec.CurrentOperation = &op
	}
	return rec
}

// toState validates a persisted state and rebuilds the pending option
func toState(rec StateRecord) (calculator.State, error) {
	if rec.DisplayValue == "" {
		return calculator.State{}, errors.New("display value is empty")
	}

	s := calculator.State{
		Display:             rec.DisplayValue,
		Pending:             calculator.None[calculator.Operation](),
		WaitingForNewNumber: rec.WaitingForNewNumber,
	}

	switch {
	case rec.PreviousValue == nil && rec.CurrentOperation == nil:
		return s, nil
	case rec.PreviousValue == nil || rec.CurrentOperation == nil:
		return calculator.State{}, errors.New("previous value and current operation must be set together")
	}

	op := calculator.Operator(*rec.CurrentOperation)
	if !op.Valid() {
		return calculator.State{}, fmt.Errorf("unknown operation %q", *rec.CurrentOperation)
	}
	s.Pending = calculator.Some(calculator.Operation{Left: *rec.PreviousValue, Op: op})
	return s, nil
}

func toHistoryRecords(entries []history.Entry[calculator.State]) []HistoryRecord {
	out := make([]HistoryRecord, 0, len(entries))
	for _, e := range entries {
		rec := HistoryRecord{StateRecord: toStateRecord(e.Snapshot)}
		if e.HasRedo {
			redo := toStateRecord(e.Redo)
			rec.Redo = &redo
		}
		out = append(out, rec)
	}
	return out
}

func toHistoryEntries(records []HistoryRecord) ([]history.Entry[calculator.State], error) {
	out := make([]history.Entry[calculator.State], 0, len(records))
	for i, rec := range records {
		snap, err := toState(rec.StateRecord)
		if err != nil {
			return nil, &RestoreError{Field: fmt.Sprintf("calculationHistory[%d]", i), Err: err}
		}
		entry := history.Entry[calculator.State]{Snapshot: snap}
		if rec.Redo != nil {
			redo, err := toState(*rec.Redo)
			if err != nil {
				return nil, &RestoreError{Field: fmt.Sprintf("calculationHistory[%d].redo", i), Err: err}
			}
			entry.Redo = redo
			entry.HasRedo = true
		}
		out = append(out, entry)
	}
	return out, nil
}
