package formatter

import (
	"encoding/json"

	"github.com/yildizm/CalcBuilder/internal/components"
	"github.com/yildizm/CalcBuilder/internal/session"
	"github.com/yildizm/CalcBuilder/internal/stats"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(summary *session.Summary) ([]byte, error) {
	output := &JSONOutput{
		Display: summary.Display,
		State: &StateOutput{
			WaitingForNewNumber: summary.Waiting,
		},
		Tiles: summary.Tiles,
		History: &HistoryOutput{
			Cursor:  summary.Cursor,
			Entries: summary.History,
			CanUndo: summary.CanUndo,
			CanRedo: summary.CanRedo,
		},
		Stats: summary.Stats,
	}
	if summary.Pending {
		output.State.Pending = &PendingOutput{
			PreviousValue: summary.PreviousValue,
			Operation:     summary.CurrentOperation,
			Name:          operatorName(summary.CurrentOperation),
		}
	}
	if output.Tiles == nil {
		output.Tiles = []components.Component{}
	}
	if output.History.Entries == nil {
		output.History.Entries = []session.HistoryLine{}
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput is the document written by the json format
type JSONOutput struct {
	Display string                 `json:"display"`
	State   *StateOutput           `json:"state"`
	Tiles   []components.Component `json:"tiles"`
	History *HistoryOutput         `json:"history"`
	Stats   stats.Snapshot         `json:"stats"`
}

// StateOutput describes the calculator state
type StateOutput struct {
	Pending             *PendingOutput `json:"pending,omitempty"`
	WaitingForNewNumber bool           `json:"waiting_for_new_number"`
}

// PendingOutput describes a pending binary operation
type PendingOutput struct {
	PreviousValue string `json:"previous_value"`
	Operation     string `json:"operation"`
	Name          string `json:"name"`
}

// HistoryOutput describes undo history
type HistoryOutput struct {
	Cursor  int                   `json:"cursor"`
	Entries []session.HistoryLine `json:"entries"`
	CanUndo bool                  `json:"can_undo"`
	CanRedo bool                  `json:"can_redo"`
}
