package session

import (
	"github.com/yildizm/CalcBuilder/internal/components"
	"github.com/yildizm/CalcBuilder/internal/stats"
)

// HistoryLine describes one history entry for display
type HistoryLine struct {
	Index   int    `json:"index"`
	Display string `json:"display"`
	Applied bool   `json:"applied"` // at or before the cursor
	Cursor  bool   `json:"cursor"`
}

// Summary is a read-only view of a session for formatters and front ends
type Summary struct {
	Display          string                 `json:"display"`
	PreviousValue    string                 `json:"previous_value,omitempty"`
	CurrentOperation string                 `json:"current_operation,omitempty"`
	Pending          bool                   `json:"pending"`
	Waiting          bool                   `json:"waiting_for_new_number"`
	Tiles            []components.Component `json:"tiles"`
	History          []HistoryLine          `json:"history"`
	Cursor           int                    `json:"cursor"`
	CanUndo          bool                   `json:"can_undo"`
	CanRedo          bool                   `json:"can_redo"`
	Stats            stats.Snapshot         `json:"stats"`
}

// Summary builds a read model of the current session
func (s *Session) Summary() *Summary {
	sum := &Summary{
		Display: s.state.Display,
		Waiting: s.state.WaitingForNewNumber,
		Tiles:   s.tiles.Items(),
		Cursor:  s.history.Cursor(),
		CanUndo: s.history.CanUndo(),
		CanRedo: s.history.CanRedo(),
		Stats:   s.stats.Snapshot(),
	}

	if pending, ok := s.state.Pending.Get(); ok {
		sum.Pending = true
		sum.PreviousValue = pending.Left
		sum.CurrentOperation = string(pending.Op)
	}

	entries := s.history.Entries()
	sum.History = make([]HistoryLine, 0, len(entries))
	for i, e := range entries {
		sum.History = append(sum.History, HistoryLine{
			Index:   i,
			Display: e.Snapshot.Display,
			Applied: i <= sum.Cursor,
			Cursor:  i == sum.Cursor,
		})
	}

	return sum
}
