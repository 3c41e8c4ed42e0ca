package ui

// Pane is the grid that has keyboard focus
type Pane int

const (
	PaneBuilder Pane = iota
	PanePalette
)

// String returns the pane name
func (p Pane) String() string {
	if p == PanePalette {
		return "palette"
	}
	return "builder"
}

// View represents different UI views
type View int

const (
	ViewBuilder View = iota
	ViewStats
	ViewHelp
)

// statusLevel picks the style of the status line
type statusLevel int

const (
	statusInfo statusLevel = iota
	statusSuccess
	statusWarning
	statusError
)
