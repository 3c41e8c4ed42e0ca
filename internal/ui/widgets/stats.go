package widgets

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/CalcBuilder/internal/emoji"
	"github.com/yildizm/CalcBuilder/internal/stats"
)

// StatsCard represents a statistics card component
type StatsCard struct {
	Title       string
	Value       string
	Description string
	Status      string // "success", "warning", "error", "info"
	Icon        string
	Width       int
	Height      int
}

// NewStatsCard creates a new stats card
func NewStatsCard(title, value, description string) *StatsCard {
	return &StatsCard{
		Title:       title,
		Value:       value,
		Description: description,
		Status:      "info",
		Width:       20,
		Height:      4,
	}
}

// SetStatus sets the status color of the card
func (s *StatsCard) SetStatus(status string) *StatsCard {
	s.Status = status
	return s
}

// SetIcon sets the icon for the card
func (s *StatsCard) SetIcon(icon string) *StatsCard {
	s.Icon = icon
	return s
}

// SetSize sets the size of the card
func (s *StatsCard) SetSize(width, height int) *StatsCard {
	s.Width = width
	s.Height = height
	return s
}

// Render renders the stats card
func (s *StatsCard) Render() string {
	successColor := lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	warningColor := lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	errorColor := lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
	infoColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	bodyColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	var valueStyle lipgloss.Style
	switch s.Status {
	case "success":
		valueStyle = lipgloss.NewStyle().Foreground(successColor)
	case "warning":
		valueStyle = lipgloss.NewStyle().Foreground(warningColor)
	case "error":
		valueStyle = lipgloss.NewStyle().Foreground(errorColor)
	default:
		valueStyle = lipgloss.NewStyle().Foreground(infoColor)
	}

	titleStyle := lipgloss.NewStyle().Foreground(infoColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(bodyColor)

	title := s.Title
	if s.Icon != "" {
		title = s.Icon + " " + title
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		valueStyle.Bold(true).Render(s.Value),
		mutedStyle.Render(s.Description),
	)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(bodyColor).
		Padding(0, 1)

	return boxStyle.
		Width(s.Width).
		Height(s.Height).
		Render(content)
}

// StatsDashboard represents a collection of stats cards
type StatsDashboard struct {
	cards      []*StatsCard
	columns    int
	cardWidth  int
	cardHeight int
}

// NewStatsDashboard creates a new stats dashboard
func NewStatsDashboard(columns int) *StatsDashboard {
	if columns < 1 {
		columns = 1
	}
	return &StatsDashboard{
		columns:    columns,
		cardWidth:  20,
		cardHeight: 4,
	}
}

// AddCard adds a stats card to the dashboard
func (d *StatsDashboard) AddCard(card *StatsCard) {
	card.SetSize(d.cardWidth, d.cardHeight)
	d.cards = append(d.cards, card)
}

// Cards returns the cards in insertion order
func (d *StatsDashboard) Cards() []*StatsCard {
	return d.cards
}

// Render renders the stats dashboard
func (d *StatsDashboard) Render() string {
	if len(d.cards) == 0 {
		return ""
	}

	var rows []string
	for i := 0; i < len(d.cards); i += d.columns {
		end := i + d.columns
		if end > len(d.cards) {
			end = len(d.cards)
		}

		var rowCards []string
		for j := i; j < end; j++ {
			rowCards = append(rowCards, d.cards[j].Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rowCards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// CreateSessionStats builds the dashboard for a session's counters
func CreateSessionStats(snap stats.Snapshot, columns int) *StatsDashboard {
	dashboard := NewStatsDashboard(columns)

	dashboard.AddCard(NewStatsCard(
		"Inputs",
		formatNumber(snap.Inputs),
		fmt.Sprintf("%s ignored", formatNumber(snap.Ignored)),
	).SetIcon(emoji.GetEmoji("number")).SetStatus("info"))

	dashboard.AddCard(NewStatsCard(
		"Evaluations",
		formatNumber(snap.Evaluations),
		"Operations computed",
	).SetIcon(emoji.GetEmoji("calculator")).SetStatus("success"))

	errorStatus := "success"
	if snap.Errors > 0 {
		errorStatus = "error"
	}
	dashboard.AddCard(NewStatsCard(
		"Errors",
		formatNumber(snap.Errors),
		"Division by zero",
	).SetIcon(emoji.GetEmoji("error")).SetStatus(errorStatus))

	dashboard.AddCard(NewStatsCard(
		"Undo / Redo",
		formatNumber(snap.Undos)+" / "+formatNumber(snap.Redos),
		"History moves",
	).SetIcon(emoji.GetEmoji("history")).SetStatus("info"))

	dashboard.AddCard(NewStatsCard(
		"Tile changes",
		formatNumber(snap.TileChanges),
		"Adds, removes, moves",
	).SetIcon(emoji.GetEmoji("tiles")).SetStatus("info"))

	return dashboard
}

// formatNumber formats large numbers with commas
func formatNumber(n int64) string {
	str := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	var result []byte
	for i := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, str[i])
	}
	return sign + string(result)
}
