// Package suggestions renders the autocomplete dropdown under the
// search input and owns its selection cursor.
package suggestions

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"uketsuke/internal/roster"
	"uketsuke/internal/roster/match"
	"uketsuke/internal/ui/namefmt"
	"uketsuke/internal/ui/styles"
)

// Model holds the suggestion list state. The cursor starts at -1
// ("nothing selected") every time a new list is set, and directional
// input saturates at the ends rather than wrapping; Enter with the
// cursor at -1 means "search the raw query instead".
type Model struct {
	results []match.Result
	cursor  int
	width   int
}

// New creates an empty suggestion list.
func New() Model {
	return Model{cursor: -1, width: 60}
}

// SetResults replaces the list and resets the cursor to -1.
func (m *Model) SetResults(results []match.Result) {
	m.results = results
	m.cursor = -1
}

// Clear empties the list.
func (m *Model) Clear() {
	m.results = nil
	m.cursor = -1
}

// SetWidth sets the dropdown width.
func (m *Model) SetWidth(w int) {
	if w < 20 {
		w = 20
	}
	m.width = w
}

// Len returns the number of suggestions.
func (m Model) Len() int { return len(m.results) }

// Cursor returns the selected index, -1 when nothing is selected.
func (m Model) Cursor() int { return m.cursor }

// Selected returns the record under the cursor, or nil when the cursor
// is at -1.
func (m Model) Selected() *roster.Attendee {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return nil
	}
	return m.results[m.cursor].Record
}

// Update moves the cursor on directional input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if len(m.results) == 0 {
		return m, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
		case "up", "ctrl+p":
			if m.cursor > -1 {
				m.cursor--
			}
		}
	}
	return m, nil
}

// View renders the dropdown box; empty when there are no suggestions.
func (m Model) View() string {
	if len(m.results) == 0 {
		return ""
	}

	inner := m.width - 4 // border and selection prefix
	programStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	var lines []string
	for i, res := range m.results {
		name := namefmt.Result(res)
		program := runewidth.Truncate(res.Record.Program, inner, "…")

		prefix := " "
		nameLine := name
		if i == m.cursor {
			prefix = styles.SelectionIndicatorStyle.Render(">")
			nameLine = lipgloss.NewStyle().Bold(true).Render(name)
		}
		lines = append(lines, prefix+" "+nameLine)
		lines = append(lines, "   "+programStyle.Render(program))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(m.width).
		Render(strings.Join(lines, "\n"))
}
