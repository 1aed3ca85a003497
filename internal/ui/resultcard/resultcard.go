// Package resultcard renders search results as actionable cards.
package resultcard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"uketsuke/internal/roster"
	"uketsuke/internal/roster/match"
	"uketsuke/internal/ui/namefmt"
	"uketsuke/internal/ui/styles"
)

// Model holds the search results and a cursor over them.
type Model struct {
	results []match.Result
	cursor  int
	width   int
}

// New creates an empty card list.
func New() Model {
	return Model{}
}

// SetResults replaces the results and resets the cursor.
func (m Model) SetResults(results []match.Result) Model {
	m.results = results
	m.cursor = 0
	return m
}

// Clear empties the list.
func (m Model) Clear() Model {
	m.results = nil
	m.cursor = 0
	return m
}

// SetWidth sets the card width.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// Len returns the number of result cards.
func (m Model) Len() int {
	return len(m.results)
}

// Selected returns the record under the cursor, nil when empty.
func (m Model) Selected() *roster.Attendee {
	if len(m.results) == 0 {
		return nil
	}
	return m.results[m.cursor].Record
}

// CursorDown moves the cursor to the next card, saturating.
func (m Model) CursorDown() Model {
	if m.cursor < len(m.results)-1 {
		m.cursor++
	}
	return m
}

// CursorUp moves the cursor to the previous card, saturating.
func (m Model) CursorUp() Model {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// View renders all result cards.
func (m Model) View() string {
	if len(m.results) == 0 {
		return ""
	}
	cards := make([]string, 0, len(m.results))
	for i, res := range m.results {
		cards = append(cards, m.renderCard(res, i == m.cursor))
	}
	return strings.Join(cards, "\n")
}

func (m Model) renderCard(res match.Result, selected bool) string {
	rec := res.Record

	border := styles.BorderDefaultColor
	if selected {
		border = styles.BorderFocusColor
	}

	kindStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	kind := "事前登録"
	if rec.Kind == roster.WalkIn {
		kind = "当日参加"
	}

	name := namefmt.Result(res)
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Center,
			name, "  ", attendanceBadge(rec.Attendance), "  ", kindStyle.Render(kind)),
		lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).
			Render("プログラム: " + runewidth.Truncate(rec.Program, 40, "…")),
	}
	if prefs := prefLine(rec); prefs != "" {
		lines = append(lines, kindStyle.Render(prefs))
	}
	if selected {
		hints := lipgloss.NewStyle().Foreground(styles.TextMutedColor).
			Render("ctrl+j 出席  ctrl+k 欠席  ctrl+r プログラム変更")
		lines = append(lines, hints)
	}

	width := m.width
	if width > 60 || width <= 0 {
		width = 60
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func attendanceBadge(a roster.Attendance) string {
	switch a {
	case roster.Present:
		return styles.AttendancePresentStyle.Render("出席")
	case roster.Absent:
		return styles.AttendanceAbsentStyle.Render("欠席")
	default:
		return styles.AttendancePendingStyle.Render("未確認")
	}
}

func prefLine(rec *roster.Attendee) string {
	var parts []string
	for i, p := range []string{rec.Pref1, rec.Pref2, rec.Pref3} {
		if p != "" {
			parts = append(parts, fmt.Sprintf("第%d希望 %s", i+1, p))
		}
	}
	return strings.Join(parts, " / ")
}

// EmptyCard renders the zero-match prompt offering walk-in
// registration for the query.
func EmptyCard(query string, width int) string {
	if width > 60 || width <= 0 {
		width = 60
	}
	msg := fmt.Sprintf("「%s」に一致する参加者が見つかりません", query)
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor).
		Render("ctrl+a で新規参加者として登録")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.StatusWarningColor).
		Width(width).
		Padding(0, 1).
		Render(msg + "\n" + hint)
}
