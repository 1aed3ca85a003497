// Package board renders the program overview: one card per program
// with attendance counts, plus the global absent list.
package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"uketsuke/internal/roster"
	"uketsuke/internal/ui/styles"
)

const cardWidth = 30

// Model is the board component state.
type Model struct {
	stats    []roster.ProgramStats
	absent   []*roster.Attendee
	focused  int // -1 = no card focused
	width    int
	showKana bool
}

// New creates an unfocused board.
func New(showKana bool) Model {
	return Model{focused: -1, showKana: showKana}
}

// SetStats replaces the card data. Focus is clamped to the new range.
func (m Model) SetStats(stats []roster.ProgramStats, absent []*roster.Attendee) Model {
	m.stats = stats
	m.absent = absent
	if m.focused >= len(stats) {
		m.focused = len(stats) - 1
	}
	return m
}

// SetWidth sets the layout width for card wrapping.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// Focused returns the stats of the focused card, nil when none.
func (m Model) Focused() *roster.ProgramStats {
	if m.focused < 0 || m.focused >= len(m.stats) {
		return nil
	}
	return &m.stats[m.focused]
}

// FocusNext moves card focus forward, wrapping past the last card to
// the unfocused state.
func (m Model) FocusNext() Model {
	if len(m.stats) == 0 {
		return m
	}
	m.focused++
	if m.focused >= len(m.stats) {
		m.focused = -1
	}
	return m
}

// FocusPrev moves card focus backward.
func (m Model) FocusPrev() Model {
	if len(m.stats) == 0 {
		return m
	}
	m.focused--
	if m.focused < -1 {
		m.focused = len(m.stats) - 1
	}
	return m
}

// Blur clears card focus.
func (m Model) Blur() Model {
	m.focused = -1
	return m
}

// View renders the cards in rows followed by the absent list.
func (m Model) View() string {
	if len(m.stats) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Render("プログラムが設定されていません")
	}

	perRow := 1
	if m.width > 0 {
		perRow = m.width / (cardWidth + 2)
		if perRow < 1 {
			perRow = 1
		}
	}

	var rows []string
	for start := 0; start < len(m.stats); start += perRow {
		end := start + perRow
		if end > len(m.stats) {
			end = len(m.stats)
		}
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	sections := []string{strings.Join(rows, "\n")}
	if absent := m.renderAbsentList(); absent != "" {
		sections = append(sections, absent)
	}
	return strings.Join(sections, "\n\n")
}

func (m Model) renderCard(i int) string {
	st := m.stats[i]

	border := styles.CardBorderColor
	switch st.Severity() {
	case roster.SeverityWarn:
		border = styles.CardBorderWarnColor
	case roster.SeverityCritical:
		border = styles.CardBorderCriticalColor
	}
	if i == m.focused {
		border = styles.BorderFocusColor
	}

	title := runewidth.Truncate(st.Program.Name, cardWidth-6, "…")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor)
	header := titleStyle.Render(title)
	if st.Full() {
		header = lipgloss.JoinHorizontal(lipgloss.Center,
			header, " ", styles.CardFullBadgeStyle.Render("満員"))
	}

	countStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	lines := []string{
		header,
		fmt.Sprintf("出席 %s / 定員 %d人",
			styles.AttendancePresentStyle.Render(fmt.Sprintf("%d人", st.Present)),
			st.Program.MaxMembers),
		countStyle.Render(fmt.Sprintf("事前登録 %d人 (出席 %d人)",
			st.PreRegistered, st.PreRegisteredPresent)),
		countStyle.Render(fmt.Sprintf("当日参加 %d人 / 合計 %d人",
			st.WalkIns, st.Total)),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cardWidth).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderAbsentList() string {
	if len(m.absent) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.TextSecondaryColor)
	nameStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	programStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("欠席者 (%d人)", len(m.absent))))
	for _, rec := range m.absent {
		name := rec.DisplayName()
		if m.showKana && rec.Kanji != "" && rec.Kana != "" {
			name = fmt.Sprintf("%s (%s)", rec.Kanji, rec.Kana)
		}
		line := fmt.Sprintf("%s  %s",
			nameStyle.Render(runewidth.Truncate(name, 40, "…")),
			programStyle.Render(rec.Program))
		b.WriteString("\n  " + line)
	}
	return b.String()
}
