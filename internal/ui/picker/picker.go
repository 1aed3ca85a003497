// Package picker provides the program selection overlay used by the
// walk-in form and the reassign action.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"uketsuke/internal/ui/overlay"
	"uketsuke/internal/ui/styles"
)

// Option is one selectable program line. Disabled options (full
// programs, for flows that must not target them) render flagged and
// are skipped by the cursor.
type Option struct {
	Label    string // display line, e.g. "1. ロボット (3/8人出席, 全5人)"
	Value    string // program name
	Disabled bool
}

// SubmitMsg is sent when the user confirms a selection.
type SubmitMsg struct {
	Value string
}

// CancelMsg is sent when the picker is dismissed.
type CancelMsg struct{}

// Model holds the picker state.
type Model struct {
	title          string
	options        []Option
	selected       int
	viewportWidth  int
	viewportHeight int
}

// New creates a picker with the given title and options, selecting the
// first enabled option.
func New(title string, options []Option) Model {
	m := Model{title: title, options: options}
	m.selected = m.nextEnabled(-1, +1)
	return m
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetSelectedValue moves the cursor onto the option with the given
// value if it exists and is enabled.
func (m Model) SetSelectedValue(value string) Model {
	for i, opt := range m.options {
		if opt.Value == value && !opt.Disabled {
			m.selected = i
			break
		}
	}
	return m
}

// Selected returns the currently selected option.
func (m Model) Selected() Option {
	if m.selected >= 0 && m.selected < len(m.options) {
		return m.options[m.selected]
	}
	return Option{}
}

// nextEnabled returns the next enabled index from i in direction step,
// or i when there is none.
func (m Model) nextEnabled(i, step int) int {
	for j := i + step; j >= 0 && j < len(m.options); j += step {
		if !m.options[j].Disabled {
			return j
		}
	}
	if i < 0 {
		return 0
	}
	return i
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down", "ctrl+n":
			m.selected = m.nextEnabled(m.selected, +1)
		case "k", "up", "ctrl+p":
			m.selected = m.nextEnabled(m.selected, -1)
		case "enter":
			opt := m.Selected()
			if opt.Value != "" && !opt.Disabled {
				return m, func() tea.Msg { return SubmitMsg{Value: opt.Value} }
			}
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}
	return m, nil
}

// View renders the picker box.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	disabledStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	width := m.boxWidth()

	var options strings.Builder
	for i, opt := range m.options {
		label := opt.Label
		if opt.Disabled {
			label = disabledStyle.Render(label + " - 満員")
		}
		switch {
		case i == m.selected && !opt.Disabled:
			options.WriteString(styles.SelectionIndicatorStyle.Render(">"))
			options.WriteString(lipgloss.NewStyle().Bold(true).Render(label))
		default:
			options.WriteString(" " + label)
		}
		if i < len(m.options)-1 {
			options.WriteString("\n")
		}
	}

	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", width))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(titleStyle.Render(m.title) + "\n" + divider + "\n" + options.String())
}

func (m Model) boxWidth() int {
	width := 40
	for _, opt := range m.options {
		if w := lipgloss.Width(opt.Label) + 10; w > width {
			width = w
		}
	}
	if m.viewportWidth > 0 && width > m.viewportWidth-4 {
		width = m.viewportWidth - 4
	}
	return width
}

// Overlay renders the picker on top of a background view.
func (m Model) Overlay(background string) string {
	box := m.View()
	if background == "" {
		return lipgloss.Place(
			m.viewportWidth, m.viewportHeight,
			lipgloss.Center, lipgloss.Center,
			box,
		)
	}
	return overlay.Place(overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Center,
	}, box, background)
}

// ProgramLabel formats the standard option line for a program: its
// display number, name, and seat usage.
func ProgramLabel(id int, name string, present, max, total int) string {
	return fmt.Sprintf("%d. %s (%d/%d人出席, 全%d人)", id, name, present, max, total)
}
