// Package toaster shows transient status notifications at the bottom
// of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"uketsuke/internal/ui/overlay"
	"uketsuke/internal/ui/styles"
)

// Style selects the toast border color.
type Style int

const (
	Info Style = iota
	Success
	Warn
	Error
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3 * time.Second

// DismissMsg hides the toast identified by Seq. Stale timers carry an
// old Seq and are ignored.
type DismissMsg struct {
	Seq int
}

// Model is the toast component state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
	width   int
	height  int
}

// New creates an empty, hidden toaster.
func New() Model {
	return Model{}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Visible reports whether a toast is currently shown.
func (m Model) Visible() bool {
	return m.visible
}

// Show displays a message and schedules its dismissal. A new Show
// supersedes any pending timer.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	seq := m.seq
	return m, tea.Tick(DefaultDuration, func(time.Time) tea.Msg {
		return DismissMsg{Seq: seq}
	})
}

// Update hides the toast when its dismiss timer fires.
func (m Model) Update(msg tea.Msg) Model {
	switch msg := msg.(type) {
	case DismissMsg:
		if msg.Seq == m.seq {
			m.visible = false
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	var border lipgloss.AdaptiveColor
	switch m.style {
	case Success:
		border = styles.ToastBorderSuccessColor
	case Warn:
		border = styles.ToastBorderWarnColor
	case Error:
		border = styles.ToastBorderErrorColor
	default:
		border = styles.ToastBorderInfoColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2).
		Render(m.message)
}

// Overlay places the toast bottom-center over the background view.
func (m Model) Overlay(background string) string {
	if !m.visible {
		return background
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), background)
}
