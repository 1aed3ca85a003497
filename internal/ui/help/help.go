// Package help contains the help overlay component.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"uketsuke/internal/keys"
	"uketsuke/internal/ui/markdown"
	"uketsuke/internal/ui/overlay"
	"uketsuke/internal/ui/styles"
)

const contentWidth = 52

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor).
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// Model holds the help view state.
type Model struct {
	keys     keys.KeyMap
	rendered string
	width    int
	height   int
}

// New creates a help view. The keybinding document is rendered once
// up front via glamour.
func New() Model {
	m := Model{keys: keys.DefaultKeyMap()}
	m.rendered = m.render()
	return m
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help overlay standalone.
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	content := m.rendered + "\n" + footerStyle.Render("esc で閉じる")
	box := boxStyle.Render(content)

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			box,
		)
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, box, background)
}

// render builds the keybinding reference as markdown and styles it.
func (m Model) render() string {
	var b strings.Builder
	b.WriteString("# キー操作\n\n")

	section := func(title string, bindings ...key.Binding) {
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, kb := range bindings {
			h := kb.Help()
			fmt.Fprintf(&b, "- `%s` %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}

	section("検索", m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.ClearQuery)
	section("受付", m.keys.MarkPresent, m.keys.MarkAbsent, m.keys.Reassign, m.keys.AddGuest)
	section("プログラム", m.keys.NextProgram, m.keys.PrevProgram, m.keys.EditMax)
	section("ファイル", m.keys.Import, m.keys.Export)
	section("一般", m.keys.Help, m.keys.Escape, m.keys.Quit)

	r, err := markdown.New(contentWidth)
	if err != nil {
		return b.String()
	}
	out, err := r.Render(b.String())
	if err != nil {
		return b.String()
	}
	return strings.TrimRight(out, "\n")
}
