// Package searchinput provides the single-line name query input.
// Editing is rune-based throughout: queries mix kanji, kana, and Latin
// text, so byte-offset cursor math would split characters.
package searchinput

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"uketsuke/internal/ui/styles"
)

// ANSI codes for the cursor - toggle reverse video only so surrounding
// styles survive.
const (
	cursorOn  = "\x1b[7m"
	cursorOff = "\x1b[27m"
)

// Model is a single-line text input for the search query.
type Model struct {
	value   []rune
	cursor  int // rune position, 0 = before first rune
	focused bool
	width   int

	placeholder      string
	placeholderStyle lipgloss.Style
}

// New creates a new search input model.
func New() Model {
	return Model{
		width:            40,
		placeholderStyle: lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor),
	}
}

// Value returns the current text value.
func (m Model) Value() string {
	return string(m.value)
}

// SetValue sets the text value and moves the cursor to the end.
func (m *Model) SetValue(v string) {
	m.value = []rune(v)
	m.cursor = len(m.value)
}

// Reset clears the input.
func (m *Model) Reset() {
	m.value = nil
	m.cursor = 0
}

// Focused returns whether the input is focused.
func (m Model) Focused() bool { return m.focused }

// Focus focuses the input.
func (m *Model) Focus() { m.focused = true }

// Blur removes focus from the input.
func (m *Model) Blur() { m.focused = false }

// SetWidth sets the display width.
func (m *Model) SetWidth(w int) {
	if w < 1 {
		w = 1
	}
	m.width = w
}

// SetPlaceholder sets the placeholder text.
func (m *Model) SetPlaceholder(p string) { m.placeholder = p }

// Update handles key messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyLeft:
			if m.cursor > 0 {
				m.cursor--
			}
		case tea.KeyRight:
			if m.cursor < len(m.value) {
				m.cursor++
			}
		case tea.KeyHome, tea.KeyCtrlA:
			m.cursor = 0
		case tea.KeyEnd, tea.KeyCtrlE:
			m.cursor = len(m.value)
		case tea.KeyBackspace:
			if m.cursor > 0 {
				m.value = append(m.value[:m.cursor-1], m.value[m.cursor:]...)
				m.cursor--
			}
		case tea.KeyDelete:
			if m.cursor < len(m.value) {
				m.value = append(m.value[:m.cursor], m.value[m.cursor+1:]...)
			}
		case tea.KeyCtrlK:
			m.value = m.value[:m.cursor]
		case tea.KeyCtrlU:
			m.value = nil
			m.cursor = 0
		case tea.KeySpace:
			m.insert(' ')
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				m.insert(r)
			}
		}
	}

	return m, nil
}

func (m *Model) insert(r rune) {
	m.value = append(m.value[:m.cursor],
		append([]rune{r}, m.value[m.cursor:]...)...)
	m.cursor++
}

// View renders the input with a reverse-video cursor when focused.
func (m Model) View() string {
	if len(m.value) == 0 {
		if m.focused {
			return cursorOn + " " + cursorOff
		}
		if m.placeholder != "" {
			return m.placeholderStyle.Render(m.placeholder)
		}
		return ""
	}

	if !m.focused {
		return string(m.value)
	}

	var b strings.Builder
	b.WriteString(string(m.value[:m.cursor]))
	if m.cursor < len(m.value) {
		b.WriteString(cursorOn)
		b.WriteRune(m.value[m.cursor])
		b.WriteString(cursorOff)
		b.WriteString(string(m.value[m.cursor+1:]))
	} else {
		b.WriteString(cursorOn + " " + cursorOff)
	}
	return b.String()
}
