// Package modal provides a reusable modal component for input prompts
// and confirmation dialogs: the walk-in form, the capacity editor, and
// the import path prompt are all instances of it.
package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"uketsuke/internal/ui/overlay"
	"uketsuke/internal/ui/styles"
)

// InputConfig defines a single input field.
type InputConfig struct {
	Key         string // identifier used in SubmitMsg.Values
	Label       string // label rendered above the input
	Placeholder string // shown when empty
	Value       string // initial value (optional)
	CharLimit   int    // 0 = unlimited
}

// Config controls modal appearance and behavior.
type Config struct {
	Title       string
	Message     string        // optional prompt text
	Inputs      []InputConfig // empty means confirmation mode
	SubmitLabel string        // defaults to "保存"

	// Validate inspects the values before a SubmitMsg is produced.
	// A non-nil error keeps the modal open and shows the message.
	Validate func(values map[string]string) error
}

// SubmitMsg is sent when the user confirms the modal.
type SubmitMsg struct {
	Values map[string]string
}

// CancelMsg is sent when the modal is dismissed.
type CancelMsg struct{}

// Model is the modal component state.
type Model struct {
	config       Config
	inputs       []textinput.Model
	focusedInput int  // -1 when focus is on the buttons
	onCancel     bool // which button has focus
	width        int
	height       int

	validationError string
}

// New creates a modal from the configuration. With inputs, focus
// starts on the first input; without, on the submit button.
func New(cfg Config) Model {
	m := Model{config: cfg, focusedInput: -1}

	for i, in := range cfg.Inputs {
		ti := textinput.New()
		ti.Placeholder = in.Placeholder
		ti.Width = 36
		ti.Prompt = ""
		ti.CharLimit = in.CharLimit
		ti.SetValue(in.Value)
		if i == 0 {
			ti.Focus()
			m.focusedInput = 0
		}
		m.inputs = append(m.inputs, ti)
	}
	return m
}

// Init starts the cursor blink for input mode.
func (m Model) Init() tea.Cmd {
	if len(m.inputs) > 0 {
		return textinput.Blink
	}
	return nil
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Values collects the current input values keyed by InputConfig.Key.
func (m Model) Values() map[string]string {
	values := make(map[string]string, len(m.inputs))
	for i, in := range m.inputs {
		values[m.config.Inputs[i].Key] = strings.TrimSpace(in.Value())
	}
	return values
}

// Update handles messages for the modal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m = m.moveFocus(+1)
			return m, nil

		case "shift+tab", "up":
			m = m.moveFocus(-1)
			return m, nil

		case "left", "right":
			if m.focusedInput == -1 {
				m.onCancel = !m.onCancel
				return m, nil
			}

		case "enter":
			if m.focusedInput >= 0 {
				m = m.moveFocus(+1)
				return m, nil
			}
			if m.onCancel {
				return m, func() tea.Msg { return CancelMsg{} }
			}
			values := m.Values()
			if m.config.Validate != nil {
				if err := m.config.Validate(values); err != nil {
					m.validationError = err.Error()
					return m, nil
				}
			}
			return m, func() tea.Msg { return SubmitMsg{Values: values} }

		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	if m.focusedInput >= 0 && m.focusedInput < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focusedInput], cmd = m.inputs[m.focusedInput].Update(msg)
		return m, cmd
	}
	return m, nil
}

// moveFocus cycles input fields and the button row. Direction +1 walks
// inputs top to bottom then lands on the buttons; -1 the reverse.
func (m Model) moveFocus(dir int) Model {
	m.validationError = ""
	if m.focusedInput >= 0 {
		m.inputs[m.focusedInput].Blur()
	}

	switch {
	case m.focusedInput == -1 && dir > 0:
		if m.onCancel {
			// Wrap back to the first input.
			if len(m.inputs) > 0 {
				m.focusedInput = 0
				m.onCancel = false
				m.inputs[0].Focus()
			} else {
				m.onCancel = false
			}
		} else {
			m.onCancel = true
		}
	case m.focusedInput == -1 && dir < 0:
		if m.onCancel {
			m.onCancel = false
		} else if len(m.inputs) > 0 {
			m.focusedInput = len(m.inputs) - 1
			m.inputs[m.focusedInput].Focus()
		}
	default:
		next := m.focusedInput + dir
		if next < 0 || next >= len(m.inputs) {
			m.focusedInput = -1
			m.onCancel = dir < 0
		} else {
			m.focusedInput = next
			m.inputs[next].Focus()
		}
	}
	return m
}

// View renders the modal box.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor)
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	errorStyle := lipgloss.NewStyle().Foreground(styles.StatusErrorColor)

	var parts []string
	parts = append(parts, titleStyle.Render(m.config.Title))
	if m.config.Message != "" {
		parts = append(parts, m.config.Message)
	}

	for i, in := range m.inputs {
		border := styles.BorderDefaultColor
		if i == m.focusedInput {
			border = styles.BorderFocusColor
		}
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Render(in.View())
		parts = append(parts, labelStyle.Render(m.config.Inputs[i].Label)+"\n"+box)
	}

	if m.validationError != "" {
		parts = append(parts, errorStyle.Render(m.validationError))
	}

	parts = append(parts, m.buttonRow())

	content := strings.Join(parts, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(0, 2).
		Render(content)
}

func (m Model) buttonRow() string {
	submitLabel := m.config.SubmitLabel
	if submitLabel == "" {
		submitLabel = "保存"
	}

	submit := styles.PrimaryButtonStyle.Render(submitLabel)
	cancel := styles.SecondaryButtonStyle.Render("キャンセル")
	if m.focusedInput == -1 {
		if m.onCancel {
			cancel = styles.SecondaryButtonFocusedStyle.Render("キャンセル")
		} else {
			submit = styles.PrimaryButtonFocusedStyle.Render(submitLabel)
		}
	}
	return submit + "  " + cancel
}

// Overlay renders the modal centered over a background view.
func (m Model) Overlay(background string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), background)
}
