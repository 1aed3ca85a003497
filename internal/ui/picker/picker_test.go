package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() []Option {
	return []Option{
		{Label: "1. ロボット", Value: "ロボット"},
		{Label: "2. プログラミング", Value: "プログラミング", Disabled: true},
		{Label: "3. 電子工作", Value: "電子工作"},
	}
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewSelectsFirstEnabledOption(t *testing.T) {
	m := New("プログラムを選択", testOptions())
	assert.Equal(t, "ロボット", m.Selected().Value)

	// First option disabled: the cursor starts on the second.
	opts := testOptions()
	opts[0].Disabled = true
	opts[1].Disabled = false
	m = New("プログラムを選択", opts)
	assert.Equal(t, "プログラミング", m.Selected().Value)
}

func TestNavigationSkipsDisabledOptions(t *testing.T) {
	m := New("プログラムを選択", testOptions())

	m, _ = m.Update(key("j"))
	assert.Equal(t, "電子工作", m.Selected().Value)

	m, _ = m.Update(key("k"))
	assert.Equal(t, "ロボット", m.Selected().Value)
}

func TestNavigationStopsAtEnds(t *testing.T) {
	m := New("プログラムを選択", testOptions())

	m, _ = m.Update(key("k"))
	assert.Equal(t, "ロボット", m.Selected().Value)

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	assert.Equal(t, "電子工作", m.Selected().Value)
}

func TestSetSelectedValue(t *testing.T) {
	m := New("プログラムを選択", testOptions())

	m = m.SetSelectedValue("電子工作")
	assert.Equal(t, "電子工作", m.Selected().Value)

	// Disabled targets are ignored.
	m = m.SetSelectedValue("プログラミング")
	assert.Equal(t, "電子工作", m.Selected().Value)
}

func TestEnterSubmitsSelection(t *testing.T) {
	m := New("プログラムを選択", testOptions())

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, SubmitMsg{Value: "ロボット"}, msg)
}

func TestEscCancels(t *testing.T) {
	m := New("プログラムを選択", testOptions())

	_, cmd := m.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}

func TestViewMarksDisabledAsFull(t *testing.T) {
	m := New("プログラムを選択", testOptions())

	v := m.View()
	assert.Contains(t, v, "プログラムを選択")
	assert.Contains(t, v, "満員")
	assert.Contains(t, v, ">")
}

func TestProgramLabel(t *testing.T) {
	assert.Equal(t, "1. ロボット (3/8人出席, 全5人)",
		ProgramLabel(1, "ロボット", 3, 8, 5))
}
