package modal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uketsuke/internal/roster"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func nameForm() Config {
	return Config{
		Title: "新規参加者",
		Inputs: []InputConfig{
			{Key: "kanji", Label: "漢字"},
			{Key: "kana", Label: "カナ"},
		},
		SubmitLabel: "次へ",
		Validate: func(values map[string]string) error {
			if values["kanji"] == "" && values["kana"] == "" {
				return roster.NewError(roster.ErrKindValidation, "名前を入力してください")
			}
			return nil
		},
	}
}

func TestTypingFillsFocusedInput(t *testing.T) {
	m := New(nameForm())

	m = typeText(m, "田中一郎")
	assert.Equal(t, "田中一郎", m.Values()["kanji"])
	assert.Empty(t, m.Values()["kana"])

	m, _ = m.Update(key("tab"))
	m = typeText(m, "タナカイチロウ")
	assert.Equal(t, "タナカイチロウ", m.Values()["kana"])
}

func TestValuesTrimsWhitespace(t *testing.T) {
	m := New(Config{Inputs: []InputConfig{{Key: "max", Value: " 8 "}}})
	assert.Equal(t, "8", m.Values()["max"])
}

func TestEnterAdvancesThroughInputsThenSubmits(t *testing.T) {
	m := New(nameForm())
	m = typeText(m, "田中")

	// Two enters walk off the inputs onto the submit button.
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("enter"))

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(SubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "田中", msg.Values["kanji"])
}

func TestValidationErrorKeepsModalOpen(t *testing.T) {
	m := New(nameForm())

	// Walk to the submit button without entering anything.
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("enter"))

	m, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "名前を入力してください")

	// The error clears once focus moves again.
	m = m.moveFocus(-1)
	assert.NotContains(t, m.View(), "名前を入力してください")
}

func TestCancelButtonSendsCancelMsg(t *testing.T) {
	m := New(nameForm())
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("right")) // onto キャンセル

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}

func TestEscCancelsFromAnywhere(t *testing.T) {
	m := New(nameForm())
	m = typeText(m, "田中")

	_, cmd := m.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}

func TestConfirmationModeSubmitsImmediately(t *testing.T) {
	m := New(Config{Title: "容量を保存", Message: "設定ファイルに保存しますか？"})

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	_, ok := cmd().(SubmitMsg)
	assert.True(t, ok)
}

func TestShiftTabMovesFocusBackwards(t *testing.T) {
	m := New(nameForm())
	m, _ = m.Update(key("tab")) // kana

	m, _ = m.Update(key("shift+tab")) // back to kanji
	m = typeText(m, "山")
	assert.Equal(t, "山", m.Values()["kanji"])
}

func TestViewShowsTitleAndButtons(t *testing.T) {
	m := New(nameForm())
	v := m.View()
	assert.Contains(t, v, "新規参加者")
	assert.Contains(t, v, "次へ")
	assert.Contains(t, v, "キャンセル")
}
