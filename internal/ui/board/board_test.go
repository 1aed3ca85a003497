package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uketsuke/internal/roster"
)

func testStats() []roster.ProgramStats {
	return []roster.ProgramStats{
		{
			Program: roster.Program{Name: "ロボット", MaxMembers: 8},
			Total:   5, Present: 3, PreRegistered: 4, PreRegisteredPresent: 2, WalkIns: 1,
		},
		{
			Program: roster.Program{Name: "プログラミング", MaxMembers: 2},
			Total:   2, Present: 2, PreRegistered: 2, PreRegisteredPresent: 2,
		},
		{
			Program: roster.Program{Name: "希望なし", MaxMembers: 100},
		},
	}
}

func TestFocusCyclesThroughCardsAndBack(t *testing.T) {
	m := New(false).SetStats(testStats(), nil)
	assert.Nil(t, m.Focused())

	m = m.FocusNext()
	require.NotNil(t, m.Focused())
	assert.Equal(t, "ロボット", m.Focused().Program.Name)

	m = m.FocusNext()
	m = m.FocusNext()
	assert.Equal(t, "希望なし", m.Focused().Program.Name)

	// Past the last card focus wraps to the unfocused state.
	m = m.FocusNext()
	assert.Nil(t, m.Focused())

	m = m.FocusPrev()
	assert.Equal(t, "希望なし", m.Focused().Program.Name)
}

func TestBlurClearsFocus(t *testing.T) {
	m := New(false).SetStats(testStats(), nil).FocusNext()
	require.NotNil(t, m.Focused())

	m = m.Blur()
	assert.Nil(t, m.Focused())
}

func TestSetStatsClampsFocus(t *testing.T) {
	m := New(false).SetStats(testStats(), nil)
	m = m.FocusNext().FocusNext().FocusNext() // 希望なし, index 2

	m = m.SetStats(testStats()[:1], nil)
	require.NotNil(t, m.Focused())
	assert.Equal(t, "ロボット", m.Focused().Program.Name)
}

func TestFocusOnEmptyBoardIsNoOp(t *testing.T) {
	m := New(false)
	m = m.FocusNext()
	assert.Nil(t, m.Focused())
	assert.Contains(t, m.View(), "プログラムが設定されていません")
}

func TestViewShowsCountsPerCard(t *testing.T) {
	m := New(false).SetStats(testStats(), nil).SetWidth(120)

	v := m.View()
	assert.Contains(t, v, "ロボット")
	assert.Contains(t, v, "定員 8人")
	assert.Contains(t, v, "事前登録 4人 (出席 2人)")
	assert.Contains(t, v, "当日参加 1人 / 合計 5人")
}

func TestViewMarksFullPrograms(t *testing.T) {
	m := New(false).SetStats(testStats(), nil).SetWidth(120)
	assert.Contains(t, m.View(), "満員")

	// Only プログラミング is at capacity.
	m = m.SetStats(testStats()[:1], nil)
	assert.NotContains(t, m.View(), "満員")
}

func TestViewListsAbsentees(t *testing.T) {
	absent := []*roster.Attendee{
		{Kanji: "山田太郎", Kana: "ヤマダタロウ", Program: "ロボット"},
		{Kana: "サトウハナコ", Program: "希望なし"},
	}
	m := New(true).SetStats(testStats(), absent).SetWidth(120)

	v := m.View()
	assert.Contains(t, v, "欠席者 (2人)")
	assert.Contains(t, v, "山田太郎 (ヤマダタロウ)")
	assert.Contains(t, v, "サトウハナコ")
}
