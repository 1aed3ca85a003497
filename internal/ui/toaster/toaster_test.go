package toaster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowMakesToastVisible(t *testing.T) {
	m := New()
	assert.False(t, m.Visible())
	assert.Empty(t, m.View())

	m, cmd := m.Show("3件読み込みました", Success)
	require.NotNil(t, cmd)
	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "3件読み込みました")
}

func TestDismissHidesToast(t *testing.T) {
	m := New()
	m, _ = m.Show("保存しました", Info)

	m = m.Update(DismissMsg{Seq: 1})
	assert.False(t, m.Visible())
}

func TestStaleDismissIsIgnored(t *testing.T) {
	m := New()
	m, _ = m.Show("最初", Info)
	m, _ = m.Show("二番目", Warn)

	// The first toast's timer fires after the second Show.
	m = m.Update(DismissMsg{Seq: 1})
	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "二番目")

	m = m.Update(DismissMsg{Seq: 2})
	assert.False(t, m.Visible())
}

func TestShowReplacesMessage(t *testing.T) {
	m := New()
	m, _ = m.Show("満員です", Error)
	m, _ = m.Show("登録しました", Success)

	v := m.View()
	assert.Contains(t, v, "登録しました")
	assert.NotContains(t, v, "満員です")
}

func TestOverlayPassesBackgroundThroughWhenHidden(t *testing.T) {
	m := New().SetSize(40, 10)
	assert.Equal(t, "background", m.Overlay("background"))
}

func TestOverlayPlacesToastAtBottom(t *testing.T) {
	m := New().SetSize(40, 10)
	m, _ = m.Show("done", Info)

	out := m.Overlay("")
	assert.Contains(t, out, "done")
}
