package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Counts(t *testing.T) {
	s := newTestStore(t, ByPresent)

	s.ImportBatch([]ImportRow{
		{Kanji: "事前A", Program: "ロボット", Attendance: Present},
		{Kanji: "事前B", Program: "ロボット"},
		{Kanji: "事前C", Program: "ロボット", Attendance: Absent},
		{Kanji: "事前D", Program: "プログラミング"},
	})
	_, err := s.AddWalkIn("当日E", "", "ロボット")
	require.NoError(t, err)

	stats := s.Stats()
	require.Len(t, stats, 3, "one stat per program, in display order")

	robo := stats[0]
	assert.Equal(t, "ロボット", robo.Program.Name)
	assert.Equal(t, 4, robo.Total)
	assert.Equal(t, 2, robo.Present)
	assert.Equal(t, 1, robo.Absent)
	assert.Equal(t, 3, robo.PreRegistered)
	assert.Equal(t, 1, robo.PreRegisteredPresent)
	assert.Equal(t, 1, robo.WalkIns)

	prog := stats[1]
	assert.Equal(t, 1, prog.Total)
	assert.Equal(t, 0, prog.Present)
}

func TestStats_Severity(t *testing.T) {
	p := Program{Name: "ロボット", MaxMembers: 3}

	tests := []struct {
		name string
		st   ProgramStats
		want Severity
	}{
		{name: "room left", st: ProgramStats{Program: p, Total: 2, Present: 1}, want: SeverityNone},
		{name: "total at limit", st: ProgramStats{Program: p, Total: 3, Present: 1}, want: SeverityWarn},
		{name: "total over limit", st: ProgramStats{Program: p, Total: 4, Present: 2}, want: SeverityWarn},
		{name: "present over limit", st: ProgramStats{Program: p, Total: 4, Present: 4}, want: SeverityCritical},
		{name: "preregistered over limit", st: ProgramStats{Program: p, Total: 4, PreRegistered: 4}, want: SeverityCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.st.Severity())
		})
	}
}

func TestStats_Full(t *testing.T) {
	p := Program{Name: "ロボット", MaxMembers: 2}
	assert.False(t, ProgramStats{Program: p, Present: 1}.Full())
	assert.True(t, ProgramStats{Program: p, Present: 2}.Full())
	assert.True(t, ProgramStats{Program: p, Present: 3}.Full())
}

func TestMembers(t *testing.T) {
	s := newTestStore(t, ByPresent)
	s.ImportBatch([]ImportRow{
		{Kanji: "事前A", Program: "ロボット"},
		{Kanji: "事前B", Program: "プログラミング"},
		{Kanji: "事前C", Program: "ロボット"},
	})

	members := s.Members("ロボット")
	require.Len(t, members, 2)
	assert.Equal(t, "事前A", members[0].Kanji)
	assert.Equal(t, "事前C", members[1].Kanji)
	assert.Empty(t, s.Members("存在しない"))
}

func TestAbsentRecords_ProgramOrderThenInsertion(t *testing.T) {
	s := newTestStore(t, ByPresent)
	s.ImportBatch([]ImportRow{
		{Kanji: "P欠席1", Program: "プログラミング", Attendance: Absent},
		{Kanji: "R欠席1", Program: "ロボット", Attendance: Absent},
		{Kanji: "R出席", Program: "ロボット", Attendance: Present},
		{Kanji: "R欠席2", Program: "ロボット", Attendance: Absent},
	})

	absent := s.AbsentRecords()
	require.Len(t, absent, 3)
	// ロボット is listed before プログラミング on the board
	assert.Equal(t, "R欠席1", absent[0].Kanji)
	assert.Equal(t, "R欠席2", absent[1].Kanji)
	assert.Equal(t, "P欠席1", absent[2].Kanji)
}
