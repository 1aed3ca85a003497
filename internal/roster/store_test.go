package roster

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const noPref = "希望なし"

func testPrograms() []Program {
	return []Program{
		{ID: 1, Name: "ロボット", MaxMembers: 3},
		{ID: 2, Name: "プログラミング", MaxMembers: 2},
		{ID: 3, Name: noPref, MaxMembers: 100},
	}
}

func newTestStore(t *testing.T, policy CountPolicy) *Store {
	t.Helper()
	s := New(testPrograms(), policy, noPref)
	t.Cleanup(s.Close)
	return s
}

func TestImportBatch_ReplacesAllRecords(t *testing.T) {
	s := newTestStore(t, ByPresent)

	count := s.ImportBatch([]ImportRow{
		{Kanji: "山田 太郎", Kana: "ヤマダ タロウ", Program: "ロボット"},
		{Kanji: "佐藤 花子", Kana: "サトウ ハナコ", Program: "プログラミング"},
	})
	require.Equal(t, 2, count)
	require.Equal(t, 2, s.Len())

	// A second import replaces, never appends
	count = s.ImportBatch([]ImportRow{
		{Kanji: "鈴木 一郎", Kana: "スズキ イチロウ", Program: "ロボット"},
	})
	require.Equal(t, 1, count)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "鈴木 一郎", s.Records()[0].Kanji)
}

func TestImportBatch_Defaults(t *testing.T) {
	s := newTestStore(t, ByPresent)

	s.ImportBatch([]ImportRow{
		{Kanji: "山田 太郎", Kana: "ヤマダ タロウ", Program: "ロボット", Pref1: "ロボット"},
	})

	rec := s.Records()[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, PreRegistered, rec.Kind)
	assert.Equal(t, Pending, rec.Attendance)
}

func TestImportBatch_UnknownProgramParksOnSentinel(t *testing.T) {
	s := newTestStore(t, ByPresent)

	s.ImportBatch([]ImportRow{
		{Kanji: "山田 太郎", Kana: "ヤマダ タロウ", Program: "昨年度の企画", Pref1: "昨年度の企画"},
	})

	rec := s.Records()[0]
	assert.Equal(t, noPref, rec.Program, "unknown program must land on the sentinel")
	assert.Equal(t, "昨年度の企画", rec.Pref1, "the stated preference is kept verbatim")
}

func TestImportBatch_NoCapacityCheck(t *testing.T) {
	s := newTestStore(t, ByPresent)

	rows := make([]ImportRow, 10)
	for i := range rows {
		rows[i] = ImportRow{
			Kanji:      fmt.Sprintf("参加者%d", i),
			Program:    "ロボット",
			Attendance: Present,
		}
	}
	count := s.ImportBatch(rows)
	assert.Equal(t, 10, count, "imports may exceed capacity; the board flags it")
}

func TestAddWalkIn(t *testing.T) {
	s := newTestStore(t, ByPresent)

	rec, err := s.AddWalkIn("田中 実", "タナカ ミノル", "ロボット")
	require.NoError(t, err)
	assert.Equal(t, WalkIn, rec.Kind)
	assert.Equal(t, Present, rec.Attendance, "walk-ins check in on the spot")
	assert.Equal(t, "ロボット", rec.Program)
	assert.Equal(t, "ロボット", rec.Pref1, "the chosen program doubles as first preference")
}

func TestAddWalkIn_Validation(t *testing.T) {
	s := newTestStore(t, ByPresent)

	_, err := s.AddWalkIn("", "", "ロボット")
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrKindValidation))

	_, err = s.AddWalkIn("田中 実", "", "")
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrKindValidation))

	_, err = s.AddWalkIn("田中 実", "", "存在しない")
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrKindValidation))

	assert.Zero(t, s.Len(), "failed operations leave the store untouched")
}

func TestAddWalkIn_RejectedExactlyAtCapacity(t *testing.T) {
	s := newTestStore(t, ByPresent)

	// プログラミング has 2 seats
	_, err := s.AddWalkIn("一人目", "", "プログラミング")
	require.NoError(t, err)
	_, err = s.AddWalkIn("二人目", "", "プログラミング")
	require.NoError(t, err)

	_, err = s.AddWalkIn("三人目", "", "プログラミング")
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrKindCapacity))
	assert.Equal(t, 2, s.Len())
}

func TestAddWalkIn_PolicyByPresentIgnoresPending(t *testing.T) {
	s := newTestStore(t, ByPresent)

	// Two pre-registered but not checked in: seats still count as free
	s.ImportBatch([]ImportRow{
		{Kanji: "事前A", Program: "プログラミング"},
		{Kanji: "事前B", Program: "プログラミング"},
	})

	_, err := s.AddWalkIn("当日C", "", "プログラミング")
	assert.NoError(t, err, "pending registrations do not occupy seats under the present policy")
}

func TestAddWalkIn_PolicyByTotalCountsEveryone(t *testing.T) {
	s := newTestStore(t, ByTotal)

	s.ImportBatch([]ImportRow{
		{Kanji: "事前A", Program: "プログラミング"},
		{Kanji: "事前B", Program: "プログラミング"},
	})

	_, err := s.AddWalkIn("当日C", "", "プログラミング")
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrKindCapacity))
}

func TestReassign(t *testing.T) {
	s := newTestStore(t, ByPresent)
	rec, err := s.AddWalkIn("田中 実", "", "ロボット")
	require.NoError(t, err)

	require.NoError(t, s.Reassign(rec.ID, "プログラミング"))
	assert.Equal(t, "プログラミング", rec.Program)
	assert.Equal(t, "ロボット", rec.Pref1, "preferences record history, not placement")
}

func TestReassign_SelfExempt(t *testing.T) {
	s := newTestStore(t, ByPresent)

	// Fill プログラミング (2 seats) with present attendees
	a, err := s.AddWalkIn("一人目", "", "プログラミング")
	require.NoError(t, err)
	_, err = s.AddWalkIn("二人目", "", "プログラミング")
	require.NoError(t, err)

	// Reassigning a present member onto their own full program succeeds:
	// the record does not count against itself.
	assert.NoError(t, s.Reassign(a.ID, "プログラミング"))

	// But a third present attendee cannot move in
	c, err := s.AddWalkIn("三人目", "", "ロボット")
	require.NoError(t, err)
	err = s.Reassign(c.ID, "プログラミング")
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrKindCapacity))
	assert.Equal(t, "ロボット", c.Program, "failed reassign must not move the record")
}

func TestReassign_PendingRecordIgnoresCapacity(t *testing.T) {
	s := newTestStore(t, ByPresent)

	// A pending pre-registration adds no present count, so it may move
	// into a full program under the present policy.
	s.ImportBatch([]ImportRow{{Kanji: "事前A", Program: "ロボット"}})
	_, err := s.AddWalkIn("一人目", "", "プログラミング")
	require.NoError(t, err)
	_, err = s.AddWalkIn("二人目", "", "プログラミング")
	require.NoError(t, err)

	pending := s.FindByIdentifier("事前A")
	require.NotNil(t, pending)
	assert.NoError(t, s.Reassign(pending.ID, "プログラミング"))
}

func TestReassign_UnknownRecordOrProgram(t *testing.T) {
	s := newTestStore(t, ByPresent)
	rec, err := s.AddWalkIn("田中 実", "", "ロボット")
	require.NoError(t, err)

	assert.True(t, IsKind(s.Reassign("missing", "ロボット"), ErrKindValidation))
	assert.True(t, IsKind(s.Reassign(rec.ID, ""), ErrKindValidation))
	assert.True(t, IsKind(s.Reassign(rec.ID, "存在しない"), ErrKindValidation))
}

func TestSetAttendance_Unconditional(t *testing.T) {
	s := newTestStore(t, ByPresent)

	// Fill プログラミング, then shrink the world around it: attendance
	// changes never check capacity.
	s.ImportBatch([]ImportRow{
		{Kanji: "事前A", Program: "プログラミング"},
		{Kanji: "事前B", Program: "プログラミング"},
		{Kanji: "事前C", Program: "プログラミング"},
	})
	for _, rec := range s.Records() {
		require.NoError(t, s.SetAttendance(rec.ID, Present))
	}

	for _, rec := range s.Records() {
		assert.Equal(t, Present, rec.Attendance)
	}

	rec := s.Records()[0]
	require.NoError(t, s.SetAttendance(rec.ID, Absent))
	assert.Equal(t, Absent, rec.Attendance)

	assert.True(t, IsKind(s.SetAttendance("missing", Present), ErrKindValidation))
}

func TestSetCapacity(t *testing.T) {
	s := newTestStore(t, ByPresent)

	require.NoError(t, s.SetCapacity("ロボット", 5))
	assert.Equal(t, 5, s.Programs()[0].MaxMembers)

	assert.True(t, IsKind(s.SetCapacity("存在しない", 5), ErrKindValidation))
	assert.True(t, IsKind(s.SetCapacity("ロボット", 0), ErrKindValidation))
}

func TestSetCapacity_FloorsAtCurrentCount(t *testing.T) {
	s := newTestStore(t, ByPresent)

	_, err := s.AddWalkIn("一人目", "", "プログラミング")
	require.NoError(t, err)
	_, err = s.AddWalkIn("二人目", "", "プログラミング")
	require.NoError(t, err)

	err = s.SetCapacity("プログラミング", 1)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrKindCapacity))
	assert.Equal(t, 2, s.Programs()[1].MaxMembers, "failed change keeps the old limit")

	assert.NoError(t, s.SetCapacity("プログラミング", 2))
}

func TestFindByIdentifier(t *testing.T) {
	s := newTestStore(t, ByPresent)
	s.ImportBatch([]ImportRow{
		{Kanji: "山田 太郎", Kana: "ヤマダ タロウ", Program: "ロボット"},
		{Kanji: "山田 太郎", Kana: "ヤマダ ダイロウ", Program: "プログラミング"},
	})

	rec := s.FindByIdentifier("山田 太郎")
	require.NotNil(t, rec)
	assert.Equal(t, "ヤマダ タロウ", rec.Kana, "first in insertion order wins")

	rec = s.FindByIdentifier("ヤマダ ダイロウ")
	require.NotNil(t, rec)
	assert.Equal(t, "プログラミング", rec.Program)

	assert.Nil(t, s.FindByIdentifier(""))
	assert.Nil(t, s.FindByIdentifier("存在しない"))
}

// TestCapacity_NeverExceededByGuardedOps drives random walk-ins and
// reassigns and checks that the guarded operations alone can never push
// a program's constrained count past its limit.
func TestCapacity_NeverExceededByGuardedOps(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		s := New(testPrograms(), ByPresent, noPref)
		defer s.Close()

		programs := []string{"ロボット", "プログラミング"}
		var ids []string

		steps := rapid.IntRange(1, 40).Draw(r, "steps")
		for i := 0; i < steps; i++ {
			target := rapid.SampledFrom(programs).Draw(r, "target")
			if len(ids) > 0 && rapid.Bool().Draw(r, "reassign") {
				id := rapid.SampledFrom(ids).Draw(r, "id")
				_ = s.Reassign(id, target)
			} else {
				rec, err := s.AddWalkIn(fmt.Sprintf("客%d", i), "", target)
				if err == nil {
					ids = append(ids, rec.ID)
				}
			}

			for _, st := range s.Stats() {
				assert.LessOrEqual(t, st.Present, st.Program.MaxMembers,
					"%s present count exceeded its limit", st.Program.Name)
			}
		}
	})
}
