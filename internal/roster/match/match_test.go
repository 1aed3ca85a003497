package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"uketsuke/internal/roster"
)

func record(kanji, kana string) *roster.Attendee {
	return &roster.Attendee{
		ID:    kanji + "/" + kana,
		Kanji: kanji,
		Kana:  kana,
	}
}

func names(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Record.Kanji)
	}
	return out
}

func TestSearch_EmptyQueryMatchesNothing(t *testing.T) {
	records := []*roster.Attendee{
		record("山田 太郎", "ヤマダ タロウ"),
		record("佐藤 花子", "サトウ ハナコ"),
	}

	assert.Empty(t, Search(records, ""))
	assert.Empty(t, Search(records, "   "))
	assert.Empty(t, Suggest(records, ""))
}

func TestSearch_KanjiSubstring(t *testing.T) {
	records := []*roster.Attendee{
		record("山田 太郎", "ヤマダ タロウ"),
		record("佐藤 花子", "サトウ ハナコ"),
		record("小山田 次郎", "オヤマダ ジロウ"),
	}

	results := Search(records, "山田")
	assert.Equal(t, []string{"山田 太郎", "小山田 次郎"}, names(results))
}

func TestSearch_KatakanaQuery(t *testing.T) {
	records := []*roster.Attendee{
		record("山田 太郎", "ヤマダ タロウ"),
		record("佐藤 花子", "サトウ ハナコ"),
	}

	results := Search(records, "ヤマダ")
	require.Len(t, results, 1)
	assert.Equal(t, "山田 太郎", results[0].Record.Kanji)
	assert.Equal(t, Span{Start: 0, End: 3}, results[0].Kana)
	assert.True(t, results[0].Kanji.Empty())
}

func TestSearch_HiraganaQueryFoldsToKatakana(t *testing.T) {
	records := []*roster.Attendee{
		record("山田 太郎", "ヤマダ タロウ"),
		record("佐藤 花子", "サトウ ハナコ"),
	}

	results := Search(records, "やまだ")
	require.Len(t, results, 1, "hiragana query must reach katakana kana fields")
	assert.Equal(t, "山田 太郎", results[0].Record.Kanji)

	// Same record set, same hit via the given name
	results = Search(records, "たろう")
	require.Len(t, results, 1)
	assert.Equal(t, Span{Start: 4, End: 7}, results[0].Kana)
}

func TestSearch_CaseInsensitiveLatin(t *testing.T) {
	records := []*roster.Attendee{
		record("John Smith", "ジョン スミス"),
	}

	require.Len(t, Search(records, "john"), 1)
	require.Len(t, Search(records, "SMITH"), 1)
}

func TestSearch_DedupFirstWins(t *testing.T) {
	first := record("山田 太郎", "ヤマダ タロウ")
	first.Program = "ロボット"
	dup := record("山田 太郎", "ヤマダ タロウ")
	dup.Program = "プログラミング"

	results := Search([]*roster.Attendee{first, dup}, "山田")
	require.Len(t, results, 1, "same (kanji, kana) key must collapse")
	assert.Equal(t, "ロボット", results[0].Record.Program)
}

func TestSearch_DistinctKanaNotDeduped(t *testing.T) {
	a := record("山田 太郎", "ヤマダ タロウ")
	b := record("山田 太郎", "ヤマダ ダイロウ")

	results := Search([]*roster.Attendee{a, b}, "山田")
	assert.Len(t, results, 2)
}

func TestSuggest_CapAtLimit(t *testing.T) {
	var records []*roster.Attendee
	for i := 0; i < SuggestionLimit+15; i++ {
		records = append(records, record(
			fmt.Sprintf("山田 %d郎", i),
			fmt.Sprintf("ヤマダ %dロウ", i),
		))
	}

	sugg := Suggest(records, "山田")
	assert.Len(t, sugg, SuggestionLimit)
	// Search has no cap
	assert.Len(t, Search(records, "山田"), SuggestionLimit+15)
}

func TestSuggest_CapProperty(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(r, "n")
		records := make([]*roster.Attendee, 0, n)
		for i := 0; i < n; i++ {
			records = append(records, record(
				fmt.Sprintf("田中 %d", i),
				fmt.Sprintf("タナカ %d", i),
			))
		}

		sugg := Suggest(records, "田中")
		assert.LessOrEqual(t, len(sugg), SuggestionLimit)
		if n <= SuggestionLimit {
			assert.Len(t, sugg, n)
		}
	})
}

func TestFindSpan_RuneOffsets(t *testing.T) {
	// Offsets are rune counts, not bytes
	span := findSpan("ヤマダ タロウ", "タロウ")
	assert.Equal(t, Span{Start: 4, End: 7}, span)

	span = findSpan("ヤマダ タロウ", "ナシ")
	assert.True(t, span.Empty())
}

func TestFindSpan_ByteShiftingCaseFolds(t *testing.T) {
	// U+212A (KELVIN SIGN, 3 bytes) lowercases to k (1 byte); offsets
	// must still index the original string.
	span := findSpan("AKB", "b")
	assert.Equal(t, Span{Start: 2, End: 3}, span)

	// U+0130 (2 bytes) lowercases to i (1 byte).
	span = findSpan("İto", "to")
	assert.Equal(t, Span{Start: 1, End: 3}, span)

	span = findSpan("İto", "i")
	assert.Equal(t, Span{Start: 0, End: 1}, span)
}
