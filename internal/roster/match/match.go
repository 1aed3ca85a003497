package match

import (
	"strings"
	"unicode/utf8"

	"uketsuke/internal/roster"
)

// SuggestionLimit caps the incremental suggestion list.
const SuggestionLimit = 10

// Span marks a matched substring as rune offsets, End exclusive.
// The zero Span means no match in that field.
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span marks nothing.
func (s Span) Empty() bool { return s.Start == 0 && s.End == 0 }

// Result pairs a matched record with the spans to highlight.
type Result struct {
	Record *roster.Attendee
	Kanji  Span // raw query in the kanji field
	Kana   Span // folded (or raw) query in the kana field
}

// Suggest returns the ranked suggestion list for incremental typing:
// predicate-filtered, de-duplicated on the (kanji, kana) key with the
// first occurrence winning, in insertion order, capped at
// SuggestionLimit entries.
func Suggest(records []*roster.Attendee, query string) []Result {
	return run(records, query, SuggestionLimit)
}

// Search returns every match for an explicit submission, with the same
// predicate and de-duplication as Suggest but no length cap. An empty
// query matches nothing; zero matches on a non-empty query is the
// caller's cue to offer a new registration.
func Search(records []*roster.Attendee, query string) []Result {
	return run(records, query, 0)
}

func run(records []*roster.Attendee, query string, limit int) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	raw := strings.ToLower(query)
	folded := strings.ToLower(FoldHiragana(query))

	var out []Result
	seen := make(map[string]struct{})
	for _, rec := range records {
		res, ok := matchRecord(rec, raw, folded)
		if !ok {
			continue
		}
		key := rec.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, res)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// matchRecord applies the match predicate: the kanji field contains the
// raw query, or the kana field contains the raw or folded query. All
// tests are case-insensitive substring containment.
func matchRecord(rec *roster.Attendee, raw, folded string) (Result, bool) {
	res := Result{Record: rec}

	res.Kanji = findSpan(rec.Kanji, raw)
	kanaRaw := findSpan(rec.Kana, raw)
	kanaFolded := findSpan(rec.Kana, folded)

	// Prefer the folded span for highlighting; the raw span only
	// matters when the query had no hiragana to fold.
	res.Kana = kanaFolded
	if res.Kana.Empty() {
		res.Kana = kanaRaw
	}

	return res, !res.Kanji.Empty() || !kanaRaw.Empty() || !kanaFolded.Empty()
}

// findSpan locates needle in haystack case-insensitively and returns
// the match as rune offsets into haystack. strings.ToLower applies the
// simple one-rune mapping, so rune offsets in the lowered string equal
// rune offsets in haystack even when byte lengths shift (K, İ).
func findSpan(haystack, needle string) Span {
	if haystack == "" || needle == "" {
		return Span{}
	}
	lower := strings.ToLower(haystack)
	idx := strings.Index(lower, needle)
	if idx < 0 {
		return Span{}
	}
	start := utf8.RuneCountInString(lower[:idx])
	return Span{Start: start, End: start + utf8.RuneCountInString(needle)}
}
