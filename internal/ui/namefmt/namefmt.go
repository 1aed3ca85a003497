// Package namefmt renders attendee names with match-span highlighting
// shared by the suggestion list and result cards.
package namefmt

import (
	"strings"

	"uketsuke/internal/roster"
	"uketsuke/internal/roster/match"
	"uketsuke/internal/ui/styles"
)

// Highlight renders text with the span emphasized. Offsets are rune
// offsets, so the slice points land between characters even for kanji.
func Highlight(text string, span match.Span) string {
	if span.Empty() {
		return text
	}
	runes := []rune(text)
	if span.Start < 0 || span.End > len(runes) || span.Start >= span.End {
		return text
	}
	var b strings.Builder
	b.WriteString(string(runes[:span.Start]))
	b.WriteString(styles.MatchHighlightStyle.Render(string(runes[span.Start:span.End])))
	b.WriteString(string(runes[span.End:]))
	return b.String()
}

// Result renders a match result's name as 漢字 (カナ), highlighting the
// matched spans, omitting whichever field is absent.
func Result(res match.Result) string {
	kanji := Highlight(res.Record.Kanji, res.Kanji)
	kana := Highlight(res.Record.Kana, res.Kana)
	return joinName(res.Record, kanji, kana)
}

// Plain renders the record's name as 漢字 (カナ) without highlighting.
func Plain(rec *roster.Attendee) string {
	return joinName(rec, rec.Kanji, rec.Kana)
}

func joinName(rec *roster.Attendee, kanji, kana string) string {
	switch {
	case rec.Kanji != "" && rec.Kana != "":
		return kanji + " (" + kana + ")"
	case rec.Kanji != "":
		return kanji
	default:
		return kana
	}
}
