// Package match implements script-normalized name search over the
// roster: suggestions for incremental typing and full search on submit.
package match

import "strings"

const (
	hiraganaFirst = 0x3041 // ぁ
	hiraganaLast  = 0x3096 // ゖ
	kanaOffset    = 0x60   // distance to the katakana block
)

// FoldHiragana maps hiragana runes onto their katakana counterparts so
// that queries typed in hiragana match kana names recorded in katakana.
// Runes outside U+3041..U+3096 pass through unchanged, which makes the
// fold a no-op on strings that are already katakana.
func FoldHiragana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= hiraganaFirst && r <= hiraganaLast {
			r += kanaOffset
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ContainsHiragana reports whether s has at least one hiragana rune.
func ContainsHiragana(s string) bool {
	for _, r := range s {
		if r >= hiraganaFirst && r <= hiraganaLast {
			return true
		}
	}
	return false
}

// ContainsKatakana reports whether s has at least one katakana rune
// (including the prolonged sound mark).
func ContainsKatakana(s string) bool {
	for _, r := range s {
		if (r >= 0x30A1 && r <= 0x30F6) || r == 0x30FC {
			return true
		}
	}
	return false
}
