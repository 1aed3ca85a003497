// Package tabular reads and writes the roster as delimited text or
// spreadsheet data: header schema detection on import, fixed column
// sets with localized attendance labels on export.
package tabular

import (
	"strings"

	"uketsuke/internal/roster"
)

// Schema identifies which column set a file follows.
type Schema int

const (
	// SchemaStandard is the split-name, preference-aware registration
	// export: 姓 名 セイ メイ CS第一希望 [CS第二希望 CS第三希望] [出席].
	SchemaStandard Schema = iota
	// SchemaLegacy is the combined-name set matched by header
	// substrings: a 漢字 column, a カナ column, a プログラム column and
	// an optional attendance column.
	SchemaLegacy
)

func (s Schema) String() string {
	if s == SchemaLegacy {
		return "legacy"
	}
	return "standard"
}

// ParseResult reports what an import produced. Skipped rows are only
// counted, never itemized; the desk has no use for per-row diagnostics
// mid-event.
type ParseResult struct {
	Rows    []roster.ImportRow
	Skipped int
	Schema  Schema
}

// Accepted returns the number of usable rows.
func (r ParseResult) Accepted() int { return len(r.Rows) }

// standard-schema header names, matched exactly after trimming.
const (
	hdrSurname      = "姓"
	hdrGivenName    = "名"
	hdrSurnameKana  = "セイ"
	hdrGivenKana    = "メイ"
	hdrFirstChoice  = "CS第一希望"
	hdrSecondChoice = "CS第二希望"
	hdrThirdChoice  = "CS第三希望"
)

type columnIndex struct {
	surname, given, surnameKana, givenKana int
	first, second, third                   int
	kanji, kana, program                   int
	attendance                             int
}

func newColumnIndex() columnIndex {
	return columnIndex{
		surname: -1, given: -1, surnameKana: -1, givenKana: -1,
		first: -1, second: -1, third: -1,
		kanji: -1, kana: -1, program: -1,
		attendance: -1,
	}
}

func (c columnIndex) standard() bool {
	return c.surname >= 0 && c.given >= 0 && c.surnameKana >= 0 &&
		c.givenKana >= 0 && c.first >= 0
}

func (c columnIndex) legacy() bool {
	return c.kanji >= 0 && c.kana >= 0 && c.program >= 0
}

func indexHeaders(header []string) columnIndex {
	cols := newColumnIndex()
	for i, raw := range header {
		h := strings.TrimSpace(raw)
		switch h {
		case hdrSurname:
			cols.surname = i
		case hdrGivenName:
			cols.given = i
		case hdrSurnameKana:
			cols.surnameKana = i
		case hdrGivenKana:
			cols.givenKana = i
		case hdrFirstChoice:
			cols.first = i
		case hdrSecondChoice:
			cols.second = i
		case hdrThirdChoice:
			cols.third = i
		default:
			switch {
			case strings.Contains(h, "漢字"):
				cols.kanji = i
			case strings.Contains(h, "カナ") || strings.Contains(h, "カタカナ"):
				cols.kana = i
			case strings.Contains(h, "プロジェクト") || strings.Contains(h, "プログラム"):
				cols.program = i
			case strings.Contains(h, "出席") || strings.Contains(h, "参加"):
				cols.attendance = i
			}
		}
	}
	return cols
}

// Parse turns raw cell rows (header first) into import rows. The
// standard schema is tried before the legacy one; a file satisfying
// neither yields a schema error and no rows. Rows missing a required
// cell are dropped silently and reflected only in Skipped.
//
// noPreference is assigned when the standard schema's first-choice cell
// is blank.
func Parse(cells [][]string, noPreference string) (ParseResult, error) {
	if len(cells) < 2 {
		return ParseResult{}, roster.NewError(roster.ErrKindSchema,
			"the file has no data rows")
	}

	cols := indexHeaders(cells[0])
	switch {
	case cols.standard():
		return parseStandard(cells[1:], cols, noPreference), nil
	case cols.legacy():
		return parseLegacy(cells[1:], cols), nil
	default:
		return ParseResult{}, roster.NewError(roster.ErrKindSchema,
			"required columns not found: need 姓/名/セイ/メイ/CS第一希望 or 漢字/カナ/プログラム headers")
	}
}

func parseStandard(rows [][]string, cols columnIndex, noPreference string) ParseResult {
	res := ParseResult{Schema: SchemaStandard}
	for _, row := range rows {
		sei := cell(row, cols.surname)
		mei := cell(row, cols.given)
		seiKana := cell(row, cols.surnameKana)
		meiKana := cell(row, cols.givenKana)
		if sei == "" || mei == "" || seiKana == "" || meiKana == "" {
			res.Skipped++
			continue
		}

		first := cell(row, cols.first)
		program := first
		if program == "" {
			program = noPreference
		}

		res.Rows = append(res.Rows, roster.ImportRow{
			Kanji:      strings.TrimSpace(sei + mei),
			Kana:       strings.TrimSpace(seiKana + meiKana),
			Program:    program,
			Pref1:      first,
			Pref2:      cell(row, cols.second),
			Pref3:      cell(row, cols.third),
			Attendance: ParseAttendance(cell(row, cols.attendance)),
		})
	}
	return res
}

func parseLegacy(rows [][]string, cols columnIndex) ParseResult {
	res := ParseResult{Schema: SchemaLegacy}
	for _, row := range rows {
		kanji := cell(row, cols.kanji)
		kana := cell(row, cols.kana)
		program := cell(row, cols.program)
		if kanji == "" || kana == "" || program == "" {
			res.Skipped++
			continue
		}

		res.Rows = append(res.Rows, roster.ImportRow{
			Kanji:   kanji,
			Kana:    kana,
			Program: program,
			// Legacy files carry no preference columns; the current
			// program doubles as the first choice.
			Pref1:      program,
			Attendance: ParseAttendance(cell(row, cols.attendance)),
		})
	}
	return res
}

// cell returns the trimmed cell at idx, tolerating short rows and
// unmapped (-1) columns.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ParseAttendance maps free-text attendance cells onto the tri-state.
// Only a checked-in marker is recognized; absence is never inferred
// from import text, it takes an explicit action at the desk.
func ParseAttendance(s string) roster.Attendance {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "present") || s == labelPresent {
		return roster.Present
	}
	return roster.Pending
}
