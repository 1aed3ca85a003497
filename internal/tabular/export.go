package tabular

import (
	"time"

	"uketsuke/internal/roster"
)

// Localized attendance labels used in export files and on screen.
const (
	labelPresent     = "出席"
	labelAbsent      = "欠席"
	labelUnconfirmed = "未確認"
)

// AttendanceLabel returns the localized label for an attendance state.
func AttendanceLabel(a roster.Attendance) string {
	switch a {
	case roster.Present:
		return labelPresent
	case roster.Absent:
		return labelAbsent
	default:
		return labelUnconfirmed
	}
}

var (
	standardExportHeader = []string{
		"名前（漢字）", "名前（カナ）", "現在のプログラム",
		"CS第一希望", "CS第二希望", "CS第三希望", "出席状況",
	}
	legacyExportHeader = []string{
		"名前（漢字）", "名前（カナ）", "現在のプログラム", "出席状況",
	}
)

// ExportRows renders the records into the column set of the given
// schema, header row first. The standard set carries the stated
// preferences; the legacy set omits them. Both re-import cleanly
// through the legacy header matching.
func ExportRows(records []*roster.Attendee, schema Schema) [][]string {
	if schema == SchemaLegacy {
		rows := make([][]string, 0, len(records)+1)
		rows = append(rows, legacyExportHeader)
		for _, r := range records {
			rows = append(rows, []string{
				r.Kanji, r.Kana, r.Program, AttendanceLabel(r.Attendance),
			})
		}
		return rows
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, standardExportHeader)
	for _, r := range records {
		rows = append(rows, []string{
			r.Kanji, r.Kana, r.Program,
			r.Pref1, r.Pref2, r.Pref3,
			AttendanceLabel(r.Attendance),
		})
	}
	return rows
}

// ExportFilename builds the dated output name the desk hands out, e.g.
// オープンキャンパス受付_20260415.csv.
func ExportFilename(format Format, now time.Time) string {
	return "オープンキャンパス受付_" + now.Format("20060102") + format.Ext()
}
