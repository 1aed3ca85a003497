// Package roster holds the in-memory attendee roster and the fixed set
// of capacity-bounded programs for one open-house session.
package roster

// Attendance is the tri-state check-in status of an attendee.
type Attendance string

const (
	// Pending means the attendee has not been seen at the desk yet.
	Pending Attendance = "pending"
	// Present means the attendee has been checked in.
	Present Attendance = "present"
	// Absent means the attendee was explicitly marked as a no-show.
	Absent Attendance = "absent"
)

// Kind records how an attendee entered the roster.
type Kind string

const (
	// PreRegistered attendees come from a bulk file import.
	PreRegistered Kind = "pre-registered"
	// WalkIn attendees are added live at the desk.
	WalkIn Kind = "walk-in"
)

// Attendee is one roster record. Kanji and Kana are display/search
// attributes; identity is the synthetic ID assigned at creation.
// At least one of Kanji/Kana is non-empty.
type Attendee struct {
	ID      string
	Kanji   string
	Kana    string
	Program string // program name, not id

	// Stated preferences from the registration form. Informational
	// only; never enforced against Program.
	Pref1 string
	Pref2 string
	Pref3 string

	Kind       Kind
	Attendance Attendance
}

// DisplayName returns the kanji name, falling back to kana.
// This mirrors how the desk addresses people in messages.
func (a *Attendee) DisplayName() string {
	if a.Kanji != "" {
		return a.Kanji
	}
	return a.Kana
}

// DedupKey is the (kanji, kana) pair used to collapse duplicate rows
// from a single import batch in search output.
func (a *Attendee) DedupKey() string {
	return a.Kanji + "-" + a.Kana
}

// Program is one capacity-bounded activity attendees are assigned to.
// Programs are defined at startup and only their MaxMembers changes.
type Program struct {
	ID         int
	Name       string
	MaxMembers int
}

// CountPolicy selects which member count a capacity check is made
// against. The two deployed front-desk variants disagreed on this, so
// it stays a configuration choice.
type CountPolicy int

const (
	// ByPresent counts only checked-in attendees against MaxMembers.
	ByPresent CountPolicy = iota
	// ByTotal counts every assigned attendee regardless of attendance.
	ByTotal
)

func (p CountPolicy) String() string {
	if p == ByTotal {
		return "total"
	}
	return "present"
}
