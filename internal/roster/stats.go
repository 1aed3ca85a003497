package roster

// Severity grades how a program's head count relates to its seat limit.
// The board maps these to card colors.
type Severity int

const (
	// SeverityNone means the program has room.
	SeverityNone Severity = iota
	// SeverityWarn means total assigned has reached the limit.
	SeverityWarn
	// SeverityCritical means pre-registrations or checked-in attendees
	// exceed the limit outright.
	SeverityCritical
)

// ProgramStats are the derived per-program numbers shown on a card.
// They are recomputed from the records on every call, never cached.
type ProgramStats struct {
	Program              Program
	Total                int
	Present              int
	Absent               int
	PreRegistered        int
	PreRegisteredPresent int
	WalkIns              int
}

// Full reports whether the present count has reached the seat limit.
func (st ProgramStats) Full() bool {
	return st.Present >= st.Program.MaxMembers
}

// Severity grades the card per the desk's coloring rules: red when
// pre-registrations or present attendees exceed capacity, yellow when
// everyone assigned would fill it, otherwise none.
func (st ProgramStats) Severity() Severity {
	limit := st.Program.MaxMembers
	switch {
	case st.PreRegistered > limit || st.Present > limit:
		return SeverityCritical
	case st.Total >= limit:
		return SeverityWarn
	default:
		return SeverityNone
	}
}

// Stats computes the per-program statistics in program display order.
func (s *Store) Stats() []ProgramStats {
	out := make([]ProgramStats, len(s.programs))
	for i, p := range s.programs {
		st := ProgramStats{Program: p}
		for _, r := range s.records {
			if r.Program != p.Name {
				continue
			}
			st.Total++
			switch r.Attendance {
			case Present:
				st.Present++
			case Absent:
				st.Absent++
			}
			if r.Kind == PreRegistered {
				st.PreRegistered++
				if r.Attendance == Present {
					st.PreRegisteredPresent++
				}
			} else {
				st.WalkIns++
			}
		}
		out[i] = st
	}
	return out
}

// Members returns the records assigned to program, in insertion order.
func (s *Store) Members(program string) []*Attendee {
	var out []*Attendee
	for _, r := range s.records {
		if r.Program == program {
			out = append(out, r)
		}
	}
	return out
}

// AbsentRecords returns every Absent record, grouped in program display
// order and insertion order within a program.
func (s *Store) AbsentRecords() []*Attendee {
	var out []*Attendee
	for _, p := range s.programs {
		for _, r := range s.records {
			if r.Program == p.Name && r.Attendance == Absent {
				out = append(out, r)
			}
		}
	}
	return out
}
