package roster

import (
	"strings"

	"github.com/google/uuid"

	"uketsuke/internal/pubsub"
)

// ImportRow is one accepted row from a parsed import file. The tabular
// package produces these; the store turns them into records.
type ImportRow struct {
	Kanji      string
	Kana       string
	Program    string
	Pref1      string
	Pref2      string
	Pref3      string
	Attendance Attendance
}

// Change describes a successful store mutation for subscribers.
type Change struct {
	Op    string // "import", "add", "reassign", "attendance", "capacity"
	Count int    // records affected (import batch size, otherwise 1)
}

// Store owns the attendee records and program definitions for one
// session. Insertion order of records is significant for display.
// All mutation goes through the store; callers never edit records or
// programs directly, except that pointers returned from lookups observe
// in-place mutations (Reassign, SetAttendance).
//
// The store is written for a single-threaded event loop and performs no
// locking of its own.
type Store struct {
	programs     []Program
	records      []*Attendee
	policy       CountPolicy
	noPreference string
	broker       *pubsub.Broker[Change]
}

// New creates a store with the given fixed program set.
// noPreference names the sentinel program assigned to rows with a blank
// first choice or an unrecognized program; it must be one of programs.
func New(programs []Program, policy CountPolicy, noPreference string) *Store {
	return &Store{
		programs:     append([]Program(nil), programs...),
		policy:       policy,
		noPreference: noPreference,
		broker:       pubsub.NewBroker[Change](),
	}
}

// Broker exposes the change feed. The UI subscribes to re-render after
// mutations.
func (s *Store) Broker() *pubsub.Broker[Change] { return s.broker }

// Close shuts down the change feed.
func (s *Store) Close() { s.broker.Close() }

// Policy returns the capacity counting policy the store was built with.
func (s *Store) Policy() CountPolicy { return s.policy }

// Programs returns the program definitions in display order.
func (s *Store) Programs() []Program {
	return append([]Program(nil), s.programs...)
}

// Records returns the records in insertion order. The slice is a copy;
// the pointed-to records are live.
func (s *Store) Records() []*Attendee {
	return append([]*Attendee(nil), s.records...)
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

func (s *Store) program(name string) *Program {
	for i := range s.programs {
		if s.programs[i].Name == name {
			return &s.programs[i]
		}
	}
	return nil
}

// constrainedCount returns the number of records counted against
// program's capacity under the active policy, excluding the record with
// id exclude (pass "" to exclude nothing).
func (s *Store) constrainedCount(program string, exclude string) int {
	n := 0
	for _, r := range s.records {
		if r.Program != program || r.ID == exclude {
			continue
		}
		if s.policy == ByTotal || r.Attendance == Present {
			n++
		}
	}
	return n
}

// ImportBatch replaces all records with the given batch. Rows are
// already schema-checked and trimmed by the tabular layer; every record
// becomes PreRegistered. Rows naming a program the store does not know
// are parked on the no-preference sentinel so that every record always
// references a real program.
//
// Capacity is deliberately not checked here: an import may bring in
// more pre-registrations than seats, and the board surfaces that as a
// severity color instead of rejecting the file.
func (s *Store) ImportBatch(rows []ImportRow) int {
	records := make([]*Attendee, 0, len(rows))
	for _, row := range rows {
		program := row.Program
		if s.program(program) == nil {
			program = s.noPreference
		}
		att := row.Attendance
		if att == "" {
			att = Pending
		}
		records = append(records, &Attendee{
			ID:         uuid.NewString(),
			Kanji:      strings.TrimSpace(row.Kanji),
			Kana:       strings.TrimSpace(row.Kana),
			Program:    program,
			Pref1:      row.Pref1,
			Pref2:      row.Pref2,
			Pref3:      row.Pref3,
			Kind:       PreRegistered,
			Attendance: att,
		})
	}
	s.records = records
	s.broker.Publish(pubsub.ImportedEvent, Change{Op: "import", Count: len(records)})
	return len(records)
}

// AddWalkIn appends a walk-in record. Walk-ins are checked in on the
// spot, so the destination program must have a free seat under the
// active policy. The program becomes the walk-in's first preference.
func (s *Store) AddWalkIn(kanji, kana, program string) (*Attendee, error) {
	kanji = strings.TrimSpace(kanji)
	kana = strings.TrimSpace(kana)
	if kanji == "" && kana == "" {
		return nil, NewError(ErrKindValidation, "a kanji or kana name is required")
	}
	p := s.program(program)
	if p == nil {
		if program == "" {
			return nil, NewError(ErrKindValidation, "a program must be selected")
		}
		return nil, NewError(ErrKindValidation, "unknown program %q", program)
	}
	if s.constrainedCount(p.Name, "") >= p.MaxMembers {
		return nil, NewError(ErrKindCapacity, "%s is full", p.Name)
	}

	rec := &Attendee{
		ID:         uuid.NewString(),
		Kanji:      kanji,
		Kana:       kana,
		Program:    p.Name,
		Pref1:      p.Name,
		Kind:       WalkIn,
		Attendance: Present,
	}
	s.records = append(s.records, rec)
	s.broker.Publish(pubsub.UpdatedEvent, Change{Op: "add", Count: 1})
	return rec, nil
}

// Reassign moves the record to a different program. The record itself
// is excluded from the destination count so a Present attendee can be
// "moved" onto their own program at capacity without error.
func (s *Store) Reassign(id, newProgram string) error {
	rec := s.FindByID(id)
	if rec == nil {
		return NewError(ErrKindValidation, "no such record")
	}
	if newProgram == "" {
		return NewError(ErrKindValidation, "a program must be selected")
	}
	p := s.program(newProgram)
	if p == nil {
		return NewError(ErrKindValidation, "unknown program %q", newProgram)
	}

	count := s.constrainedCount(p.Name, rec.ID)
	if s.policy == ByTotal || rec.Attendance == Present {
		count++ // the record itself lands in the destination count
	}
	if count > p.MaxMembers {
		return NewError(ErrKindCapacity, "%s is full", p.Name)
	}

	rec.Program = p.Name
	s.broker.Publish(pubsub.UpdatedEvent, Change{Op: "reassign", Count: 1})
	return nil
}

// SetAttendance sets the record's attendance unconditionally. Capacity
// is enforced only at AddWalkIn/Reassign time; checking someone in past
// a limit that a config edit created later is allowed and surfaces on
// the board instead.
func (s *Store) SetAttendance(id string, state Attendance) error {
	rec := s.FindByID(id)
	if rec == nil {
		return NewError(ErrKindValidation, "no such record")
	}
	rec.Attendance = state
	s.broker.Publish(pubsub.UpdatedEvent, Change{Op: "attendance", Count: 1})
	return nil
}

// SetCapacity changes a program's seat limit. The new limit may not go
// below the program's current constrained count.
func (s *Store) SetCapacity(program string, newMax int) error {
	p := s.program(program)
	if p == nil {
		return NewError(ErrKindValidation, "unknown program %q", program)
	}
	if newMax < 1 {
		return NewError(ErrKindValidation, "capacity must be at least 1")
	}
	if current := s.constrainedCount(p.Name, ""); newMax < current {
		return NewError(ErrKindCapacity,
			"capacity cannot go below the current count of %d", current)
	}
	p.MaxMembers = newMax
	s.broker.Publish(pubsub.UpdatedEvent, Change{Op: "capacity", Count: 1})
	return nil
}

// FindByID returns the record with the given synthetic id, or nil.
func (s *Store) FindByID(id string) *Attendee {
	for _, r := range s.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// FindByIdentifier returns the first record in insertion order whose
// kanji or kana exactly equals ident, or nil. This is the legacy lookup
// used by name-addressed UI actions.
func (s *Store) FindByIdentifier(ident string) *Attendee {
	if ident == "" {
		return nil
	}
	for _, r := range s.records {
		if r.Kanji == ident || r.Kana == ident {
			return r
		}
	}
	return nil
}
