// Package memory provides the canonical in-memory roster store. Durable
// backends embed it and snapshot its state after each command.
package memory

import (
	"context"
	"fmt"

	"rostercore/pkg/domain"
)

// Compile-time contract assertions ensuring Store adheres to the domain persistence interfaces.
var (
	_ domain.Model           = (*Store)(nil)
	_ domain.PersistentStore = (*Store)(nil)
)

// Store keeps people in insertion order plus a predicate-derived view used for
// index addressing. It performs no locking: callers serialize access.
type Store struct {
	persons []*domain.Person
	events  []*domain.Event
	filter  domain.Predicate
	engine  *domain.RulesEngine
}

// NewStore constructs an empty store evaluating the supplied rules after each mutation.
func NewStore(engine *domain.RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{filter: domain.ShowAllPersons, engine: engine}
}

// RulesEngine exposes the engine used for post-mutation checks.
func (s *Store) RulesEngine() *domain.RulesEngine { return s.engine }

type view struct {
	persons []*domain.Person
	events  []*domain.Event
}

func (v view) ListPersons() []*domain.Person { return append([]*domain.Person(nil), v.persons...) }
func (v view) ListEvents() []*domain.Event   { return append([]*domain.Event(nil), v.events...) }

// commit evaluates rules against the prospective collections and installs them
// only when nothing blocks. rollback undoes in-place entity edits on rejection.
func (s *Store) commit(persons []*domain.Person, events []*domain.Event, changes []domain.Change, rollback func()) error {
	res, err := s.engine.Evaluate(view{persons: persons, events: events}, changes)
	if err != nil {
		if rollback != nil {
			rollback()
		}
		return fmt.Errorf("evaluate rules: %w", err)
	}
	if res.HasBlocking() {
		if rollback != nil {
			rollback()
		}
		return domain.RuleViolationError{Result: res}
	}
	s.persons = persons
	s.events = events
	return nil
}

func (s *Store) indexOf(p *domain.Person) int {
	for i, existing := range s.persons {
		if existing.SamePerson(p) {
			return i
		}
	}
	return -1
}

// HasPerson reports whether a person with the same identity is stored.
func (s *Store) HasPerson(p *domain.Person) bool {
	return s.indexOf(p) >= 0
}

// IndexOf returns the position of p in the full collection or -1.
func (s *Store) IndexOf(p *domain.Person) int {
	return s.indexOf(p)
}

// AddPerson appends p. Duplicate identities are rejected.
func (s *Store) AddPerson(p *domain.Person) error {
	return s.InsertPerson(len(s.persons), p)
}

// InsertPerson places p at pos, clamped to [0, len].
func (s *Store) InsertPerson(pos int, p *domain.Person) error {
	if p == nil {
		return fmt.Errorf("person cannot be nil")
	}
	if s.HasPerson(p) {
		return domain.DuplicateEntityError{Message: domain.MessageDuplicatePerson}
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.persons) {
		pos = len(s.persons)
	}
	next := make([]*domain.Person, 0, len(s.persons)+1)
	next = append(next, s.persons[:pos]...)
	next = append(next, p)
	next = append(next, s.persons[pos:]...)
	return s.commit(next, s.events, []domain.Change{{Entity: domain.EntityPerson, Action: domain.ActionCreate, After: p}}, nil)
}

// SetPerson replaces target with edited at the same position.
func (s *Store) SetPerson(target, edited *domain.Person) error {
	if edited == nil {
		return fmt.Errorf("person cannot be nil")
	}
	idx := s.indexOf(target)
	if idx < 0 {
		return domain.NotFoundError{Message: domain.MessagePersonNotFound}
	}
	if !target.SamePerson(edited) && s.HasPerson(edited) {
		return domain.DuplicateEntityError{Message: domain.MessageDuplicatePerson}
	}
	before := s.persons[idx]
	next := append([]*domain.Person(nil), s.persons...)
	next[idx] = edited
	return s.commit(next, s.events, []domain.Change{{Entity: domain.EntityPerson, Action: domain.ActionUpdate, Before: before, After: edited}}, nil)
}

// DeletePerson removes the person with p's identity.
func (s *Store) DeletePerson(p *domain.Person) error {
	idx := s.indexOf(p)
	if idx < 0 {
		return domain.NotFoundError{Message: domain.MessagePersonNotFound}
	}
	before := s.persons[idx]
	next := make([]*domain.Person, 0, len(s.persons)-1)
	next = append(next, s.persons[:idx]...)
	next = append(next, s.persons[idx+1:]...)
	return s.commit(next, s.events, []domain.Change{{Entity: domain.EntityPerson, Action: domain.ActionDelete, Before: before}}, nil)
}

// GroupPerson assigns g to the stored entity matching p, mutating it in place.
// Sponsors are rejected before any change is made.
func (s *Store) GroupPerson(p *domain.Person, g domain.Group) error {
	idx := s.indexOf(p)
	if idx < 0 {
		return domain.NotFoundError{Message: domain.MessagePersonNotFound}
	}
	stored := s.persons[idx]
	prior := stored.Group()
	if err := stored.SetGroup(g); err != nil {
		return err
	}
	rollback := func() { _ = stored.SetGroup(prior) }
	return s.commit(s.persons, s.events, []domain.Change{{Entity: domain.EntityPerson, Action: domain.ActionUpdate, After: stored}}, rollback)
}

// Persons returns the full ordered collection.
func (s *Store) Persons() []*domain.Person {
	return append([]*domain.Person(nil), s.persons...)
}

// ReplacePersons swaps the whole person collection.
func (s *Store) ReplacePersons(persons []*domain.Person) error {
	next := make([]*domain.Person, 0, len(persons))
	seen := make(map[domain.Identity]struct{}, len(persons))
	for _, p := range persons {
		if p == nil {
			continue
		}
		if _, dup := seen[p.Identity()]; dup {
			return domain.DuplicateEntityError{Message: domain.MessageDuplicatePerson}
		}
		seen[p.Identity()] = struct{}{}
		next = append(next, p)
	}
	return s.commit(next, s.events, []domain.Change{{Entity: domain.EntityPerson, Action: domain.ActionUpdate}}, nil)
}

// UpdateFilteredPersonList replaces the predicate behind the filtered view.
func (s *Store) UpdateFilteredPersonList(pred domain.Predicate) {
	if pred == nil {
		pred = domain.ShowAllPersons
	}
	s.filter = pred
}

// FilteredPersons evaluates the current predicate against the live collection.
func (s *Store) FilteredPersons() []*domain.Person {
	out := make([]*domain.Person, 0, len(s.persons))
	for _, p := range s.persons {
		if s.filter(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) eventIndex(e *domain.Event) int {
	for i, existing := range s.events {
		if existing.SameEvent(e) {
			return i
		}
	}
	return -1
}

// HasEvent reports whether an event with the same name and date is stored.
func (s *Store) HasEvent(e *domain.Event) bool { return s.eventIndex(e) >= 0 }

// AddEvent appends e, rejecting duplicates.
func (s *Store) AddEvent(e *domain.Event) error {
	if e == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if s.HasEvent(e) {
		return domain.DuplicateEntityError{Message: domain.MessageDuplicateEvent}
	}
	next := append(append([]*domain.Event(nil), s.events...), e)
	return s.commit(s.persons, next, []domain.Change{{Entity: domain.EntityEvent, Action: domain.ActionCreate, After: e}}, nil)
}

// DeleteEvent removes the event matching e.
func (s *Store) DeleteEvent(e *domain.Event) error {
	idx := s.eventIndex(e)
	if idx < 0 {
		return domain.NotFoundError{Message: domain.MessageEventNotFound}
	}
	before := s.events[idx]
	next := make([]*domain.Event, 0, len(s.events)-1)
	next = append(next, s.events[:idx]...)
	next = append(next, s.events[idx+1:]...)
	return s.commit(s.persons, next, []domain.Change{{Entity: domain.EntityEvent, Action: domain.ActionDelete, Before: before}}, nil)
}

// Events returns the ordered event list.
func (s *Store) Events() []*domain.Event {
	return append([]*domain.Event(nil), s.events...)
}

// ExportState returns a serializable copy of the store contents.
func (s *Store) ExportState() domain.Snapshot {
	snap := domain.Snapshot{
		Persons: make([]domain.PersonRecord, 0, len(s.persons)),
		Events:  make([]domain.EventRecord, 0, len(s.events)),
	}
	for _, p := range s.persons {
		snap.Persons = append(snap.Persons, p.Record())
	}
	for _, e := range s.events {
		snap.Events = append(snap.Events, e.Record())
	}
	return snap
}

// ImportState replaces the store contents with the snapshot. Records are
// validated first; on any error the current state is kept.
func (s *Store) ImportState(snap domain.Snapshot) error {
	persons := make([]*domain.Person, 0, len(snap.Persons))
	seen := make(map[domain.Identity]struct{}, len(snap.Persons))
	for i, rec := range snap.Persons {
		p, err := rec.Person()
		if err != nil {
			return fmt.Errorf("person %d: %w", i, err)
		}
		if _, dup := seen[p.Identity()]; dup {
			return fmt.Errorf("person %d: %w", i, domain.DuplicateEntityError{Message: domain.MessageDuplicatePerson})
		}
		seen[p.Identity()] = struct{}{}
		persons = append(persons, p)
	}
	events := make([]*domain.Event, 0, len(snap.Events))
	for i, rec := range snap.Events {
		e, err := rec.Event()
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, e)
	}
	if err := s.commit(persons, events, nil, nil); err != nil {
		return err
	}
	s.filter = domain.ShowAllPersons
	return nil
}

// Persist is a no-op for the in-memory store.
func (s *Store) Persist(context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }
