package memory

import (
	"errors"
	"strings"
	"testing"

	"rostercore/pkg/domain"
)

func mustPerson(t *testing.T, name, phone, email string, category domain.Category) *domain.Person {
	t.Helper()
	p, err := domain.ParsePerson(name, phone, email, string(category))
	if err != nil {
		t.Fatalf("parse person %s: %v", name, err)
	}
	return p
}

func mustEvent(t *testing.T, name, date string) *domain.Event {
	t.Helper()
	e, err := domain.ParseEvent(name, date, string(domain.CategoryParticipant))
	if err != nil {
		t.Fatalf("parse event %s: %v", name, err)
	}
	return e
}

func names(ps []*domain.Person) string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name().String())
	}
	return strings.Join(out, ",")
}

type blockRule struct {
	name  string
	block func(domain.RuleView) bool
}

func (r blockRule) Name() string { return r.name }

func (r blockRule) Evaluate(view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	if r.block(view) {
		return domain.Result{Violations: []domain.Violation{{Rule: r.name, Severity: domain.SeverityBlock, Message: "blocked"}}}, nil
	}
	return domain.Result{}, nil
}

func TestAddPersonRejectsDuplicateIdentity(t *testing.T) {
	s := NewStore(nil)
	alice := mustPerson(t, "Alice", "123", "alice@example.com", domain.CategoryParticipant)
	if err := s.AddPerson(alice); err != nil {
		t.Fatalf("add: %v", err)
	}
	twin := mustPerson(t, "Alice", "123", "alice@example.com", domain.CategoryStaff)
	err := s.AddPerson(twin)
	if !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if got := len(s.Persons()); got != 1 {
		t.Fatalf("expected one person, got %d", got)
	}
	// a different phone is a different identity
	other := mustPerson(t, "Alice", "456", "alice@example.com", domain.CategoryParticipant)
	if err := s.AddPerson(other); err != nil {
		t.Fatalf("add distinct identity: %v", err)
	}
	if err := s.AddPerson(nil); err == nil {
		t.Fatalf("expected error for nil person")
	}
}

func TestInsertPersonClampsPosition(t *testing.T) {
	s := NewStore(nil)
	a := mustPerson(t, "A", "111", "a@example.com", domain.CategoryParticipant)
	b := mustPerson(t, "B", "222", "b@example.com", domain.CategoryParticipant)
	c := mustPerson(t, "C", "333", "c@example.com", domain.CategoryParticipant)
	if err := s.InsertPerson(10, a); err != nil {
		t.Fatalf("insert a: %v", err)
	}
	if err := s.InsertPerson(-3, b); err != nil {
		t.Fatalf("insert b: %v", err)
	}
	if err := s.InsertPerson(1, c); err != nil {
		t.Fatalf("insert c: %v", err)
	}
	if got := names(s.Persons()); got != "B,C,A" {
		t.Fatalf("unexpected order %s", got)
	}
	if s.IndexOf(a) != 2 || s.IndexOf(mustPerson(t, "Z", "999", "z@example.com", domain.CategoryStaff)) != -1 {
		t.Fatalf("unexpected IndexOf results")
	}
}

func TestSetPersonAndDelete(t *testing.T) {
	s := NewStore(nil)
	a := mustPerson(t, "A", "111", "a@example.com", domain.CategoryParticipant)
	b := mustPerson(t, "B", "222", "b@example.com", domain.CategoryParticipant)
	for _, p := range []*domain.Person{a, b} {
		if err := s.AddPerson(p); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	edited := mustPerson(t, "A2", "111", "a@example.com", domain.CategoryStaff)
	if err := s.SetPerson(a, edited); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := names(s.Persons()); got != "A2,B" {
		t.Fatalf("set should keep position, got %s", got)
	}
	if err := s.SetPerson(edited, b.Clone()); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate when editing into existing identity, got %v", err)
	}
	if err := s.SetPerson(a, edited); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for replaced person, got %v", err)
	}
	if err := s.DeletePerson(edited); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeletePerson(edited); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if got := names(s.Persons()); got != "B" {
		t.Fatalf("unexpected remaining %s", got)
	}
}

func TestGroupPersonRejectsSponsorAndRollsBackOnBlock(t *testing.T) {
	engine := domain.NewRulesEngine()
	engine.Register(blockRule{name: "no_group_nine", block: func(v domain.RuleView) bool {
		for _, p := range v.ListPersons() {
			if p.Group() == 9 {
				return true
			}
		}
		return false
	}})
	s := NewStore(engine)
	member := mustPerson(t, "Member", "111", "m@example.com", domain.CategoryParticipant)
	sponsor := mustPerson(t, "Sponsor", "222", "s@example.com", domain.CategorySponsor)
	for _, p := range []*domain.Person{member, sponsor} {
		if err := s.AddPerson(p); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := s.GroupPerson(member, 3); err != nil {
		t.Fatalf("group: %v", err)
	}
	if member.Group() != 3 {
		t.Fatalf("expected in-place group 3, got %d", member.Group())
	}
	if err := s.GroupPerson(sponsor, 1); !errors.Is(err, domain.ErrInvariant) {
		t.Fatalf("expected sponsor rejection, got %v", err)
	}
	if sponsor.Group() != domain.Ungrouped {
		t.Fatalf("sponsor group changed")
	}
	err := s.GroupPerson(member, 9)
	var rv domain.RuleViolationError
	if !errors.As(err, &rv) {
		t.Fatalf("expected rule violation, got %v", err)
	}
	if member.Group() != 3 {
		t.Fatalf("blocked group should roll back to 3, got %d", member.Group())
	}
	stranger := mustPerson(t, "Stranger", "333", "x@example.com", domain.CategoryParticipant)
	if err := s.GroupPerson(stranger, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBlockingRuleKeepsCollectionUnchanged(t *testing.T) {
	engine := domain.NewRulesEngine()
	engine.Register(blockRule{name: "cap", block: func(v domain.RuleView) bool { return len(v.ListPersons()) > 1 }})
	s := NewStore(engine)
	if s.RulesEngine() != engine {
		t.Fatalf("expected supplied engine")
	}
	if err := s.AddPerson(mustPerson(t, "A", "111", "a@example.com", domain.CategoryParticipant)); err != nil {
		t.Fatalf("add: %v", err)
	}
	err := s.AddPerson(mustPerson(t, "B", "222", "b@example.com", domain.CategoryParticipant))
	if !errors.Is(err, domain.ErrInvariant) {
		t.Fatalf("expected invariant error, got %v", err)
	}
	if got := names(s.Persons()); got != "A" {
		t.Fatalf("blocked add leaked: %s", got)
	}
}

func TestFilteredPersonsTracksPredicateAndLiveState(t *testing.T) {
	s := NewStore(nil)
	staff := mustPerson(t, "Staff", "111", "st@example.com", domain.CategoryStaff)
	part := mustPerson(t, "Part", "222", "p@example.com", domain.CategoryParticipant)
	for _, p := range []*domain.Person{staff, part} {
		if err := s.AddPerson(p); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	s.UpdateFilteredPersonList(func(p *domain.Person) bool { return p.Category() == domain.CategoryStaff })
	if got := names(s.FilteredPersons()); got != "Staff" {
		t.Fatalf("unexpected filtered %s", got)
	}
	more := mustPerson(t, "More Staff", "333", "ms@example.com", domain.CategoryStaff)
	if err := s.AddPerson(more); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := names(s.FilteredPersons()); got != "Staff,More Staff" {
		t.Fatalf("filtered view not live: %s", got)
	}
	s.UpdateFilteredPersonList(nil)
	if got := len(s.FilteredPersons()); got != 3 {
		t.Fatalf("nil predicate should show all, got %d", got)
	}
}

func TestReplacePersons(t *testing.T) {
	s := NewStore(nil)
	a := mustPerson(t, "A", "111", "a@example.com", domain.CategoryParticipant)
	if err := s.ReplacePersons([]*domain.Person{a, nil, a.Clone()}); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	b := mustPerson(t, "B", "222", "b@example.com", domain.CategoryParticipant)
	if err := s.ReplacePersons([]*domain.Person{b, nil, a}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := names(s.Persons()); got != "B,A" {
		t.Fatalf("unexpected %s", got)
	}
}

func TestEvents(t *testing.T) {
	s := NewStore(nil)
	launch := mustEvent(t, "Launch", "2024-03-01")
	if err := s.AddEvent(launch); err != nil {
		t.Fatalf("add event: %v", err)
	}
	if err := s.AddEvent(mustEvent(t, "Launch", "2024-03-01")); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate event, got %v", err)
	}
	if err := s.AddEvent(mustEvent(t, "Launch", "2024-03-02")); err != nil {
		t.Fatalf("same name other date: %v", err)
	}
	if !s.HasEvent(launch) || len(s.Events()) != 2 {
		t.Fatalf("unexpected events %v", s.Events())
	}
	if err := s.DeleteEvent(launch); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if err := s.DeleteEvent(launch); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := s.AddEvent(nil); err == nil {
		t.Fatalf("expected nil event error")
	}
}

func TestExportImportState(t *testing.T) {
	s := NewStore(nil)
	a := mustPerson(t, "A", "111", "a@example.com", domain.CategoryParticipant)
	if err := s.AddPerson(a); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.GroupPerson(a, 2); err != nil {
		t.Fatalf("group: %v", err)
	}
	if err := s.AddEvent(mustEvent(t, "Kickoff", "2024-01-15")); err != nil {
		t.Fatalf("add event: %v", err)
	}
	snap := s.ExportState()

	other := NewStore(nil)
	other.UpdateFilteredPersonList(func(*domain.Person) bool { return false })
	if err := other.ImportState(snap); err != nil {
		t.Fatalf("import: %v", err)
	}
	if got := other.ExportState(); len(got.Persons) != 1 || got.Persons[0] != snap.Persons[0] || got.Events[0] != snap.Events[0] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(other.FilteredPersons()) != 1 {
		t.Fatalf("import should reset the filter")
	}

	bad := snap
	bad.Persons = append([]domain.PersonRecord(nil), snap.Persons...)
	bad.Persons = append(bad.Persons, domain.PersonRecord{Name: "", Phone: "1", Email: "x"})
	if err := other.ImportState(bad); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	dup := domain.Snapshot{Persons: []domain.PersonRecord{snap.Persons[0], snap.Persons[0]}}
	if err := other.ImportState(dup); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if len(other.Persons()) != 1 || len(other.Events()) != 1 {
		t.Fatalf("failed import must keep state")
	}
}
