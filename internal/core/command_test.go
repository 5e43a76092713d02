package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"rostercore/pkg/domain"
)

func TestAddWithoutGroupLandsInGroupZero(t *testing.T) {
	f := newFixture(t)
	res := f.run(t, NewAddCommand(johnDoe().build(t), nil))
	persons := f.store.Persons()
	if len(persons) != 1 || persons[0].Group() != domain.Ungrouped {
		t.Fatalf("expected one ungrouped person, got %+v", persons)
	}
	if !strings.HasPrefix(res.Feedback, "New person added: John Doe") || !res.Changed {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	f := newFixture(t)
	f.seed(t, johnDoe())
	_, err := NewAddCommand(johnDoe().build(t), nil).Execute(context.Background(), f.env)
	if !errors.Is(err, domain.ErrDuplicate) || err.Error() != domain.MessageDuplicatePerson {
		t.Fatalf("expected duplicate, got %v", err)
	}
	if len(f.store.Persons()) != 1 {
		t.Fatalf("store size changed after failed add")
	}
}

func TestAddSponsorGroupPolicy(t *testing.T) {
	sponsor := personFields{"Acme Corp", "6000", "hello@acme.com", domain.CategorySponsor}
	f := newFixture(t)
	_, err := NewAddCommand(sponsor.build(t), groupPtr(2)).Execute(context.Background(), f.env)
	if !errors.Is(err, domain.ErrInvariant) || err.Error() != domain.MessageSponsorGroup {
		t.Fatalf("expected sponsor group error, got %v", err)
	}
	f.run(t, NewAddCommand(sponsor.build(t), nil))
	if got := f.store.Persons()[0]; !got.IsSponsor() || got.Group() != domain.Ungrouped {
		t.Fatalf("unexpected sponsor %+v", got)
	}
}

func TestGroupScenario(t *testing.T) {
	f := newFixture(t)
	f.seed(t, johnDoe())
	cmd := NewGroupCommand(MustIndex(1), groupPtr(3), f.groups)
	res := f.run(t, cmd)
	p := f.store.Persons()[0]
	if p.Group() != 3 {
		t.Fatalf("expected group 3, got %d", p.Group())
	}
	if !strings.Contains(res.Feedback, "Grouped Person: John Doe") {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	if f.groups.Total() != 3 {
		t.Fatalf("explicit target must raise the bound, total=%d", f.groups.Total())
	}
	undo, err := f.history.Undo(f.store)
	if err != nil || p.Group() != 0 || !strings.HasPrefix(undo.Feedback, "Changes reverted:") {
		t.Fatalf("undo: %v group=%d feedback=%q", err, p.Group(), undo.Feedback)
	}
	if _, err := f.history.Redo(f.store); err != nil || p.Group() != 3 {
		t.Fatalf("redo: %v group=%d", err, p.Group())
	}
}

func TestGroupSponsorRejected(t *testing.T) {
	f := newFixture(t)
	f.seed(t, personFields{"Acme Corp", "6000", "hello@acme.com", domain.CategorySponsor})
	before := state(f.store)
	_, err := NewGroupCommand(MustIndex(1), groupPtr(3), f.groups).Execute(context.Background(), f.env)
	if !errors.Is(err, domain.ErrInvariant) || err.Error() != "Sponsor doesn't have a group" {
		t.Fatalf("expected sponsor error, got %v", err)
	}
	if !sameState(before, state(f.store)) {
		t.Fatalf("store changed after rejected group")
	}
}

func TestGroupRevalidatesIndexAgainstLiveView(t *testing.T) {
	f := newFixture(t)
	f.seed(t, johnDoe(), personFields{"Jane", "87654321", "jane@example.com", domain.CategoryStaff})
	cmd := NewGroupCommand(MustIndex(2), groupPtr(1), f.groups)
	f.store.UpdateFilteredPersonList(NameContainsKeywords([]string{"john"}))
	_, err := cmd.Execute(context.Background(), f.env)
	if !errors.Is(err, domain.ErrNotFound) || err.Error() != MessageInvalidPersonIndex {
		t.Fatalf("expected invalid index, got %v", err)
	}
}

func TestGroupRefreshesFilteredView(t *testing.T) {
	f := newFixture(t)
	f.seed(t, johnDoe(), personFields{"Jane", "87654321", "jane@example.com", domain.CategoryStaff})
	f.store.UpdateFilteredPersonList(NameContainsKeywords([]string{"jane"}))
	f.run(t, NewGroupCommand(MustIndex(1), groupPtr(2), f.groups))
	if n := len(f.store.FilteredPersons()); n != 2 {
		t.Fatalf("expected view reset to all persons, got %d", n)
	}
}

func TestDeleteRestoresPosition(t *testing.T) {
	f := newFixture(t)
	f.seed(t, johnDoe(),
		personFields{"Jane", "87654321", "jane@example.com", domain.CategoryStaff},
		personFields{"Ann", "333", "ann@example.com", domain.CategoryParticipant})
	f.run(t, NewDeleteCommand(MustIndex(2)))
	if _, err := f.history.Undo(f.store); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := f.store.Persons()[1].Name(); got != "Jane" {
		t.Fatalf("expected Jane back at position 2, got %s", got)
	}
}

func TestEditValidation(t *testing.T) {
	f := newFixture(t)
	f.seed(t, johnDoe(), personFields{"Jane", "87654321", "jane@example.com", domain.CategoryStaff})
	ctx := context.Background()
	if _, err := NewEditCommand(MustIndex(1), EditDescriptor{}).Execute(ctx, f.env); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected empty edit rejection, got %v", err)
	}
	name, phone, email := domain.Name("Jane"), domain.Phone("87654321"), domain.Email("jane@example.com")
	dup := EditDescriptor{Name: &name, Phone: &phone, Email: &email}
	if _, err := NewEditCommand(MustIndex(1), dup).Execute(ctx, f.env); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	if _, err := NewEditCommand(MustIndex(5), EditDescriptor{Name: &name}).Execute(ctx, f.env); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected invalid index, got %v", err)
	}
}

func TestEditToSponsorDropsGroup(t *testing.T) {
	f := newFixture(t)
	f.seed(t, johnDoe())
	f.run(t, NewGroupCommand(MustIndex(1), groupPtr(2), f.groups))
	sponsor := domain.CategorySponsor
	f.run(t, NewEditCommand(MustIndex(1), EditDescriptor{Category: &sponsor}))
	p := f.store.Persons()[0]
	if !p.IsSponsor() || p.Group() != domain.Ungrouped {
		t.Fatalf("expected ungrouped sponsor, got %s", p)
	}
	_, err := NewEditCommand(MustIndex(1), EditDescriptor{Group: groupPtr(1)}).Execute(context.Background(), f.env)
	if !errors.Is(err, domain.ErrInvariant) {
		t.Fatalf("expected sponsor group error, got %v", err)
	}
}

func TestFindUsesCaseFolding(t *testing.T) {
	f := newFixture(t)
	f.seed(t, johnDoe(),
		personFields{"STRASSE Team", "444", "team@example.com", domain.CategoryStaff},
		personFields{"Jane", "87654321", "jane@example.com", domain.CategoryStaff})
	res := f.run(t, NewFindCommand([]string{"JOHN", "strasse"}))
	if res.Feedback != "2 persons listed!" || res.Changed {
		t.Fatalf("unexpected result %+v", res)
	}
	f.run(t, ListCommand{})
	if len(f.store.FilteredPersons()) != 3 {
		t.Fatalf("list should show everyone")
	}
}

func TestEventCommands(t *testing.T) {
	f := newFixture(t)
	e, err := domain.ParseEvent("Orientation", "2026-03-01", "PARTICIPANT")
	if err != nil {
		t.Fatalf("event: %v", err)
	}
	f.run(t, NewAddEventCommand(e))
	if _, err := NewAddEventCommand(e).Execute(context.Background(), f.env); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate event, got %v", err)
	}
	if res := f.run(t, ListEventsCommand{}); res.Feedback != "Listed 1 events" {
		t.Fatalf("unexpected list feedback %q", res.Feedback)
	}
	if _, err := NewDeleteEventCommand(MustIndex(2)).Execute(context.Background(), f.env); err == nil || err.Error() != MessageInvalidEventIndex {
		t.Fatalf("expected invalid event index, got %v", err)
	}
	f.run(t, NewDeleteEventCommand(MustIndex(1)))
	if len(f.store.Events()) != 0 {
		t.Fatalf("expected no events")
	}
	if f.history.UndoDepth() != 0 {
		t.Fatalf("event commands must not enter history")
	}
}

func TestSessionCommands(t *testing.T) {
	f := newFixture(t)
	if res := f.run(t, ExitCommand{}); !res.Exit {
		t.Fatalf("exit should request termination")
	}
	if res := f.run(t, HelpCommand{Usage: "usage"}); !res.ShowHelp || res.Feedback != "usage" {
		t.Fatalf("unexpected help result %+v", res)
	}
}

func TestIndexFromOneBased(t *testing.T) {
	if _, err := IndexFromOneBased(0); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	idx, err := IndexFromOneBased(3)
	if err != nil || idx.ZeroBased() != 2 || idx.OneBased() != 3 || idx.String() != "3" {
		t.Fatalf("unexpected index %v %v", idx, err)
	}
}
