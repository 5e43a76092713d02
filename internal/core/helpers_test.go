package core

import (
	"context"
	"testing"

	"rostercore/internal/blob"
	"rostercore/internal/infra/persistence/memory"
	"rostercore/pkg/domain"
)

type personFields struct {
	name, phone, email string
	category           domain.Category
}

func johnDoe() personFields {
	return personFields{"John Doe", "98765432", "johnd@example.com", domain.CategoryParticipant}
}

func (s personFields) build(t *testing.T) *domain.Person {
	t.Helper()
	p, err := domain.ParsePerson(s.name, s.phone, s.email, string(s.category))
	if err != nil {
		t.Fatalf("build person %s: %v", s.name, err)
	}
	return p
}

type fixture struct {
	store   *memory.Store
	history *History
	groups  *GroupAllocator
	env     *Env
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore(NewDefaultRulesEngine())
	f := &fixture{store: store, history: NewHistory(), groups: NewGroupAllocator(1, nil)}
	f.env = &Env{Model: store, History: f.history, Groups: f.groups, Blobs: blob.NewMemory()}
	return f
}

// run executes cmd and registers it the way Service does.
func (f *fixture) run(t *testing.T, cmd Command) CommandResult {
	t.Helper()
	res, err := cmd.Execute(context.Background(), f.env)
	if err != nil {
		t.Fatalf("%s: %v", cmd.Word(), err)
	}
	if rc, ok := cmd.(ReversibleCommand); ok {
		f.history.Register(rc)
	}
	return res
}

func (f *fixture) seed(t *testing.T, fields ...personFields) []*domain.Person {
	t.Helper()
	out := make([]*domain.Person, 0, len(fields))
	for _, s := range fields {
		p := s.build(t)
		if err := f.store.AddPerson(p); err != nil {
			t.Fatalf("seed %s: %v", s.name, err)
		}
		out = append(out, p)
	}
	return out
}

// state captures everything undo must restore: order, identity, group, comment.
func state(m domain.Model) []domain.PersonRecord {
	var out []domain.PersonRecord
	for _, p := range m.Persons() {
		out = append(out, p.Record())
	}
	return out
}

func sameState(a, b []domain.PersonRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func groupPtr(n int) *domain.Group {
	g := domain.Group(n)
	return &g
}
