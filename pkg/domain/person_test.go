package domain

import (
	"errors"
	"strings"
	"testing"
)

func mustPerson(t *testing.T, name, phone, email string, category Category) *Person {
	t.Helper()
	p, err := ParsePerson(name, phone, email, string(category))
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return p
}

func TestParsePersonDefaults(t *testing.T) {
	p := mustPerson(t, "John Doe", "98765432", "johnd@example.com", CategoryParticipant)
	if p.Group() != Ungrouped || p.Comment() != DefaultComment || p.Kind() != KindDefault {
		t.Fatalf("unexpected defaults %s", p)
	}
	want := "John Doe; Phone: 98765432; Email: johnd@example.com; Category: PARTICIPANT; Group: 0; Comment: No comment provided."
	if p.String() != want {
		t.Fatalf("unexpected string %q", p.String())
	}
	if _, err := ParsePerson("John", "1", "johnd@example.com", "STAFF"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected phone validation, got %v", err)
	}
}

func TestSponsorVariantRejectsGroup(t *testing.T) {
	s := mustPerson(t, "Acme", "555", "sales@acme.example.com", CategorySponsor)
	if !s.IsSponsor() || s.Kind() != KindSponsor {
		t.Fatalf("expected sponsor variant")
	}
	err := s.SetGroup(2)
	if !errors.Is(err, ErrInvariant) || err.Error() != MessageSponsorGroup {
		t.Fatalf("expected sponsor invariant, got %v", err)
	}
	if s.Group() != Ungrouped {
		t.Fatalf("sponsor must stay ungrouped")
	}
	_, err = NewPerson("Acme", "555", "sales@acme.example.com", CategorySponsor, 3, "")
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected constructor to reject grouped sponsor, got %v", err)
	}
}

func TestSetGroupAndComment(t *testing.T) {
	p := mustPerson(t, "Ann", "111", "ann@example.com", CategoryStaff)
	if err := p.SetGroup(4); err != nil || p.Group() != 4 {
		t.Fatalf("set group: %v", err)
	}
	if err := p.SetGroup(-1); !errors.Is(err, ErrValidation) || p.Group() != 4 {
		t.Fatalf("negative group must be rejected without change, got %v", err)
	}
	p.SetComment("vegetarian")
	if p.Comment() != "vegetarian" {
		t.Fatalf("unexpected comment %q", p.Comment())
	}
	p.SetComment("")
	if p.Comment() != DefaultComment {
		t.Fatalf("empty comment should reset to default")
	}
}

func TestIdentityAndEquality(t *testing.T) {
	a := mustPerson(t, "Ann", "111", "ann@example.com", CategoryStaff)
	b := mustPerson(t, "Ann", "111", "ann@example.com", CategoryParticipant)
	c := mustPerson(t, "Ann", "222", "ann@example.com", CategoryStaff)
	if !a.SamePerson(b) || a.SamePerson(c) {
		t.Fatalf("identity is name+phone+email")
	}
	if a.Equal(b) {
		t.Fatalf("equality compares every field")
	}
	clone := a.Clone()
	if !a.Equal(clone) || clone == a {
		t.Fatalf("clone should be equal but distinct")
	}
	_ = clone.SetGroup(9)
	if a.Group() == 9 {
		t.Fatalf("clone must be independent")
	}
	var nilPerson *Person
	if !nilPerson.SamePerson(nil) || nilPerson.SamePerson(a) || !nilPerson.Equal(nil) {
		t.Fatalf("nil handling mismatch")
	}
	if !strings.Contains(a.Identity().String(), "Ann <111, ann@example.com>") {
		t.Fatalf("unexpected identity string %s", a.Identity())
	}
}

func TestPersonRecordRoundTrip(t *testing.T) {
	p, err := NewPerson("Ann", "111", "ann@example.com", CategoryStaff, 3, "lead")
	if err != nil {
		t.Fatalf("new person: %v", err)
	}
	back, err := p.Record().Person()
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if !p.Equal(back) {
		t.Fatalf("record round trip changed %s into %s", p, back)
	}
	bad := p.Record()
	bad.Group = -2
	if _, err := bad.Person(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected group validation, got %v", err)
	}
	bad = p.Record()
	bad.Category = "SPONSOR"
	if _, err := bad.Person(); !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected sponsor invariant, got %v", err)
	}
}
