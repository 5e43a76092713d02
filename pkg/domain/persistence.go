package domain

import "context"

// Predicate selects people for the filtered view.
type Predicate func(*Person) bool

// ShowAllPersons is the predicate that selects every person.
func ShowAllPersons(*Person) bool { return true }

// Model is the mutable entity store commands operate on. People are held by
// reference: the store owns the canonical collection and commands keep only
// the pointers they need to restore.
type Model interface {
	HasPerson(p *Person) bool
	AddPerson(p *Person) error
	// InsertPerson places p at pos in the ordered collection, clamping pos to
	// the valid range.
	InsertPerson(pos int, p *Person) error
	SetPerson(target, edited *Person) error
	DeletePerson(p *Person) error
	// GroupPerson assigns g to the stored person p in place.
	GroupPerson(p *Person, g Group) error
	// IndexOf returns the position of p in the full collection or -1.
	IndexOf(p *Person) int
	Persons() []*Person
	ReplacePersons(persons []*Person) error

	UpdateFilteredPersonList(pred Predicate)
	FilteredPersons() []*Person

	HasEvent(e *Event) bool
	AddEvent(e *Event) error
	DeleteEvent(e *Event) error
	Events() []*Event

	ExportState() Snapshot
	ImportState(s Snapshot) error
}

// PersistentStore is a Model that can write its state to a durable backend.
type PersistentStore interface {
	Model
	Persist(ctx context.Context) error
	Close() error
}

// Snapshot is the serializable form of the whole store.
type Snapshot struct {
	Persons []PersonRecord `json:"persons"`
	Events  []EventRecord  `json:"events"`
}
