// Package domain defines the roster entities, value types, rule evaluation
// primitives and persistence contracts used by rostercore.
package domain

import "fmt"

// Kind distinguishes the closed set of person variants.
type Kind string

// Person variants. Sponsors are structurally forbidden from holding a group.
const (
	KindDefault Kind = "person"
	KindSponsor Kind = "sponsor"
)

// Identity is the value used for uniqueness checks in the store.
type Identity struct {
	Name  Name
	Phone Phone
	Email Email
}

func (i Identity) String() string {
	return fmt.Sprintf("%s <%s, %s>", i.Name, i.Phone, i.Email)
}

// Person is a contact tracked by the roster. Name, phone, email and category
// are fixed after construction; group and comment change through setters.
type Person struct {
	name     Name
	phone    Phone
	email    Email
	category Category
	group    Group
	comment  Comment
}

// NewPerson builds a validated person. The variant follows the category:
// SPONSOR yields a sponsor, which rejects any non-zero group.
func NewPerson(name Name, phone Phone, email Email, category Category, group Group, comment Comment) (*Person, error) {
	if _, err := NewName(string(name)); err != nil {
		return nil, err
	}
	if _, err := NewPhone(string(phone)); err != nil {
		return nil, err
	}
	if _, err := NewEmail(string(email)); err != nil {
		return nil, err
	}
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}
	if _, err := NewGroup(int(group)); err != nil {
		return nil, err
	}
	if category == CategorySponsor && group != Ungrouped {
		return nil, InvariantViolationError{Message: MessageSponsorGroup}
	}
	if comment == "" {
		comment = DefaultComment
	}
	return &Person{
		name:     name,
		phone:    phone,
		email:    email,
		category: category,
		group:    group,
		comment:  comment,
	}, nil
}

// ParsePerson validates raw field values and builds an ungrouped person with
// the default comment.
func ParsePerson(name, phone, email, category string) (*Person, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	p, err := NewPhone(phone)
	if err != nil {
		return nil, err
	}
	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	c, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return NewPerson(n, p, e, c, Ungrouped, DefaultComment)
}

func (p *Person) Name() Name         { return p.name }
func (p *Person) Phone() Phone       { return p.phone }
func (p *Person) Email() Email       { return p.email }
func (p *Person) Category() Category { return p.category }
func (p *Person) Group() Group       { return p.group }
func (p *Person) Comment() Comment   { return p.comment }

// Kind reports the person variant.
func (p *Person) Kind() Kind {
	if p.category == CategorySponsor {
		return KindSponsor
	}
	return KindDefault
}

// IsSponsor reports whether p is the sponsor variant.
func (p *Person) IsSponsor() bool { return p.Kind() == KindSponsor }

// Identity returns the uniqueness key of p.
func (p *Person) Identity() Identity {
	return Identity{Name: p.name, Phone: p.phone, Email: p.email}
}

// SamePerson reports whether other has the same identity as p.
func (p *Person) SamePerson(other *Person) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Identity() == other.Identity()
}

// Equal reports whether every field of p and other matches.
func (p *Person) Equal(other *Person) bool {
	if p == nil || other == nil {
		return p == other
	}
	return *p == *other
}

// SetGroup assigns a membership group. Sponsors reject the call and stay unchanged.
func (p *Person) SetGroup(g Group) error {
	if p.IsSponsor() {
		return InvariantViolationError{Message: MessageSponsorGroup}
	}
	if _, err := NewGroup(int(g)); err != nil {
		return err
	}
	p.group = g
	return nil
}

// SetComment replaces the free-text comment.
func (p *Person) SetComment(c Comment) {
	if c == "" {
		c = DefaultComment
	}
	p.comment = c
}

// Clone returns an independent copy of p.
func (p *Person) Clone() *Person {
	cp := *p
	return &cp
}

func (p *Person) String() string {
	return fmt.Sprintf("%s; Phone: %s; Email: %s; Category: %s; Group: %d; Comment: %s",
		p.name, p.phone, p.email, p.category, p.group, p.comment)
}

// PersonRecord is the serializable form of a Person.
type PersonRecord struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Category string `json:"category"`
	Group    int    `json:"group"`
	Comment  string `json:"comment"`
}

// Record converts p into its serializable form.
func (p *Person) Record() PersonRecord {
	return PersonRecord{
		Name:     string(p.name),
		Phone:    string(p.phone),
		Email:    string(p.email),
		Category: string(p.category),
		Group:    int(p.group),
		Comment:  string(p.comment),
	}
}

// Person rebuilds a validated Person from the record.
func (r PersonRecord) Person() (*Person, error) {
	name, err := NewName(r.Name)
	if err != nil {
		return nil, err
	}
	phone, err := NewPhone(r.Phone)
	if err != nil {
		return nil, err
	}
	email, err := NewEmail(r.Email)
	if err != nil {
		return nil, err
	}
	category, err := ParseCategory(r.Category)
	if err != nil {
		return nil, err
	}
	group, err := NewGroup(r.Group)
	if err != nil {
		return nil, err
	}
	return NewPerson(name, phone, email, category, group, Comment(r.Comment))
}
