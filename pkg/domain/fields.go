package domain

import (
	"regexp"
	"strings"
)

// Field identifiers reported by ValidationError.
const (
	FieldName          = "name"
	FieldPhone         = "phone"
	FieldEmail         = "email"
	FieldCategory      = "category"
	FieldGroup         = "group"
	FieldComment       = "comment"
	FieldEventName     = "event_name"
	FieldEventDate     = "event_date"
	FieldEventCategory = "event_category"
)

// Constraint messages shown verbatim to the user when a field fails validation.
const (
	NameConstraints     = "Names should only contain alphanumeric characters and spaces, and it should not be blank"
	PhoneConstraints    = "Phone numbers should only contain numbers, and it should be at least 3 digits long"
	CategoryConstraints = "Category should be one of PARTICIPANT, STAFF or SPONSOR"
	GroupConstraints    = "Group number should be a non-negative integer"
	CommentConstraints  = "Comments should not be blank"
	EmailConstraints    = "Emails should be of the format local-part@domain and adhere to the following constraints:\n" +
		"1. The local-part should only contain alphanumeric characters and these special characters, excluding " +
		"the parentheses, (+_.-). The local-part may not start or end with any special characters.\n" +
		"2. This is followed by a '@' and then a domain name made up of domain labels separated by periods.\n" +
		"The domain name must end with a domain label at least 2 characters long, have each domain label start " +
		"and end with alphanumeric characters, and have each domain label consist of alphanumeric characters, " +
		"separated only by hyphens, if any."
)

// DefaultComment is attached to entities created without an explicit comment.
const DefaultComment Comment = "No comment provided."

var (
	nameRe  = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	phoneRe = regexp.MustCompile(`^\d{3,}$`)
	emailRe = regexp.MustCompile(`^[\p{L}\p{N}]+([+_.-][\p{L}\p{N}]+)*@([\p{L}\p{N}]([\p{L}\p{N}-]*[\p{L}\p{N}])?\.)*[\p{L}\p{N}]([\p{L}\p{N}-]*[\p{L}\p{N}]){1,}$`)
)

// Name is a person's display name.
type Name string

// NewName validates and returns a Name.
func NewName(raw string) (Name, error) {
	if !nameRe.MatchString(raw) {
		return "", ValidationError{Field: FieldName, Message: NameConstraints}
	}
	return Name(raw), nil
}

func (n Name) String() string { return string(n) }

// Phone is a digits-only contact number.
type Phone string

// NewPhone validates and returns a Phone.
func NewPhone(raw string) (Phone, error) {
	if !phoneRe.MatchString(raw) {
		return "", ValidationError{Field: FieldPhone, Message: PhoneConstraints}
	}
	return Phone(raw), nil
}

func (p Phone) String() string { return string(p) }

// Email is a contact address of the form local@domain.
type Email string

// NewEmail validates and returns an Email.
func NewEmail(raw string) (Email, error) {
	if !emailRe.MatchString(raw) {
		return "", ValidationError{Field: FieldEmail, Message: EmailConstraints}
	}
	return Email(raw), nil
}

func (e Email) String() string { return string(e) }

// Category classifies people and events.
type Category string

// Supported categories.
const (
	CategoryParticipant Category = "PARTICIPANT"
	CategoryStaff       Category = "STAFF"
	CategorySponsor     Category = "SPONSOR"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{CategoryParticipant, CategoryStaff, CategorySponsor}
}

// ParseCategory validates raw against the category enumeration. Matching is
// exact; callers normalise case before parsing.
func ParseCategory(raw string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", ValidationError{Field: FieldCategory, Message: CategoryConstraints}
}

func (c Category) String() string { return string(c) }

// Group is a membership number. Zero means ungrouped.
type Group int

// Ungrouped is the group assigned to entities without an explicit group.
const Ungrouped Group = 0

// NewGroup validates and returns a Group.
func NewGroup(n int) (Group, error) {
	if n < 0 {
		return Ungrouped, ValidationError{Field: FieldGroup, Message: GroupConstraints}
	}
	return Group(n), nil
}

// Int returns the group number.
func (g Group) Int() int { return int(g) }

// Comment is free text attached to a person.
type Comment string

// NewComment validates and returns a Comment.
func NewComment(raw string) (Comment, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ValidationError{Field: FieldComment, Message: CommentConstraints}
	}
	return Comment(raw), nil
}

func (c Comment) String() string { return string(c) }
