package domain

import (
	"fmt"
	"time"
)

// EventDateLayout is the accepted event date format.
const EventDateLayout = "2006-01-02"

// Event constraint messages.
const (
	EventNameConstraints = "Event names should only contain alphanumeric characters and spaces, and it should not be blank"
	EventDateConstraints = "Event dates should be valid calendar dates in the format YYYY-MM-DD"
)

// EventName is an event's display name.
type EventName string

// NewEventName validates and returns an EventName.
func NewEventName(raw string) (EventName, error) {
	if !nameRe.MatchString(raw) {
		return "", ValidationError{Field: FieldEventName, Message: EventNameConstraints}
	}
	return EventName(raw), nil
}

func (n EventName) String() string { return string(n) }

// EventDate is the calendar day an event takes place on.
type EventDate struct {
	day time.Time
}

// NewEventDate parses raw as YYYY-MM-DD.
func NewEventDate(raw string) (EventDate, error) {
	t, err := time.Parse(EventDateLayout, raw)
	if err != nil {
		return EventDate{}, ValidationError{Field: FieldEventDate, Message: EventDateConstraints}
	}
	return EventDate{day: t}, nil
}

// Time returns the date at midnight UTC.
func (d EventDate) Time() time.Time { return d.day }

func (d EventDate) String() string { return d.day.Format(EventDateLayout) }

// Event is a dated happening tracked alongside people.
type Event struct {
	name     EventName
	date     EventDate
	category Category
}

// NewEvent builds a validated event.
func NewEvent(name EventName, date EventDate, category Category) (*Event, error) {
	if _, err := NewEventName(string(name)); err != nil {
		return nil, err
	}
	if date.day.IsZero() {
		return nil, ValidationError{Field: FieldEventDate, Message: EventDateConstraints}
	}
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, ValidationError{Field: FieldEventCategory, Message: CategoryConstraints}
	}
	return &Event{name: name, date: date, category: category}, nil
}

// ParseEvent validates raw values and builds an event.
func ParseEvent(name, date, category string) (*Event, error) {
	n, err := NewEventName(name)
	if err != nil {
		return nil, err
	}
	d, err := NewEventDate(date)
	if err != nil {
		return nil, err
	}
	c, err := ParseCategory(category)
	if err != nil {
		return nil, ValidationError{Field: FieldEventCategory, Message: CategoryConstraints}
	}
	return NewEvent(n, d, c)
}

func (e *Event) Name() EventName    { return e.name }
func (e *Event) Date() EventDate    { return e.date }
func (e *Event) Category() Category { return e.category }

// SameEvent reports whether other has the same name and date.
func (e *Event) SameEvent(other *Event) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.name == other.name && e.date.day.Equal(other.date.day)
}

func (e *Event) String() string {
	return fmt.Sprintf("%s; Date: %s; Category: %s", e.name, e.date, e.category)
}

// EventRecord is the serializable form of an Event.
type EventRecord struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

// Record converts e into its serializable form.
func (e *Event) Record() EventRecord {
	return EventRecord{Name: string(e.name), Date: e.date.String(), Category: string(e.category)}
}

// Event rebuilds a validated Event from the record.
func (r EventRecord) Event() (*Event, error) {
	return ParseEvent(r.Name, r.Date, r.Category)
}
