package domain

import "errors"

// Sentinel kinds matched with errors.Is. Every typed error below reports one of
// these so callers can branch on the kind without knowing the concrete type.
var (
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("duplicate entity")
	ErrNotFound     = errors.New("entity not found")
	ErrInvariant    = errors.New("invariant violation")
	ErrHistoryEmpty = errors.New("history empty")
)

// Fixed user-facing messages for the structural error kinds.
const (
	MessageDuplicatePerson = "This person already exists in the address book"
	MessageDuplicateEvent  = "This event already exists in the event list"
	MessagePersonNotFound  = "Person does not exist in the address book"
	MessageEventNotFound   = "Event does not exist in the event list"
	MessageSponsorGroup    = "Sponsor doesn't have a group"
)

// ValidationError reports a malformed field value at construction time.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// Is reports whether target is ErrValidation.
func (e ValidationError) Is(target error) bool { return target == ErrValidation }

// DuplicateEntityError is returned when an insert would break identity uniqueness.
type DuplicateEntityError struct {
	Message string
}

func (e DuplicateEntityError) Error() string {
	if e.Message == "" {
		return MessageDuplicatePerson
	}
	return e.Message
}

// Is reports whether target is ErrDuplicate.
func (e DuplicateEntityError) Is(target error) bool { return target == ErrDuplicate }

// NotFoundError is returned when an entity or index is no longer addressable.
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string {
	if e.Message == "" {
		return MessagePersonNotFound
	}
	return e.Message
}

// Is reports whether target is ErrNotFound.
func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvariantViolationError is returned when a mutation would break an entity
// invariant, such as assigning a group to a sponsor.
type InvariantViolationError struct {
	Message string
}

func (e InvariantViolationError) Error() string {
	if e.Message == "" {
		return MessageSponsorGroup
	}
	return e.Message
}

// Is reports whether target is ErrInvariant.
func (e InvariantViolationError) Is(target error) bool { return target == ErrInvariant }

// HistoryEmptyError is returned when undo or redo has nothing to replay.
type HistoryEmptyError struct {
	Message string
}

func (e HistoryEmptyError) Error() string {
	if e.Message == "" {
		return "history is empty"
	}
	return e.Message
}

// Is reports whether target is ErrHistoryEmpty.
func (e HistoryEmptyError) Is(target error) bool { return target == ErrHistoryEmpty }

// CommandError carries a command-specific message while still matching one of
// the sentinel kinds, e.g. an invalid index reported as ErrNotFound.
type CommandError struct {
	Message string
	Kind    error
}

func (e CommandError) Error() string { return e.Message }

// Is reports whether target is the error's kind.
func (e CommandError) Is(target error) bool { return e.Kind != nil && target == e.Kind }
