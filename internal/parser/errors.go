package parser

import (
	"fmt"
	"strings"

	"rostercore/pkg/domain"
)

// Parse failure messages.
const (
	MessageUnknownCommand = "Unknown command"
	MessageInvalidFormat  = "Invalid command format! \n%s"
	MessageDuplicateField = "Multiple values specified for the following single-valued field(s): "
	MessageInvalidIndex   = "Index is not a non-zero unsigned integer."
)

// ParseError reports input that does not form a command. Usage, when set, is
// the help text of the command the user was attempting.
type ParseError struct {
	Message string
	Usage   string
}

func (e ParseError) Error() string { return e.Message }

// Is lets parse failures match domain.ErrValidation.
func (e ParseError) Is(target error) bool { return target == domain.ErrValidation }

func invalidFormat(usage string) ParseError {
	return ParseError{Message: fmt.Sprintf(MessageInvalidFormat, usage), Usage: usage}
}

func duplicateFields(ps []Prefix) ParseError {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return ParseError{Message: MessageDuplicateField + strings.Join(names, " ")}
}
