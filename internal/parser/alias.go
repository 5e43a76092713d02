package parser

import "rostercore/internal/core"

const (
	aliasAddParticipant = "addp"
	aliasAddStaff       = "adds"
	aliasAddSponsor     = "addsp"
)

// aliases maps short words onto the command they stand for.
var aliases = map[string]string{
	"del": core.WordDelete,
	"e":   core.WordEdit,
	"f":   core.WordFind,
	"u":   core.WordUndo,
	"r":   core.WordRedo,
	"q":   core.WordExit,
}

// Canonical resolves an alias to its command word. Unknown words are returned as is.
func Canonical(word string) string {
	if w, ok := aliases[word]; ok {
		return w
	}
	return word
}
