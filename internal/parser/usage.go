package parser

import (
	"strings"

	"rostercore/internal/core"
)

// Usage strings shown on malformed input and by help.
var usages = map[string]string{
	core.WordAdd: core.WordAdd + ": Adds a person to the roster.\n" +
		"Parameters: n/NAME p/PHONE e/EMAIL c/CATEGORY [g/GROUP]\n" +
		"Example: add n/John Doe p/98765432 e/johnd@example.com c/participant g/3",
	aliasAddParticipant: aliasAddParticipant + ": Adds a participant.\n" +
		"Parameters: n/NAME p/PHONE e/EMAIL [g/GROUP]",
	aliasAddStaff: aliasAddStaff + ": Adds a staff member.\n" +
		"Parameters: n/NAME p/PHONE e/EMAIL [g/GROUP]",
	aliasAddSponsor: aliasAddSponsor + ": Adds a sponsor.\n" +
		"Parameters: n/NAME p/PHONE e/EMAIL",
	core.WordDelete: core.WordDelete + ": Deletes the person identified by the index number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: delete 1",
	core.WordEdit: core.WordEdit + ": Edits the details of the person identified by the index number used in the displayed person list. " +
		"Existing values will be overwritten by the input values.\n" +
		"Parameters: INDEX (must be a positive integer) [n/NAME] [p/PHONE] [e/EMAIL] [c/CATEGORY] [g/GROUP]\n" +
		"Example: edit 1 p/91234567 e/johndoe@example.com",
	core.WordGroup: core.WordGroup + ": Changes the group of the person identified by the index number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer) [GROUP (must be a non-negative integer)]\n" +
		"Example: group 2 3",
	core.WordComment: core.WordComment + ": Replaces the comment of the person identified by the index number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer) COMMENT\n" +
		"Example: comment 1 Prefers email",
	core.WordClear:  core.WordClear + ": Removes every person from the roster.",
	core.WordList:   core.WordList + ": Lists all persons.",
	core.WordFind:   core.WordFind + ": Finds all persons whose names contain any of the specified keywords (case-insensitive).\nParameters: KEYWORD [MORE_KEYWORDS]...\nExample: find alice bob",
	core.WordUndo:   core.WordUndo + ": Reverts the most recent change.",
	core.WordRedo:   core.WordRedo + ": Reapplies the most recently reverted change.",
	core.WordExit:   core.WordExit + ": Exits the program.",
	core.WordHelp:   core.WordHelp + ": Shows this usage summary.",
	core.WordExport: core.WordExport + ": Writes the roster to blob storage as a JSON snapshot.",
	core.WordImport: core.WordImport + ": Replaces the roster with a snapshot from blob storage and clears history.\nParameters: KEY\nExample: import snapshots/20240101T000000.000000000Z.json",
	core.WordAddEvent: core.WordAddEvent + ": Adds an event.\n" +
		"Parameters: n/NAME d/DATE c/CATEGORY\n" +
		"Example: addevent n/Orientation d/2024-08-12 c/participant",
	core.WordDeleteEvent: core.WordDeleteEvent + ": Deletes the event identified by the index number used in the event list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: deleteevent 1",
	core.WordListEvents: core.WordListEvents + ": Lists all events.",
}

// helpOrder is the order commands appear in the help text.
var helpOrder = []string{
	core.WordAdd, aliasAddParticipant, aliasAddStaff, aliasAddSponsor,
	core.WordDelete, core.WordEdit, core.WordGroup, core.WordComment, core.WordClear,
	core.WordList, core.WordFind,
	core.WordAddEvent, core.WordDeleteEvent, core.WordListEvents,
	core.WordUndo, core.WordRedo,
	core.WordExport, core.WordImport,
	core.WordHelp, core.WordExit,
}

// Usage returns the help text for word, or "" when the word is unknown.
func Usage(word string) string {
	return usages[word]
}

// HelpText is the full usage summary including aliases.
func HelpText() string {
	var b strings.Builder
	for i, word := range helpOrder {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(usages[word])
	}
	b.WriteString("\n\nAliases: del=delete, e=edit, f=find, u=undo, r=redo, q=exit")
	return b.String()
}
