// Package parser turns a line of user input into a core.Command.
//
// Input is a command word followed by arguments. Person and event fields are
// introduced by prefixes (n/ p/ e/ c/ g/ d/); the text before the first
// prefix is the preamble, used for indices.
package parser

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rostercore/internal/core"
	"rostercore/pkg/domain"
)

// Parser builds commands. It holds the group allocator so that group
// commands without an explicit number can draw one at parse time.
type Parser struct {
	groups *core.GroupAllocator
	upper  cases.Caser
}

// New returns a parser drawing groups from alloc, or the process-wide
// allocator when alloc is nil.
func New(alloc *core.GroupAllocator) *Parser {
	if alloc == nil {
		alloc = core.DefaultGroups()
	}
	return &Parser{groups: alloc, upper: cases.Upper(language.Und)}
}

// Parse parses one input line.
func (p *Parser) Parse(line string) (core.Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, invalidFormat(Usage(core.WordHelp))
	}
	word, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)

	switch word {
	case aliasAddParticipant:
		return p.parseAddAs(word, args, domain.CategoryParticipant)
	case aliasAddStaff:
		return p.parseAddAs(word, args, domain.CategoryStaff)
	case aliasAddSponsor:
		return p.parseAddAs(word, args, domain.CategorySponsor)
	}

	switch Canonical(word) {
	case core.WordAdd:
		return p.parseAdd(args)
	case core.WordDelete:
		idx, err := p.parseIndexArg(core.WordDelete, args)
		if err != nil {
			return nil, err
		}
		return core.NewDeleteCommand(idx), nil
	case core.WordEdit:
		return p.parseEdit(args)
	case core.WordGroup:
		return p.parseGroup(args)
	case core.WordComment:
		return p.parseComment(args)
	case core.WordClear:
		return core.NewClearCommand(), nil
	case core.WordList:
		return core.ListCommand{}, nil
	case core.WordFind:
		keywords := strings.Fields(args)
		if len(keywords) == 0 {
			return nil, invalidFormat(Usage(core.WordFind))
		}
		return core.NewFindCommand(keywords), nil
	case core.WordUndo:
		return core.UndoCommand{}, nil
	case core.WordRedo:
		return core.RedoCommand{}, nil
	case core.WordAddEvent:
		return p.parseAddEvent(args)
	case core.WordDeleteEvent:
		idx, err := p.parseIndexArg(core.WordDeleteEvent, args)
		if err != nil {
			return nil, err
		}
		return core.NewDeleteEventCommand(idx), nil
	case core.WordListEvents:
		return core.ListEventsCommand{}, nil
	case core.WordExport:
		return core.ExportCommand{}, nil
	case core.WordImport:
		if args == "" || strings.ContainsAny(args, " \t") {
			return nil, invalidFormat(Usage(core.WordImport))
		}
		return core.NewImportCommand(args), nil
	case core.WordHelp:
		return core.HelpCommand{Usage: HelpText()}, nil
	case core.WordExit:
		return core.ExitCommand{}, nil
	}
	return nil, ParseError{Message: MessageUnknownCommand}
}

func (p *Parser) parseAdd(args string) (core.Command, error) {
	a := tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixCategory, PrefixGroup)
	if !a.has(PrefixName, PrefixPhone, PrefixEmail, PrefixCategory) || a.preamble != "" {
		return nil, invalidFormat(Usage(core.WordAdd))
	}
	if dup := a.duplicates(PrefixName, PrefixPhone, PrefixEmail, PrefixCategory, PrefixGroup); len(dup) > 0 {
		return nil, duplicateFields(dup)
	}
	category, _ := a.value(PrefixCategory)
	return p.buildAdd(a, category)
}

// parseAddAs handles the add aliases, which fix the category and reject c/.
// Sponsors carry no group, so addsp also rejects g/.
func (p *Parser) parseAddAs(alias, args string, category domain.Category) (core.Command, error) {
	a := tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixCategory, PrefixGroup)
	if !a.has(PrefixName, PrefixPhone, PrefixEmail) || a.preamble != "" || a.has(PrefixCategory) {
		return nil, invalidFormat(Usage(alias))
	}
	if category == domain.CategorySponsor && a.has(PrefixGroup) {
		return nil, invalidFormat(Usage(alias))
	}
	if dup := a.duplicates(PrefixName, PrefixPhone, PrefixEmail, PrefixGroup); len(dup) > 0 {
		return nil, duplicateFields(dup)
	}
	return p.buildAdd(a, string(category))
}

func (p *Parser) buildAdd(a arguments, category string) (core.Command, error) {
	name, _ := a.value(PrefixName)
	phone, _ := a.value(PrefixPhone)
	email, _ := a.value(PrefixEmail)
	person, err := domain.ParsePerson(name, phone, email, p.upper.String(category))
	if err != nil {
		return nil, err
	}
	var group *domain.Group
	if raw, ok := a.value(PrefixGroup); ok {
		g, err := parseGroup(raw)
		if err != nil {
			return nil, err
		}
		group = &g
	}
	return core.NewAddCommand(person, group), nil
}

func (p *Parser) parseEdit(args string) (core.Command, error) {
	prefixes := []Prefix{PrefixName, PrefixPhone, PrefixEmail, PrefixCategory, PrefixGroup}
	a := tokenize(args, prefixes...)
	idx, err := parseIndex(a.preamble)
	if err != nil {
		return nil, invalidFormat(Usage(core.WordEdit))
	}
	if dup := a.duplicates(prefixes...); len(dup) > 0 {
		return nil, duplicateFields(dup)
	}
	var desc core.EditDescriptor
	if raw, ok := a.value(PrefixName); ok {
		v, err := domain.NewName(raw)
		if err != nil {
			return nil, err
		}
		desc.Name = &v
	}
	if raw, ok := a.value(PrefixPhone); ok {
		v, err := domain.NewPhone(raw)
		if err != nil {
			return nil, err
		}
		desc.Phone = &v
	}
	if raw, ok := a.value(PrefixEmail); ok {
		v, err := domain.NewEmail(raw)
		if err != nil {
			return nil, err
		}
		desc.Email = &v
	}
	if raw, ok := a.value(PrefixCategory); ok {
		v, err := domain.ParseCategory(p.upper.String(raw))
		if err != nil {
			return nil, err
		}
		desc.Category = &v
	}
	if raw, ok := a.value(PrefixGroup); ok {
		v, err := parseGroup(raw)
		if err != nil {
			return nil, err
		}
		desc.Group = &v
	}
	if !desc.AnyFieldEdited() {
		return nil, ParseError{Message: core.MessageNotEdited, Usage: Usage(core.WordEdit)}
	}
	return core.NewEditCommand(idx, desc), nil
}

func (p *Parser) parseGroup(args string) (core.Command, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 || len(fields) > 2 {
		return nil, invalidFormat(Usage(core.WordGroup))
	}
	idx, err := parseIndex(fields[0])
	if err != nil {
		return nil, invalidFormat(Usage(core.WordGroup))
	}
	if len(fields) == 1 {
		return core.NewGroupCommand(idx, nil, p.groups), nil
	}
	g, err := parseGroup(fields[1])
	if err != nil {
		return nil, err
	}
	return core.NewGroupCommand(idx, &g, p.groups), nil
}

func (p *Parser) parseComment(args string) (core.Command, error) {
	rawIdx, text, _ := strings.Cut(args, " ")
	idx, err := parseIndex(rawIdx)
	if err != nil {
		return nil, invalidFormat(Usage(core.WordComment))
	}
	comment, err := domain.NewComment(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	return core.NewCommentCommand(idx, comment), nil
}

func (p *Parser) parseAddEvent(args string) (core.Command, error) {
	prefixes := []Prefix{PrefixName, PrefixEventDate, PrefixCategory}
	a := tokenize(args, prefixes...)
	if !a.has(prefixes...) || a.preamble != "" {
		return nil, invalidFormat(Usage(core.WordAddEvent))
	}
	if dup := a.duplicates(prefixes...); len(dup) > 0 {
		return nil, duplicateFields(dup)
	}
	name, _ := a.value(PrefixName)
	date, _ := a.value(PrefixEventDate)
	category, _ := a.value(PrefixCategory)
	event, err := domain.ParseEvent(name, date, p.upper.String(category))
	if err != nil {
		return nil, err
	}
	return core.NewAddEventCommand(event), nil
}

func (p *Parser) parseIndexArg(word, args string) (core.Index, error) {
	idx, err := parseIndex(args)
	if err != nil {
		return core.Index{}, invalidFormat(Usage(word))
	}
	return idx, nil
}

func parseIndex(raw string) (core.Index, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "+") {
		return core.Index{}, ParseError{Message: MessageInvalidIndex}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return core.Index{}, ParseError{Message: MessageInvalidIndex}
	}
	idx, err := core.IndexFromOneBased(n)
	if err != nil {
		return core.Index{}, ParseError{Message: MessageInvalidIndex}
	}
	return idx, nil
}

func parseGroup(raw string) (domain.Group, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return domain.Ungrouped, domain.ValidationError{Field: domain.FieldGroup, Message: domain.GroupConstraints}
	}
	return domain.NewGroup(n)
}
