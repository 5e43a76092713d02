package core

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"rostercore/pkg/domain"
)

const (
	WordList       = "list"
	WordFind       = "find"
	WordListEvents = "listevents"
)

// ListCommand resets the filtered view to every person.
type ListCommand struct{}

func (ListCommand) Word() string { return WordList }

func (ListCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	env.Model.UpdateFilteredPersonList(domain.ShowAllPersons)
	return readOnly("Listed all persons"), nil
}

// FindCommand narrows the view to people whose name contains any keyword as a
// whole word, compared with Unicode case folding.
type FindCommand struct {
	keywords []string
}

func NewFindCommand(keywords []string) *FindCommand {
	return &FindCommand{keywords: keywords}
}

func (c *FindCommand) Word() string { return WordFind }

// NameContainsKeywords returns the predicate used by find.
func NameContainsKeywords(keywords []string) domain.Predicate {
	fold := cases.Fold()
	want := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			want[fold.String(k)] = struct{}{}
		}
	}
	return func(p *domain.Person) bool {
		for _, word := range strings.Fields(p.Name().String()) {
			if _, ok := want[fold.String(word)]; ok {
				return true
			}
		}
		return false
	}
}

func (c *FindCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	env.Model.UpdateFilteredPersonList(NameContainsKeywords(c.keywords))
	return readOnly("%d persons listed!", len(env.Model.FilteredPersons())), nil
}

// ListEventsCommand reports the event count; the display layer renders the list.
type ListEventsCommand struct{}

func (ListEventsCommand) Word() string { return WordListEvents }

func (ListEventsCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	return readOnly("Listed %d events", len(env.Model.Events())), nil
}
