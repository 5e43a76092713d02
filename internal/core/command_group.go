package core

import (
	"context"

	"rostercore/pkg/domain"
)

const WordGroup = "group"

// GroupCommand moves the person at an index into a group. Execute records the
// person's previous group number, the only state needed to revert it.
type GroupCommand struct {
	index  Index
	target domain.Group
	person *domain.Person
	prior  domain.Group
}

// NewGroupCommand builds a group command against alloc. With a nil target the
// group is drawn from [1, alloc.Total()]; an explicit target raises the bound.
func NewGroupCommand(index Index, target *domain.Group, alloc *GroupAllocator) *GroupCommand {
	if alloc == nil {
		alloc = DefaultGroups()
	}
	c := &GroupCommand{index: index}
	if target != nil {
		c.target = *target
		alloc.Raise(target.Int())
	} else {
		c.target = alloc.Draw()
	}
	return c
}

func (c *GroupCommand) Word() string { return WordGroup }

// Target returns the group the person will be moved to.
func (c *GroupCommand) Target() domain.Group { return c.target }

func (c *GroupCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	p, err := personAt(env.Model, c.index)
	if err != nil {
		return CommandResult{}, err
	}
	if p.IsSponsor() {
		return CommandResult{}, domain.InvariantViolationError{Message: domain.MessageSponsorGroup}
	}
	prior := p.Group()
	if err := env.Model.GroupPerson(p, c.target); err != nil {
		return CommandResult{}, err
	}
	c.person, c.prior = p, prior
	env.Model.UpdateFilteredPersonList(domain.ShowAllPersons)
	return feedback("Grouped Person: %s", p), nil
}

func (c *GroupCommand) Undo(m domain.Model) (CommandResult, error) {
	if err := m.GroupPerson(c.person, c.prior); err != nil {
		return CommandResult{}, err
	}
	m.UpdateFilteredPersonList(domain.ShowAllPersons)
	return feedback("Changes reverted: %s", c.person), nil
}

func (c *GroupCommand) Redo(m domain.Model) (CommandResult, error) {
	if err := m.GroupPerson(c.person, c.target); err != nil {
		return CommandResult{}, err
	}
	m.UpdateFilteredPersonList(domain.ShowAllPersons)
	return feedback("Grouped Person: %s", c.person), nil
}
