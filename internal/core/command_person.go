package core

import (
	"context"

	"rostercore/pkg/domain"
)

// Command words for person mutations.
const (
	WordAdd     = "add"
	WordDelete  = "delete"
	WordEdit    = "edit"
	WordComment = "comment"
	WordClear   = "clear"
)

// AddCommand inserts a new person. Execute fixes the person's group before
// insertion, so Undo and Redo only toggle membership of the same pointer.
type AddCommand struct {
	person *domain.Person
	group  *domain.Group
}

// NewAddCommand adds p. A nil group means "not supplied": non-sponsors are
// placed in group 0 and sponsors stay ungrouped.
func NewAddCommand(p *domain.Person, group *domain.Group) *AddCommand {
	return &AddCommand{person: p, group: group}
}

func (c *AddCommand) Word() string { return WordAdd }

// Person returns the person being added.
func (c *AddCommand) Person() *domain.Person { return c.person }

func (c *AddCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	m := env.Model
	if m.HasPerson(c.person) {
		return CommandResult{}, domain.DuplicateEntityError{Message: domain.MessageDuplicatePerson}
	}
	prior := c.person.Group()
	switch {
	case c.group != nil:
		if err := c.person.SetGroup(*c.group); err != nil {
			return CommandResult{}, err
		}
	case !c.person.IsSponsor():
		if err := c.person.SetGroup(domain.Ungrouped); err != nil {
			return CommandResult{}, err
		}
	}
	if err := m.AddPerson(c.person); err != nil {
		if !c.person.IsSponsor() {
			_ = c.person.SetGroup(prior)
		}
		return CommandResult{}, err
	}
	return feedback("New person added: %s", c.person), nil
}

func (c *AddCommand) Undo(m domain.Model) (CommandResult, error) {
	if !m.HasPerson(c.person) {
		return CommandResult{}, domain.NotFoundError{Message: MessageUndoMissingPerson}
	}
	if err := m.DeletePerson(c.person); err != nil {
		return CommandResult{}, err
	}
	return feedback("Person deleted: %s", c.person), nil
}

// Redo re-checks for a conflicting identity instead of trusting history order.
func (c *AddCommand) Redo(m domain.Model) (CommandResult, error) {
	if m.HasPerson(c.person) {
		return CommandResult{}, domain.DuplicateEntityError{Message: domain.MessageDuplicatePerson}
	}
	if err := m.AddPerson(c.person); err != nil {
		return CommandResult{}, err
	}
	return feedback("New person added: %s", c.person), nil
}

// DeleteCommand removes the person at an index of the filtered view. It
// records the person and its position in the full collection.
type DeleteCommand struct {
	index    Index
	deleted  *domain.Person
	position int
}

func NewDeleteCommand(index Index) *DeleteCommand {
	return &DeleteCommand{index: index}
}

func (c *DeleteCommand) Word() string { return WordDelete }

func (c *DeleteCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	target, err := personAt(env.Model, c.index)
	if err != nil {
		return CommandResult{}, err
	}
	pos := env.Model.IndexOf(target)
	if err := env.Model.DeletePerson(target); err != nil {
		return CommandResult{}, err
	}
	c.deleted, c.position = target, pos
	return feedback("Deleted Person: %s", target), nil
}

func (c *DeleteCommand) Undo(m domain.Model) (CommandResult, error) {
	if err := m.InsertPerson(c.position, c.deleted); err != nil {
		return CommandResult{}, err
	}
	return feedback("Restored Person: %s", c.deleted), nil
}

func (c *DeleteCommand) Redo(m domain.Model) (CommandResult, error) {
	if !m.HasPerson(c.deleted) {
		return CommandResult{}, domain.NotFoundError{Message: MessageRedoMissingPerson}
	}
	if err := m.DeletePerson(c.deleted); err != nil {
		return CommandResult{}, err
	}
	return feedback("Deleted Person: %s", c.deleted), nil
}

// EditDescriptor lists the fields an edit replaces. Nil fields are kept.
type EditDescriptor struct {
	Name     *domain.Name
	Phone    *domain.Phone
	Email    *domain.Email
	Category *domain.Category
	Group    *domain.Group
	Comment  *domain.Comment
}

// AnyFieldEdited reports whether at least one field is set.
func (d EditDescriptor) AnyFieldEdited() bool {
	return d.Name != nil || d.Phone != nil || d.Email != nil || d.Category != nil || d.Group != nil || d.Comment != nil
}

// apply builds the replacement for p. Moving a grouped person to SPONSOR
// drops the group unless one was given explicitly.
func (d EditDescriptor) apply(p *domain.Person) (*domain.Person, error) {
	name, phone, email := p.Name(), p.Phone(), p.Email()
	category, group, comment := p.Category(), p.Group(), p.Comment()
	if d.Name != nil {
		name = *d.Name
	}
	if d.Phone != nil {
		phone = *d.Phone
	}
	if d.Email != nil {
		email = *d.Email
	}
	if d.Category != nil {
		category = *d.Category
		if category == domain.CategorySponsor && d.Group == nil {
			group = domain.Ungrouped
		}
	}
	if d.Group != nil {
		group = *d.Group
	}
	if d.Comment != nil {
		comment = *d.Comment
	}
	return domain.NewPerson(name, phone, email, category, group, comment)
}

// replacement is the shared before/after pair for commands that swap one
// stored person for an edited copy.
type replacement struct {
	before *domain.Person
	after  *domain.Person
}

func (r replacement) undo(m domain.Model) error { return m.SetPerson(r.after, r.before) }
func (r replacement) redo(m domain.Model) error { return m.SetPerson(r.before, r.after) }

// EditCommand replaces the person at an index with an edited copy.
type EditCommand struct {
	index Index
	desc  EditDescriptor
	replacement
}

func NewEditCommand(index Index, desc EditDescriptor) *EditCommand {
	return &EditCommand{index: index, desc: desc}
}

func (c *EditCommand) Word() string { return WordEdit }

func (c *EditCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	if !c.desc.AnyFieldEdited() {
		return CommandResult{}, domain.CommandError{Message: MessageNotEdited, Kind: domain.ErrValidation}
	}
	target, err := personAt(env.Model, c.index)
	if err != nil {
		return CommandResult{}, err
	}
	edited, err := c.desc.apply(target)
	if err != nil {
		return CommandResult{}, err
	}
	if err := env.Model.SetPerson(target, edited); err != nil {
		return CommandResult{}, err
	}
	c.replacement = replacement{before: target, after: edited}
	env.Model.UpdateFilteredPersonList(domain.ShowAllPersons)
	return feedback("Edited Person: %s", edited), nil
}

func (c *EditCommand) Undo(m domain.Model) (CommandResult, error) {
	if err := c.undo(m); err != nil {
		return CommandResult{}, err
	}
	return feedback("Changes reverted: %s", c.before), nil
}

func (c *EditCommand) Redo(m domain.Model) (CommandResult, error) {
	if err := c.redo(m); err != nil {
		return CommandResult{}, err
	}
	return feedback("Edited Person: %s", c.after), nil
}

// CommentCommand replaces the comment of the person at an index.
type CommentCommand struct {
	index   Index
	comment domain.Comment
	replacement
}

func NewCommentCommand(index Index, comment domain.Comment) *CommentCommand {
	return &CommentCommand{index: index, comment: comment}
}

func (c *CommentCommand) Word() string { return WordComment }

func (c *CommentCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	target, err := personAt(env.Model, c.index)
	if err != nil {
		return CommandResult{}, err
	}
	edited := target.Clone()
	edited.SetComment(c.comment)
	if err := env.Model.SetPerson(target, edited); err != nil {
		return CommandResult{}, err
	}
	c.replacement = replacement{before: target, after: edited}
	return feedback("Added comment to Person: %s", edited), nil
}

func (c *CommentCommand) Undo(m domain.Model) (CommandResult, error) {
	if err := c.undo(m); err != nil {
		return CommandResult{}, err
	}
	return feedback("Removed comment from Person: %s", c.before), nil
}

func (c *CommentCommand) Redo(m domain.Model) (CommandResult, error) {
	if err := c.redo(m); err != nil {
		return CommandResult{}, err
	}
	return feedback("Added comment to Person: %s", c.after), nil
}

// ClearCommand empties the person collection, remembering the previous one.
type ClearCommand struct {
	prior []*domain.Person
}

func NewClearCommand() *ClearCommand { return &ClearCommand{} }

func (c *ClearCommand) Word() string { return WordClear }

func (c *ClearCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	prior := env.Model.Persons()
	if err := env.Model.ReplacePersons(nil); err != nil {
		return CommandResult{}, err
	}
	c.prior = prior
	return feedback("Address book has been cleared!"), nil
}

func (c *ClearCommand) Undo(m domain.Model) (CommandResult, error) {
	if err := m.ReplacePersons(c.prior); err != nil {
		return CommandResult{}, err
	}
	return feedback("Restored %d persons", len(c.prior)), nil
}

func (c *ClearCommand) Redo(m domain.Model) (CommandResult, error) {
	if err := m.ReplacePersons(nil); err != nil {
		return CommandResult{}, err
	}
	return feedback("Address book has been cleared!"), nil
}
