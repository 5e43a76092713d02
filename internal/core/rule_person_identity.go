package core

import (
	"fmt"

	"rostercore/pkg/domain"
)

// NewPersonIdentityRule blocks any state holding two people with the same
// name, phone and email.
func NewPersonIdentityRule() domain.Rule {
	return personIdentityRule{}
}

type personIdentityRule struct{}

func (personIdentityRule) Name() string { return "person_identity" }

func (r personIdentityRule) Evaluate(view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	seen := make(map[domain.Identity]struct{})
	res := domain.Result{}
	for _, p := range view.ListPersons() {
		id := p.Identity()
		if _, dup := seen[id]; dup {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     r.Name(),
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("%s: %s", domain.MessageDuplicatePerson, id),
				Entity:   domain.EntityPerson,
			})
			continue
		}
		seen[id] = struct{}{}
	}
	return res, nil
}
