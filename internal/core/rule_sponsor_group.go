package core

import (
	"fmt"

	"rostercore/pkg/domain"
)

// NewSponsorGroupRule blocks states in which a sponsor holds a group.
func NewSponsorGroupRule() domain.Rule {
	return sponsorGroupRule{}
}

type sponsorGroupRule struct{}

func (sponsorGroupRule) Name() string { return "sponsor_group" }

func (r sponsorGroupRule) Evaluate(view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	if !touchesEntity(changes, domain.EntityPerson) {
		return res, nil
	}
	for _, p := range view.ListPersons() {
		if p.IsSponsor() && p.Group() != domain.Ungrouped {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     r.Name(),
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("%s: %s", domain.MessageSponsorGroup, p.Name()),
				Entity:   domain.EntityPerson,
			})
		}
	}
	return res, nil
}

// touchesEntity reports whether changes mention entity. An empty change set
// (a wholesale import) touches everything.
func touchesEntity(changes []domain.Change, entity domain.EntityType) bool {
	if len(changes) == 0 {
		return true
	}
	for _, c := range changes {
		if c.Entity == entity {
			return true
		}
	}
	return false
}
