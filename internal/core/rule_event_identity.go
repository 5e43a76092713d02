package core

import (
	"fmt"

	"rostercore/pkg/domain"
)

// NewEventIdentityRule blocks two events sharing a name and date.
func NewEventIdentityRule() domain.Rule {
	return eventIdentityRule{}
}

type eventIdentityRule struct{}

func (eventIdentityRule) Name() string { return "event_identity" }

func (r eventIdentityRule) Evaluate(view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	if !touchesEntity(changes, domain.EntityEvent) {
		return res, nil
	}
	type key struct{ name, date string }
	seen := make(map[key]struct{})
	for _, e := range view.ListEvents() {
		k := key{name: e.Name().String(), date: e.Date().String()}
		if _, dup := seen[k]; dup {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     r.Name(),
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("%s: %s on %s", domain.MessageDuplicateEvent, k.name, k.date),
				Entity:   domain.EntityEvent,
			})
			continue
		}
		seen[k] = struct{}{}
	}
	return res, nil
}
