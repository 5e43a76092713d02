// Package groupcap limits how many people a single group may hold.
package groupcap

import (
	"fmt"
	"sort"

	"rostercore/internal/core"
	"rostercore/pkg/domain"
)

// RuleName identifies the capacity rule in violations.
const RuleName = "group_capacity"

// Plugin installs the capacity rule. Ungrouped people are never counted.
type Plugin struct {
	capacity int
	severity domain.Severity
}

// New returns a plugin blocking any group holding more than capacity people.
func New(capacity int) Plugin {
	return Plugin{capacity: capacity, severity: domain.SeverityBlock}
}

// NewWarning reports oversized groups without blocking the mutation.
func NewWarning(capacity int) Plugin {
	return Plugin{capacity: capacity, severity: domain.SeverityWarn}
}

func (Plugin) Name() string    { return "groupcap" }
func (Plugin) Version() string { return "0.1.0" }

// Register wires the capacity rule.
func (p Plugin) Register(registry *core.PluginRegistry) error {
	if p.capacity < 1 {
		return fmt.Errorf("group capacity must be positive, got %d", p.capacity)
	}
	registry.RegisterRule(capacityRule{capacity: p.capacity, severity: p.severity})
	return nil
}

type capacityRule struct {
	capacity int
	severity domain.Severity
}

func (capacityRule) Name() string { return RuleName }

func (r capacityRule) Evaluate(view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	counts := make(map[domain.Group]int)
	for _, p := range view.ListPersons() {
		if p.Group() != domain.Ungrouped {
			counts[p.Group()]++
		}
	}
	groups := make([]domain.Group, 0, len(counts))
	for g, n := range counts {
		if n > r.capacity {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })
	var res domain.Result
	for _, g := range groups {
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     RuleName,
			Severity: r.severity,
			Message:  fmt.Sprintf("Group %d is full: %d/%d members", g, counts[g], r.capacity),
			Entity:   domain.EntityPerson,
		})
	}
	return res, nil
}
