package core

import (
	"math/rand/v2"
	"sync"

	"rostercore/pkg/domain"
)

// GroupAllocator holds the process-wide upper bound on group numbers. The bound
// only grows, except through Reset.
type GroupAllocator struct {
	mu    sync.Mutex
	total int
	rng   *rand.Rand
}

// NewGroupAllocator starts with total groups (minimum 1) drawing from src.
// A nil src uses a randomly seeded PCG.
func NewGroupAllocator(total int, src rand.Source) *GroupAllocator {
	if total < 1 {
		total = 1
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &GroupAllocator{total: total, rng: rand.New(src)}
}

var (
	defaultGroupsMu sync.Mutex
	defaultGroups   = NewGroupAllocator(1, nil)
)

// DefaultGroups returns the process-wide allocator.
func DefaultGroups() *GroupAllocator {
	defaultGroupsMu.Lock()
	defer defaultGroupsMu.Unlock()
	return defaultGroups
}

// SetDefaultGroups swaps the process-wide allocator and returns a restore func.
func SetDefaultGroups(g *GroupAllocator) func() {
	defaultGroupsMu.Lock()
	defer defaultGroupsMu.Unlock()
	prev := defaultGroups
	defaultGroups = g
	return func() {
		defaultGroupsMu.Lock()
		defer defaultGroupsMu.Unlock()
		defaultGroups = prev
	}
}

// Total returns the current bound.
func (g *GroupAllocator) Total() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.total
}

// Raise lifts the bound to at least n.
func (g *GroupAllocator) Raise(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n > g.total {
		g.total = n
	}
}

// Reset sets the bound to n (minimum 1) and optionally replaces the source.
func (g *GroupAllocator) Reset(n int, src rand.Source) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n < 1 {
		n = 1
	}
	g.total = n
	if src != nil {
		g.rng = rand.New(src)
	}
}

// Draw picks a group uniformly from [1, Total()].
func (g *GroupAllocator) Draw() domain.Group {
	g.mu.Lock()
	defer g.mu.Unlock()
	return domain.Group(g.rng.IntN(g.total) + 1)
}
