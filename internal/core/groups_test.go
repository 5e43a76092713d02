package core

import (
	"math/rand/v2"
	"testing"
)

func TestDrawIsDeterministicWithSeededSource(t *testing.T) {
	a := NewGroupAllocator(5, rand.NewPCG(7, 11))
	b := NewGroupAllocator(5, rand.NewPCG(7, 11))
	for i := 0; i < 50; i++ {
		ga, gb := a.Draw(), b.Draw()
		if ga != gb {
			t.Fatalf("draw %d diverged: %d vs %d", i, ga, gb)
		}
		if ga < 1 || ga.Int() > 5 {
			t.Fatalf("draw %d out of range: %d", i, ga)
		}
	}
}

func TestRaiseIsMonotonicAndResetRestores(t *testing.T) {
	g := NewGroupAllocator(0, nil)
	if g.Total() != 1 {
		t.Fatalf("minimum bound is 1, got %d", g.Total())
	}
	g.Raise(4)
	g.Raise(2)
	if g.Total() != 4 {
		t.Fatalf("expected 4, got %d", g.Total())
	}
	g.Reset(1, rand.NewPCG(1, 2))
	if g.Total() != 1 || g.Draw() != 1 {
		t.Fatalf("reset should leave a single group")
	}
}

func TestGroupCommandDrawsFromAllocator(t *testing.T) {
	alloc := NewGroupAllocator(3, rand.NewPCG(42, 42))
	expect := NewGroupAllocator(3, rand.NewPCG(42, 42)).Draw()
	cmd := NewGroupCommand(MustIndex(1), nil, alloc)
	if cmd.Target() != expect {
		t.Fatalf("expected drawn target %d, got %d", expect, cmd.Target())
	}
	if alloc.Total() != 3 {
		t.Fatalf("drawing must not change the bound")
	}
}

func TestDefaultGroupsSwap(t *testing.T) {
	mine := NewGroupAllocator(9, nil)
	restore := SetDefaultGroups(mine)
	if DefaultGroups() != mine {
		t.Fatalf("expected swapped allocator")
	}
	restore()
	if DefaultGroups() == mine {
		t.Fatalf("expected restored allocator")
	}
}
