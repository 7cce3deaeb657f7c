package tree

import (
	"errors"
	"testing"

	"github.com/scanforge/sweeptree/ir"
)

func TestPick_Unseeded(t *testing.T) {
	n, err := NewPick(List(NewSequence(ints(1, 2))))
	if err != nil {
		t.Fatal(err)
	}
	var cfgErr *ConfigurationError
	if _, err := n.Iter(); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestPick_InterleavesAll(t *testing.T) {
	p, err := NewPick(List(
		NewSequence(ints(1, 2, 3)),
		NewSequence(ints(10, 20)),
	))
	if err != nil {
		t.Fatal(err)
	}
	n := p.WithSeed(42)
	if n.Len().N() != 5 {
		t.Fatalf("len = %s, want 5", n.Len())
	}
	got := mustCollect(t, n, -1)

	// all values appear exactly once
	if !sameValueSet(got, ints(1, 2, 3, 10, 20)) {
		t.Fatal("pick changed the value multiset")
	}
	// each child's values keep their relative order
	for _, seq := range [][]int64{{1, 2, 3}, {10, 20}} {
		at := 0
		for _, v := range got {
			if at < len(seq) && ir.Equal(v, ir.FromInt(seq[at])) {
				at++
			}
		}
		if at != len(seq) {
			t.Errorf("child order %v not preserved in %v", seq, got)
		}
	}
}

func TestPick_DeterministicPerSeed(t *testing.T) {
	p, err := NewPick(List(
		NewSequence(ints(1, 2, 3, 4)),
		NewSequence(ints(5, 6, 7, 8)),
	))
	if err != nil {
		t.Fatal(err)
	}
	a := mustCollect(t, p.WithSeed(7), -1)
	b := mustCollect(t, p.WithSeed(7), -1)
	wantValues(t, a, b)
}

func TestPick_NamedWrapsYields(t *testing.T) {
	p, err := NewPick(Map(
		Named("x", NewSequence(ints(1))),
		Named("y", NewSequence(ints(2))),
	))
	if err != nil {
		t.Fatal(err)
	}
	got := mustCollect(t, p.WithSeed(3), -1)
	if len(got) != 2 {
		t.Fatalf("got %d values, want 2", len(got))
	}
	for i, v := range got {
		if v.Type != ir.ObjectType || len(v.Fields) != 1 {
			t.Errorf("value %d: expected one-field record, got %v", i, v.Type)
		}
	}
}

func TestPick_RandomAccessMatchesSequential(t *testing.T) {
	p, err := NewPick(List(
		NewSequence(ints(1, 2, 3)),
		NewSequence(ints(4, 5, 6)),
	))
	if err != nil {
		t.Fatal(err)
	}
	n := p.WithSeed(5)
	seq := mustCollect(t, n, -1)
	it := mustIter(t, n)
	for i := len(seq) - 1; i >= 0; i-- {
		v, err := it.At(i)
		if err != nil {
			t.Fatal(err)
		}
		if !ir.Equal(v, seq[i]) {
			t.Errorf("At(%d) differs from sequential value", i)
		}
	}
}
