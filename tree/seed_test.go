package tree

import (
	"testing"
)

func TestGenerateSeeds_AssignsAll(t *testing.T) {
	rf, err := NewRandomFloat(0, 1, WithCount(3))
	if err != nil {
		t.Fatal(err)
	}
	sh, err := NewShuffle(NewSequence(ints(1, 2, 3)))
	if err != nil {
		t.Fatal(err)
	}
	root := mustProduct(t, Map(
		Named("f", rf),
		Named("s", sh),
	))

	seeded, err := GenerateSeeds(root, WithRootSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	seen := map[uint64]bool{}
	err = Walk(seeded, func(n Node, _ []int) error {
		rs, ok := n.(RandomSource)
		if !ok {
			return nil
		}
		s, has := rs.Seed()
		if !has {
			t.Errorf("%s left unseeded", n.Kind())
			return nil
		}
		if seen[s] {
			t.Errorf("seed %d assigned twice", s)
		}
		seen[s] = true
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// the input tree is untouched
	if _, has := rf.Seed(); has {
		t.Error("GenerateSeeds modified the input tree")
	}
}

func TestGenerateSeeds_Reproducible(t *testing.T) {
	rf, err := NewRandomFloat(0, 1, WithCount(4))
	if err != nil {
		t.Fatal(err)
	}
	a, err := GenerateSeeds(rf, WithRootSeed(99))
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateSeeds(rf, WithRootSeed(99))
	if err != nil {
		t.Fatal(err)
	}
	wantValues(t, mustCollect(t, a, -1), mustCollect(t, b, -1))
}

func TestGenerateSeeds_KeepsManualSeeds(t *testing.T) {
	rf, err := NewRandomFloat(0, 1, WithCount(2))
	if err != nil {
		t.Fatal(err)
	}
	manual := rf.WithSeed(1234)
	seeded, err := GenerateSeeds(manual, WithRootSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	rs := seeded.(RandomSource)
	if s, _ := rs.Seed(); s != 1234 {
		t.Errorf("manual seed replaced with %d", s)
	}
}

func TestGenerateSeeds_SharesUnchangedSubtrees(t *testing.T) {
	fixed := NewSequence(ints(1, 2, 3))
	rf, err := NewRandomFloat(0, 1, WithCount(2))
	if err != nil {
		t.Fatal(err)
	}
	root := mustProduct(t, Map(
		Named("fixed", fixed),
		Named("rand", rf),
	))
	seeded, err := GenerateSeeds(root, WithRootSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	if seeded == Node(root) {
		t.Fatal("expected a new root")
	}
	if seeded.Children().At(0) != Node(fixed) {
		t.Error("seed-free subtree was copied")
	}
}

func TestSplitmix64_Bijective(t *testing.T) {
	seen := map[uint64]bool{}
	for i := uint64(0); i < 1000; i++ {
		s := splitmix64(i)
		if seen[s] {
			t.Fatalf("collision at %d", i)
		}
		seen[s] = true
	}
}
