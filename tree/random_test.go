package tree

import (
	"errors"
	"math/big"
	"testing"

	"github.com/scanforge/sweeptree/ir"
)

func TestRandomFloat_Deterministic(t *testing.T) {
	r, err := NewRandomFloat(2, 5, WithCount(8))
	if err != nil {
		t.Fatal(err)
	}
	n := r.WithSeed(17)
	a := mustCollect(t, n, -1)
	b := mustCollect(t, n, -1)
	wantValues(t, a, b)
	for i, v := range a {
		if *v.Float64 < 2 || *v.Float64 >= 5 {
			t.Errorf("value %d out of [2, 5): %v", i, *v.Float64)
		}
	}
}

func TestRandomFloat_Unseeded(t *testing.T) {
	r, err := NewRandomFloat(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	var cfgErr *ConfigurationError
	if _, err := r.Iter(); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestRandomFloat_InfiniteWithoutCount(t *testing.T) {
	r, err := NewRandomFloat(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Len().IsInf() {
		t.Errorf("len = %s, want inf", r.Len())
	}
}

func TestRandomFloat_RandomAccessMatchesSequential(t *testing.T) {
	r, err := NewRandomFloat(0, 1, WithCount(6))
	if err != nil {
		t.Fatal(err)
	}
	n := r.WithSeed(3)
	seq := mustCollect(t, n, -1)
	it := mustIter(t, n)
	for _, i := range []int{5, 2, 0, 4} {
		v, err := it.At(i)
		if err != nil {
			t.Fatal(err)
		}
		if !ir.Equal(v, seq[i]) {
			t.Errorf("At(%d) differs from sequential value", i)
		}
	}
}

func TestRandomBigInt_Bounds(t *testing.T) {
	low := big.NewInt(1000)
	high := new(big.Int)
	high.SetString("100000000000000000000000000", 10)
	r, err := NewRandomBigInt(low, high, WithCount(10))
	if err != nil {
		t.Fatal(err)
	}
	n := r.WithSeed(5).(*RandomBigInt)
	for i := 0; i < 10; i++ {
		v, err := n.at(i)
		if err != nil {
			t.Fatal(err)
		}
		var got big.Int
		if v.Int64 != nil {
			got.SetInt64(*v.Int64)
		} else if _, ok := got.SetString(v.Number, 10); !ok {
			t.Fatalf("value %d: not an integer: %v", i, v)
		}
		if got.Cmp(low) < 0 || got.Cmp(high) >= 0 {
			t.Errorf("value %d out of bounds: %v", i, &got)
		}
	}
}

func TestRandomBigInt_EmptyInterval(t *testing.T) {
	_, err := NewRandomBigInt(big.NewInt(5), big.NewInt(5))
	if err == nil {
		t.Fatal("expected error for empty interval")
	}
}

func TestRandomPrime_BitsAndDeterminism(t *testing.T) {
	r, err := NewRandomPrime(32, WithCount(3))
	if err != nil {
		t.Fatal(err)
	}
	n := r.WithSeed(21)
	a := mustCollect(t, n, -1)
	b := mustCollect(t, n, -1)
	wantValues(t, a, b)
	for i, v := range a {
		var p big.Int
		if v.Int64 != nil {
			p.SetInt64(*v.Int64)
		} else if _, ok := p.SetString(v.Number, 10); !ok {
			t.Fatalf("value %d: not an integer", i)
		}
		if p.BitLen() != 32 {
			t.Errorf("value %d: %d bits, want 32", i, p.BitLen())
		}
		if !p.ProbablyPrime(20) {
			t.Errorf("value %d: %v is not prime", i, &p)
		}
	}
}

func TestRandomPrime_TooFewBits(t *testing.T) {
	if _, err := NewRandomPrime(1); err == nil {
		t.Fatal("expected error for bits < 2")
	}
}

func TestRandom_ParamsRoundTrip(t *testing.T) {
	r, err := NewRandomFloat(1, 9, WithCount(5), WithDefault(ir.FromFloat(1)))
	if err != nil {
		t.Fatal(err)
	}
	n := r.WithSeed(123)
	rebuilt, err := n.WithParams(n.Params())
	if err != nil {
		t.Fatal(err)
	}
	wantValues(t, mustCollect(t, rebuilt, -1), mustCollect(t, n, -1))
	rs := rebuilt.(RandomSource)
	if s, ok := rs.Seed(); !ok || s != 123 {
		t.Errorf("seed did not survive the round trip: %v %v", s, ok)
	}
}
