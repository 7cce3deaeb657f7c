package tree

import (
	"testing"

	"github.com/scanforge/sweeptree/ir"
)

func obj(kvs ...any) *ir.Node {
	res := make([]ir.KeyVal, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		v, err := ir.FromGoAny(kvs[i+1])
		if err != nil {
			panic(err)
		}
		res = append(res, ir.KeyVal{Key: ir.FromString(kvs[i].(string)), Val: v})
	}
	return ir.FromKeyVals(res)
}

func mustProduct(t *testing.T, c *Children, opts ...ProductOption) *Product {
	t.Helper()
	n, err := NewProduct(c, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestProduct_NestedLoopOrder(t *testing.T) {
	n := mustProduct(t, Map(
		Named("a", NewSequence(ints(1, 2, 3))),
		Named("b", NewSequence(ints(10, 20, 30))),
	))
	if n.Len().N() != 9 {
		t.Fatalf("len = %s, want 9", n.Len())
	}
	got := mustCollect(t, n, -1)
	want := []*ir.Node{
		obj("a", 1, "b", 10), obj("a", 1, "b", 20), obj("a", 1, "b", 30),
		obj("a", 2, "b", 10), obj("a", 2, "b", 20), obj("a", 2, "b", 30),
		obj("a", 3, "b", 10), obj("a", 3, "b", 20), obj("a", 3, "b", 30),
	}
	wantValues(t, got, want)
}

func TestProduct_Positional(t *testing.T) {
	n := mustProduct(t, List(
		NewSequence(ints(1, 2)),
		NewSequence(ints(3, 4)),
	))
	got := mustCollect(t, n, -1)
	want := []*ir.Node{
		ir.FromSlice(ints(1, 3)), ir.FromSlice(ints(1, 4)),
		ir.FromSlice(ints(2, 3)), ir.FromSlice(ints(2, 4)),
	}
	wantValues(t, got, want)
}

func TestProduct_Snake(t *testing.T) {
	n := mustProduct(t, Map(
		Named("a", NewSequence(ints(0, 1, 2))),
		Named("b", NewSequence(ints(0, 1, 2))),
	), ProductSnake(true))
	got := mustCollect(t, n, -1)
	if len(got) != 9 {
		t.Fatalf("got %d values", len(got))
	}
	// consecutive values differ in exactly one key
	for i := 1; i < len(got); i++ {
		diff := 0
		for j, f := range got[i].Fields {
			prev := ir.Get(got[i-1], ir.KeyString(f))
			if !ir.Equal(prev, got[i].Values[j]) {
				diff++
			}
		}
		if diff != 1 {
			t.Errorf("step %d: %d keys changed, want 1", i, diff)
		}
	}
	// same value set as the plain product
	plain := mustCollect(t, mustProduct(t, n.Children()), -1)
	if !sameValueSet(got, plain) {
		t.Error("snake changed the value set")
	}
}

func sameValueSet(a, b []*ir.Node) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
outer:
	for _, v := range a {
		for j, w := range b {
			if !used[j] && ir.Equal(v, w) {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

func TestProduct_Lazy(t *testing.T) {
	n := mustProduct(t, Map(
		Named("a", NewSequence(ints(1, 2))),
		Named("b", NewSequence(ints(10, 20))),
	), ProductLazy(true))
	got := mustCollect(t, n, -1)
	want := []*ir.Node{
		obj("a", 1, "b", 10),
		obj("b", 20),
		obj("a", 2, "b", 10),
		obj("b", 20),
	}
	wantValues(t, got, want)
}

func TestProduct_LazyRequiresNames(t *testing.T) {
	_, err := NewProduct(List(NewSequence(ints(1))), ProductLazy(true))
	if err == nil {
		t.Fatal("expected error for lazy positional product")
	}
}

func TestProduct_EmptyChild(t *testing.T) {
	n := mustProduct(t, Map(
		Named("a", NewSequence(ints(1, 2))),
		Named("b", NewSequence(nil)),
	))
	if !n.Len().IsZero() {
		t.Fatalf("len = %s, want 0", n.Len())
	}
	wantValues(t, mustCollect(t, n, -1), nil)
}

func TestProduct_InfiniteChild(t *testing.T) {
	r, err := NewRandomFloat(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	n := mustProduct(t, Map(
		Named("a", NewSequence(ints(1, 2))),
		Named("r", r.WithSeed(3)),
	))
	if !n.Len().IsInf() {
		t.Fatalf("len = %s, want inf", n.Len())
	}
	got, err := Collect(mustIter(t, n), 5)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got {
		a := ir.Get(v, "a")
		if !ir.Equal(a, ir.FromInt(1)) {
			t.Errorf("value %d: a = %v, want 1 while the infinite child varies", i, a)
		}
	}
}

func mustIter(t *testing.T, n Node) *Iterator {
	t.Helper()
	it, err := n.Iter()
	if err != nil {
		t.Fatal(err)
	}
	return it
}
