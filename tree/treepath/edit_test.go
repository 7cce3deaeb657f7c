package treepath

import (
	"errors"
	"testing"

	"github.com/scanforge/sweeptree/ir"
	"github.com/scanforge/sweeptree/tree"
)

func ints(vs ...int64) []*ir.Node {
	res := make([]*ir.Node, len(vs))
	for i, v := range vs {
		res[i] = ir.FromInt(v)
	}
	return res
}

func testTree(t *testing.T) tree.Node {
	t.Helper()
	inner, err := tree.NewProduct(tree.Map(
		tree.Named("c", tree.NewSequence(ints(1, 2))),
		tree.Named("d", tree.NewSequence(ints(3, 4))),
	))
	if err != nil {
		t.Fatal(err)
	}
	root, err := tree.NewProduct(tree.Map(
		tree.Named("a", tree.NewSequence(ints(10, 20))),
		tree.Named("b", inner),
	))
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func TestGet(t *testing.T) {
	root := testTree(t)
	n, err := Get(root, "b.c")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind() != tree.KindSequence {
		t.Errorf("kind = %s, want Sequence", n.Kind())
	}
	n, err = Get(root, "")
	if err != nil {
		t.Fatal(err)
	}
	if n != root {
		t.Error("empty path should resolve to the root")
	}
	n, err = Get(root, "b[1]")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind() != tree.KindSequence {
		t.Errorf("positional segment resolved to %s", n.Kind())
	}

	var pathErr *tree.PathError
	if _, err := Get(root, "b.zzz"); !errors.As(err, &pathErr) {
		t.Fatalf("expected PathError, got %v", err)
	}
	if _, err := Get(root, "a.b"); !errors.As(err, &pathErr) {
		t.Fatalf("expected PathError descending into a leaf, got %v", err)
	}
}

func TestWithParams_MergesAndShares(t *testing.T) {
	root := testTree(t)
	edited, err := WithParams(root, "b", tree.Params{"snake": true})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Get(edited, "b")
	if err != nil {
		t.Fatal(err)
	}
	if b.Params()["snake"] != true {
		t.Error("snake not set")
	}
	if b.Params()["lazy"] != false {
		t.Error("merge dropped an unrelated parameter")
	}

	// the original is untouched
	ob, _ := Get(root, "b")
	if ob.Params()["snake"] != false {
		t.Error("edit modified the input tree")
	}
	// subtrees off the spine are shared
	oa, _ := Get(root, "a")
	ea, _ := Get(edited, "a")
	if oa != ea {
		t.Error("untouched subtree was copied")
	}
}

func TestWithParams_NullDeletes(t *testing.T) {
	r, err := tree.NewRandomFloat(0, 1, tree.WithCount(5))
	if err != nil {
		t.Fatal(err)
	}
	if r.Len().IsInf() || r.Len().N() != 5 {
		t.Fatalf("len = %s, want 5", r.Len())
	}
	edited, err := WithParams(tree.Node(r), "", tree.Params{"n": nil})
	if err != nil {
		t.Fatal(err)
	}
	if !edited.Len().IsInf() {
		t.Errorf("len = %s, want inf after deleting n", edited.Len())
	}
}

func TestWithParams_Revalidates(t *testing.T) {
	root := testTree(t)
	var cfgErr *tree.ConfigurationError
	if _, err := WithParams(root, "b", tree.Params{"snake": "yes"}); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestSet(t *testing.T) {
	root := testTree(t)
	edited, err := Set(root, "b.c", tree.NewSequence(ints(7, 8, 9)))
	if err != nil {
		t.Fatal(err)
	}
	n, err := Get(edited, "b.c")
	if err != nil {
		t.Fatal(err)
	}
	if n.Len().N() != 3 {
		t.Errorf("len = %s, want 3", n.Len())
	}
	old, _ := Get(root, "b.c")
	if old.Len().N() != 2 {
		t.Error("edit modified the input tree")
	}
}

func TestConvert(t *testing.T) {
	root := testTree(t)
	edited, err := Convert(root, "b", "!zip", tree.Params{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Get(edited, "b")
	if err != nil {
		t.Fatal(err)
	}
	if b.Kind() != tree.KindZip {
		t.Fatalf("kind = %s, want Zip", b.Kind())
	}
	if b.Children().Len() != 2 {
		t.Error("children did not carry over")
	}
	if b.Len().N() != 2 {
		t.Errorf("len = %s, want 2 (zip of two pairs)", b.Len())
	}

	var convErr *tree.ConversionError
	if _, err := Convert(root, "b", "!literal", tree.Params{"value": 1}); !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if _, err := Convert(root, "a", "!product", tree.Params{}); !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError converting a leaf to n-ary, got %v", err)
	}
}

func TestInsertRemoveChild(t *testing.T) {
	root := testTree(t)
	edited, err := AppendChild(root, "b", ir.FromString("e"), tree.NewSequence(ints(5)))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Get(edited, "b")
	if b.Children().Len() != 3 {
		t.Fatalf("children = %d, want 3", b.Children().Len())
	}
	if _, err := Get(edited, "b.e"); err != nil {
		t.Fatal(err)
	}

	removed, err := RemoveChild(edited, "b.e")
	if err != nil {
		t.Fatal(err)
	}
	b, _ = Get(removed, "b")
	if b.Children().Len() != 2 {
		t.Errorf("children = %d, want 2 after removal", b.Children().Len())
	}

	// duplicate keys are rejected by revalidation
	if _, err := AppendChild(root, "b", ir.FromString("c"), tree.NewSequence(ints(1))); err == nil {
		t.Error("expected error inserting a duplicate key")
	}
}

func TestWrapUnwrap(t *testing.T) {
	root := testTree(t)
	wrapped, err := Wrap(root, "b", "!first", tree.Params{"n": 2})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Get(wrapped, "b")
	if err != nil {
		t.Fatal(err)
	}
	if b.Kind() != tree.KindFirst {
		t.Fatalf("kind = %s, want First", b.Kind())
	}
	if b.Len().N() != 2 {
		t.Errorf("len = %s, want 2", b.Len())
	}

	unwrapped, err := Unwrap(wrapped, "b")
	if err != nil {
		t.Fatal(err)
	}
	b, _ = Get(unwrapped, "b")
	if b.Kind() != tree.KindProduct {
		t.Errorf("kind = %s, want Product after unwrap", b.Kind())
	}

	if _, err := Unwrap(root, "b"); err == nil {
		t.Error("expected error unwrapping a non-unary node")
	}
}

func TestSeedSurvivesParamRoundTrip(t *testing.T) {
	r, err := tree.NewRandomFloat(0, 1, tree.WithCount(2))
	if err != nil {
		t.Fatal(err)
	}
	seeded, err := tree.GenerateSeeds(tree.Node(r), tree.WithRootSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	// a parameter edit unrelated to the seed keeps it
	edited, err := WithParams(seeded, "", tree.Params{"n": 4})
	if err != nil {
		t.Fatal(err)
	}
	rs := edited.(tree.RandomSource)
	want, _ := seeded.(tree.RandomSource).Seed()
	if got, ok := rs.Seed(); !ok || got != want {
		t.Errorf("seed changed across a parameter edit: %v %v", got, ok)
	}
	if edited.Len().N() != 4 {
		t.Errorf("len = %s, want 4", edited.Len())
	}
}
