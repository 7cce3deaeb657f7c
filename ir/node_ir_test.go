package ir

import (
	"math/big"
	"testing"
)

func TestCompare_TotalOrder(t *testing.T) {
	// ascending in rank and within rank
	nodes := []*Node{
		NoDefault(),
		Null(),
		FromBool(false),
		FromBool(true),
		FromInt(-1),
		FromInt(0),
		FromFloat(0.5),
		FromInt(1),
		FromString("a"),
		FromString("b"),
		FromSlice([]*Node{FromInt(1)}),
		FromSlice([]*Node{FromInt(2)}),
		FromMap(map[string]*Node{"a": FromInt(1)}),
	}
	for i := range nodes {
		for j := range nodes {
			got := Compare(nodes[i], nodes[j])
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got != want {
				t.Errorf("Compare(%d, %d) = %d, want %d", i, j, got, want)
			}
		}
	}
}

func TestEqual_NumbersAcrossRepresentations(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"int vs float", FromInt(2), FromFloat(2.0), true},
		{"int vs big", FromInt(7), FromBigInt(big.NewInt(7)), true},
		{"distinct ints", FromInt(2), FromInt(3), false},
		{"float precision", FromFloat(0.1), FromFloat(0.2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHash_EqualNodesCollide(t *testing.T) {
	pairs := [][2]*Node{
		{FromInt(2), FromFloat(2.0)},
		{FromString("x"), FromString("x")},
		{
			FromMap(map[string]*Node{"a": FromInt(1), "b": FromInt(2)}),
			FromMap(map[string]*Node{"b": FromInt(2), "a": FromInt(1)}),
		},
	}
	for i, p := range pairs {
		if !Equal(p[0], p[1]) {
			t.Fatalf("pair %d: not Equal", i)
		}
		if p[0].Hash() != p[1].Hash() {
			t.Errorf("pair %d: equal nodes hash differently", i)
		}
	}
}

func TestFromGoAny_RoundTrip(t *testing.T) {
	in := map[string]any{
		"s":    "str",
		"i":    int64(3),
		"f":    1.5,
		"b":    true,
		"null": nil,
		"arr":  []any{int64(1), "two"},
		"obj":  map[string]any{"k": int64(9)},
	}
	n, err := FromGoAny(in)
	if err != nil {
		t.Fatal(err)
	}
	out, ok := ToGoAny(n).(map[string]any)
	if !ok {
		t.Fatalf("ToGoAny: expected map, got %T", ToGoAny(n))
	}
	back, err := FromGoAny(out)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(n, back) {
		t.Errorf("round trip changed value")
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		node *Node
		want string
	}{
		{FromString("a"), "a"},
		{FromInt(42), "42"},
		{FromBool(true), "true"},
	}
	for _, tt := range tests {
		if got := KeyString(tt.node); got != tt.want {
			t.Errorf("KeyString = %q, want %q", got, tt.want)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	orig := FromMap(map[string]*Node{"a": FromInt(1)})
	c := orig.Clone()
	if !Equal(orig, c) {
		t.Fatal("clone differs")
	}
	c.Fields = append(c.Fields, FromString("b"))
	c.Values = append(c.Values, FromInt(2))
	if len(orig.Fields) != 1 {
		t.Error("mutating clone changed original")
	}
}
