package tree

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/scanforge/sweeptree/ir"
)

func ints(vs ...int64) []*ir.Node {
	res := make([]*ir.Node, len(vs))
	for i, v := range vs {
		res[i] = ir.FromInt(v)
	}
	return res
}

func mustCollect(t *testing.T, n Node, limit int) []*ir.Node {
	t.Helper()
	it, err := n.Iter()
	if err != nil {
		t.Fatal(err)
	}
	vals, err := Collect(it, limit)
	if err != nil {
		t.Fatal(err)
	}
	return vals
}

func wantValues(t *testing.T, got []*ir.Node, want []*ir.Node) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range got {
		if !ir.Equal(got[i], want[i]) {
			g, _ := json.Marshal(got[i])
			w, _ := json.Marshal(want[i])
			t.Errorf("value %d: got %s, want %s", i, g, w)
		}
	}
}

func TestLiteral(t *testing.T) {
	n := NewLiteral(ir.FromString("only"))
	if n.Len().N() != 1 {
		t.Fatalf("len = %s", n.Len())
	}
	if !ir.Equal(n.Default(), ir.FromString("only")) {
		t.Error("default is not the value")
	}
	wantValues(t, mustCollect(t, n, -1), []*ir.Node{ir.FromString("only")})
}

func TestSequence(t *testing.T) {
	n := NewSequence(ints(1, 2, 3))
	wantValues(t, mustCollect(t, n, -1), ints(1, 2, 3))
	if !n.Default().IsNoDefault() {
		t.Error("undeclared default should be NoDefault")
	}

	d := NewSequence(ints(1, 2), WithDefault(ir.FromInt(2)))
	if !ir.Equal(d.Default(), ir.FromInt(2)) {
		t.Error("declared default lost")
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name              string
		start, stop, step int64
		want              []*ir.Node
	}{
		{"unit step", 0, 4, 1, ints(0, 1, 2, 3)},
		{"stride", 0, 10, 3, ints(0, 3, 6, 9)},
		{"uneven end", 1, 6, 2, ints(1, 3, 5)},
		{"descending", 5, 0, -2, ints(5, 3, 1)},
		{"empty", 3, 3, 1, nil},
		{"wrong direction", 0, 5, -1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewIntRange(tt.start, tt.stop, tt.step)
			if err != nil {
				t.Fatal(err)
			}
			if n.Len().N() != len(tt.want) {
				t.Fatalf("len = %s, want %d", n.Len(), len(tt.want))
			}
			wantValues(t, mustCollect(t, n, -1), tt.want)
		})
	}
}

func TestRange_ZeroStep(t *testing.T) {
	var cfgErr *ConfigurationError
	_, err := NewIntRange(0, 5, 0)
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	_, err = NewFloatRange(0, 1, 0)
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestRange_Float(t *testing.T) {
	n, err := NewFloatRange(0, 1, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if n.Len().N() != 4 {
		t.Fatalf("len = %s, want 4", n.Len())
	}
	vals := mustCollect(t, n, -1)
	want := []float64{0, 0.25, 0.5, 0.75}
	for i, w := range want {
		if !ir.Equal(vals[i], ir.FromFloat(w)) {
			t.Errorf("value %d: got %v, want %v", i, vals[i], w)
		}
	}
}

func TestLeaf_WithParamsRoundTrip(t *testing.T) {
	nodes := []Node{
		NewLiteral(ir.FromInt(7)),
		NewSequence(ints(1, 2, 3), WithDefault(ir.FromInt(2))),
		mustRange(t, 0, 10, 2),
	}
	for _, n := range nodes {
		rebuilt, err := n.WithParams(n.Params())
		if err != nil {
			t.Fatalf("%s: %v", n.Kind(), err)
		}
		wantValues(t, mustCollect(t, rebuilt, -1), mustCollect(t, n, -1))
		if !ir.Equal(rebuilt.Default(), n.Default()) {
			t.Errorf("%s: default changed", n.Kind())
		}
	}
}

func mustRange(t *testing.T, start, stop, step int64) *Range {
	t.Helper()
	n, err := NewIntRange(start, stop, step)
	if err != nil {
		t.Fatal(err)
	}
	return n
}
