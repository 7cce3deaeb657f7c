package tree

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/scanforge/sweeptree/ir"
)

// Shuffle yields its child's values in a seed-determined permutation.
// The child must be finite.
type Shuffle struct {
	child Node
	seed  *uint64
}

func NewShuffle(child Node) (*Shuffle, error) {
	if child.Len().IsInf() {
		return nil, cfgErrf(KindShuffle, "cannot shuffle an infinite child")
	}
	return &Shuffle{child: child}, nil
}

func newShuffleFromParams(child Node, p Params) (Node, error) {
	seed, err := paramSeed(KindShuffle, p)
	if err != nil {
		return nil, err
	}
	n, err := NewShuffle(child)
	if err != nil {
		return nil, err
	}
	n.seed = seed
	return n, nil
}

func (n *Shuffle) Kind() Kind          { return KindShuffle }
func (n *Shuffle) Len() Length         { return n.child.Len() }
func (n *Shuffle) Default() *ir.Node   { return n.child.Default() }
func (n *Shuffle) Pseudo() *ir.Node    { return unaryPseudo(n, n.child) }
func (n *Shuffle) Children() *Children { return List(n.child) }

func (n *Shuffle) Seed() (uint64, bool) {
	if n.seed == nil {
		return 0, false
	}
	return *n.seed, true
}

func (n *Shuffle) WithSeed(seed uint64) Node {
	c := *n
	c.seed = &seed
	return &c
}

func (n *Shuffle) Params() Params {
	return seedParam(Params{}, n.seed)
}

func (n *Shuffle) WithParams(p Params) (Node, error) {
	return newShuffleFromParams(n.child, p)
}

func (n *Shuffle) WithChildren(c *Children) (Node, error) {
	if c.Len() != 1 {
		return nil, cfgErrf(KindShuffle, "expected exactly one child, got %d", c.Len())
	}
	s, err := NewShuffle(c.At(0))
	if err != nil {
		return nil, err
	}
	s.seed = n.seed
	return s, nil
}

func (n *Shuffle) Iter() (*Iterator, error) { return newIterator(n) }

func compileShuffle(n *Shuffle) (accessor, error) {
	if n.seed == nil {
		return nil, cfgErrf(KindShuffle, "no seed assigned; run GenerateSeeds before iterating")
	}
	sub, err := compile(n.child)
	if err != nil {
		return nil, err
	}
	l := sub.length()
	perm := indexRNG(*n.seed, 0).Perm(l.N())
	return fnAcc{l, func(i int) (*ir.Node, error) {
		if !l.Contains(i) {
			return nil, rangeErr(i, l)
		}
		return sub.at(perm[i])
	}}, nil
}

// First truncates its child to at most n values.
type First struct {
	child Node
	n     int
}

func NewFirst(child Node, n int) (*First, error) {
	if n < 0 {
		return nil, cfgErrf(KindFirst, "negative count %d", n)
	}
	return &First{child: child, n: n}, nil
}

func newFirstFromParams(child Node, p Params) (Node, error) {
	n, ok, err := paramInt(KindFirst, p, "n")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, cfgErrf(KindFirst, "missing required param %q", "n")
	}
	return NewFirst(child, n)
}

func (n *First) Kind() Kind { return KindFirst }

func (n *First) Len() Length {
	return n.child.Len().Min(Fin(n.n))
}

func (n *First) Default() *ir.Node   { return n.child.Default() }
func (n *First) Pseudo() *ir.Node    { return unaryPseudo(n, n.child) }
func (n *First) Children() *Children { return List(n.child) }

func (n *First) Params() Params { return Params{"n": n.n} }

func (n *First) WithParams(p Params) (Node, error) {
	return newFirstFromParams(n.child, p)
}

func (n *First) WithChildren(c *Children) (Node, error) {
	if c.Len() != 1 {
		return nil, cfgErrf(KindFirst, "expected exactly one child, got %d", c.Len())
	}
	return NewFirst(c.At(0), n.n)
}

func (n *First) Iter() (*Iterator, error) { return newIterator(n) }

func compileFirst(n *First) (accessor, error) {
	sub, err := compile(n.child)
	if err != nil {
		return nil, err
	}
	l := sub.length().Min(Fin(n.n))
	return fnAcc{l, func(i int) (*ir.Node, error) {
		if !l.Contains(i) {
			return nil, rangeErr(i, l)
		}
		return sub.at(i)
	}}, nil
}

// Transform rewrites its child's values. Pointwise ops (Go functions and
// compiled expressions) map value i to a new value independently; lazify
// and accumulate relate consecutive values and so constrain iteration
// the way any order-dependent op does.
type Transform struct {
	child Node
	op    transformOp
}

type transformOp interface {
	name() string
	opParams() Params
}

// pointwiseOp transforms one value with no cross-value state.
type pointwiseOp interface {
	transformOp
	apply(v *ir.Node) (*ir.Node, error)
}

// funcOp wraps an in-process Go function. It survives WithParams as long
// as the op name stays "func"; it cannot be rebuilt from parameters.
type funcOp struct {
	fn func(v *ir.Node) (*ir.Node, error)
}

func (o funcOp) name() string     { return "func" }
func (o funcOp) opParams() Params { return Params{} }
func (o funcOp) apply(v *ir.Node) (*ir.Node, error) {
	return o.fn(v)
}

// exprOp evaluates a compiled expression with the child value bound to
// "value".
type exprOp struct {
	src string
	prg *vm.Program
}

func newExprOp(src string) (exprOp, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return exprOp{}, cfgErrf(KindTransform, "bad expression %q: %v", src, err)
	}
	return exprOp{src: src, prg: prg}, nil
}

// exprOpts registers the helper functions available to expressions.
func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("truthy", func(params ...any) (any, error) {
			n, err := ir.FromGoAny(params[0])
			if err != nil {
				return nil, err
			}
			return ir.Truth(n), nil
		},
			new(func(any) bool)),
	}
}

func (o exprOp) name() string     { return "expr" }
func (o exprOp) opParams() Params { return Params{"src": o.src} }

func (o exprOp) apply(v *ir.Node) (*ir.Node, error) {
	env := map[string]any{"value": ir.ToGoAny(v)}
	out, err := expr.Run(o.prg, env)
	if err != nil {
		return nil, cfgErrf(KindTransform, "expression %q: %v", o.src, err)
	}
	res, err := ir.FromGoAny(out)
	if err != nil {
		return nil, cfgErrf(KindTransform, "expression %q: %v", o.src, err)
	}
	return res, nil
}

// lazifyOp reduces each value after the first to the fields that changed
// from its predecessor.
type lazifyOp struct{}

func (lazifyOp) name() string     { return "lazify" }
func (lazifyOp) opParams() Params { return Params{} }

// accumOp merges each value over all its predecessors, so sparse
// sequences (lazy products, omitting unions) become self-contained.
type accumOp struct{}

func (accumOp) name() string     { return "accumulate" }
func (accumOp) opParams() Params { return Params{} }

// NewTransform applies an in-process Go function pointwise.
func NewTransform(child Node, fn func(v *ir.Node) (*ir.Node, error)) *Transform {
	return &Transform{child: child, op: funcOp{fn: fn}}
}

// NewExprTransform applies a compiled expression pointwise; the child
// value is bound to "value".
func NewExprTransform(child Node, src string) (*Transform, error) {
	op, err := newExprOp(src)
	if err != nil {
		return nil, err
	}
	return &Transform{child: child, op: op}, nil
}

// NewLazify reduces each value after the first to its changed fields.
func NewLazify(child Node) *Transform {
	return &Transform{child: child, op: lazifyOp{}}
}

// NewAccumulator merges each value over all of its predecessors.
func NewAccumulator(child Node) *Transform {
	return &Transform{child: child, op: accumOp{}}
}

func newTransformFromParams(child Node, prev transformOp, p Params) (Node, error) {
	name, err := paramString(KindTransform, p, "op", "")
	if err != nil {
		return nil, err
	}
	switch name {
	case "expr":
		src, err := paramString(KindTransform, p, "src", "")
		if err != nil {
			return nil, err
		}
		if src == "" {
			return nil, cfgErrf(KindTransform, "missing required param %q", "src")
		}
		op, err := newExprOp(src)
		if err != nil {
			return nil, err
		}
		return &Transform{child: child, op: op}, nil
	case "lazify":
		return &Transform{child: child, op: lazifyOp{}}, nil
	case "accumulate":
		return &Transform{child: child, op: accumOp{}}, nil
	case "func":
		if prev == nil || prev.name() != "func" {
			return nil, cfgErrf(KindTransform, "op %q cannot be built from parameters", "func")
		}
		return &Transform{child: child, op: prev}, nil
	}
	return nil, cfgErrf(KindTransform, "unknown op %q", name)
}

func (n *Transform) Kind() Kind          { return KindTransform }
func (n *Transform) Len() Length         { return n.child.Len() }
func (n *Transform) Pseudo() *ir.Node    { return unaryPseudo(n, n.child) }
func (n *Transform) Children() *Children { return List(n.child) }

func (n *Transform) Default() *ir.Node {
	d := n.child.Default()
	if d.IsNoDefault() {
		return d
	}
	pw, ok := n.op.(pointwiseOp)
	if !ok {
		return d
	}
	out, err := pw.apply(d)
	if err != nil {
		return ir.NoDefault()
	}
	return out
}

func (n *Transform) Params() Params {
	p := Params{"op": n.op.name()}
	for k, v := range n.op.opParams() {
		p[k] = v
	}
	return p
}

func (n *Transform) WithParams(p Params) (Node, error) {
	return newTransformFromParams(n.child, n.op, p)
}

func (n *Transform) WithChildren(c *Children) (Node, error) {
	if c.Len() != 1 {
		return nil, cfgErrf(KindTransform, "expected exactly one child, got %d", c.Len())
	}
	return &Transform{child: c.At(0), op: n.op}, nil
}

func (n *Transform) Iter() (*Iterator, error) { return newIterator(n) }

func compileTransform(n *Transform) (accessor, error) {
	sub, err := compile(n.child)
	if err != nil {
		return nil, err
	}
	l := sub.length()
	switch op := n.op.(type) {
	case pointwiseOp:
		return fnAcc{l, func(i int) (*ir.Node, error) {
			v, err := sub.at(i)
			if err != nil {
				return nil, err
			}
			return op.apply(v)
		}}, nil
	case lazifyOp:
		return fnAcc{l, func(i int) (*ir.Node, error) {
			v, err := sub.at(i)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				return v, nil
			}
			prev, err := sub.at(i - 1)
			if err != nil {
				return nil, err
			}
			return changedFields(prev, v), nil
		}}, nil
	case accumOp:
		return newOneWay(&accumStepper{sub: sub}, l), nil
	}
	return nil, cfgErrf(KindTransform, "unknown op %q", n.op.name())
}

// accumStepper folds carryForward over the child sequence.
type accumStepper struct {
	sub    accessor
	i      int
	merged *ir.Node
}

func (s *accumStepper) step() (*ir.Node, error) {
	if !s.sub.length().Contains(s.i) {
		return nil, ErrExhausted
	}
	v, err := s.sub.at(s.i)
	if err != nil {
		return nil, err
	}
	s.i++
	if s.merged == nil {
		s.merged = v
	} else {
		s.merged = carryForward(s.merged, v)
	}
	return s.merged, nil
}
