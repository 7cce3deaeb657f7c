package tree

import (
	"math"
	"slices"

	"github.com/scanforge/sweeptree/ir"
)

// Literal is a single fixed value; length 1, default is the value itself.
type Literal struct {
	value *ir.Node
}

func NewLiteral(v *ir.Node) *Literal {
	return &Literal{value: v}
}

func newLiteralFromParams(p Params) (Node, error) {
	v, err := paramNode(KindLiteral, p, "value")
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, cfgErrf(KindLiteral, "missing value")
	}
	return NewLiteral(v), nil
}

func (n *Literal) Kind() Kind          { return KindLiteral }
func (n *Literal) Len() Length         { return Fin(1) }
func (n *Literal) Default() *ir.Node   { return n.value }
func (n *Literal) Pseudo() *ir.Node    { return n.value }
func (n *Literal) Children() *Children { return nil }
func (n *Literal) Params() Params {
	return Params{"value": n.value}
}
func (n *Literal) WithParams(p Params) (Node, error) {
	return newLiteralFromParams(p)
}
func (n *Literal) WithChildren(*Children) (Node, error) {
	return nil, cfgErrf(KindLiteral, "leaf has no children")
}
func (n *Literal) Iter() (*Iterator, error) { return newIterator(n) }

func (n *Literal) at(i int) (*ir.Node, error) {
	if i != 0 {
		return nil, rangeErr(i, n.Len())
	}
	return n.value, nil
}

// Sequence enumerates an explicit list of values in order.
type Sequence struct {
	elems []*ir.Node
	def   *ir.Node // nil when no default is declared
}

func NewSequence(elems []*ir.Node, opts ...LeafOption) *Sequence {
	o := applyLeafOptions(opts)
	return &Sequence{elems: slices.Clone(elems), def: o.def}
}

func newSequenceFromParams(p Params) (Node, error) {
	elems, err := paramNodes(KindSequence, p, "elements")
	if err != nil {
		return nil, err
	}
	def, err := paramNode(KindSequence, p, "default")
	if err != nil {
		return nil, err
	}
	var opts []LeafOption
	if def != nil {
		opts = append(opts, WithDefault(def))
	}
	return NewSequence(elems, opts...), nil
}

func (n *Sequence) Kind() Kind  { return KindSequence }
func (n *Sequence) Len() Length { return Fin(len(n.elems)) }

func (n *Sequence) Default() *ir.Node {
	if n.def != nil {
		return n.def
	}
	return ir.NoDefault()
}

func (n *Sequence) Pseudo() *ir.Node {
	if len(n.elems) == 1 {
		return n.elems[0]
	}
	return placeholder(n)
}

func (n *Sequence) Children() *Children { return nil }

func (n *Sequence) Params() Params {
	p := Params{"elements": slices.Clone(n.elems)}
	if n.def != nil {
		p["default"] = n.def
	}
	return p
}

func (n *Sequence) WithParams(p Params) (Node, error) {
	return newSequenceFromParams(p)
}

func (n *Sequence) WithChildren(*Children) (Node, error) {
	return nil, cfgErrf(KindSequence, "leaf has no children")
}

func (n *Sequence) Iter() (*Iterator, error) { return newIterator(n) }

func (n *Sequence) at(i int) (*ir.Node, error) {
	if i < 0 || i >= len(n.elems) {
		return nil, rangeErr(i, n.Len())
	}
	return n.elems[i], nil
}

// Elements returns the sequence values (shared, not copied).
func (n *Sequence) Elements() []*ir.Node { return n.elems }

// LeafOption configures optional leaf parameters.
type LeafOption func(*leafOpts)

type leafOpts struct {
	def *ir.Node
	n   *int
}

// WithDefault declares the leaf's default value.
func WithDefault(d *ir.Node) LeafOption {
	return func(o *leafOpts) { o.def = d }
}

// WithCount bounds a random leaf to n values instead of an infinite
// stream.
func WithCount(n int) LeafOption {
	return func(o *leafOpts) { o.n = &n }
}

func applyLeafOptions(opts []LeafOption) *leafOpts {
	o := &leafOpts{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Range enumerates an arithmetic progression [start, stop) with the given
// step, in either integer or floating-point arithmetic.
type Range struct {
	isFloat              bool
	istart, istop, istep int64
	fstart, fstop, fstep float64
	def                  *ir.Node
}

func NewIntRange(start, stop, step int64, opts ...LeafOption) (*Range, error) {
	if step == 0 {
		return nil, cfgErrf(KindRange, "zero step")
	}
	o := applyLeafOptions(opts)
	return &Range{istart: start, istop: stop, istep: step, def: o.def}, nil
}

func NewFloatRange(start, stop, step float64, opts ...LeafOption) (*Range, error) {
	if step == 0 {
		return nil, cfgErrf(KindRange, "zero step")
	}
	o := applyLeafOptions(opts)
	return &Range{isFloat: true, fstart: start, fstop: stop, fstep: step, def: o.def}, nil
}

func newRangeFromParams(p Params) (Node, error) {
	num := func(key string) (float64, bool, bool, error) {
		v, ok := p[key]
		if !ok || v == nil {
			return 0, false, false, nil
		}
		switch t := v.(type) {
		case int:
			return float64(t), false, true, nil
		case int64:
			return float64(t), false, true, nil
		case float64:
			if t == math.Trunc(t) && math.Abs(t) < 1e15 {
				// JSON numbers arrive as float64; whole values stay integral
				return t, false, true, nil
			}
			return t, true, true, nil
		default:
			return 0, false, false, cfgErrf(KindRange, "%s: expected number, got %T", key, v)
		}
	}
	start, fs, _, err := num("start")
	if err != nil {
		return nil, err
	}
	stop, ft, okStop, err := num("stop")
	if err != nil {
		return nil, err
	}
	if !okStop {
		return nil, cfgErrf(KindRange, "missing stop")
	}
	step, fp, okStep, err := num("step")
	if err != nil {
		return nil, err
	}
	if !okStep {
		step = 1
	}
	def, err := paramNode(KindRange, p, "default")
	if err != nil {
		return nil, err
	}
	var opts []LeafOption
	if def != nil {
		opts = append(opts, WithDefault(def))
	}
	if fs || ft || fp || p.has("float") {
		isFloat, err := paramBool(KindRange, p, "float", true)
		if err != nil {
			return nil, err
		}
		if isFloat {
			return NewFloatRange(start, stop, step, opts...)
		}
	}
	return NewIntRange(int64(start), int64(stop), int64(step), opts...)
}

func (n *Range) Kind() Kind { return KindRange }

func (n *Range) Len() Length {
	if n.isFloat {
		c := math.Ceil((n.fstop - n.fstart) / n.fstep)
		if c <= 0 || math.IsNaN(c) {
			return Fin(0)
		}
		return Fin(int(c))
	}
	span := n.istop - n.istart
	if (span > 0) != (n.istep > 0) || span == 0 {
		return Fin(0)
	}
	// ceil division toward the step direction
	step := n.istep
	if step < 0 {
		span, step = -span, -step
	}
	return Fin(int((span + step - 1) / step))
}

func (n *Range) Default() *ir.Node {
	if n.def != nil {
		return n.def
	}
	return ir.NoDefault()
}

func (n *Range) Pseudo() *ir.Node {
	if n.Len().N() == 1 {
		v, _ := n.at(0)
		return v
	}
	return placeholder(n)
}

func (n *Range) Children() *Children { return nil }

func (n *Range) Params() Params {
	p := Params{}
	if n.isFloat {
		p["start"], p["stop"], p["step"], p["float"] = n.fstart, n.fstop, n.fstep, true
	} else {
		p["start"], p["stop"], p["step"] = n.istart, n.istop, n.istep
	}
	if n.def != nil {
		p["default"] = n.def
	}
	return p
}

func (n *Range) WithParams(p Params) (Node, error) {
	return newRangeFromParams(p)
}

func (n *Range) WithChildren(*Children) (Node, error) {
	return nil, cfgErrf(KindRange, "leaf has no children")
}

func (n *Range) Iter() (*Iterator, error) { return newIterator(n) }

func (n *Range) at(i int) (*ir.Node, error) {
	if !n.Len().Contains(i) {
		return nil, rangeErr(i, n.Len())
	}
	if n.isFloat {
		return ir.FromFloat(n.fstart + float64(i)*n.fstep), nil
	}
	return ir.FromInt(n.istart + int64(i)*n.istep), nil
}
