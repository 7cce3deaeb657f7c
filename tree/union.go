package tree

import (
	"github.com/scanforge/sweeptree/ir"
)

// Union policies for the value emitted for a child outside its own phase.
const (
	HoldFirst   = "first"
	HoldLast    = "last"
	HoldDefault = "default"
	HoldNone    = "none"
)

// Union concatenates its children phase by phase: within a phase one
// child runs through its values while the others hold still. What a
// held child shows depends on whether its phase already ran (reset)
// or has not started yet (preset).
type Union struct {
	children     *Children
	reset        string
	preset       string
	commonPreset bool
}

// UnionOption configures a Union.
type UnionOption func(*Union)

// UnionReset sets the value shown for children whose phase already ran.
func UnionReset(policy string) UnionOption {
	return func(u *Union) { u.reset = policy }
}

// UnionPreset sets the value shown for children whose phase has not
// started yet.
func UnionPreset(policy string) UnionOption {
	return func(u *Union) { u.preset = policy }
}

// UnionCommonPreset skips the redundant first yield of each phase after
// the first, where the active child would repeat the preset value the
// previous phase already showed. Only effective with preset "first".
func UnionCommonPreset(on bool) UnionOption {
	return func(u *Union) { u.commonPreset = on }
}

func NewUnion(children *Children, opts ...UnionOption) (*Union, error) {
	n := &Union{children: children, reset: HoldFirst, preset: HoldFirst, commonPreset: true}
	for _, opt := range opts {
		opt(n)
	}
	if err := children.validate(KindUnion); err != nil {
		return nil, err
	}
	if !validHold(n.reset) {
		return nil, cfgErrf(KindUnion, "invalid reset policy %q", n.reset)
	}
	if !validPreset(n.preset) {
		return nil, cfgErrf(KindUnion, "invalid preset policy %q", n.preset)
	}
	if !children.IsMap() && (n.reset == HoldNone || n.preset == HoldNone) {
		return nil, cfgErrf(KindUnion, "hold policy %q requires named children", HoldNone)
	}
	return n, nil
}

func validHold(p string) bool {
	switch p {
	case HoldFirst, HoldLast, HoldDefault, HoldNone:
		return true
	}
	return false
}

// validPreset excludes "last": a pending child has not produced a last
// value, and asking an infinite child for one would never terminate.
func validPreset(p string) bool {
	switch p {
	case HoldFirst, HoldDefault, HoldNone:
		return true
	}
	return false
}

func newUnionFromParams(c *Children, p Params) (Node, error) {
	reset, err := paramString(KindUnion, p, "reset", HoldFirst)
	if err != nil {
		return nil, err
	}
	preset, err := paramString(KindUnion, p, "preset", HoldFirst)
	if err != nil {
		return nil, err
	}
	common, err := paramBool(KindUnion, p, "common_preset", true)
	if err != nil {
		return nil, err
	}
	return NewUnion(c, UnionReset(reset), UnionPreset(preset), UnionCommonPreset(common))
}

func (n *Union) Kind() Kind { return KindUnion }

// skipsFirst reports whether phases after the first non-empty one drop
// their first yield. That yield is redundant only when the preset value
// is the child's own first value.
func (n *Union) skipsFirst() bool {
	return n.commonPreset && n.preset == HoldFirst
}

// contribs returns how many yields each child's phase contributes, plus
// their total.
func (n *Union) contribs(lens []Length) ([]Length, Length) {
	out := make([]Length, len(lens))
	total := Fin(0)
	skip := n.skipsFirst()
	seen := false
	for i, l := range lens {
		c := l
		if skip && seen && !l.IsInf() && !l.IsZero() {
			c = Fin(l.N() - 1)
		}
		if !l.IsZero() {
			seen = true
		}
		out[i] = c
		total = total.Add(c)
	}
	return out, total
}

func (n *Union) Len() Length {
	_, total := n.contribs(n.children.lengths())
	return total
}

func (n *Union) Default() *ir.Node   { return childrenDefault(n.children) }
func (n *Union) Pseudo() *ir.Node    { return childrenPseudo(n.children) }
func (n *Union) Children() *Children { return n.children }

func (n *Union) Params() Params {
	return Params{
		"reset":         n.reset,
		"preset":        n.preset,
		"common_preset": n.commonPreset,
	}
}

func (n *Union) WithParams(p Params) (Node, error) {
	return newUnionFromParams(n.children, p)
}

func (n *Union) WithChildren(c *Children) (Node, error) {
	return NewUnion(c, UnionReset(n.reset), UnionPreset(n.preset), UnionCommonPreset(n.commonPreset))
}

func (n *Union) Iter() (*Iterator, error) { return newIterator(n) }

type unionAcc struct {
	node    *Union
	subs    []accessor
	lens    []Length
	contrib []Length
	l       Length
}

func compileUnion(n *Union) (accessor, error) {
	subs, err := compileChildren(n.children)
	if err != nil {
		return nil, err
	}
	lens := make([]Length, len(subs))
	for i, s := range subs {
		lens[i] = s.length()
	}
	contrib, total := n.contribs(lens)
	return &unionAcc{node: n, subs: subs, lens: lens, contrib: contrib, l: total}, nil
}

func (u *unionAcc) length() Length { return u.l }

// phase locates the child active at index i and i's offset into that
// child's own value sequence.
func (u *unionAcc) phase(i int) (active, inner int, err error) {
	rem := i
	seen := false
	for j, c := range u.contrib {
		if c.IsInf() || rem < c.N() {
			inner = rem
			if u.node.skipsFirst() && seen && !u.lens[j].IsZero() {
				inner++
			}
			if !u.lens[j].IsZero() {
				seen = true
			}
			return j, inner, nil
		}
		if !u.lens[j].IsZero() {
			seen = true
		}
		rem -= c.N()
	}
	return 0, 0, rangeErr(i, u.l)
}

// holdValue is the value a non-active child shows: policy says which.
// Empty children fall back to their default regardless of policy.
func (u *unionAcc) holdValue(j int, policy string) (*ir.Node, bool, error) {
	if policy == HoldNone {
		return nil, false, nil
	}
	l := u.lens[j]
	if l.IsZero() || policy == HoldDefault {
		d := u.node.children.nodes[j].Default()
		if d.IsNoDefault() {
			return nil, false, nil
		}
		return d, true, nil
	}
	switch policy {
	case HoldFirst:
		v, err := u.subs[j].at(0)
		return v, err == nil, err
	case HoldLast:
		v, err := u.subs[j].at(l.N() - 1)
		return v, err == nil, err
	}
	return nil, false, cfgErrf(KindUnion, "invalid hold policy %q", policy)
}

func (u *unionAcc) at(i int) (*ir.Node, error) {
	if !u.l.Contains(i) {
		return nil, rangeErr(i, u.l)
	}
	active, inner, err := u.phase(i)
	if err != nil {
		return nil, err
	}
	c := u.node.children
	kvs := make([]ir.KeyVal, 0, c.Len())
	vals := make([]*ir.Node, 0, c.Len())
	for j := range u.subs {
		var (
			v  *ir.Node
			ok bool
		)
		switch {
		case j == active:
			v, err = u.subs[j].at(inner)
			if err != nil {
				return nil, err
			}
			ok = true
		case j < active:
			v, ok, err = u.holdValue(j, u.node.reset)
		default:
			v, ok, err = u.holdValue(j, u.node.preset)
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			if c.IsMap() {
				continue
			}
			v = ir.NoDefault()
		}
		if c.IsMap() {
			kvs = append(kvs, ir.KeyVal{Key: c.keys[j], Val: v})
		} else {
			vals = append(vals, v)
		}
	}
	if c.IsMap() {
		return ir.FromKeyVals(kvs), nil
	}
	return ir.FromSlice(vals), nil
}
