package tree

import (
	randv2 "math/rand/v2"

	"github.com/scanforge/sweeptree/ir"
)

// Pick interleaves its children: each yield takes the next value of one
// child, chosen uniformly among the children that still have values
// left. Named children wrap each yield in a one-field record naming the
// chosen child. The interleaving order depends on the seed; the values
// drawn from each child and their relative order do not.
type Pick struct {
	children *Children
	seed     *uint64
}

func NewPick(children *Children) (*Pick, error) {
	n := &Pick{children: children}
	if err := children.validate(KindPick); err != nil {
		return nil, err
	}
	return n, nil
}

func newPickFromParams(c *Children, p Params) (Node, error) {
	seed, err := paramSeed(KindPick, p)
	if err != nil {
		return nil, err
	}
	n, err := NewPick(c)
	if err != nil {
		return nil, err
	}
	n.seed = seed
	return n, nil
}

func (n *Pick) Kind() Kind { return KindPick }

func (n *Pick) Len() Length {
	l := Fin(0)
	for _, c := range n.children.nodes {
		l = l.Add(c.Len())
	}
	return l
}

func (n *Pick) Default() *ir.Node   { return childrenDefault(n.children) }
func (n *Pick) Children() *Children { return n.children }

func (n *Pick) Pseudo() *ir.Node {
	return childrenPseudo(n.children).WithTag(KindPick.Tag())
}

func (n *Pick) Seed() (uint64, bool) {
	if n.seed == nil {
		return 0, false
	}
	return *n.seed, true
}

func (n *Pick) WithSeed(seed uint64) Node {
	c := *n
	c.seed = &seed
	return &c
}

func (n *Pick) Params() Params {
	return seedParam(Params{}, n.seed)
}

func (n *Pick) WithParams(p Params) (Node, error) {
	return newPickFromParams(n.children, p)
}

func (n *Pick) WithChildren(c *Children) (Node, error) {
	p, err := NewPick(c)
	if err != nil {
		return nil, err
	}
	p.seed = n.seed
	return p, nil
}

func (n *Pick) Iter() (*Iterator, error) { return newIterator(n) }

// pickStepper draws one child value per step. It is inherently
// sequential: the set of live children at step i depends on every draw
// before it, so random access goes through a replaying accessor.
type pickStepper struct {
	node   *Pick
	subs   []accessor
	cursor []int
	rng    *randv2.Rand
}

func compilePick(n *Pick) (accessor, error) {
	if n.seed == nil {
		return nil, cfgErrf(KindPick, "no seed assigned; run GenerateSeeds before iterating")
	}
	subs, err := compileChildren(n.children)
	if err != nil {
		return nil, err
	}
	st := &pickStepper{
		node:   n,
		subs:   subs,
		cursor: make([]int, len(subs)),
		rng:    indexRNG(*n.seed, 0),
	}
	return newOneWay(st, n.Len()), nil
}

func (s *pickStepper) step() (*ir.Node, error) {
	live := make([]int, 0, len(s.subs))
	for j, sub := range s.subs {
		if sub.length().Contains(s.cursor[j]) {
			live = append(live, j)
		}
	}
	if len(live) == 0 {
		return nil, ErrExhausted
	}
	j := live[s.rng.IntN(len(live))]
	v, err := s.subs[j].at(s.cursor[j])
	if err != nil {
		return nil, err
	}
	s.cursor[j]++
	c := s.node.children
	if !c.IsMap() {
		return v, nil
	}
	return ir.FromKeyVals([]ir.KeyVal{{Key: c.keys[j], Val: v}}), nil
}
