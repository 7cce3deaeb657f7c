package tree

import (
	"github.com/scanforge/sweeptree/ir"
)

// Node is one node of an iteration tree: a recipe for enumerating a
// sequence of data trees. Nodes are immutable after construction and may
// be freely shared between trees; every transformation in this package and
// in treepath returns a new node.
//
// The kind family is closed: Literal, Sequence, Range, RandomFloat,
// RandomBigInt, RandomPrime (leaves); Product, Union, Zip, Pick (n-ary);
// Shuffle, First, Transform (unary); Configurations. Code dispatching on
// behavior switches exhaustively on Kind.
type Node interface {
	Kind() Kind

	// Len is the node's iteration length, computable without iterating.
	Len() Length

	// Default is the node's default value; NoDefault only when no leaf
	// beneath it defines one.
	Default() *ir.Node

	// Pseudo projects the node into a plain data tree whose leaves are
	// literals or opaque iteration-leaf placeholders.
	Pseudo() *ir.Node

	// Iter builds an independent iterator over the node's sequence.
	// Trees containing Configurations nodes are unrolled implicitly.
	Iter() (*Iterator, error)

	// Params is the node's parameter set as a plain JSON-able map.
	Params() Params

	// WithParams rebuilds the node with a full replacement parameter
	// set, revalidating. treepath layers merge semantics on top.
	WithParams(Params) (Node, error)

	// Children is nil for leaves, a single-element list for unary
	// nodes, and the variant map for Configurations.
	Children() *Children

	// WithChildren rebuilds the node around new children, revalidating.
	WithChildren(*Children) (Node, error)
}

// RandomSource is implemented by every node kind whose output sequence is
// a function of a seed. Seeds are assigned exactly once, normally by
// GenerateSeeds; they are never silently defaulted.
type RandomSource interface {
	Node
	Seed() (uint64, bool)
	WithSeed(uint64) Node
}

// childrenDefault assembles a container default from child defaults.
// Children without a defined default are omitted (named) or held as
// NoDefault placeholders (positional); if no child defines one, the
// result is NoDefault.
func childrenDefault(c *Children) *ir.Node {
	any := false
	for _, n := range c.nodes {
		if !n.Default().IsNoDefault() {
			any = true
			break
		}
	}
	if !any {
		return ir.NoDefault()
	}
	if c.IsMap() {
		kvs := make([]ir.KeyVal, 0, c.Len())
		for i, n := range c.nodes {
			d := n.Default()
			if d.IsNoDefault() {
				continue
			}
			kvs = append(kvs, ir.KeyVal{Key: c.keys[i], Val: d})
		}
		return ir.FromKeyVals(kvs)
	}
	vals := make([]*ir.Node, c.Len())
	for i, n := range c.nodes {
		vals[i] = n.Default()
	}
	return ir.FromSlice(vals)
}

// childrenPseudo projects children into a container, dropping combinator
// metadata.
func childrenPseudo(c *Children) *ir.Node {
	if c.IsMap() {
		kvs := make([]ir.KeyVal, c.Len())
		for i, n := range c.nodes {
			kvs[i] = ir.KeyVal{Key: c.keys[i], Val: n.Pseudo()}
		}
		return ir.FromKeyVals(kvs)
	}
	vals := make([]*ir.Node, c.Len())
	for i, n := range c.nodes {
		vals[i] = n.Pseudo()
	}
	return ir.FromSlice(vals)
}

// Walk visits n and every node beneath it pre-order, children in
// declaration order. The walk stops at the first error.
func Walk(n Node, f func(n Node, path []int) error) error {
	return walk(n, nil, f)
}

func walk(n Node, path []int, f func(Node, []int) error) error {
	if err := f(n, path); err != nil {
		return err
	}
	c := n.Children()
	for i := 0; i < c.Len(); i++ {
		sub := make([]int, len(path)+1)
		copy(sub, path)
		sub[len(path)] = i
		if err := walk(c.At(i), sub, f); err != nil {
			return err
		}
	}
	return nil
}
