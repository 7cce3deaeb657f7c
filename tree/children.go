package tree

import (
	"slices"

	"github.com/scanforge/sweeptree/ir"
)

// Children is an immutable, ordered collection of child nodes, either
// positional (list) or named (ordered map with scalar keys). Named
// children are required by combinator modes that identify entries by key
// (lazy products, longest zips, omitting unions).
type Children struct {
	keys  []*ir.Node // nil for positional children
	nodes []Node
}

// KeyVal names one child.
type KeyVal struct {
	Key  *ir.Node
	Node Node
}

// Named is shorthand for a string-keyed child.
func Named(key string, n Node) KeyVal {
	return KeyVal{Key: ir.FromString(key), Node: n}
}

// List builds positional children.
func List(nodes ...Node) *Children {
	return &Children{nodes: slices.Clone(nodes)}
}

// Map builds named children in declaration order.
func Map(kvs ...KeyVal) *Children {
	c := &Children{
		keys:  make([]*ir.Node, len(kvs)),
		nodes: make([]Node, len(kvs)),
	}
	for i := range kvs {
		c.keys[i] = kvs[i].Key
		c.nodes[i] = kvs[i].Node
	}
	return c
}

func (c *Children) Len() int {
	if c == nil {
		return 0
	}
	return len(c.nodes)
}

func (c *Children) IsMap() bool {
	return c != nil && c.keys != nil
}

func (c *Children) At(i int) Node {
	return c.nodes[i]
}

// Key returns the i-th key, or nil for positional children.
func (c *Children) Key(i int) *ir.Node {
	if !c.IsMap() {
		return nil
	}
	return c.keys[i]
}

// IndexOf locates a child by its key's canonical string form; -1 when
// absent or positional.
func (c *Children) IndexOf(key string) int {
	if !c.IsMap() {
		return -1
	}
	for i, k := range c.keys {
		if ir.KeyString(k) == key {
			return i
		}
	}
	return -1
}

// validate checks key shape and uniqueness. Combinator constructors call
// it; it is the only place these invariants are enforced.
func (c *Children) validate(kind Kind) error {
	if !c.IsMap() {
		return nil
	}
	for i, k := range c.keys {
		if k == nil || !k.Type.IsKey() {
			return cfgErrf(kind, "child %d: keys must be non-null scalars", i)
		}
		for j := range i {
			if ir.Equal(c.keys[j], k) {
				return cfgErrf(kind, "duplicate child key %q", ir.KeyString(k))
			}
		}
	}
	return nil
}

// With returns a copy with the i-th child replaced, sharing keys and all
// other children.
func (c *Children) With(i int, n Node) *Children {
	nodes := slices.Clone(c.nodes)
	nodes[i] = n
	return &Children{keys: c.keys, nodes: nodes}
}

// Insert returns a copy with a child inserted at i. key must be non-nil
// exactly for named children.
func (c *Children) Insert(i int, key *ir.Node, n Node) *Children {
	res := &Children{nodes: slices.Insert(slices.Clone(c.nodes), i, n)}
	if c.IsMap() {
		res.keys = slices.Insert(slices.Clone(c.keys), i, key)
	}
	return res
}

// Remove returns a copy without the i-th child.
func (c *Children) Remove(i int) *Children {
	res := &Children{nodes: slices.Delete(slices.Clone(c.nodes), i, i+1)}
	if c.IsMap() {
		res.keys = slices.Delete(slices.Clone(c.keys), i, i+1)
	}
	return res
}

func (c *Children) lengths() []Length {
	res := make([]Length, c.Len())
	for i, n := range c.nodes {
		res[i] = n.Len()
	}
	return res
}
