package tree

import (
	"github.com/scanforge/sweeptree/ir"
)

// placeholder projects an iteration leaf into the pseudo data tree: an
// object holding the leaf's parameters, tagged with its construction
// tag. Consumers that only shape-check a tree treat it as opaque.
func placeholder(n Node) *ir.Node {
	obj, err := ir.FromGoAny(map[string]any(n.Params()))
	if err != nil {
		obj = ir.Null()
	}
	return obj.WithTag(n.Kind().Tag())
}

// unaryPseudo projects a unary node through its child, noting the node's
// own tag on the projection. A projection that already carries a tag (a
// nested placeholder) keeps the more specific inner one. The child's
// projection may share IR with the child, so tagging clones.
func unaryPseudo(n Node, child Node) *ir.Node {
	p := child.Pseudo()
	if p.Tag != "" {
		return p
	}
	return p.Clone().WithTag(n.Kind().Tag())
}
