package treepath

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/scanforge/sweeptree/debug"
	"github.com/scanforge/sweeptree/ir"
	"github.com/scanforge/sweeptree/tree"
)

func parseErr(path, format string, args ...any) error {
	return &tree.PathError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

func pathErr(p Path, format string, args ...any) error {
	return &tree.PathError{Path: p.String(), Msg: fmt.Sprintf(format, args...)}
}

// Get resolves the node addressed by path.
func Get(root tree.Node, path string) (tree.Node, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	n := root
	for i, s := range p {
		j, err := childIndex(n, s, p[:i+1])
		if err != nil {
			return nil, err
		}
		n = n.Children().At(j)
	}
	return n, nil
}

func childIndex(n tree.Node, s Segment, at Path) (int, error) {
	c := n.Children()
	if s.HasField {
		if !c.IsMap() {
			return 0, pathErr(at, "%s has no named children", n.Kind())
		}
		i := c.IndexOf(s.Field)
		if i < 0 {
			return 0, pathErr(at, "no child %q", s.Field)
		}
		return i, nil
	}
	if s.Index >= c.Len() {
		return 0, pathErr(at, "index out of range (%d children)", c.Len())
	}
	return s.Index, nil
}

// edit rebuilds the spine from root to the node addressed by p, applying
// f to that node. Subtrees off the spine are shared, not copied.
func edit(root tree.Node, p Path, f func(tree.Node) (tree.Node, error)) (tree.Node, error) {
	if len(p) == 0 {
		return f(root)
	}
	i, err := childIndex(root, p[0], p[:1])
	if err != nil {
		return nil, err
	}
	c := root.Children()
	sub, err := edit(c.At(i), p[1:], f)
	if err != nil {
		return nil, err
	}
	if sub == c.At(i) {
		return root, nil
	}
	return root.WithChildren(c.With(i, sub))
}

// Apply parses path and rewrites the addressed node with f, returning
// the edited tree. The input tree is unchanged.
func Apply(root tree.Node, path string, f func(tree.Node) (tree.Node, error)) (tree.Node, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	if debug.Path() {
		debug.Logf("edit at %q\n", p.String())
	}
	return edit(root, p, f)
}

// WithParams merges patch into the parameters of the node at path, RFC
// 7386 style: null deletes a parameter, objects merge, anything else
// replaces. The node revalidates with the merged set.
func WithParams(root tree.Node, path string, patch tree.Params) (tree.Node, error) {
	return Apply(root, path, func(n tree.Node) (tree.Node, error) {
		merged, err := mergeParams(n.Params(), patch)
		if err != nil {
			return nil, err
		}
		return n.WithParams(merged)
	})
}

func mergeParams(orig, patch tree.Params) (tree.Params, error) {
	origJSON, err := json.Marshal(orig)
	if err != nil {
		return nil, err
	}
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}
	mergedJSON, err := jsonpatch.MergePatch(origJSON, patchJSON)
	if err != nil {
		return nil, err
	}
	var merged tree.Params
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Set replaces the node at path with n.
func Set(root tree.Node, path string, n tree.Node) (tree.Node, error) {
	return Apply(root, path, func(tree.Node) (tree.Node, error) {
		return n, nil
	})
}

// Convert rebuilds the node at path as the kind named by tag, carrying
// the existing children over and replacing the parameters with params.
// Children carry over between n-ary kinds and between unary kinds;
// converting to a leaf requires a childless node. Impossible carries
// fail with ConversionError.
func Convert(root tree.Node, path string, tag string, params tree.Params) (tree.Node, error) {
	to, err := tree.KindOfTag(tag)
	if err != nil {
		return nil, err
	}
	return Apply(root, path, func(n tree.Node) (tree.Node, error) {
		from := n.Kind()
		c := n.Children()
		switch {
		case to.IsLeaf():
			if c.Len() != 0 {
				return nil, &tree.ConversionError{From: from, To: to,
					Msg: "children cannot carry over to a leaf"}
			}
			c = nil
		case to.IsUnary():
			if c.Len() != 1 {
				return nil, &tree.ConversionError{From: from, To: to,
					Msg: fmt.Sprintf("need exactly one child, have %d", c.Len())}
			}
		default:
			if from.IsLeaf() {
				return nil, &tree.ConversionError{From: from, To: to,
					Msg: "a leaf has no children to carry over"}
			}
		}
		out, err := tree.Build(tag, c, params)
		if err != nil {
			return nil, &tree.ConversionError{From: from, To: to, Msg: err.Error()}
		}
		return out, nil
	})
}

// InsertChild inserts child under the node at path: at the given
// position, keyed for named children (key nil means positional).
func InsertChild(root tree.Node, path string, at int, key *ir.Node, child tree.Node) (tree.Node, error) {
	return Apply(root, path, func(n tree.Node) (tree.Node, error) {
		c := n.Children()
		if c == nil {
			return nil, parseErr(path, "%s takes no children", n.Kind())
		}
		if at < 0 || at > c.Len() {
			return nil, parseErr(path, "insert position %d out of range (%d children)", at, c.Len())
		}
		if c.IsMap() != (key != nil) {
			if key == nil {
				return nil, parseErr(path, "%s children are named; key required", n.Kind())
			}
			return nil, parseErr(path, "%s children are positional; no key allowed", n.Kind())
		}
		return n.WithChildren(c.Insert(at, key, child))
	})
}

// AppendChild inserts child as the last child of the node at path.
func AppendChild(root tree.Node, path string, key *ir.Node, child tree.Node) (tree.Node, error) {
	n, err := Get(root, path)
	if err != nil {
		return nil, err
	}
	return InsertChild(root, path, n.Children().Len(), key, child)
}

// RemoveChild removes the child the path's last segment addresses.
func RemoveChild(root tree.Node, path string) (tree.Node, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	if len(p) == 0 {
		return nil, parseErr(path, "cannot remove the root")
	}
	return edit(root, p[:len(p)-1], func(n tree.Node) (tree.Node, error) {
		i, err := childIndex(n, p[len(p)-1], p)
		if err != nil {
			return nil, err
		}
		return n.WithChildren(n.Children().Remove(i))
	})
}

// Wrap interposes a unary node of the kind named by tag between the node
// at path and its parent.
func Wrap(root tree.Node, path string, tag string, params tree.Params) (tree.Node, error) {
	k, err := tree.KindOfTag(tag)
	if err != nil {
		return nil, err
	}
	if !k.IsUnary() {
		return nil, parseErr(path, "cannot wrap with non-unary kind %s", k)
	}
	return Apply(root, path, func(n tree.Node) (tree.Node, error) {
		return tree.Build(tag, tree.List(n), params)
	})
}

// Unwrap replaces the unary node at path with its child.
func Unwrap(root tree.Node, path string) (tree.Node, error) {
	return Apply(root, path, func(n tree.Node) (tree.Node, error) {
		if !n.Kind().IsUnary() {
			return nil, parseErr(path, "%s is not a unary node", n.Kind())
		}
		return n.Children().At(0), nil
	})
}
