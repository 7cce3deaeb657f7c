package tree

import (
	"github.com/scanforge/sweeptree/debug"
	"github.com/scanforge/sweeptree/ir"
)

// ConfigurationKey is the field added to each yield when a
// Configurations node inserts the active variant's name.
const ConfigurationKey = "_configuration"

// Configurations names a set of alternative subtrees and iterates them
// back to back: all of the first variant's values, then all of the
// second's, with nothing held over between variants. It unrolls to a
// Union with both hold policies set to "none".
type Configurations struct {
	variants   *Children
	insertName bool
	moveUp     bool
}

// ConfigurationsOption configures a Configurations node.
type ConfigurationsOption func(*Configurations)

// ConfigurationsInsertName controls adding a ConfigurationKey field
// naming the active variant to each yield. On by default.
func ConfigurationsInsertName(on bool) ConfigurationsOption {
	return func(c *Configurations) { c.insertName = on }
}

// ConfigurationsMoveUp strips the per-variant wrapper object when every
// variant yields a single-field record, promoting the field's value.
func ConfigurationsMoveUp(on bool) ConfigurationsOption {
	return func(c *Configurations) { c.moveUp = on }
}

func NewConfigurations(variants *Children, opts ...ConfigurationsOption) (*Configurations, error) {
	n := &Configurations{variants: variants, insertName: true}
	for _, opt := range opts {
		opt(n)
	}
	if !variants.IsMap() {
		return nil, cfgErrf(KindConfigurations, "variants must be named")
	}
	if variants.Len() == 0 {
		return nil, cfgErrf(KindConfigurations, "no variants")
	}
	if err := variants.validate(KindConfigurations); err != nil {
		return nil, err
	}
	for i := 0; i < variants.Len(); i++ {
		if variants.Key(i).Type != ir.StringType {
			return nil, cfgErrf(KindConfigurations, "variant %d: names must be strings", i)
		}
	}
	return n, nil
}

func newConfigurationsFromParams(c *Children, p Params) (Node, error) {
	insertName, err := paramBool(KindConfigurations, p, "insert_name", true)
	if err != nil {
		return nil, err
	}
	moveUp, err := paramBool(KindConfigurations, p, "move_up", false)
	if err != nil {
		return nil, err
	}
	return NewConfigurations(c,
		ConfigurationsInsertName(insertName),
		ConfigurationsMoveUp(moveUp))
}

func (n *Configurations) Kind() Kind { return KindConfigurations }

func (n *Configurations) Len() Length {
	l := Fin(0)
	for _, v := range n.variants.nodes {
		l = l.Add(v.Len())
	}
	return l
}

func (n *Configurations) Default() *ir.Node {
	d := n.variants.At(0).Default()
	if d.IsNoDefault() {
		return d
	}
	return n.decorate(ir.KeyString(n.variants.Key(0)), d)
}

func (n *Configurations) Pseudo() *ir.Node {
	return childrenPseudo(n.variants).WithTag(KindConfigurations.Tag())
}

func (n *Configurations) Children() *Children { return n.variants }

func (n *Configurations) Params() Params {
	return Params{"insert_name": n.insertName, "move_up": n.moveUp}
}

func (n *Configurations) WithParams(p Params) (Node, error) {
	return newConfigurationsFromParams(n.variants, p)
}

func (n *Configurations) WithChildren(c *Children) (Node, error) {
	return NewConfigurations(c,
		ConfigurationsInsertName(n.insertName),
		ConfigurationsMoveUp(n.moveUp))
}

func (n *Configurations) Iter() (*Iterator, error) { return newIterator(n) }

// Names lists the variant names in declaration order.
func (n *Configurations) Names() []string {
	res := make([]string, n.variants.Len())
	for i := range res {
		res[i] = ir.KeyString(n.variants.Key(i))
	}
	return res
}

// Variant returns the named variant's subtree.
func (n *Configurations) Variant(name string) (Node, error) {
	i := n.variants.IndexOf(name)
	if i < 0 {
		return nil, cfgErrf(KindConfigurations, "no variant %q", name)
	}
	return n.variants.At(i), nil
}

// decorate applies move_up and insert_name to one variant value.
func (n *Configurations) decorate(name string, v *ir.Node) *ir.Node {
	if n.moveUp && v.Type == ir.ObjectType && len(v.Fields) == 1 {
		v = v.Values[0]
	}
	if !n.insertName {
		return v
	}
	kvs := []ir.KeyVal{{Key: ir.FromString(ConfigurationKey), Val: ir.FromString(name)}}
	if v.Type == ir.ObjectType {
		for i, f := range v.Fields {
			kvs = append(kvs, ir.KeyVal{Key: f, Val: v.Values[i]})
		}
	} else {
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString("value"), Val: v})
	}
	return ir.FromKeyVals(kvs)
}

// Unroll rewrites the node into the Union it denotes: one phase per
// variant, hold policies "none" so inactive variants leave no trace,
// each variant wrapped in a transform applying name insertion.
func (n *Configurations) Unroll() (Node, error) {
	kvs := make([]KeyVal, n.variants.Len())
	for i := 0; i < n.variants.Len(); i++ {
		name := ir.KeyString(n.variants.Key(i))
		child := n.variants.At(i)
		child = NewTransform(child, func(v *ir.Node) (*ir.Node, error) {
			return n.decorate(name, v), nil
		})
		kvs[i] = KeyVal{Key: n.variants.Key(i), Node: child}
	}
	u, err := NewUnion(Map(kvs...),
		UnionReset(HoldNone),
		UnionPreset(HoldNone),
		UnionCommonPreset(false))
	if err != nil {
		return nil, err
	}
	if debug.Unroll() {
		debug.Logf("unroll: %d variants, len %s", n.variants.Len(), u.Len())
	}
	// each yield carries exactly one variant's record; promote it out of
	// the phase wrapper
	return NewTransform(u, promoteActive), nil
}

// promoteActive unwraps the single-field object a hold-none Union emits
// while exactly one child is live.
func promoteActive(v *ir.Node) (*ir.Node, error) {
	if v.Type == ir.ObjectType && len(v.Fields) == 1 {
		return v.Values[0], nil
	}
	return v, nil
}

// UnrollConfigurations rewrites every Configurations node in the tree,
// bottom up, into its Union form. The result contains no
// Configurations nodes and shares all untouched subtrees.
func UnrollConfigurations(n Node) (Node, error) {
	c := n.Children()
	if c.Len() > 0 {
		changed := false
		for i := 0; i < c.Len(); i++ {
			sub, err := UnrollConfigurations(c.At(i))
			if err != nil {
				return nil, err
			}
			if sub != c.At(i) {
				c = c.With(i, sub)
				changed = true
			}
		}
		if changed {
			var err error
			n, err = n.WithChildren(c)
			if err != nil {
				return nil, err
			}
		}
	}
	if cfg, ok := n.(*Configurations); ok {
		return cfg.Unroll()
	}
	return n, nil
}
