package tree

import (
	"github.com/scanforge/sweeptree/ir"
)

// Product is the Cartesian product of its children: nested-loop order,
// rightmost child varying fastest.
type Product struct {
	children *Children
	snake    bool
	lazy     bool
}

// ProductOption configures a Product.
type ProductOption func(*Product)

// ProductSnake orders the product boustrophedon: consecutive values
// differ in exactly one child. The value set is unchanged.
func ProductSnake(on bool) ProductOption {
	return func(p *Product) { p.snake = on }
}

// ProductLazy yields only the keys whose value changed since the previous
// yield; the first yield is always full. Requires named children.
func ProductLazy(on bool) ProductOption {
	return func(p *Product) { p.lazy = on }
}

func NewProduct(children *Children, opts ...ProductOption) (*Product, error) {
	n := &Product{children: children}
	for _, opt := range opts {
		opt(n)
	}
	if err := children.validate(KindProduct); err != nil {
		return nil, err
	}
	if n.lazy && !children.IsMap() {
		return nil, cfgErrf(KindProduct, "lazy requires named children")
	}
	return n, nil
}

func newProductFromParams(c *Children, p Params) (Node, error) {
	snake, err := paramBool(KindProduct, p, "snake", false)
	if err != nil {
		return nil, err
	}
	lazy, err := paramBool(KindProduct, p, "lazy", false)
	if err != nil {
		return nil, err
	}
	return NewProduct(c, ProductSnake(snake), ProductLazy(lazy))
}

func (n *Product) Kind() Kind { return KindProduct }

func (n *Product) Len() Length {
	l := Fin(1)
	for _, c := range n.children.nodes {
		l = l.Mul(c.Len())
	}
	return l
}

func (n *Product) Default() *ir.Node   { return childrenDefault(n.children) }
func (n *Product) Pseudo() *ir.Node    { return childrenPseudo(n.children) }
func (n *Product) Children() *Children { return n.children }

func (n *Product) Params() Params {
	return Params{"snake": n.snake, "lazy": n.lazy}
}

func (n *Product) WithParams(p Params) (Node, error) {
	return newProductFromParams(n.children, p)
}

func (n *Product) WithChildren(c *Children) (Node, error) {
	return NewProduct(c, ProductSnake(n.snake), ProductLazy(n.lazy))
}

func (n *Product) Iter() (*Iterator, error) { return newIterator(n) }

type productAcc struct {
	node *Product
	subs []accessor
	lens []Length
	l    Length
}

func compileProduct(n *Product) (accessor, error) {
	subs, err := compileChildren(n.children)
	if err != nil {
		return nil, err
	}
	acc := &productAcc{node: n, subs: subs, l: n.Len()}
	acc.lens = n.children.lengths()
	return acc, nil
}

func (p *productAcc) length() Length { return p.l }

// digits decomposes index i into one index per child, rightmost fastest.
// With snake, a digit is mirrored whenever the quotient above it is odd,
// which is what makes consecutive values differ in exactly one place.
func (p *productAcc) digits(i int) []int {
	n := len(p.lens)
	d := make([]int, n)
	rem := i
	for k := n - 1; k >= 0; k-- {
		if p.lens[k].IsInf() {
			d[k] = rem
			rem = 0
			continue
		}
		lk := p.lens[k].N()
		q := rem % lk
		rem /= lk
		if p.node.snake && rem%2 == 1 {
			q = lk - 1 - q
		}
		d[k] = q
	}
	return d
}

func (p *productAcc) valueAt(d []int) ([]*ir.Node, error) {
	vals := make([]*ir.Node, len(d))
	for k, sub := range p.subs {
		v, err := sub.at(d[k])
		if err != nil {
			return nil, err
		}
		vals[k] = v
	}
	return vals, nil
}

func (p *productAcc) at(i int) (*ir.Node, error) {
	if !p.l.Contains(i) {
		return nil, rangeErr(i, p.l)
	}
	d := p.digits(i)
	vals, err := p.valueAt(d)
	if err != nil {
		return nil, err
	}
	c := p.node.children
	if !c.IsMap() {
		return ir.FromSlice(vals), nil
	}
	if !p.node.lazy || i == 0 {
		kvs := make([]ir.KeyVal, len(vals))
		for k := range vals {
			kvs[k] = ir.KeyVal{Key: c.keys[k], Val: vals[k]}
		}
		return ir.FromKeyVals(kvs), nil
	}
	// lazy: keep only the keys whose value changed since index i-1
	prev := p.digits(i - 1)
	kvs := make([]ir.KeyVal, 0, len(vals))
	for k := range vals {
		if prev[k] == d[k] {
			continue
		}
		pv, err := p.subs[k].at(prev[k])
		if err != nil {
			return nil, err
		}
		if ir.Equal(pv, vals[k]) {
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: c.keys[k], Val: vals[k]})
	}
	return ir.FromKeyVals(kvs), nil
}
