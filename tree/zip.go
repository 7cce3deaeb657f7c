package tree

import (
	"github.com/scanforge/sweeptree/ir"
)

// Zip stop policies.
const (
	StopShortest = "shortest"
	StopLongest  = "longest"
)

// Zip advances all children in lockstep: value i pairs child values at
// index i. With stops_at "longest", children that run out drop out of
// the record; "longest" therefore requires named children.
type Zip struct {
	children    *Children
	stopsAt     string
	ignoreFixed bool
}

// ZipOption configures a Zip.
type ZipOption func(*Zip)

// ZipStopsAt sets the stop policy, "shortest" or "longest".
func ZipStopsAt(policy string) ZipOption {
	return func(z *Zip) { z.stopsAt = policy }
}

// ZipIgnoreFixed controls whether single-value children take part in the
// length calculation. Excluded by default: a fixed child repeats its one
// value on every yield instead of truncating the zip.
func ZipIgnoreFixed(on bool) ZipOption {
	return func(z *Zip) { z.ignoreFixed = on }
}

func NewZip(children *Children, opts ...ZipOption) (*Zip, error) {
	n := &Zip{children: children, stopsAt: StopShortest, ignoreFixed: true}
	for _, opt := range opts {
		opt(n)
	}
	if err := children.validate(KindZip); err != nil {
		return nil, err
	}
	switch n.stopsAt {
	case StopShortest, StopLongest:
	default:
		return nil, cfgErrf(KindZip, "invalid stops_at policy %q", n.stopsAt)
	}
	if n.stopsAt == StopLongest && !children.IsMap() {
		return nil, cfgErrf(KindZip, "stops_at %q requires named children", StopLongest)
	}
	return n, nil
}

func newZipFromParams(c *Children, p Params) (Node, error) {
	stopsAt, err := paramString(KindZip, p, "stops_at", StopShortest)
	if err != nil {
		return nil, err
	}
	ignoreFixed, err := paramBool(KindZip, p, "ignore_fixed", true)
	if err != nil {
		return nil, err
	}
	return NewZip(c, ZipStopsAt(stopsAt), ZipIgnoreFixed(ignoreFixed))
}

func (n *Zip) Kind() Kind { return KindZip }

func (n *Zip) zipLen(lens []Length) Length {
	var (
		have bool
		l    Length
	)
	for _, cl := range lens {
		if n.ignoreFixed && !cl.IsInf() && cl.N() == 1 {
			continue
		}
		if !have {
			l, have = cl, true
			continue
		}
		if n.stopsAt == StopShortest {
			l = l.Min(cl)
		} else {
			l = l.Max(cl)
		}
	}
	if !have {
		// all children fixed (or none): a single lockstep yield, if any
		if n.children.Len() > 0 {
			return Fin(1)
		}
		return Fin(0)
	}
	return l
}

func (n *Zip) Len() Length {
	return n.zipLen(n.children.lengths())
}

func (n *Zip) Default() *ir.Node   { return childrenDefault(n.children) }
func (n *Zip) Pseudo() *ir.Node    { return childrenPseudo(n.children) }
func (n *Zip) Children() *Children { return n.children }

func (n *Zip) Params() Params {
	return Params{"stops_at": n.stopsAt, "ignore_fixed": n.ignoreFixed}
}

func (n *Zip) WithParams(p Params) (Node, error) {
	return newZipFromParams(n.children, p)
}

func (n *Zip) WithChildren(c *Children) (Node, error) {
	return NewZip(c, ZipStopsAt(n.stopsAt), ZipIgnoreFixed(n.ignoreFixed))
}

func (n *Zip) Iter() (*Iterator, error) { return newIterator(n) }

type zipAcc struct {
	node *Zip
	subs []accessor
	lens []Length
	l    Length
}

func compileZip(n *Zip) (accessor, error) {
	subs, err := compileChildren(n.children)
	if err != nil {
		return nil, err
	}
	lens := make([]Length, len(subs))
	for i, s := range subs {
		lens[i] = s.length()
	}
	return &zipAcc{node: n, subs: subs, lens: lens, l: n.zipLen(lens)}, nil
}

func (z *zipAcc) length() Length { return z.l }

func (z *zipAcc) at(i int) (*ir.Node, error) {
	if !z.l.Contains(i) {
		return nil, rangeErr(i, z.l)
	}
	c := z.node.children
	kvs := make([]ir.KeyVal, 0, c.Len())
	vals := make([]*ir.Node, 0, c.Len())
	for j, sub := range z.subs {
		l := z.lens[j]
		at := i
		switch {
		case l.Contains(i):
		case z.node.ignoreFixed && !l.IsInf() && l.N() == 1:
			at = 0
		default:
			// exhausted child under stops_at "longest"
			continue
		}
		v, err := sub.at(at)
		if err != nil {
			return nil, err
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
