package tree

import (
	"github.com/scanforge/sweeptree/debug"
	"github.com/scanforge/sweeptree/ir"
)

// accessor is the compiled random-access view of one node's sequence,
// private to a single Iterator. Combinators with a closed-form index
// decomposition compile to arithmetic accessors; the rest compile to a
// replaying one-way adapter.
type accessor interface {
	at(i int) (*ir.Node, error)
	length() Length
}

type fnAcc struct {
	l Length
	f func(int) (*ir.Node, error)
}

func (a fnAcc) at(i int) (*ir.Node, error) { return a.f(i) }
func (a fnAcc) length() Length             { return a.l }

// compile builds the accessor tree for n. It is also where seed presence
// is enforced: an unseeded random node fails here, before any value is
// produced.
func compile(n Node) (accessor, error) {
	switch t := n.(type) {
	case *Literal:
		return fnAcc{t.Len(), t.at}, nil
	case *Sequence:
		return fnAcc{t.Len(), t.at}, nil
	case *Range:
		return fnAcc{t.Len(), t.at}, nil
	case *RandomFloat:
		if err := t.checkSeeded(t.Kind()); err != nil {
			return nil, err
		}
		return fnAcc{t.Len(), t.at}, nil
	case *RandomBigInt:
		if err := t.checkSeeded(t.Kind()); err != nil {
			return nil, err
		}
		return fnAcc{t.Len(), t.at}, nil
	case *RandomPrime:
		if err := t.checkSeeded(t.Kind()); err != nil {
			return nil, err
		}
		return fnAcc{t.Len(), t.at}, nil
	case *Product:
		return compileProduct(t)
	case *Union:
		return compileUnion(t)
	case *Zip:
		return compileZip(t)
	case *Pick:
		return compilePick(t)
	case *Shuffle:
		return compileShuffle(t)
	case *First:
		return compileFirst(t)
	case *Transform:
		return compileTransform(t)
	case *Configurations:
		u, err := t.Unroll()
		if err != nil {
			return nil, err
		}
		return compile(u)
	default:
		return nil, cfgErrf(n.Kind(), "not iterable")
	}
}

func compileChildren(c *Children) ([]accessor, error) {
	subs := make([]accessor, c.Len())
	for i := 0; i < c.Len(); i++ {
		sub, err := compile(c.At(i))
		if err != nil {
			return nil, err
		}
		subs[i] = sub
	}
	return subs, nil
}

// Iterator walks one tree's sequence of data trees. It owns a position
// and a direction; it is not safe for concurrent use, but independent
// Iterators over the same tree are fully independent.
type Iterator struct {
	node    Node
	acc     accessor
	length  Length
	forward bool

	started bool
	last    int
}

func newIterator(n Node) (*Iterator, error) {
	acc, err := compile(n)
	if err != nil {
		return nil, err
	}
	return &Iterator{
		node:    n,
		acc:     acc,
		length:  acc.length(),
		forward: true,
	}, nil
}

// Len is the tree's iteration length, independent of position.
func (it *Iterator) Len() Length { return it.length }

// Node returns the tree the iterator walks.
func (it *Iterator) Node() Node { return it.node }

func (it *Iterator) IsForward() bool { return it.forward }

// Next yields the next value in the current direction. At natural
// exhaustion it returns ErrExhausted and does not move.
func (it *Iterator) Next() (*ir.Node, error) {
	var i int
	if it.forward {
		if !it.started {
			i = 0
		} else {
			i = it.last + 1
		}
		if !it.length.Contains(i) {
			return nil, ErrExhausted
		}
	} else {
		if !it.started {
			if it.length.IsInf() {
				return nil, ErrInfinite
			}
			i = it.length.N() - 1
		} else {
			i = it.last - 1
		}
		if i < 0 {
			return nil, ErrExhausted
		}
	}
	v, err := it.acc.at(i)
	if err != nil {
		return nil, err
	}
	if debug.Iter() {
		debug.Logf("iter %s next[%d]\n", it.node.Kind(), i)
	}
	it.started = true
	it.last = i
	return v, nil
}

// Reverse flips the iteration direction in place. It does not move the
// position, so Reverse twice is a no-op.
func (it *Iterator) Reverse() {
	it.forward = !it.forward
}

// Reset returns to the starting position for the current direction:
// before index 0 forward, after the last valid index backward. Backward
// reset of an infinite tree fails with ErrInfinite.
func (it *Iterator) Reset() error {
	if !it.forward && it.length.IsInf() {
		return ErrInfinite
	}
	it.started = false
	return nil
}

// Update jumps to position i without consuming intermediate positions and
// returns the value there. Subsequent Next calls continue from i in the
// current direction.
func (it *Iterator) Update(i int) (*ir.Node, error) {
	if !it.length.Contains(i) {
		return nil, rangeErr(i, it.length)
	}
	v, err := it.acc.at(i)
	if err != nil {
		return nil, err
	}
	it.started = true
	it.last = i
	return v, nil
}

// At is random access without moving the iterator.
func (it *Iterator) At(i int) (*ir.Node, error) {
	if !it.length.Contains(i) {
		return nil, rangeErr(i, it.length)
	}
	return it.acc.at(i)
}

// Collect drains up to limit values from the iterator's current position.
// limit < 0 collects until exhaustion and must not be used on infinite
// trees.
func Collect(it *Iterator, limit int) ([]*ir.Node, error) {
	var res []*ir.Node
	for limit < 0 || len(res) < limit {
		v, err := it.Next()
		if err == ErrExhausted {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}
