package tree

import "github.com/scanforge/sweeptree/ir"

// stepper is the forward-only iteration protocol used by nodes without a
// closed-form index decomposition.
type stepper interface {
	// step yields the next value, ErrExhausted at the end.
	step() (*ir.Node, error)
}

// oneWayAcc simulates random access over a stepper by replaying from the
// start and memoizing every produced value. It is the reference fallback,
// not the default: cost of at(i) is O(i) on first touch, O(1) after.
type oneWayAcc struct {
	src   stepper
	l     Length
	cache []*ir.Node
	done  bool
}

func newOneWay(src stepper, l Length) *oneWayAcc {
	return &oneWayAcc{src: src, l: l}
}

func (o *oneWayAcc) length() Length { return o.l }

func (o *oneWayAcc) at(i int) (*ir.Node, error) {
	if i < 0 || !o.l.Contains(i) {
		return nil, rangeErr(i, o.l)
	}
	for len(o.cache) <= i && !o.done {
		v, err := o.src.step()
		if err == ErrExhausted {
			o.done = true
			break
		}
		if err != nil {
			return nil, err
		}
		o.cache = append(o.cache, v)
	}
	if i >= len(o.cache) {
		return nil, rangeErr(i, Fin(len(o.cache)))
	}
	return o.cache[i], nil
}

// accStepper drives an accessor as a stepper, for sequential consumers of
// children that themselves have closed-form access.
type accStepper struct {
	acc accessor
	i   int
}

func (s *accStepper) step() (*ir.Node, error) {
	if !s.acc.length().Contains(s.i) {
		return nil, ErrExhausted
	}
	v, err := s.acc.at(s.i)
	if err != nil {
		return nil, err
	}
	s.i++
	return v, nil
}
