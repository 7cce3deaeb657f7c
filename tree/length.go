package tree

import "strconv"

// Length is the number of values a node enumerates: a finite non-negative
// count or infinite.
type Length struct {
	n   int
	inf bool
}

// Inf is the infinite length.
var Inf = Length{inf: true}

// Fin returns a finite length. It panics on negative n.
func Fin(n int) Length {
	if n < 0 {
		panic("tree: negative length")
	}
	return Length{n: n}
}

func (l Length) IsInf() bool { return l.inf }

func (l Length) IsZero() bool { return !l.inf && l.n == 0 }

// N returns the finite count. It panics on Inf.
func (l Length) N() int {
	if l.inf {
		panic("tree: N of infinite length")
	}
	return l.n
}

func (l Length) String() string {
	if l.inf {
		return "inf"
	}
	return strconv.Itoa(l.n)
}

// Contains reports whether index i addresses a value.
func (l Length) Contains(i int) bool {
	if i < 0 {
		return false
	}
	return l.inf || i < l.n
}

func (l Length) Add(o Length) Length {
	if l.inf || o.inf {
		return Inf
	}
	return Fin(l.n + o.n)
}

// Mul is the product length; zero dominates infinity, matching a product
// combinator with an empty child.
func (l Length) Mul(o Length) Length {
	if l.IsZero() || o.IsZero() {
		return Fin(0)
	}
	if l.inf || o.inf {
		return Inf
	}
	return Fin(l.n * o.n)
}

func (l Length) Min(o Length) Length {
	if l.inf {
		return o
	}
	if o.inf {
		return l
	}
	return Fin(min(l.n, o.n))
}

func (l Length) Max(o Length) Length {
	if l.inf || o.inf {
		return Inf
	}
	return Fin(max(l.n, o.n))
}
