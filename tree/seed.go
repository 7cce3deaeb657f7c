package tree

import (
	crand "crypto/rand"
	"encoding/binary"

	"github.com/scanforge/sweeptree/debug"
)

// splitmix64 is the seed-derivation mix. Sequential counters produce
// pairwise-distinct outputs (it is a bijection on uint64), which is what
// makes GenerateSeeds collision-free.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// SeedOption configures GenerateSeeds.
type SeedOption func(*seedOpts)

type seedOpts struct {
	root *uint64
}

// WithRootSeed fixes the root of the derivation stream, making the whole
// tree's randomness reproducible. Without it the root comes from system
// entropy.
func WithRootSeed(seed uint64) SeedOption {
	return func(o *seedOpts) { o.root = &seed }
}

// GenerateSeeds returns a copy of root in which every random node lacking
// a seed has been assigned a distinct one, derived deterministically from
// a single root seed. Nodes that already carry a seed keep it (manual
// seeding is supported but bypasses collision avoidance). The input tree
// is not modified.
func GenerateSeeds(root Node, opts ...SeedOption) (Node, error) {
	o := &seedOpts{}
	for _, opt := range opts {
		opt(o)
	}
	base := uint64(0)
	if o.root != nil {
		base = *o.root
	} else {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return nil, err
		}
		base = binary.LittleEndian.Uint64(b[:])
	}
	counter := base
	next := func() uint64 {
		counter++
		s := splitmix64(counter)
		if debug.Seed() {
			debug.Logf("seed %d\n", s)
		}
		return s
	}
	return reseed(root, next)
}

func reseed(n Node, next func() uint64) (Node, error) {
	c := n.Children()
	var res = n
	if c.Len() > 0 {
		changed := false
		nc := c
		for i := 0; i < c.Len(); i++ {
			child, err := reseed(c.At(i), next)
			if err != nil {
				return nil, err
			}
			if child != c.At(i) {
				nc = nc.With(i, child)
				changed = true
			}
		}
		if changed {
			var err error
			res, err = n.WithChildren(nc)
			if err != nil {
				return nil, err
			}
		}
	}
	if rs, ok := res.(RandomSource); ok {
		if _, seeded := rs.Seed(); !seeded {
			res = rs.WithSeed(next())
		}
	}
	return res, nil
}
