package tree

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	randv2 "math/rand/v2"

	"github.com/scanforge/sweeptree/ir"
)

// randomLeaf carries the state shared by seed-dependent leaves: an
// optional seed, an optional count (absent means an infinite stream), and
// an optional default.
type randomLeaf struct {
	seed *uint64
	n    *int
	def  *ir.Node
}

func (r *randomLeaf) Seed() (uint64, bool) {
	if r.seed == nil {
		return 0, false
	}
	return *r.seed, true
}

func (r *randomLeaf) leafLen() Length {
	if r.n == nil {
		return Inf
	}
	return Fin(*r.n)
}

func (r *randomLeaf) leafDefault() *ir.Node {
	if r.def != nil {
		return r.def
	}
	return ir.NoDefault()
}

func (r *randomLeaf) leafParams() Params {
	p := Params{}
	if r.n != nil {
		p["n"] = *r.n
	}
	if r.def != nil {
		p["default"] = r.def
	}
	return seedParam(p, r.seed)
}

func (r *randomLeaf) checkSeeded(k Kind) error {
	if r.seed == nil {
		return cfgErrf(k, "no seed assigned; run GenerateSeeds before iterating")
	}
	return nil
}

// indexRNG derives an independent generator for value i of a seeded
// stream. Values are pure functions of (seed, i), which is what makes
// random leaves randomly addressable and reversible.
func indexRNG(seed uint64, i int) *randv2.Rand {
	return randv2.New(randv2.NewPCG(seed, splitmix64(uint64(i))))
}

func leafOptsFromParams(k Kind, p Params) (*randomLeaf, []LeafOption, error) {
	var opts []LeafOption
	n, ok, err := paramInt(k, p, "n")
	if err != nil {
		return nil, nil, err
	}
	if ok {
		if n < 0 {
			return nil, nil, cfgErrf(k, "n: negative")
		}
		opts = append(opts, WithCount(n))
	}
	def, err := paramNode(k, p, "default")
	if err != nil {
		return nil, nil, err
	}
	if def != nil {
		opts = append(opts, WithDefault(def))
	}
	seed, err := paramSeed(k, p)
	if err != nil {
		return nil, nil, err
	}
	return &randomLeaf{seed: seed}, opts, nil
}

func newRandomLeaf(o *leafOpts) randomLeaf {
	return randomLeaf{n: o.n, def: o.def}
}

// RandomFloat is a seeded stream of uniform floats in [low, high).
type RandomFloat struct {
	randomLeaf
	low, high float64
}

func NewRandomFloat(low, high float64, opts ...LeafOption) (*RandomFloat, error) {
	if high <= low {
		return nil, cfgErrf(KindRandomFloat, "empty interval [%v, %v)", low, high)
	}
	o := applyLeafOptions(opts)
	return &RandomFloat{randomLeaf: newRandomLeaf(o), low: low, high: high}, nil
}

func newRandomFloatFromParams(p Params) (Node, error) {
	rl, opts, err := leafOptsFromParams(KindRandomFloat, p)
	if err != nil {
		return nil, err
	}
	getf := func(key string, def float64) (float64, error) {
		v, ok := p[key]
		if !ok || v == nil {
			return def, nil
		}
		switch t := v.(type) {
		case float64:
			return t, nil
		case int:
			return float64(t), nil
		case int64:
			return float64(t), nil
		}
		return 0, cfgErrf(KindRandomFloat, "%s: expected number, got %T", key, v)
	}
	low, err := getf("low", 0)
	if err != nil {
		return nil, err
	}
	high, err := getf("high", 1)
	if err != nil {
		return nil, err
	}
	n, err := NewRandomFloat(low, high, opts...)
	if err != nil {
		return nil, err
	}
	n.seed = rl.seed
	return n, nil
}

func (n *RandomFloat) Kind() Kind          { return KindRandomFloat }
func (n *RandomFloat) Len() Length         { return n.leafLen() }
func (n *RandomFloat) Default() *ir.Node   { return n.leafDefault() }
func (n *RandomFloat) Pseudo() *ir.Node    { return placeholder(n) }
func (n *RandomFloat) Children() *Children { return nil }

func (n *RandomFloat) Params() Params {
	p := n.leafParams()
	p["low"], p["high"] = n.low, n.high
	return p
}

func (n *RandomFloat) WithParams(p Params) (Node, error) {
	return newRandomFloatFromParams(p)
}

func (n *RandomFloat) WithChildren(*Children) (Node, error) {
	return nil, cfgErrf(KindRandomFloat, "leaf has no children")
}

func (n *RandomFloat) Iter() (*Iterator, error) { return newIterator(n) }

func (n *RandomFloat) WithSeed(seed uint64) Node {
	c := *n
	c.seed = &seed
	return &c
}

func (n *RandomFloat) at(i int) (*ir.Node, error) {
	if !n.Len().Contains(i) {
		return nil, rangeErr(i, n.Len())
	}
	r := indexRNG(*n.seed, i)
	return ir.FromFloat(n.low + (n.high-n.low)*r.Float64()), nil
}

// RandomBigInt is a seeded stream of uniform integers in [low, high),
// with arbitrary precision.
type RandomBigInt struct {
	randomLeaf
	low, high *big.Int
}

func NewRandomBigInt(low, high *big.Int, opts ...LeafOption) (*RandomBigInt, error) {
	if high.Cmp(low) <= 0 {
		return nil, cfgErrf(KindRandomBigInt, "empty interval [%v, %v)", low, high)
	}
	o := applyLeafOptions(opts)
	return &RandomBigInt{
		randomLeaf: newRandomLeaf(o),
		low:        new(big.Int).Set(low),
		high:       new(big.Int).Set(high),
	}, nil
}

func newRandomBigIntFromParams(p Params) (Node, error) {
	rl, opts, err := leafOptsFromParams(KindRandomBigInt, p)
	if err != nil {
		return nil, err
	}
	getb := func(key string) (*big.Int, error) {
		v, ok := p[key]
		if !ok || v == nil {
			return nil, cfgErrf(KindRandomBigInt, "missing %s", key)
		}
		switch t := v.(type) {
		case *big.Int:
			return t, nil
		case int:
			return big.NewInt(int64(t)), nil
		case int64:
			return big.NewInt(t), nil
		case float64:
			return big.NewInt(int64(t)), nil
		case string:
			b, ok := new(big.Int).SetString(t, 10)
			if !ok {
				return nil, cfgErrf(KindRandomBigInt, "%s: bad integer %q", key, t)
			}
			return b, nil
		}
		return nil, cfgErrf(KindRandomBigInt, "%s: expected integer, got %T", key, v)
	}
	low, err := getb("low")
	if err != nil {
		return nil, err
	}
	high, err := getb("high")
	if err != nil {
		return nil, err
	}
	n, err := NewRandomBigInt(low, high, opts...)
	if err != nil {
		return nil, err
	}
	n.seed = rl.seed
	return n, nil
}

func (n *RandomBigInt) Kind() Kind          { return KindRandomBigInt }
func (n *RandomBigInt) Len() Length         { return n.leafLen() }
func (n *RandomBigInt) Default() *ir.Node   { return n.leafDefault() }
func (n *RandomBigInt) Pseudo() *ir.Node    { return placeholder(n) }
func (n *RandomBigInt) Children() *Children { return nil }

func (n *RandomBigInt) Params() Params {
	p := n.leafParams()
	p["low"], p["high"] = n.low.String(), n.high.String()
	return p
}

func (n *RandomBigInt) WithParams(p Params) (Node, error) {
	return newRandomBigIntFromParams(p)
}

func (n *RandomBigInt) WithChildren(*Children) (Node, error) {
	return nil, cfgErrf(KindRandomBigInt, "leaf has no children")
}

func (n *RandomBigInt) Iter() (*Iterator, error) { return newIterator(n) }

func (n *RandomBigInt) WithSeed(seed uint64) Node {
	c := *n
	c.seed = &seed
	return &c
}

func (n *RandomBigInt) at(i int) (*ir.Node, error) {
	if !n.Len().Contains(i) {
		return nil, rangeErr(i, n.Len())
	}
	span := new(big.Int).Sub(n.high, n.low)
	src := mrand.New(mrand.NewSource(int64(indexRNG(*n.seed, i).Uint64() >> 1)))
	v := new(big.Int).Rand(src, span)
	return ir.FromBigInt(v.Add(v, n.low)), nil
}

// RandomPrime is a seeded stream of probable primes of the given bit
// size.
type RandomPrime struct {
	randomLeaf
	bits int
}

func NewRandomPrime(bits int, opts ...LeafOption) (*RandomPrime, error) {
	if bits < 2 {
		return nil, cfgErrf(KindRandomPrime, "bits must be at least 2, got %d", bits)
	}
	o := applyLeafOptions(opts)
	return &RandomPrime{randomLeaf: newRandomLeaf(o), bits: bits}, nil
}

func newRandomPrimeFromParams(p Params) (Node, error) {
	rl, opts, err := leafOptsFromParams(KindRandomPrime, p)
	if err != nil {
		return nil, err
	}
	bits, ok, err := paramInt(KindRandomPrime, p, "bits")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, cfgErrf(KindRandomPrime, "missing bits")
	}
	n, err := NewRandomPrime(bits, opts...)
	if err != nil {
		return nil, err
	}
	n.seed = rl.seed
	return n, nil
}

func (n *RandomPrime) Kind() Kind          { return KindRandomPrime }
func (n *RandomPrime) Len() Length         { return n.leafLen() }
func (n *RandomPrime) Default() *ir.Node   { return n.leafDefault() }
func (n *RandomPrime) Pseudo() *ir.Node    { return placeholder(n) }
func (n *RandomPrime) Children() *Children { return nil }

func (n *RandomPrime) Params() Params {
	p := n.leafParams()
	p["bits"] = n.bits
	return p
}

func (n *RandomPrime) WithParams(p Params) (Node, error) {
	return newRandomPrimeFromParams(p)
}

func (n *RandomPrime) WithChildren(*Children) (Node, error) {
	return nil, cfgErrf(KindRandomPrime, "leaf has no children")
}

func (n *RandomPrime) Iter() (*Iterator, error) { return newIterator(n) }

func (n *RandomPrime) WithSeed(seed uint64) Node {
	c := *n
	c.seed = &seed
	return &c
}

func (n *RandomPrime) at(i int) (*ir.Node, error) {
	if !n.Len().Contains(i) {
		return nil, rangeErr(i, n.Len())
	}
	// crypto/rand.Prime accepts any reader; a seeded one makes the
	// stream reproducible
	v, err := rand.Prime(&rngReader{r: indexRNG(*n.seed, i)}, n.bits)
	if err != nil {
		return nil, err
	}
	return ir.FromBigInt(v), nil
}

// rngReader adapts a deterministic generator to io.Reader.
type rngReader struct {
	r *randv2.Rand
}

func (rr *rngReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		u := rr.r.Uint64()
		for j := i; j < min(i+8, len(p)); j++ {
			p[j] = byte(u)
			u >>= 8
		}
	}
	return len(p), nil
}
