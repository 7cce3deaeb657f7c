package tree

import (
	"sort"
	"sync"
)

// Constructor builds a node of one registered kind from children and
// parameters. Leaves reject non-empty children; unary kinds require
// exactly one.
type Constructor func(children *Children, params Params) (Node, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{}
)

// Register binds a construction tag to a constructor. Later
// registrations replace earlier ones, which lets embedders override a
// builtin.
func Register(tag string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[tag] = ctor
}

// Lookup resolves a construction tag.
func Lookup(tag string) (Constructor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[tag]
	return ctor, ok
}

// Tags lists the registered construction tags, sorted.
func Tags() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	res := make([]string, 0, len(registry))
	for tag := range registry {
		res = append(res, tag)
	}
	sort.Strings(res)
	return res
}

// Build constructs a node by tag.
func Build(tag string, children *Children, params Params) (Node, error) {
	ctor, ok := Lookup(tag)
	if !ok {
		k, err := KindOfTag(tag)
		if err != nil {
			return nil, err
		}
		return nil, cfgErrf(k, "no constructor registered")
	}
	return ctor(children, params)
}

func leafCtor(k Kind, f func(Params) (Node, error)) Constructor {
	return func(c *Children, p Params) (Node, error) {
		if c.Len() != 0 {
			return nil, cfgErrf(k, "leaf takes no children")
		}
		return f(p)
	}
}

func unaryCtor(k Kind, f func(Node, Params) (Node, error)) Constructor {
	return func(c *Children, p Params) (Node, error) {
		if c.Len() != 1 {
			return nil, cfgErrf(k, "expected exactly one child, got %d", c.Len())
		}
		return f(c.At(0), p)
	}
}

func init() {
	Register(KindLiteral.Tag(), leafCtor(KindLiteral, newLiteralFromParams))
	Register(KindSequence.Tag(), leafCtor(KindSequence, newSequenceFromParams))
	Register(KindRange.Tag(), leafCtor(KindRange, newRangeFromParams))
	Register(KindRandomFloat.Tag(), leafCtor(KindRandomFloat, newRandomFloatFromParams))
	Register(KindRandomBigInt.Tag(), leafCtor(KindRandomBigInt, newRandomBigIntFromParams))
	Register(KindRandomPrime.Tag(), leafCtor(KindRandomPrime, newRandomPrimeFromParams))
	Register(KindProduct.Tag(), newProductFromParams)
	Register(KindUnion.Tag(), newUnionFromParams)
	Register(KindZip.Tag(), newZipFromParams)
	Register(KindPick.Tag(), newPickFromParams)
	Register(KindShuffle.Tag(), unaryCtor(KindShuffle, newShuffleFromParams))
	Register(KindFirst.Tag(), unaryCtor(KindFirst, newFirstFromParams))
	Register(KindTransform.Tag(), unaryCtor(KindTransform, func(child Node, p Params) (Node, error) {
		return newTransformFromParams(child, nil, p)
	}))
	Register(KindConfigurations.Tag(), newConfigurationsFromParams)
}
