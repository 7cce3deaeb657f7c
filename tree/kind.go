package tree

import "fmt"

// Kind identifies the concrete node kind of an iteration tree node.
type Kind int

const (
	KindLiteral Kind = iota
	KindSequence
	KindRange
	KindRandomFloat
	KindRandomBigInt
	KindRandomPrime
	KindProduct
	KindUnion
	KindZip
	KindPick
	KindShuffle
	KindFirst
	KindTransform
	KindConfigurations
)

func Kinds() []Kind {
	return []Kind{
		KindLiteral,
		KindSequence,
		KindRange,
		KindRandomFloat,
		KindRandomBigInt,
		KindRandomPrime,
		KindProduct,
		KindUnion,
		KindZip,
		KindPick,
		KindShuffle,
		KindFirst,
		KindTransform,
		KindConfigurations,
	}
}

func (k Kind) String() string {
	s, ok := map[Kind]string{
		KindLiteral:        "Literal",
		KindSequence:       "Sequence",
		KindRange:          "Range",
		KindRandomFloat:    "RandomFloat",
		KindRandomBigInt:   "RandomBigInt",
		KindRandomPrime:    "RandomPrime",
		KindProduct:        "Product",
		KindUnion:          "Union",
		KindZip:            "Zip",
		KindPick:           "Pick",
		KindShuffle:        "Shuffle",
		KindFirst:          "First",
		KindTransform:      "Transform",
		KindConfigurations: "Configurations",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// Tag returns the construction tag consumed by external config layers.
func (k Kind) Tag() string {
	s, ok := map[Kind]string{
		KindLiteral:        "!literal",
		KindSequence:       "!sequence",
		KindRange:          "!range",
		KindRandomFloat:    "!random",
		KindRandomBigInt:   "!random_uniform_bigint",
		KindRandomPrime:    "!random_prime",
		KindProduct:        "!product",
		KindUnion:          "!union",
		KindZip:            "!zip",
		KindPick:           "!pick",
		KindShuffle:        "!shuffle",
		KindFirst:          "!first",
		KindTransform:      "!transform",
		KindConfigurations: "!configurations",
	}[k]
	if ok {
		return s
	}
	return "!<unknown>"
}

func KindOfTag(tag string) (Kind, error) {
	for _, k := range Kinds() {
		if k.Tag() == tag {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unrecognized tag %q", tag)
}

// IsLeaf reports whether the kind has no children.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindLiteral, KindSequence, KindRange,
		KindRandomFloat, KindRandomBigInt, KindRandomPrime:
		return true
	default:
		return false
	}
}

// IsNAry reports whether the kind composes zero or more children.
func (k Kind) IsNAry() bool {
	switch k {
	case KindProduct, KindUnion, KindZip, KindPick:
		return true
	default:
		return false
	}
}

// IsUnary reports whether the kind wraps exactly one child.
func (k Kind) IsUnary() bool {
	switch k {
	case KindShuffle, KindFirst, KindTransform:
		return true
	default:
		return false
	}
}

// IsRandom reports whether nodes of this kind carry a seed.
func (k Kind) IsRandom() bool {
	switch k {
	case KindRandomFloat, KindRandomBigInt, KindRandomPrime,
		KindPick, KindShuffle:
		return true
	default:
		return false
	}
}
