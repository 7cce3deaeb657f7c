package ir

import (
	"maps"
	"math/big"
	"slices"
	"strconv"
)

// Node is a single value in a data tree.
//
// A Node is a tagged union: depending on Type, the value lives in String,
// Bool, one of the number fields, or in Fields/Values for containers.
// Tag carries optional metadata (used by pseudo data trees to mark
// iteration-leaf placeholders) and does not participate in Compare.
type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	Tag string

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) WithTag(tag string) *Node {
	y.Tag = tag
	return y
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Tag = y.Tag
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dst.Fields[i] = yf.Clone()
		}
	}
	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

// FromBigInt stores v under Int64 when it fits, otherwise as a decimal
// string under Number.
func FromBigInt(v *big.Int) *Node {
	if v.IsInt64() {
		return FromInt(v.Int64())
	}
	return &Node{
		Type:   NumberType,
		Number: v.String(),
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// NoDefault returns the no-default sentinel node.
func NoDefault() *Node {
	return &Node{Type: NoDefaultType}
}

func (y *Node) IsNoDefault() bool {
	return y == nil || y.Type == NoDefaultType
}

// ToMap extracts the string-keyed entries of an object into a go map,
// dropping field order.
func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		field := node.Fields[i]
		if field.Type != StringType {
			continue
		}
		res[field.String] = node.Values[i]
	}
	return res
}

// FromMap builds an object with fields in sorted key order. Use
// FromKeyVals when the caller controls ordering.
func FromMap(yMap map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		res.Fields[i] = FromString(key)
		res.Values[i] = yMap[key]
	}
	return res
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{}
	return FromKeyValsAt(res, kvs)
}

func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Type = ObjectType
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type:   ArrayType,
		Values: ySlice,
	}
	return res
}

// Get returns the value for a string field, or nil.
func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].Type == StringType && y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// KeyString renders a field node in its canonical key form.
func KeyString(key *Node) string {
	switch key.Type {
	case StringType:
		return key.String
	case NumberType:
		if key.Int64 != nil {
			return strconv.FormatInt(*key.Int64, 10)
		}
		if key.Float64 != nil {
			return strconv.FormatFloat(*key.Float64, 'g', -1, 64)
		}
		return key.Number
	case BoolType:
		return strconv.FormatBool(key.Bool)
	default:
		return "<" + key.Type.String() + ">"
	}
}

// Visit calls f on y and, when f returns dive, on every value beneath it,
// pre and post order.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
