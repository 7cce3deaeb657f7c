package ir

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ToGoAny lowers a node to plain go values (map[string]any, []any,
// scalars). Object field order is lost; use it only where order is
// irrelevant, such as expression environments and parameter maps.
func ToGoAny(node *Node) any {
	switch node.Type {
	case ObjectType:
		n := len(node.Fields)
		res := make(map[string]any, n)
		for i := range n {
			res[KeyString(node.Fields[i])] = ToGoAny(node.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToGoAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return node.Number
	case BoolType:
		return node.Bool
	case NullType, NoDefaultType:
		return nil
	default:
		panic("impossible production")
	}
}

// FromGoAny lifts plain go values into a node. Maps produce objects in
// sorted key order. *Node values pass through unchanged.
func FromGoAny(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return t, nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case int:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case uint64:
		return FromBigInt(new(big.Int).SetUint64(t)), nil
	case float64:
		return FromFloat(t), nil
	case float32:
		return FromFloat(float64(t)), nil
	case *big.Int:
		return FromBigInt(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return FromInt(i), nil
		}
		if f, err := t.Float64(); err == nil {
			return FromFloat(f), nil
		}
		return &Node{Type: NumberType, Number: t.String()}, nil
	case []*Node:
		return FromSlice(t), nil
	case []any:
		vals := make([]*Node, len(t))
		for i, elt := range t {
			n, err := FromGoAny(elt)
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return FromSlice(vals), nil
	case map[string]*Node:
		return FromMap(t), nil
	case map[string]any:
		m := make(map[string]*Node, len(t))
		for k, elt := range t {
			n, err := FromGoAny(elt)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return FromMap(m), nil
	default:
		return nil, fmt.Errorf("cannot represent %T in ir", v)
	}
}

// MarshalJSON renders the node as plain JSON data (not a description of
// the node structure). Object field order is preserved.
func (y *Node) MarshalJSON() ([]byte, error) {
	switch y.Type {
	case ObjectType:
		buf := []byte{'{'}
		for i := range y.Fields {
			if i > 0 {
				buf = append(buf, ',')
			}
			k, err := json.Marshal(KeyString(y.Fields[i]))
			if err != nil {
				return nil, err
			}
			v, err := json.Marshal(y.Values[i])
			if err != nil {
				return nil, err
			}
			buf = append(buf, k...)
			buf = append(buf, ':')
			buf = append(buf, v...)
		}
		return append(buf, '}'), nil
	case ArrayType:
		buf := []byte{'['}
		for i, elt := range y.Values {
			if i > 0 {
				buf = append(buf, ',')
			}
			v, err := json.Marshal(elt)
			if err != nil {
				return nil, err
			}
			buf = append(buf, v...)
		}
		return append(buf, ']'), nil
	case NumberType:
		if y.Int64 == nil && y.Float64 == nil {
			return []byte(y.Number), nil
		}
		return json.Marshal(ToGoAny(y))
	default:
		return json.Marshal(ToGoAny(y))
	}
}
