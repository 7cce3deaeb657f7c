package tree

import (
	"strconv"

	"github.com/scanforge/sweeptree/ir"
)

// Params is a node's parameter set as plain go data. It round-trips
// through JSON (treepath merges parameter patches with RFC 7386 merge
// patch), so values are scalars, []any, and map[string]any; seeds travel
// as decimal strings to survive the float64 round trip.
type Params map[string]any

func (p Params) has(key string) bool {
	_, ok := p[key]
	return ok
}

func paramBool(k Kind, p Params, key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, cfgErrf(k, "%s: expected bool, got %T", key, v)
	}
	return b, nil
}

func paramString(k Kind, p Params, key, def string) (string, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", cfgErrf(k, "%s: expected string, got %T", key, v)
	}
	return s, nil
}

func paramInt(k Kind, p Params, key string) (int, bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch t := v.(type) {
	case int:
		return t, true, nil
	case int64:
		return int(t), true, nil
	case float64:
		if t != float64(int(t)) {
			return 0, false, cfgErrf(k, "%s: expected integer, got %v", key, t)
		}
		return int(t), true, nil
	default:
		return 0, false, cfgErrf(k, "%s: expected integer, got %T", key, v)
	}
}

func paramSeed(k Kind, p Params) (*uint64, error) {
	v, ok := p["seed"]
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		s, err := strconv.ParseUint(t, 10, 64)
		if err != nil {
			return nil, cfgErrf(k, "seed: %v", err)
		}
		return &s, nil
	case uint64:
		return &t, nil
	case int:
		if t < 0 {
			return nil, cfgErrf(k, "seed: negative")
		}
		s := uint64(t)
		return &s, nil
	case int64:
		if t < 0 {
			return nil, cfgErrf(k, "seed: negative")
		}
		s := uint64(t)
		return &s, nil
	case float64:
		if t < 0 || t != float64(uint64(t)) {
			return nil, cfgErrf(k, "seed: expected unsigned integer, got %v", t)
		}
		s := uint64(t)
		return &s, nil
	default:
		return nil, cfgErrf(k, "seed: expected unsigned integer, got %T", v)
	}
}

func seedParam(p Params, seed *uint64) Params {
	if seed != nil {
		p["seed"] = strconv.FormatUint(*seed, 10)
	}
	return p
}

func paramNode(k Kind, p Params, key string) (*ir.Node, error) {
	v, ok := p[key]
	if !ok {
		return nil, nil
	}
	n, err := ir.FromGoAny(v)
	if err != nil {
		return nil, cfgErrf(k, "%s: %v", key, err)
	}
	return n, nil
}

func paramNodes(k Kind, p Params, key string) ([]*ir.Node, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case []*ir.Node:
		return t, nil
	case []any:
		res := make([]*ir.Node, len(t))
		for i, elt := range t {
			n, err := ir.FromGoAny(elt)
			if err != nil {
				return nil, cfgErrf(k, "%s[%d]: %v", key, i, err)
			}
			res[i] = n
		}
		return res, nil
	default:
		n, err := ir.FromGoAny(v)
		if err != nil || n.Type != ir.ArrayType {
			return nil, cfgErrf(k, "%s: expected list, got %T", key, v)
		}
		return n.Values, nil
	}
}
