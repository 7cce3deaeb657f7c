package tree

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/scanforge/sweeptree/ir"
)

// changedFields reduces cur to the parts that differ from prev. Objects
// keep only changed or added fields, recursively; arrays become a
// positional patch where elements that held still are carry markers; any
// other value passes through whole, changed or not, so a lazified
// sequence always replays with carryForward.
func changedFields(prev, cur *ir.Node) *ir.Node {
	if prev.Type == ir.ObjectType && cur.Type == ir.ObjectType {
		kvs := make([]ir.KeyVal, 0, len(cur.Fields))
		for i, f := range cur.Fields {
			v := cur.Values[i]
			pv := ir.Get(prev, ir.KeyString(f))
			if pv == nil {
				kvs = append(kvs, ir.KeyVal{Key: f, Val: v})
				continue
			}
			switch {
			case pv.Type == ir.ObjectType && v.Type == ir.ObjectType:
				sub := changedFields(pv, v)
				if len(sub.Fields) > 0 {
					kvs = append(kvs, ir.KeyVal{Key: f, Val: sub})
				}
			case pv.Type == ir.ArrayType && v.Type == ir.ArrayType:
				if d := diffArray(pv, v); d != nil {
					kvs = append(kvs, ir.KeyVal{Key: f, Val: d})
				}
			default:
				if !ir.Equal(pv, v) {
					kvs = append(kvs, ir.KeyVal{Key: f, Val: v})
				}
			}
		}
		return ir.FromKeyVals(kvs)
	}
	if prev.Type == ir.ArrayType && cur.Type == ir.ArrayType {
		if d := diffArray(prev, cur); d != nil {
			return d
		}
	}
	return cur
}

// diffArray reduces cur to a positional patch against prev, or nil when
// the arrays are equal. Elements hash to code points and the aligned
// diff's equal runs locate shared elements; an element that sits at the
// same index on both sides becomes a carry marker and replays from the
// accumulated state, everything else appears literally. Arrays that
// already contain the marker type are replaced whole.
func diffArray(prev, cur *ir.Node) *ir.Node {
	m := map[uint64]rune{}
	pr := elemRunes(m, prev)
	cr := elemRunes(m, cur)
	diffs := diffpatch.New().DiffMainRunes(pr, cr, false)
	changed := false
	for i := range diffs {
		if diffs[i].Type != diffpatch.DiffEqual {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}
	carry := make([]bool, len(cur.Values))
	pi, ci := 0, 0
	for i := range diffs {
		d := &diffs[i]
		n := len([]rune(d.Text))
		switch d.Type {
		case diffpatch.DiffDelete:
			pi += n
		case diffpatch.DiffInsert:
			ci += n
		case diffpatch.DiffEqual:
			for range n {
				carry[ci] = pi == ci
				pi++
				ci++
			}
		}
	}
	vals := make([]*ir.Node, len(cur.Values))
	sparse := false
	for i, v := range cur.Values {
		if v.Type == ir.NoDefaultType {
			return cur
		}
		if carry[i] {
			vals[i] = ir.NoDefault()
			sparse = true
			continue
		}
		vals[i] = v
	}
	if !sparse {
		return cur
	}
	return ir.FromSlice(vals)
}

func elemRunes(m map[uint64]rune, n *ir.Node) []rune {
	rs := make([]rune, len(n.Values))
	for i, v := range n.Values {
		h := v.Hash()
		r, ok := m[h]
		if !ok {
			r = rune(len(m))
			m[h] = r
		}
		rs[i] = r
	}
	return rs
}

// carryForward merges a sparse value over the accumulated state: object
// fields merge recursively, array carry markers pull the element at the
// same index, anything else replaces. It is the inverse of changedFields
// in the sense that folding it over a lazified sequence reproduces the
// full one.
func carryForward(base, patch *ir.Node) *ir.Node {
	if base.Type == ir.ArrayType && patch.Type == ir.ArrayType {
		vals := make([]*ir.Node, len(patch.Values))
		for i, v := range patch.Values {
			if v.Type == ir.NoDefaultType && i < len(base.Values) {
				vals[i] = base.Values[i]
				continue
			}
			vals[i] = v
		}
		return ir.FromSlice(vals)
	}
	if base.Type != ir.ObjectType || patch.Type != ir.ObjectType {
		return patch
	}
	kvs := make([]ir.KeyVal, 0, len(base.Fields)+len(patch.Fields))
	for i, f := range base.Fields {
		kvs = append(kvs, ir.KeyVal{Key: f, Val: base.Values[i]})
	}
	for i, f := range patch.Fields {
		v := patch.Values[i]
		at := -1
		for j := range kvs {
			if ir.KeyString(kvs[j].Key) == ir.KeyString(f) {
				at = j
				break
			}
		}
		if at < 0 {
			kvs = append(kvs, ir.KeyVal{Key: f, Val: v})
			continue
		}
		kvs[at].Val = carryForward(kvs[at].Val, v)
	}
	return ir.FromKeyVals(kvs)
}
