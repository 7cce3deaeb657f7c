package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node, consistent with Equal within a
// single process. It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	n.hashTo(&h)
	return h.Sum64()
}

func (n *Node) hashTo(h *maphash.Hash) {
	h.WriteByte(byte(n.Type))
	switch n.Type {
	case NullType, NoDefaultType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		var b [8]byte
		if n.Int64 != nil {
			// ints hash as their float value so Equal numbers collide
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(float64(*n.Int64)))
			h.Write(b[:])
		} else if n.Float64 != nil {
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(*n.Float64))
			h.Write(b[:])
		} else {
			h.WriteString(n.Number)
		}
	case StringType:
		h.WriteString(n.String)
	case ArrayType:
		for _, v := range n.Values {
			v.hashTo(h)
		}
	case ObjectType:
		for i := range n.Fields {
			n.Fields[i].hashTo(h)
			n.Values[i].hashTo(h)
		}
	}
}
