// Package ir provides the plain-data representation produced by iteration
// trees.
//
// # Overview
//
// A data tree is a recursive structure of ordered objects (key → data tree)
// and arrays of data trees, bottoming out at literals (null, bool, number,
// string). Every value yielded by an iterator, every default, and every
// pseudo data tree is an *ir.Node.
//
// The IR works as a recursive tagged union structure, where values are
// placed in fields depending on the node type.
//
// # Node Types
//
// The Type field indicates the node's type:
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64, float64, or decimal string)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: key-value pairs (fields and values)
//   - NoDefaultType: sentinel marking the absence of a default value;
//     distinct from null, which is itself a legal data value
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	flag := ir.FromBool(true)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromString("value"),
//	})
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//
// # Structure Constraints
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there are always exactly as many fields as values. Fields are scalar,
// non-null nodes (string, number, or bool typed) and must be unique within
// an object. Field order is significant and preserved.
//
// Number values are placed under:
//   - Int64: if it is an integer (64-bit signed)
//   - Float64: if it is a floating point number (64-bit IEEE float)
//   - Number: as a decimal string fallback (arbitrary-precision integers)
//
// # Sharing
//
// Nodes carry no parent references, so any subtree may be shared between
// any number of containing trees. Code handing a node to an unknown caller
// and then modifying it must Clone first; the iteration engine itself never
// modifies nodes after construction.
//
// # Comparison and Hashing
//
// Nodes can be compared for a total order with Compare, and hashed with
// Hash (process-local, for dedup and caching).
package ir
