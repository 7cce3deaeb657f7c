// Package tree implements iteration trees: immutable recipes that
// enumerate sequences of plain data trees (ir.Node values).
//
// Leaves enumerate scalar values (Literal, Sequence, Range and the
// seeded RandomFloat, RandomBigInt, RandomPrime); combinators compose
// child sequences (Product, Union, Zip, Pick), reorder or truncate them
// (Shuffle, First), rewrite their values (Transform), or select among
// named alternatives (Configurations). Every node reports its length
// without iterating, and every tree iterates the same sequence every
// time: randomness is a pure function of assigned seeds, which
// GenerateSeeds derives from a single root.
//
// Nodes are immutable and structurally shared; the treepath package
// builds edited trees out of existing ones without copying untouched
// subtrees.
package tree
