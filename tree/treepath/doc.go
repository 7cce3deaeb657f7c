// Package treepath addresses and edits nodes inside an iteration tree
// by path. Paths name children by key ("a.b") or by position ("a[0]").
//
// Every edit is functional: the input tree is never modified, the
// result shares every subtree off the edited spine, and iterators built
// from the input keep iterating the old tree. Parameter edits merge RFC
// 7386 style, so a patch can change one parameter without restating the
// rest.
package treepath
