// Package dump renders data trees and iteration trees for humans:
// indented YAML-like output, construction tags on iteration leaves, and
// colors when writing to a terminal.
package dump
