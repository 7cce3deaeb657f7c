package tree

import (
	"errors"
	"fmt"
)

// ErrExhausted marks the natural end of a one-way iteration. It is not a
// failure, in the same sense as io.EOF.
var ErrExhausted = errors.New("iteration exhausted")

// ErrInfinite is returned where an operation needs a last index and the
// tree is infinite (backward Reset, reverse-from-end).
var ErrInfinite = errors.New("infinite iteration length")

// ConfigurationError reports an invalid parameter value or combination at
// construction time. Malformed trees fail to build; they are never
// partially iterated.
type ConfigurationError struct {
	Kind Kind
	Msg  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %s", e.Kind.Tag(), e.Msg)
}

func cfgErrf(k Kind, format string, args ...any) error {
	return &ConfigurationError{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// PathError reports a path segment or index that does not address an
// existing child or value.
type PathError struct {
	Path string
	Msg  string
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return "path error: " + e.Msg
	}
	return fmt.Sprintf("path error at %s: %s", e.Path, e.Msg)
}

func rangeErr(i int, l Length) error {
	return &PathError{
		Path: fmt.Sprintf("[%d]", i),
		Msg:  fmt.Sprintf("index out of range (length %s)", l),
	}
}

// ConversionError reports a node-kind replacement with no compatible
// interpretation of the existing children or parameters.
type ConversionError struct {
	From Kind
	To   Kind
	Msg  string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s: %s", e.From, e.To, e.Msg)
}
