package dump

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/scanforge/sweeptree/ir"
	"github.com/scanforge/sweeptree/tree"
)

// Dumper renders data trees and iteration trees human-readably:
// indented fields, construction tags, colors when the destination is a
// terminal.
type Dumper struct {
	w      io.Writer
	colors *Colors
	indent string
}

// Option configures a Dumper.
type Option func(*Dumper)

// WithColor forces colors on or off; without it colors follow whether
// the writer is a terminal.
func WithColor(on bool) Option {
	return func(d *Dumper) {
		if on {
			d.colors = NewColors()
		} else {
			d.colors = noColors()
		}
	}
}

// WithIndent sets the per-level indent, two spaces without it.
func WithIndent(indent string) Option {
	return func(d *Dumper) { d.indent = indent }
}

func New(w io.Writer, opts ...Option) *Dumper {
	d := &Dumper{w: w, indent: "  "}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		d.colors = NewColors()
	} else {
		d.colors = noColors()
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Value renders one data tree.
func (d *Dumper) Value(n *ir.Node) error {
	if err := d.value(n, 0); err != nil {
		return err
	}
	_, err := io.WriteString(d.w, "\n")
	return err
}

// Tree renders an iteration tree through its pseudo data tree: literals
// plain, iteration leaves as tagged parameter objects.
func (d *Dumper) Tree(n tree.Node) error {
	return d.Value(n.Pseudo())
}

// Sequence renders up to limit values of an iterator, one per line
// group, separated by "---" markers.
func (d *Dumper) Sequence(it *tree.Iterator, limit int) error {
	vals, err := tree.Collect(it, limit)
	if err != nil {
		return err
	}
	for i, v := range vals {
		if i > 0 {
			sep := d.colors.Color(ir.ObjectType, SepColor, "---")
			if _, err := io.WriteString(d.w, sep+"\n"); err != nil {
				return err
			}
		}
		if err := d.Value(v); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dumper) value(n *ir.Node, depth int) error {
	if n.Tag != "" {
		tag := d.colors.Color(n.Type, TagColor, n.Tag)
		if _, err := io.WriteString(d.w, tag+" "); err != nil {
			return err
		}
	}
	switch n.Type {
	case ir.ObjectType:
		if len(n.Fields) == 0 {
			_, err := io.WriteString(d.w, "{}")
			return err
		}
		for i, f := range n.Fields {
			if err := d.newline(depth, i == 0); err != nil {
				return err
			}
			field := d.colors.Color(ir.ObjectType, FieldColor, ir.KeyString(f))
			sep := d.colors.Color(ir.ObjectType, SepColor, ":")
			if _, err := io.WriteString(d.w, field+sep+" "); err != nil {
				return err
			}
			if err := d.value(n.Values[i], depth+1); err != nil {
				return err
			}
		}
		return nil
	case ir.ArrayType:
		if len(n.Values) == 0 {
			_, err := io.WriteString(d.w, "[]")
			return err
		}
		for i, v := range n.Values {
			if err := d.newline(depth, i == 0); err != nil {
				return err
			}
			dash := d.colors.Color(ir.ArrayType, SepColor, "-")
			if _, err := io.WriteString(d.w, dash+" "); err != nil {
				return err
			}
			if err := d.value(v, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := io.WriteString(d.w, d.scalar(n))
		return err
	}
}

// newline starts a child line at depth. The first entry of the
// top-level container stays on the current line; everything nested
// starts fresh so containers never share a line with their values.
func (d *Dumper) newline(depth int, first bool) error {
	if first && depth == 0 {
		return nil
	}
	_, err := io.WriteString(d.w, "\n"+strings.Repeat(d.indent, depth))
	return err
}

func (d *Dumper) scalar(n *ir.Node) string {
	var s string
	switch n.Type {
	case ir.NullType:
		s = "null"
	case ir.NoDefaultType:
		s = "<no default>"
	case ir.BoolType:
		s = fmt.Sprintf("%t", n.Bool)
	case ir.StringType:
		s = n.String
		if s == "" || strings.ContainsAny(s, ":\n#") {
			s = fmt.Sprintf("%q", s)
		}
	case ir.NumberType:
		s = ir.KeyString(n)
	default:
		s = fmt.Sprintf("<%s>", n.Type)
	}
	return d.colors.Color(n.Type, ValueColor, s)
}

// Fprint renders a data tree to w without constructing a Dumper at the
// call site.
func Fprint(w io.Writer, n *ir.Node) error {
	return New(w).Value(n)
}

// Sprint renders a data tree to a string, never colored.
func Sprint(n *ir.Node) string {
	var sb strings.Builder
	d := New(&sb, WithColor(false))
	if err := d.Value(n); err != nil {
		return fmt.Sprintf("<dump error: %v>", err)
	}
	return sb.String()
}
