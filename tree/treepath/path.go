package treepath

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Segment addresses one child of a combinator node: by key for named
// children ("a", "'field name'"), by position for any children ("[0]").
type Segment struct {
	Field    string
	HasField bool
	Index    int
}

func FieldSegment(field string) Segment {
	return Segment{Field: field, HasField: true}
}

func IndexSegment(i int) Segment {
	return Segment{Index: i}
}

func (s Segment) String() string {
	if !s.HasField {
		return fmt.Sprintf("[%d]", s.Index)
	}
	if quoteField(s.Field) {
		return strconv.Quote(s.Field)
	}
	return s.Field
}

// Path addresses a node in an iteration tree; the empty path is the
// root.
type Path []Segment

func (p Path) String() string {
	buf := bytes.NewBuffer(nil)
	for _, s := range p {
		if s.HasField && buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(s.String())
	}
	return buf.String()
}

func quoteField(f string) bool {
	if f == "" {
		return true
	}
	return strings.ContainsAny(f, ".[]\"' \t\n")
}

// Parse reads a path string: dot-separated field names, possibly quoted,
// with bracketed position indices attaching without a dot.
//
//	"a.b"        the named child b of the named child a
//	"a[0].c"     a position under a named child
//	"'odd.key'"  a quoted field
//	""           the root
func Parse(path string) (Path, error) {
	var res Path
	rest := path
	first := true
	for rest != "" {
		switch rest[0] {
		case '.':
			if first {
				return nil, parseErr(path, "leading '.'")
			}
			rest = rest[1:]
			if rest == "" {
				return nil, parseErr(path, "trailing '.'")
			}
			if rest[0] == '[' || rest[0] == '.' {
				return nil, parseErr(path, "empty field")
			}
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, parseErr(path, "unclosed '['")
			}
			i, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return nil, parseErr(path, "bad index %q", rest[1:end])
			}
			if i < 0 {
				return nil, parseErr(path, "negative index %d", i)
			}
			res = append(res, IndexSegment(i))
			rest = rest[end+1:]
			first = false
			continue
		default:
			if !first {
				return nil, parseErr(path, "expected '.' or '[' before %q", rest)
			}
		}
		field, tail, err := parseField(path, rest)
		if err != nil {
			return nil, err
		}
		res = append(res, FieldSegment(field))
		rest = tail
		first = false
	}
	return res, nil
}

func parseField(path, rest string) (string, string, error) {
	if rest[0] == '\'' || rest[0] == '"' {
		q := rest[0]
		end := strings.IndexByte(rest[1:], q)
		if end < 0 {
			return "", "", parseErr(path, "unclosed quote")
		}
		return rest[1 : end+1], rest[end+2:], nil
	}
	end := strings.IndexAny(rest, ".[")
	if end < 0 {
		return rest, "", nil
	}
	if end == 0 {
		return "", "", parseErr(path, "empty field")
	}
	return rest[:end], rest[end:], nil
}
