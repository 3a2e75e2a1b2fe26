package props

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zeusync/scenekit/pkg/generic"
)

const indentUnit = "    "

var buffers = generic.NewPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)

// String returns the text form of t: one `name = value` line per scalar and
// a `name { ... }` block per nested table, in stored order. The outermost
// level has no enclosing braces.
func (t *Table) String() string {
	buf := buffers.Get()
	defer buffers.Put(buf)
	t.encode(buf, 0)
	return buf.String()
}

// WriteTo writes the text form of t to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	buf := buffers.Get()
	defer buffers.Put(buf)
	t.encode(buf, 0)
	return buf.WriteTo(w)
}

func (t *Table) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText replaces the content of t with the parsed text. The mode
// of t is kept. On error t is left unchanged.
func (t *Table) UnmarshalText(text []byte) error {
	parsed, err := Parse(bytes.NewReader(text))
	if err != nil {
		return err
	}
	parsed.SetMode(t.mode)
	t.props, t.index, t.errs = parsed.props, parsed.index, nil
	return nil
}

func (t *Table) encode(buf *bytes.Buffer, depth int) {
	for _, p := range t.props {
		for range depth {
			buf.WriteString(indentUnit)
		}
		buf.WriteString(p.name)
		if p.isTable() {
			buf.WriteString(" {\n")
			p.table.encode(buf, depth+1)
			for range depth {
				buf.WriteString(indentUnit)
			}
			buf.WriteString("}\n")
			continue
		}
		buf.WriteString(" = ")
		buf.WriteString(encodeValue(p.value))
		buf.WriteByte('\n')
	}
}

func encodeValue(s string) string {
	if s == "" || s != strings.TrimSpace(s) || strings.ContainsAny(s, "\r\n") || s[0] == '"' {
		return quote(s)
	}
	return s
}

func quote(s string) string { return strconv.Quote(s) }

// Parse reads a table from its text form. The returned table is in Reading
// mode. Malformed input yields a *ParseError and no table.
func Parse(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	root := New(Reading)
	stack := []*Table{root}
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || strings.HasPrefix(text, "//") {
			continue
		}
		cur := stack[len(stack)-1]

		if text == "}" {
			if len(stack) == 1 {
				return nil, &ParseError{Line: line, Err: ErrUnbalanced}
			}
			stack = stack[:len(stack)-1]
			continue
		}

		if eq := strings.IndexByte(text, '='); eq >= 0 {
			name := strings.TrimSpace(text[:eq])
			value, err := decodeValue(strings.TrimSpace(text[eq+1:]))
			if err != nil {
				return nil, &ParseError{Line: line, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
			}
			if err := add(cur, property{name: name, value: value}); err != nil {
				return nil, &ParseError{Line: line, Err: err}
			}
			continue
		}

		var (
			name   string
			closed bool
		)
		switch {
		case strings.HasSuffix(text, "{}"):
			name, closed = strings.TrimSpace(strings.TrimSuffix(text, "{}")), true
		case strings.HasSuffix(text, "{"):
			name = strings.TrimSpace(strings.TrimSuffix(text, "{"))
		default:
			return nil, &ParseError{Line: line, Err: fmt.Errorf("%w: expected '=' or '{' in %q", ErrSyntax, text)}
		}
		sub := New(Reading)
		if err := add(cur, property{name: name, table: sub}); err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		if !closed {
			stack = append(stack, sub)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("props: read: %w", err)
	}
	if len(stack) != 1 {
		return nil, &ParseError{Line: line, Err: fmt.Errorf("%w: %d block(s) not closed", ErrUnbalanced, len(stack)-1)}
	}
	return root, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Table, error) {
	return Parse(strings.NewReader(s))
}

func add(t *Table, p property) error {
	if err := checkName(p.name); err != nil {
		return err
	}
	if t.Has(p.name) {
		return fmt.Errorf("%w %q", ErrDuplicate, p.name)
	}
	t.put(p)
	return nil
}

func decodeValue(s string) (string, error) {
	if strings.HasPrefix(s, `"`) {
		return strconv.Unquote(s)
	}
	return s, nil
}
