package quoteless

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-json-experiment/json/jsontext"
)

// DefaultIndent is the number of spaces per nesting level used when
// [Options.Indent] is not positive.
const DefaultIndent = 2

// circular replaces a composite that is already being rendered further up
// the tree.
const circular = `"[Circular Reference]"`

// Options configures [Stringify]. The zero value indents by two spaces
// and renders one entry per line.
type Options struct {
	// Indent is the number of spaces added per nesting level.
	Indent int
	// Compact renders everything on a single line.
	Compact bool
}

// Stringify renders v as quoteless text.
//
// v may be a [Value] or any go value, which is first converted with
// [ValueOf]. Composites that contain themselves are rendered as
// "[Circular Reference]" at the point where they recur.
//
// Strings are written in the lightest form that keeps them unambiguous:
//
//	bare             ; no whitespace, quotes or punctuation
//	'two words'      ; whitespace or one of ,{}[]:
//	"it's \"quoted\"" ; quotes, backslashes or control characters
//	'''
//	multiple
//	lines
//	'''
func Stringify(v any, opts Options) string {
	indent := opts.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}
	s := &stringifier{
		indent:    indent,
		pretty:    !opts.Compact,
		rendering: map[Value]struct{}{},
	}
	return s.stringify(ValueOf(v), 0)
}

type stringifier struct {
	indent    int
	pretty    bool
	rendering map[Value]struct{}
}

func (s *stringifier) stringify(v Value, depth int) string {
	switch v := v.(type) {
	case nil, null:
		return "null"
	case undefined:
		return "undefined"
	case String:
		return quoteString(string(v), depth)
	case Number:
		return v.String()
	case Boolean:
		if v {
			return "true"
		}
		return "false"
	case *Array:
		if v == nil {
			return "null"
		}
		if !s.enter(v) {
			return circular
		}
		defer s.leave(v)
		return s.stringifyArray(v, depth)
	case *Object:
		if v == nil {
			return "null"
		}
		if !s.enter(v) {
			return circular
		}
		defer s.leave(v)
		return s.stringifyObject(v, depth)
	case Other:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (s *stringifier) enter(v Value) bool {
	if _, ok := s.rendering[v]; ok {
		return false
	}
	s.rendering[v] = struct{}{}
	return true
}

func (s *stringifier) leave(v Value) {
	delete(s.rendering, v)
}

func (s *stringifier) stringifyArray(a *Array, depth int) string {
	if len(a.elems) == 0 {
		return "[]"
	}
	inner := depth + s.indent
	items := make([]string, 0, len(a.elems))
	for _, elem := range a.elems {
		items = append(items, s.item("", elem, inner))
	}
	return s.wrap("[", items, "]", depth)
}

func (s *stringifier) stringifyObject(o *Object, depth int) string {
	if len(o.keys) == 0 {
		return "{}"
	}
	inner := depth + s.indent
	items := make([]string, 0, len(o.keys))
	for i, key := range o.keys {
		items = append(items, s.item(quoteString(key, inner)+": ", o.values[i], inner))
	}
	return s.wrap("{", items, "}", depth)
}

func (s *stringifier) item(prefix string, v Value, depth int) string {
	if s.pretty {
		return strings.Repeat(" ", depth) + prefix + s.stringify(v, depth)
	}
	return prefix + s.stringify(v, depth)
}

func (s *stringifier) wrap(open string, items []string, close string, depth int) string {
	if !s.pretty {
		return open + strings.Join(items, ", ") + close
	}
	return open + "\n" + strings.Join(items, ",\n") + "\n" + strings.Repeat(" ", depth) + close
}

// needsEscape reports characters that force a double-quoted literal.
func needsEscape(r rune) bool {
	switch r {
	case '"', '\\', '\b', '\f', '\r', '\t', '\'':
		return true
	}
	return false
}

// needsQuote reports characters that force a single-quoted literal.
func needsQuote(r rune) bool {
	switch r {
	case ',', '{', '}', '[', ']', ':', '"':
		return true
	}
	return isSpace(r)
}

// isSpace matches the ECMAScript whitespace and line terminator set.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return r == '\uFEFF' || unicode.IsSpace(r)
}

// quoteString renders s as a string literal. The checks must run in this
// order: a string with both a quote and a space is escaped, not single-quoted.
func quoteString(s string, depth int) string {
	switch {
	case strings.Contains(s, "\n"):
		return quoteMultiline(s, depth)
	case strings.ContainsFunc(s, needsEscape):
		return escapeString(s)
	case strings.ContainsFunc(s, needsQuote):
		return "'" + s + "'"
	default:
		return s
	}
}

func escapeString(s string) string {
	// AppendQuote replaces invalid UTF-8 with U+FFFD and reports it; the
	// replacement is all we want.
	b, _ := jsontext.AppendQuote(nil, s)
	return string(b)
}

func quoteMultiline(s string, depth int) string {
	baseIndent := strings.Repeat(" ", depth)
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = baseIndent + lines[i]
	}
	body := strings.Join(lines, "\n")
	if len(lines) > 1 {
		return "'''\n" + body + "\n" + baseIndent + "'''"
	}
	return "'''" + body + "'''"
}
