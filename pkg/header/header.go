// Package header models response header assembly as a transformation over an
// ordered sequence of name/value pairs.
//
// The pipeline used by the server is:
//
//	collect (FromHTTP) -> filter (Filter) -> inject (Inject) -> apply/serialize
//
// Every step returns a new slice; inputs are never modified.
package header

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

const (
	// ContentType is the header name suppressed and re-injected by PlainText.
	ContentType = "Content-Type"
	// PlainTextValue is the only Content-Type value a response may carry.
	PlainTextValue = "text/plain"
)

// Field is a single header line.
type Field struct {
	Name  string
	Value string
}

// String renders the field as it appears on the wire, without the line break.
func (f Field) String() string {
	return f.Name + ": " + f.Value
}

// Predicate decides whether a field is kept by Filter.
type Predicate func(Field) bool

// NameIsNot keeps every field whose name is not name, compared
// case-insensitively.
func NameIsNot(name string) Predicate {
	return func(f Field) bool {
		return !strings.EqualFold(f.Name, name)
	}
}

// FromHTTP collects the fields of h. Names are sorted so the result does not
// depend on map iteration order; values keep their insertion order.
func FromHTTP(h http.Header) []Field {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(h))
	for _, name := range names {
		for _, value := range h[name] {
			fields = append(fields, Field{Name: name, Value: value})
		}
	}
	return fields
}

// Filter returns the fields for which keep reports true, in order.
func Filter(fields []Field, keep Predicate) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// Inject appends f after all existing fields.
func Inject(fields []Field, f Field) []Field {
	out := make([]Field, len(fields), len(fields)+1)
	copy(out, fields)
	return append(out, f)
}

// PlainText drops every Content-Type field and injects exactly one
// "Content-Type: text/plain" after the remaining fields.
func PlainText(fields []Field) []Field {
	kept := Filter(fields, NameIsNot(ContentType))
	return Inject(kept, Field{Name: ContentType, Value: PlainTextValue})
}

// Values returns the values of every field named name (case-insensitive).
func Values(fields []Field, name string) []string {
	var values []string
	for _, f := range fields {
		if strings.EqualFold(f.Name, name) {
			values = append(values, f.Value)
		}
	}
	return values
}

// Apply replaces the contents of h with fields. Names are stored as given so
// headers the pipeline did not touch reach the wire unmodified.
func Apply(h http.Header, fields []Field) {
	for name := range h {
		delete(h, name)
	}
	for _, f := range fields {
		h[f.Name] = append(h[f.Name], f.Value)
	}
}

// Serialize writes fields as header lines terminated by CRLF, followed by the
// empty line that ends a header block.
func Serialize(w io.Writer, fields []Field) error {
	for _, f := range fields {
		if _, err := fmt.Fprintf(w, "%s\r\n", f); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\r\n")
	return err
}
