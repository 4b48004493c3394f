package query

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// Field describes one public property of T: how to read it and, when the
// property is sortable in memory, how to compare two values of T by it.
type Field[T any] struct {
	Name    string
	Value   func(T) any
	Compare func(a, b T) int
}

// Ordered builds a sortable field over any ordered value.
func Ordered[T any, V cmp.Ordered](name string, get func(T) V) Field[T] {
	return Field[T]{
		Name:    name,
		Value:   func(t T) any { return get(t) },
		Compare: func(a, b T) int { return cmp.Compare(get(a), get(b)) },
	}
}

// Folded builds a sortable string field compared case-insensitively.
func Folded[T any](name string, get func(T) string) Field[T] {
	return Field[T]{
		Name:  name,
		Value: func(t T) any { return get(t) },
		Compare: func(a, b T) int {
			return cmp.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
		},
	}
}

// Time builds a sortable time field.
func Time[T any](name string, get func(T) time.Time) Field[T] {
	return Field[T]{
		Name:    name,
		Value:   func(t T) any { return get(t) },
		Compare: func(a, b T) int { return get(a).Compare(get(b)) },
	}
}

// Value builds a field that can be selected but not sorted in memory.
func Value[T any, V any](name string, get func(T) V) Field[T] {
	return Field[T]{
		Name:  name,
		Value: func(t T) any { return get(t) },
	}
}

// Schema is the ordered, case-insensitive field table of a shape. It is
// built once per type and never mutated afterwards.
type Schema[T any] struct {
	fields []Field[T]
	index  map[string]int
}

// MustSchema builds a schema and panics on an empty or duplicate field name.
func MustSchema[T any](fields ...Field[T]) Schema[T] {
	s := Schema[T]{
		fields: make([]Field[T], 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		key := strings.ToLower(f.Name)
		if key == "" || f.Value == nil {
			panic("query: schema field needs a name and an accessor")
		}
		if _, dup := s.index[key]; dup {
			panic(fmt.Sprintf("query: duplicate schema field %q", f.Name))
		}
		s.index[key] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

// Field looks a field up by name, ignoring case.
func (s Schema[T]) Field(name string) (Field[T], bool) {
	i, ok := s.index[strings.ToLower(name)]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

// Names returns the declared field names in order.
func (s Schema[T]) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// CheckFields validates a comma-separated fields list. Tokens are trimmed;
// an empty or whitespace-only list is valid.
func (s Schema[T]) CheckFields(fields string) error {
	if strings.TrimSpace(fields) == "" {
		return nil
	}
	for _, token := range strings.Split(fields, ",") {
		token = strings.TrimSpace(token)
		if _, ok := s.Field(token); !ok {
			return &UnknownFieldError{Field: token}
		}
	}
	return nil
}

// HasFields reports whether every token in fields exists on the schema.
func (s Schema[T]) HasFields(fields string) bool {
	return s.CheckFields(fields) == nil
}
