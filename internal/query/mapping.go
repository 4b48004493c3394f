package query

import (
	"reflect"
	"sort"
	"strings"
)

// PropertyMappingValue names the destination fields a public field sorts by.
// Revert flips the sort direction, e.g. a public "Age" backed by a birth date.
type PropertyMappingValue struct {
	DestinationFields []string
	Revert            bool
}

// PropertyMapping maps public field names, case-insensitively, to
// destination fields for one (source, destination) type pair.
type PropertyMapping struct {
	values map[string]PropertyMappingValue
}

// Get resolves a public field name.
func (m PropertyMapping) Get(field string) (PropertyMappingValue, bool) {
	v, ok := m.values[strings.ToLower(field)]
	return v, ok
}

// Keys returns the mapped public field names, lower-cased and sorted.
func (m PropertyMapping) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// unmapped returns the first token of a sort expression with no mapping.
// Tokens are trimmed and cut at the first space so "Name desc" checks "Name".
func (m PropertyMapping) unmapped(fields string) (string, bool) {
	if strings.TrimSpace(fields) == "" {
		return "", false
	}
	for _, clause := range strings.Split(fields, ",") {
		token := sortToken(clause)
		if _, ok := m.Get(token); !ok {
			return token, true
		}
	}
	return "", false
}

func sortToken(clause string) string {
	clause = strings.TrimSpace(clause)
	if i := strings.IndexByte(clause, ' '); i >= 0 {
		return clause[:i]
	}
	return clause
}

type typePair struct {
	source      reflect.Type
	destination reflect.Type
}

func (p typePair) String() string {
	return p.source.String() + " -> " + p.destination.String()
}

// Registration is one mapping waiting to be added to a Registry.
type Registration struct {
	pair     typePair
	values   map[string]PropertyMappingValue
	hasField func(string) bool
}

// Register declares the mapping from source shape S to destination D. Every
// destination field must exist on the destination schema.
func Register[S, D any](values map[string]PropertyMappingValue, destination Schema[D]) Registration {
	return Registration{
		pair:   typePair{source: reflect.TypeFor[S](), destination: reflect.TypeFor[D]()},
		values: values,
		hasField: func(name string) bool {
			_, ok := destination.Field(name)
			return ok
		},
	}
}

type registered struct {
	pair    typePair
	mapping PropertyMapping
}

// Registry holds every property mapping of the application. It is built
// once at startup and is read-only afterwards.
type Registry struct {
	mappings []registered
}

// NewRegistry validates and collects registrations.
func NewRegistry(regs ...Registration) (*Registry, error) {
	r := &Registry{}
	seen := make(map[typePair]bool, len(regs))
	for _, reg := range regs {
		if seen[reg.pair] {
			return nil, configErrorf("mapping %s registered twice", reg.pair)
		}
		seen[reg.pair] = true

		values := make(map[string]PropertyMappingValue, len(reg.values))
		for name, v := range reg.values {
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" {
				return nil, configErrorf("mapping %s has an empty field name", reg.pair)
			}
			if _, dup := values[key]; dup {
				return nil, configErrorf("mapping %s declares %q twice", reg.pair, name)
			}
			if len(v.DestinationFields) == 0 {
				return nil, configErrorf("mapping %s field %q has no destination fields", reg.pair, name)
			}
			for _, dst := range v.DestinationFields {
				if !reg.hasField(dst) {
					return nil, configErrorf("mapping %s field %q targets unknown destination field %q", reg.pair, name, dst)
				}
			}
			values[key] = PropertyMappingValue{
				DestinationFields: append([]string(nil), v.DestinationFields...),
				Revert:            v.Revert,
			}
		}
		r.mappings = append(r.mappings, registered{pair: reg.pair, mapping: PropertyMapping{values: values}})
	}
	return r, nil
}

// Lookup returns the mapping registered for (S, D). Zero or more than one
// match is a configuration error.
func Lookup[S, D any](r *Registry) (PropertyMapping, error) {
	pair := typePair{source: reflect.TypeFor[S](), destination: reflect.TypeFor[D]()}
	var (
		found PropertyMapping
		n     int
	)
	if r != nil {
		for _, m := range r.mappings {
			if m.pair == pair {
				found = m.mapping
				n++
			}
		}
	}
	switch n {
	case 0:
		return PropertyMapping{}, configErrorf("no mapping registered for %s", pair)
	case 1:
		return found, nil
	default:
		return PropertyMapping{}, configErrorf("%d mappings registered for %s", n, pair)
	}
}

// ValidMappingExists reports whether every clause of a sort expression
// resolves through the (S, D) mapping. An empty expression is valid.
func ValidMappingExists[S, D any](r *Registry, fields string) (bool, error) {
	m, err := Lookup[S, D](r)
	if err != nil {
		return false, err
	}
	_, missing := m.unmapped(fields)
	return !missing, nil
}

// CheckMapping is ValidMappingExists returning the offending field as an
// *InvalidSortFieldError.
func CheckMapping[S, D any](r *Registry, fields string) error {
	m, err := Lookup[S, D](r)
	if err != nil {
		return err
	}
	if token, missing := m.unmapped(fields); missing {
		return &InvalidSortFieldError{Field: token}
	}
	return nil
}
