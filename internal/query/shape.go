package query

import (
	"bytes"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LinksKey is the entry holding hypermedia links on a shaped entity.
const LinksKey = "links"

// ShapedEntity is an insertion-ordered map of field name to value. It
// marshals to a flat JSON object in key order.
type ShapedEntity struct {
	keys   []string
	values map[string]any
}

func NewShapedEntity() *ShapedEntity {
	return &ShapedEntity{values: map[string]any{}}
}

// Set stores a value. Setting an existing key replaces the value but keeps
// the key's original position.
func (e *ShapedEntity) Set(key string, value any) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

func (e *ShapedEntity) Get(key string) (any, bool) {
	v, ok := e.values[key]
	return v, ok
}

func (e *ShapedEntity) Keys() []string {
	return append([]string(nil), e.keys...)
}

func (e *ShapedEntity) Len() int { return len(e.keys) }

// WithLinks appends the links entry and returns e.
func (e *ShapedEntity) WithLinks(links []Link) *ShapedEntity {
	e.Set(LinksKey, links)
	return e
}

func (e *ShapedEntity) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Shape projects record onto the requested fields. With no fields every
// schema field is emitted in declared order; otherwise fields are emitted
// in request order under their declared names.
func Shape[T any](record T, fields string, schema Schema[T]) (*ShapedEntity, error) {
	e := NewShapedEntity()
	if strings.TrimSpace(fields) == "" {
		for _, f := range schema.fields {
			e.Set(f.Name, f.Value(record))
		}
		return e, nil
	}
	for _, token := range strings.Split(fields, ",") {
		token = strings.TrimSpace(token)
		f, ok := schema.Field(token)
		if !ok {
			return nil, &UnknownFieldError{Field: token}
		}
		e.Set(f.Name, f.Value(record))
	}
	return e, nil
}

// ShapeAll shapes every record with the same field list, which is checked
// once up front.
func ShapeAll[T any](records []T, fields string, schema Schema[T]) ([]*ShapedEntity, error) {
	if err := schema.CheckFields(fields); err != nil {
		return nil, err
	}
	out := make([]*ShapedEntity, 0, len(records))
	for _, r := range records {
		e, err := Shape(r, fields, schema)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
