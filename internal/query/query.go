package query

import (
	"context"
	"slices"
)

// Query is a lazily evaluated, ordered collection of T. Every OrderBy call
// becomes the new primary ordering; earlier orderings only break ties.
type Query[T any] interface {
	OrderBy(field string, descending bool) (Query[T], error)
	Count(ctx context.Context) (int, error)
	Fetch(ctx context.Context, offset, limit int) ([]T, error)
}

// SliceQuery is an in-memory Query over a snapshot of items.
type SliceQuery[T any] struct {
	items  []T
	schema Schema[T]
}

// NewSliceQuery copies items so later changes to the slice are not observed.
func NewSliceQuery[T any](items []T, schema Schema[T]) *SliceQuery[T] {
	return &SliceQuery[T]{items: slices.Clone(items), schema: schema}
}

// OrderBy stable-sorts by the named schema field, which keeps the previous
// order among equal elements.
func (q *SliceQuery[T]) OrderBy(field string, descending bool) (Query[T], error) {
	f, ok := q.schema.Field(field)
	if !ok || f.Compare == nil {
		return nil, configErrorf("field %q cannot be sorted", field)
	}
	sorted := slices.Clone(q.items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		if descending {
			return f.Compare(b, a)
		}
		return f.Compare(a, b)
	})
	return &SliceQuery[T]{items: sorted, schema: q.schema}, nil
}

func (q *SliceQuery[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(q.items), nil
}

func (q *SliceQuery[T]) Fetch(ctx context.Context, offset, limit int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(q.items) || limit <= 0 {
		return []T{}, nil
	}
	end := min(offset+limit, len(q.items))
	return slices.Clone(q.items[offset:end]), nil
}
