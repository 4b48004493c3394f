package query

import (
	"context"
	"strconv"
)

// HardMaxPageSize bounds every page regardless of configuration.
const HardMaxPageSize = 50

// PagedResult is one page of a collection plus the metadata describing it.
type PagedResult[T any] struct {
	Items       []T
	CurrentPage int
	PageSize    int
	TotalCount  int
	TotalPages  int
}

func (p *PagedResult[T]) HasPrevious() bool { return p.CurrentPage > 1 }

func (p *PagedResult[T]) HasNext() bool { return p.CurrentPage < p.TotalPages }

// Paginate counts the whole query, then fetches a single page of it. A page
// past the end yields no items but still reports the true totals.
func Paginate[T any](ctx context.Context, q Query[T], pageNumber, pageSize int) (*PagedResult[T], error) {
	if pageNumber < 1 {
		return nil, &InvalidPageError{Param: ParamPageNumber, Value: strconv.Itoa(pageNumber)}
	}
	pageSize = clamp(pageSize, 1, HardMaxPageSize)

	total, err := q.Count(ctx)
	if err != nil {
		return nil, err
	}

	// The offset overflows for huge page numbers; check the range first.
	totalPages := (total + pageSize - 1) / pageSize
	items := []T{}
	if pageNumber <= totalPages {
		items, err = q.Fetch(ctx, (pageNumber-1)*pageSize, pageSize)
		if err != nil {
			return nil, err
		}
	}

	return &PagedResult[T]{
		Items:       items,
		CurrentPage: pageNumber,
		PageSize:    pageSize,
		TotalCount:  total,
		TotalPages:  totalPages,
	}, nil
}

// MapPage converts the items of a page and keeps its metadata.
func MapPage[T, U any](p *PagedResult[T], f func(T) U) *PagedResult[U] {
	items := make([]U, len(p.Items))
	for i, it := range p.Items {
		items[i] = f(it)
	}
	return &PagedResult[U]{
		Items:       items,
		CurrentPage: p.CurrentPage,
		PageSize:    p.PageSize,
		TotalCount:  p.TotalCount,
		TotalPages:  p.TotalPages,
	}
}

// PaginationMetadata is the payload of the X-Pagination response header.
type PaginationMetadata struct {
	TotalCount       int    `json:"totalCount"`
	PageSize         int    `json:"pageSize"`
	CurrentPage      int    `json:"currentPage"`
	TotalPages       int    `json:"totalPages"`
	PreviousPageLink string `json:"previousPageLink,omitempty"`
	NextPageLink     string `json:"nextPageLink,omitempty"`
}

func (p *PagedResult[T]) Metadata() PaginationMetadata {
	return PaginationMetadata{
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
