package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Query-string keys understood by ParseResourceParameters.
const (
	ParamPageNumber     = "pageNumber"
	ParamPageSize       = "pageSize"
	ParamOrderBy        = "orderBy"
	ParamSearchQuery    = "searchQuery"
	ParamCategoryFilter = "categoryFilter"
	ParamFields         = "fields"
)

const (
	DefaultPageSize    = 10
	DefaultMaxPageSize = 20
)

// ParameterDefaults are the per-resource fallbacks for absent parameters.
type ParameterDefaults struct {
	OrderBy     string
	PageSize    int
	MaxPageSize int
}

func (d ParameterDefaults) normalize() ParameterDefaults {
	if d.MaxPageSize <= 0 {
		d.MaxPageSize = DefaultMaxPageSize
	}
	d.MaxPageSize = min(d.MaxPageSize, HardMaxPageSize)
	if d.PageSize <= 0 {
		d.PageSize = DefaultPageSize
	}
	d.PageSize = min(d.PageSize, d.MaxPageSize)
	return d
}

// ResourceParameters are the collection options of a single request.
type ResourceParameters struct {
	PageNumber     int
	PageSize       int
	OrderBy        string
	SearchQuery    string
	CategoryFilter string
	Fields         string
}

// ParseResourceParameters reads collection options from a query string.
// The page size is clamped to the configured maximum; a page number below
// one or a non-numeric paging value is an *InvalidPageError. The default
// ordering applies only when orderBy is absent.
func ParseResourceParameters(qs url.Values, defaults ParameterDefaults) (ResourceParameters, error) {
	d := defaults.normalize()
	p := ResourceParameters{
		PageNumber:     1,
		PageSize:       d.PageSize,
		OrderBy:        d.OrderBy,
		SearchQuery:    qs.Get(ParamSearchQuery),
		CategoryFilter: qs.Get(ParamCategoryFilter),
		Fields:         qs.Get(ParamFields),
	}

	if raw, ok := lookup(qs, ParamPageNumber); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 1 {
			return ResourceParameters{}, &InvalidPageError{Param: ParamPageNumber, Value: raw}
		}
		p.PageNumber = n
	}
	if raw, ok := lookup(qs, ParamPageSize); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return ResourceParameters{}, &InvalidPageError{Param: ParamPageSize, Value: raw}
		}
		p.PageSize = clamp(n, 1, d.MaxPageSize)
	}
	if raw, ok := lookup(qs, ParamOrderBy); ok {
		p.OrderBy = raw
	}
	return p, nil
}

// WithPage returns a copy pointing at another page.
func (p ResourceParameters) WithPage(pageNumber int) ResourceParameters {
	p.PageNumber = pageNumber
	return p
}

// Values renders the parameters back into a query string. orderBy is always
// written so an explicitly empty ordering survives a round trip.
func (p ResourceParameters) Values() url.Values {
	v := url.Values{}
	if p.Fields != "" {
		v.Set(ParamFields, p.Fields)
	}
	v.Set(ParamOrderBy, p.OrderBy)
	if p.SearchQuery != "" {
		v.Set(ParamSearchQuery, p.SearchQuery)
	}
	if p.CategoryFilter != "" {
		v.Set(ParamCategoryFilter, p.CategoryFilter)
	}
	v.Set(ParamPageNumber, strconv.Itoa(p.PageNumber))
	v.Set(ParamPageSize, strconv.Itoa(p.PageSize))
	return v
}

func lookup(qs url.Values, key string) (string, bool) {
	vs, ok := qs[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
