package query

import "strings"

// OrderTerm is one resolved destination ordering.
type OrderTerm struct {
	Field      string
	Descending bool
}

// ParseOrderBy resolves a comma-separated sort expression through mapping.
// Terms come back primary first. A clause is descending only when it ends
// with the exact suffix " desc"; a mapping's Revert flag flips the direction
// of each of its destination fields.
func ParseOrderBy(orderBy string, mapping PropertyMapping) ([]OrderTerm, error) {
	if strings.TrimSpace(orderBy) == "" {
		return nil, nil
	}
	var terms []OrderTerm
	for _, clause := range strings.Split(orderBy, ",") {
		clause = strings.TrimSpace(clause)
		descending := strings.HasSuffix(clause, " desc")
		token := sortToken(clause)

		value, ok := mapping.Get(token)
		if !ok {
			return nil, &InvalidSortFieldError{Field: token}
		}
		for _, dst := range value.DestinationFields {
			terms = append(terms, OrderTerm{Field: dst, Descending: descending != value.Revert})
		}
	}
	return terms, nil
}

// ApplySort orders q by a sort expression. An empty expression returns q
// unchanged. Terms are applied last to first so the first clause ends up
// as the primary ordering.
func ApplySort[T any](q Query[T], orderBy string, mapping PropertyMapping) (Query[T], error) {
	terms, err := ParseOrderBy(orderBy, mapping)
	if err != nil {
		return nil, err
	}
	for i := len(terms) - 1; i >= 0; i-- {
		q, err = q.OrderBy(terms[i].Field, terms[i].Descending)
		if err != nil {
			return nil, err
		}
	}
	return q, nil
}
