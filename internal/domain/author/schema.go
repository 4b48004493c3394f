package author

import (
	"time"

	"libraryapi/internal/query"
)

// Schema lists the sortable entity fields that property mappings target.
var Schema = query.MustSchema(
	query.Ordered("Id", func(a *Author) string { return a.ID.String() }),
	query.Folded("FirstName", func(a *Author) string { return a.FirstName }),
	query.Folded("LastName", func(a *Author) string { return a.LastName }),
	query.Time("DateOfBirth", func(a *Author) time.Time { return a.DateOfBirth }),
	query.Folded("Genre", func(a *Author) string { return a.Genre }),
)
