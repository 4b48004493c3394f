package book

import "libraryapi/internal/query"

// Schema lists the sortable entity fields that property mappings target.
var Schema = query.MustSchema(
	query.Ordered("Id", func(b *Book) string { return b.ID.String() }),
	query.Folded("Title", func(b *Book) string { return b.Title }),
	query.Folded("Description", func(b *Book) string { return b.Description }),
	query.Ordered("AuthorId", func(b *Book) string { return b.AuthorID.String() }),
)
