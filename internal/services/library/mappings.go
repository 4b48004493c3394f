package library

import (
	"libraryapi/internal/domain/author"
	"libraryapi/internal/domain/book"
	"libraryapi/internal/query"

	"github.com/google/uuid"
)

// AuthorDTOSchema lists the fields a client may select on an author.
var AuthorDTOSchema = query.MustSchema(
	query.Value("id", func(a AuthorDTO) uuid.UUID { return a.ID }),
	query.Value("name", func(a AuthorDTO) string { return a.Name }),
	query.Value("age", func(a AuthorDTO) int { return a.Age }),
	query.Value("genre", func(a AuthorDTO) string { return a.Genre }),
)

// BookDTOSchema lists the fields a client may select on a book.
var BookDTOSchema = query.MustSchema(
	query.Value("id", func(b BookDTO) uuid.UUID { return b.ID }),
	query.Value("title", func(b BookDTO) string { return b.Title }),
	query.Value("description", func(b BookDTO) string { return b.Description }),
	query.Value("authorId", func(b BookDTO) uuid.UUID { return b.AuthorID }),
)

// NewRegistry registers the sort mappings from public fields to entity
// fields. Age sorts by date of birth, so its direction is reverted.
func NewRegistry() (*query.Registry, error) {
	return query.NewRegistry(
		query.Register[AuthorDTO, *author.Author](map[string]query.PropertyMappingValue{
			"Id":    {DestinationFields: []string{"Id"}},
			"Genre": {DestinationFields: []string{"Genre"}},
			"Age":   {DestinationFields: []string{"DateOfBirth"}, Revert: true},
			"Name":  {DestinationFields: []string{"FirstName", "LastName"}},
		}, author.Schema),
		query.Register[BookDTO, *book.Book](map[string]query.PropertyMappingValue{
			"Id":          {DestinationFields: []string{"Id"}},
			"Title":       {DestinationFields: []string{"Title"}},
			"Description": {DestinationFields: []string{"Description"}},
		}, book.Schema),
	)
}
