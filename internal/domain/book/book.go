package book

import (
	"strings"

	"libraryapi/internal/validator"

	"github.com/google/uuid"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Book belongs to exactly one author.
type Book struct {
	ID          uuid.UUID
	AuthorID    uuid.UUID
	Title       string
	Description string
}

// NewBook creates a book with a fresh ID.
func NewBook(authorID uuid.UUID, title, description string) *Book {
	return &Book{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Title:       title,
		Description: description,
	}
}

// ValidateBook checks title and description. A full replacement must carry
// a description; creation and partial updates may leave it empty.
func ValidateBook(v *validator.Validator, b *Book, descriptionRequired bool) {
	v.Check(validator.NotBlank(b.Title), "title", "must be provided")
	v.Check(validator.MaxChars(b.Title, MaxTitleLength), "title", "must not be more than 100 characters long")

	if descriptionRequired {
		v.Check(validator.NotBlank(b.Description), "description", "must be provided")
	}
	v.Check(validator.MaxChars(b.Description, MaxDescriptionLength), "description", "must not be more than 500 characters long")
	v.Check(!strings.EqualFold(strings.TrimSpace(b.Title), strings.TrimSpace(b.Description)) || b.Description == "",
		"description", "must be different from the title")
}
