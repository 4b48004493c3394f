package library

import (
	"time"

	"libraryapi/internal/domain/author"
	"libraryapi/internal/domain/book"

	"github.com/google/uuid"
)

// AuthorDTO is the public representation of an author.
type AuthorDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Age   int       `json:"age"`
	Genre string    `json:"genre"`
}

// BookDTO is the public representation of a book.
type BookDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    uuid.UUID `json:"authorId"`
}

// AuthorForCreation creates an author, optionally with books.
type AuthorForCreation struct {
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	DateOfBirth time.Time         `json:"dateOfBirth"`
	Genre       string            `json:"genre"`
	Books       []BookForCreation `json:"books"`
}

type BookForCreation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BookForUpdate fully replaces a book; description is required.
type BookForUpdate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BookPatch changes only the fields that are present.
type BookPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func toAuthorDTO(a *author.Author, now time.Time) AuthorDTO {
	return AuthorDTO{
		ID:    a.ID,
		Name:  a.FullName(),
		Age:   a.Age(now),
		Genre: a.Genre,
	}
}

func toBookDTO(b *book.Book) BookDTO {
	return BookDTO{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		AuthorID:    b.AuthorID,
	}
}

func (in AuthorForCreation) toAuthor() *author.Author {
	a := author.NewAuthor(in.FirstName, in.LastName, in.DateOfBirth, in.Genre)
	for _, b := range in.Books {
		a.AddBook(b.toBook(a.ID))
	}
	return a
}

func (in BookForCreation) toBook(authorID uuid.UUID) *book.Book {
	return book.NewBook(authorID, in.Title, in.Description)
}
