package repositories

import (
	"context"
	"errors"

	"libraryapi/internal/domain/author"
	"libraryapi/internal/domain/book"
	"libraryapi/internal/query"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup, update or delete matches no row.
var ErrNotFound = errors.New("record not found")

// AuthorFilter narrows an author collection. Genre matches exactly, ignoring
// case; Search matches first name, last name or genre by substring.
type AuthorFilter struct {
	Genre  string
	Search string
}

// BookFilter narrows the books of an author by title or description.
type BookFilter struct {
	Search string
}

// AuthorRepository defines the contract for author data access
type AuthorRepository interface {
	Authors(filter AuthorFilter) query.Query[*author.Author]
	FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*author.Author, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// Insert stores the author together with any books attached to it.
	Insert(ctx context.Context, a *author.Author) error
	// Delete removes the author and all of its books.
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookRepository defines the contract for book data access
type BookRepository interface {
	BooksForAuthor(authorID uuid.UUID, filter BookFilter) query.Query[*book.Book]
	FindForAuthor(ctx context.Context, authorID, bookID uuid.UUID) (*book.Book, error)
	Insert(ctx context.Context, b *book.Book) error
	Update(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, authorID, bookID uuid.UUID) error
}

// UnitOfWork defines transactional operations
type UnitOfWork interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Transaction scopes repositories to one atomic change. Rollback after
// Commit is a no-op.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	AuthorRepository() AuthorRepository
	BookRepository() BookRepository
}
