package memory

import (
	"context"
	"errors"
	"strings"

	"libraryapi/internal/domain/book"
	"libraryapi/internal/query"
	"libraryapi/internal/store/repositories"

	"github.com/google/uuid"
)

var errDuplicate = errors.New("memory: duplicate id")

type bookRepository struct {
	data access
}

func (r *bookRepository) BooksForAuthor(authorID uuid.UUID, filter repositories.BookFilter) query.Query[*book.Book] {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var matched []*book.Book
	r.data.read(func(st *state) {
		for _, b := range st.books {
			if b.AuthorID != authorID {
				continue
			}
			if search != "" && !containsAny(search, b.Title, b.Description) {
				continue
			}
			matched = append(matched, &b)
		}
	})
	return query.NewSliceQuery(matched, book.Schema)
}

func (r *bookRepository) FindForAuthor(ctx context.Context, authorID, bookID uuid.UUID) (*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var found *book.Book
	r.data.read(func(st *state) {
		if i := indexBook(st, bookID); i >= 0 && st.books[i].AuthorID == authorID {
			b := st.books[i]
			found = &b
		}
	})
	if found == nil {
		return nil, repositories.ErrNotFound
	}
	return found, nil
}

func (r *bookRepository) Insert(ctx context.Context, b *book.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.data.write(func(st *state) error {
		if indexAuthor(st, b.AuthorID) < 0 {
			return repositories.ErrNotFound
		}
		if indexBook(st, b.ID) >= 0 {
			return errDuplicate
		}
		st.books = append(st.books, *b)
		return nil
	})
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.data.write(func(st *state) error {
		i := indexBook(st, b.ID)
		if i < 0 || st.books[i].AuthorID != b.AuthorID {
			return repositories.ErrNotFound
		}
		st.books[i].Title = b.Title
		st.books[i].Description = b.Description
		return nil
	})
}

func (r *bookRepository) Delete(ctx context.Context, authorID, bookID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.data.write(func(st *state) error {
		i := indexBook(st, bookID)
		if i < 0 || st.books[i].AuthorID != authorID {
			return repositories.ErrNotFound
		}
		st.books = append(st.books[:i:i], st.books[i+1:]...)
		return nil
	})
}

func indexBook(st *state, id uuid.UUID) int {
	for i := range st.books {
		if st.books[i].ID == id {
			return i
		}
	}
	return -1
}
