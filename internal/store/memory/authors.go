package memory

import (
	"context"
	"strings"

	"libraryapi/internal/domain/author"
	"libraryapi/internal/query"
	"libraryapi/internal/store/repositories"

	"github.com/google/uuid"
)

type authorRepository struct {
	data access
}

func (r *authorRepository) Authors(filter repositories.AuthorFilter) query.Query[*author.Author] {
	genre := strings.ToLower(strings.TrimSpace(filter.Genre))
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var matched []*author.Author
	r.data.read(func(st *state) {
		for _, a := range st.authors {
			if genre != "" && strings.ToLower(strings.TrimSpace(a.Genre)) != genre {
				continue
			}
			if search != "" && !containsAny(search, a.FirstName, a.LastName, a.Genre) {
				continue
			}
			matched = append(matched, copyAuthor(a))
		}
	})
	return query.NewSliceQuery(matched, author.Schema)
}

func (r *authorRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var found *author.Author
	r.data.read(func(st *state) {
		if i := indexAuthor(st, id); i >= 0 {
			found = copyAuthor(st.authors[i])
		}
	})
	if found == nil {
		return nil, repositories.ErrNotFound
	}
	return found, nil
}

func (r *authorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*author.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	found := []*author.Author{}
	r.data.read(func(st *state) {
		for _, a := range st.authors {
			if want[a.ID] {
				found = append(found, copyAuthor(a))
			}
		}
	})
	return found, nil
}

func (r *authorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var ok bool
	r.data.read(func(st *state) { ok = indexAuthor(st, id) >= 0 })
	return ok, nil
}

func (r *authorRepository) Insert(ctx context.Context, a *author.Author) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.data.write(func(st *state) error {
		if indexAuthor(st, a.ID) >= 0 {
			return errDuplicate
		}
		for _, b := range a.Books {
			if indexBook(st, b.ID) >= 0 {
				return errDuplicate
			}
		}
		stored := *a
		stored.Books = nil
		st.authors = append(st.authors, stored)
		for _, b := range a.Books {
			st.books = append(st.books, *b)
		}
		return nil
	})
}

func (r *authorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.data.write(func(st *state) error {
		i := indexAuthor(st, id)
		if i < 0 {
			return repositories.ErrNotFound
		}
		st.authors = append(st.authors[:i:i], st.authors[i+1:]...)
		kept := st.books[:0:0]
		for _, b := range st.books {
			if b.AuthorID != id {
				kept = append(kept, b)
			}
		}
		st.books = kept
		return nil
	})
}

func indexAuthor(st *state, id uuid.UUID) int {
	for i := range st.authors {
		if st.authors[i].ID == id {
			return i
		}
	}
	return -1
}

func copyAuthor(a author.Author) *author.Author {
	a.Books = nil
	return &a
}

func containsAny(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
