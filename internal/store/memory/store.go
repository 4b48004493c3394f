// Package memory is an in-process store for local development and tests.
// It implements the same repository contracts as the PostgreSQL store.
package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"libraryapi/internal/domain/author"
	"libraryapi/internal/domain/book"
	"libraryapi/internal/store/repositories"
)

var errTxDone = errors.New("memory: transaction already finished")

type state struct {
	authors []author.Author
	books   []book.Book
}

func (s *state) clone() *state {
	return &state{authors: slices.Clone(s.authors), books: slices.Clone(s.books)}
}

// access runs fn against the current state with the right locking.
type access interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

// Store keeps authors and books in insertion order. A transaction holds the
// write lock from Begin until Commit or Rollback.
type Store struct {
	mu sync.RWMutex
	st *state
}

func New() *Store {
	return &Store{st: &state{}}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) Authors() repositories.AuthorRepository {
	return &authorRepository{data: s}
}

func (s *Store) Books() repositories.BookRepository {
	return &bookRepository{data: s}
}

// Begin implements repositories.UnitOfWork.
func (s *Store) Begin(ctx context.Context) (repositories.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &transaction{store: s, st: s.st.clone()}, nil
}

// transaction works on a private copy that replaces the store state on commit.
type transaction struct {
	store *Store
	st    *state
	done  bool
}

func (t *transaction) read(fn func(st *state)) { fn(t.st) }

func (t *transaction) write(fn func(st *state) error) error { return fn(t.st) }

func (t *transaction) Commit(context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true
	t.store.st = t.st
	t.store.mu.Unlock()
	return nil
}

func (t *transaction) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *transaction) AuthorRepository() repositories.AuthorRepository {
	return &authorRepository{data: t}
}

func (t *transaction) BookRepository() repositories.BookRepository {
	return &bookRepository{data: t}
}
