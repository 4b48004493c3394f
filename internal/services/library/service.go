package library

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"libraryapi/internal/cache"
	"libraryapi/internal/query"
	"libraryapi/internal/store/repositories"
)

var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)

// Service implements the author and book use cases.
type Service struct {
	authors  repositories.AuthorRepository
	books    repositories.BookRepository
	uow      repositories.UnitOfWork
	cache    cache.AuthorCache
	registry *query.Registry
	now      func() time.Time
}

// NewService creates a new library service
func NewService(
	authors repositories.AuthorRepository,
	books repositories.BookRepository,
	uow repositories.UnitOfWork,
	authorCache cache.AuthorCache,
	registry *query.Registry,
) *Service {
	if authorCache == nil {
		authorCache = cache.Noop{}
	}
	return &Service{
		authors:  authors,
		books:    books,
		uow:      uow,
		cache:    authorCache,
		registry: registry,
		now:      time.Now,
	}
}

// inTx runs fn in a transaction and commits when it succeeds.
func (s *Service) inTx(ctx context.Context, fn func(tx repositories.Transaction) error) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func fail(op string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		err = ErrNotFound
	}
	return &ServiceError{Op: op, Err: err}
}

// ServiceError represents a library service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "library service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ValidationError carries field-level input errors.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}
