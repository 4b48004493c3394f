package library

import (
	"context"
	"fmt"

	"libraryapi/internal/domain/author"
	"libraryapi/internal/domain/book"
	"libraryapi/internal/query"
	"libraryapi/internal/store/repositories"
	"libraryapi/internal/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ListAuthors filters, sorts and pages the author collection. orderBy and
// fields are validated before the store is touched.
func (s *Service) ListAuthors(ctx context.Context, p query.ResourceParameters) (*query.PagedResult[AuthorDTO], error) {
	const op = "list_authors"

	mapping, err := query.Lookup[AuthorDTO, *author.Author](s.registry)
	if err != nil {
		return nil, fail(op, err)
	}
	if err := query.CheckMapping[AuthorDTO, *author.Author](s.registry, p.OrderBy); err != nil {
		return nil, fail(op, err)
	}
	if err := AuthorDTOSchema.CheckFields(p.Fields); err != nil {
		return nil, fail(op, err)
	}

	q := s.authors.Authors(repositories.AuthorFilter{Genre: p.CategoryFilter, Search: p.SearchQuery})
	q, err = query.ApplySort(q, p.OrderBy, mapping)
	if err != nil {
		return nil, fail(op, err)
	}
	page, err := query.Paginate(ctx, q, p.PageNumber, p.PageSize)
	if err != nil {
		return nil, fail(op, err)
	}

	now := s.now()
	return query.MapPage(page, func(a *author.Author) AuthorDTO { return toAuthorDTO(a, now) }), nil
}

// GetAuthor reads one author, from cache when possible.
func (s *Service) GetAuthor(ctx context.Context, id uuid.UUID, fields string) (*AuthorDTO, error) {
	const op = "get_author"

	if err := AuthorDTOSchema.CheckFields(fields); err != nil {
		return nil, fail(op, err)
	}

	a, hit, err := s.cache.Get(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("author_id", id.String()).Msg("author cache read failed")
	}
	if !hit {
		a, err = s.authors.FindByID(ctx, id)
		if err != nil {
			return nil, fail(op, err)
		}
		if err := s.cache.Set(ctx, a); err != nil {
			log.Warn().Err(err).Str("author_id", id.String()).Msg("author cache write failed")
		}
	}

	dto := toAuthorDTO(a, s.now())
	return &dto, nil
}

// CreateAuthor stores an author and its books atomically.
func (s *Service) CreateAuthor(ctx context.Context, in AuthorForCreation) (*AuthorDTO, error) {
	const op = "create_author"

	a := in.toAuthor()
	v := validator.New()
	s.validateAuthor(v, a)
	if !v.Valid() {
		return nil, fail(op, &ValidationError{Errors: v.Errors})
	}

	err := s.inTx(ctx, func(tx repositories.Transaction) error {
		return tx.AuthorRepository().Insert(ctx, a)
	})
	if err != nil {
		return nil, fail(op, err)
	}

	log.Info().Str("author_id", a.ID.String()).Int("books", len(a.Books)).Msg("author created")
	dto := toAuthorDTO(a, s.now())
	return &dto, nil
}

// BlockAuthorCreation answers a POST to an existing author URI: conflict
// when the author exists, not found otherwise.
func (s *Service) BlockAuthorCreation(ctx context.Context, id uuid.UUID) error {
	const op = "block_author_creation"

	exists, err := s.authors.Exists(ctx, id)
	if err != nil {
		return fail(op, err)
	}
	if exists {
		return fail(op, ErrConflict)
	}
	return fail(op, ErrNotFound)
}

// DeleteAuthor removes the author with all of its books.
func (s *Service) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	const op = "delete_author"

	if err := s.authors.Delete(ctx, id); err != nil {
		return fail(op, err)
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		log.Warn().Err(err).Str("author_id", id.String()).Msg("author cache invalidation failed")
	}
	log.Info().Str("author_id", id.String()).Msg("author deleted")
	return nil
}

func (s *Service) validateAuthor(v *validator.Validator, a *author.Author) {
	author.ValidateAuthor(v, a, s.now())
	for i, b := range a.Books {
		bv := validator.New()
		book.ValidateBook(bv, b, false)
		v.Merge(fmt.Sprintf("books[%d]", i), bv)
	}
}
