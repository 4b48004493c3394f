package library

import (
	"context"
	"fmt"

	"libraryapi/internal/domain/author"
	"libraryapi/internal/store/repositories"
	"libraryapi/internal/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CreateAuthorCollection stores several authors in one transaction. Either
// all of them are created or none.
func (s *Service) CreateAuthorCollection(ctx context.Context, ins []AuthorForCreation) ([]AuthorDTO, error) {
	const op = "create_author_collection"

	if len(ins) == 0 {
		return nil, fail(op, &ValidationError{Errors: map[string]string{"authors": "must contain at least one author"}})
	}

	authors := make([]*author.Author, len(ins))
	v := validator.New()
	for i, in := range ins {
		authors[i] = in.toAuthor()
		av := validator.New()
		s.validateAuthor(av, authors[i])
		v.Merge(fmt.Sprintf("[%d]", i), av)
	}
	if !v.Valid() {
		return nil, fail(op, &ValidationError{Errors: v.Errors})
	}

	err := s.inTx(ctx, func(tx repositories.Transaction) error {
		repo := tx.AuthorRepository()
		for _, a := range authors {
			if err := repo.Insert(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fail(op, err)
	}

	log.Info().Int("authors", len(authors)).Msg("author collection created")
	now := s.now()
	out := make([]AuthorDTO, len(authors))
	for i, a := range authors {
		out[i] = toAuthorDTO(a, now)
	}
	return out, nil
}

// GetAuthorCollection returns the authors in the order of ids. Every id
// must resolve.
func (s *Service) GetAuthorCollection(ctx context.Context, ids []uuid.UUID) ([]AuthorDTO, error) {
	const op = "get_author_collection"

	if len(ids) == 0 {
		return nil, fail(op, &ValidationError{Errors: map[string]string{"ids": "must contain at least one id"}})
	}

	found, err := s.authors.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fail(op, err)
	}
	byID := make(map[uuid.UUID]*author.Author, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	now := s.now()
	out := make([]AuthorDTO, len(ids))
	for i, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, fail(op, ErrNotFound)
		}
		out[i] = toAuthorDTO(a, now)
	}
	return out, nil
}
