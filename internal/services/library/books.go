package library

import (
	"context"

	"libraryapi/internal/domain/book"
	"libraryapi/internal/query"
	"libraryapi/internal/store/repositories"
	"libraryapi/internal/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ListBooks pages the books of one author.
func (s *Service) ListBooks(ctx context.Context, authorID uuid.UUID, p query.ResourceParameters) (*query.PagedResult[BookDTO], error) {
	const op = "list_books"

	mapping, err := query.Lookup[BookDTO, *book.Book](s.registry)
	if err != nil {
		return nil, fail(op, err)
	}
	if err := query.CheckMapping[BookDTO, *book.Book](s.registry, p.OrderBy); err != nil {
		return nil, fail(op, err)
	}
	if err := BookDTOSchema.CheckFields(p.Fields); err != nil {
		return nil, fail(op, err)
	}
	if err := s.requireAuthor(ctx, authorID); err != nil {
		return nil, fail(op, err)
	}

	q := s.books.BooksForAuthor(authorID, repositories.BookFilter{Search: p.SearchQuery})
	q, err = query.ApplySort(q, p.OrderBy, mapping)
	if err != nil {
		return nil, fail(op, err)
	}
	page, err := query.Paginate(ctx, q, p.PageNumber, p.PageSize)
	if err != nil {
		return nil, fail(op, err)
	}
	return query.MapPage(page, toBookDTO), nil
}

func (s *Service) GetBook(ctx context.Context, authorID, bookID uuid.UUID, fields string) (*BookDTO, error) {
	const op = "get_book"

	if err := BookDTOSchema.CheckFields(fields); err != nil {
		return nil, fail(op, err)
	}
	b, err := s.books.FindForAuthor(ctx, authorID, bookID)
	if err != nil {
		return nil, fail(op, err)
	}
	dto := toBookDTO(b)
	return &dto, nil
}

func (s *Service) CreateBook(ctx context.Context, authorID uuid.UUID, in BookForCreation) (*BookDTO, error) {
	const op = "create_book"

	b := in.toBook(authorID)
	if err := validateBook(b, false); err != nil {
		return nil, fail(op, err)
	}
	if err := s.requireAuthor(ctx, authorID); err != nil {
		return nil, fail(op, err)
	}
	if err := s.books.Insert(ctx, b); err != nil {
		return nil, fail(op, err)
	}

	log.Info().Str("author_id", authorID.String()).Str("book_id", b.ID.String()).Msg("book created")
	dto := toBookDTO(b)
	return &dto, nil
}

// UpdateBook replaces title and description of an existing book.
func (s *Service) UpdateBook(ctx context.Context, authorID, bookID uuid.UUID, in BookForUpdate) error {
	const op = "update_book"

	b := &book.Book{ID: bookID, AuthorID: authorID, Title: in.Title, Description: in.Description}
	if err := validateBook(b, true); err != nil {
		return fail(op, err)
	}
	if err := s.requireAuthor(ctx, authorID); err != nil {
		return fail(op, err)
	}
	if err := s.books.Update(ctx, b); err != nil {
		return fail(op, err)
	}
	return nil
}

// PatchBook applies the present fields of patch and revalidates the result.
func (s *Service) PatchBook(ctx context.Context, authorID, bookID uuid.UUID, patch BookPatch) (*BookDTO, error) {
	const op = "patch_book"

	if err := s.requireAuthor(ctx, authorID); err != nil {
		return nil, fail(op, err)
	}
	b, err := s.books.FindForAuthor(ctx, authorID, bookID)
	if err != nil {
		return nil, fail(op, err)
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if err := validateBook(b, false); err != nil {
		return nil, fail(op, err)
	}
	if err := s.books.Update(ctx, b); err != nil {
		return nil, fail(op, err)
	}
	dto := toBookDTO(b)
	return &dto, nil
}

func (s *Service) DeleteBook(ctx context.Context, authorID, bookID uuid.UUID) error {
	if err := s.books.Delete(ctx, authorID, bookID); err != nil {
		return fail("delete_book", err)
	}
	return nil
}

func (s *Service) requireAuthor(ctx context.Context, id uuid.UUID) error {
	exists, err := s.authors.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

func validateBook(b *book.Book, descriptionRequired bool) error {
	v := validator.New()
	book.ValidateBook(v, b, descriptionRequired)
	if !v.Valid() {
		return &ValidationError{Errors: v.Errors}
	}
	return nil
}
