package memory

import (
	"context"
	"testing"
	"time"

	"libraryapi/internal/domain/author"
	"libraryapi/internal/domain/book"
	"libraryapi/internal/store/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store) (*author.Author, *author.Author) {
	t.Helper()
	ctx := context.Background()

	king := author.NewAuthor("Stephen", "King", time.Date(1947, 9, 21, 0, 0, 0, 0, time.UTC), "Horror")
	king.AddBook(book.NewBook(king.ID, "The Shining", "A family heads to an isolated hotel for the winter."))
	king.AddBook(book.NewBook(king.ID, "Misery", "An author is held captive by a nurse."))
	lapidus := author.NewAuthor("Jens", "Lapidus", time.Date(1974, 5, 24, 0, 0, 0, 0, time.UTC), "Thriller")

	require.NoError(t, s.Authors().Insert(ctx, king))
	require.NoError(t, s.Authors().Insert(ctx, lapidus))
	return king, lapidus
}

func fetchAll[T any](t *testing.T, q interface {
	Fetch(ctx context.Context, offset, limit int) ([]T, error)
}) []T {
	t.Helper()
	items, err := q.Fetch(context.Background(), 0, 100)
	require.NoError(t, err)
	return items
}

func TestAuthorsFilter(t *testing.T) {
	s := New()
	king, lapidus := seed(t, s)

	tests := []struct {
		name   string
		filter repositories.AuthorFilter
		want   []uuid.UUID
	}{
		{"no filter keeps insertion order", repositories.AuthorFilter{}, []uuid.UUID{king.ID, lapidus.ID}},
		{"genre ignores case and padding", repositories.AuthorFilter{Genre: " thriller "}, []uuid.UUID{lapidus.ID}},
		{"search first name", repositories.AuthorFilter{Search: "steph"}, []uuid.UUID{king.ID}},
		{"search genre", repositories.AuthorFilter{Search: "HORR"}, []uuid.UUID{king.ID}},
		{"genre and search combine", repositories.AuthorFilter{Genre: "Horror", Search: "jens"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []uuid.UUID
			for _, a := range fetchAll[*author.Author](t, s.Authors().Authors(tt.filter)) {
				got = append(got, a.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthorsQuerySortsBySchemaField(t *testing.T) {
	s := New()
	king, lapidus := seed(t, s)

	q, err := s.Authors().Authors(repositories.AuthorFilter{}).OrderBy("DateOfBirth", true)
	require.NoError(t, err)

	items := fetchAll[*author.Author](t, q)
	require.Len(t, items, 2)
	assert.Equal(t, lapidus.ID, items[0].ID)
	assert.Equal(t, king.ID, items[1].ID)
}

func TestFindByIDReturnsCopyWithoutBooks(t *testing.T) {
	s := New()
	ctx := context.Background()
	king, _ := seed(t, s)

	found, err := s.Authors().FindByID(ctx, king.ID)
	require.NoError(t, err)
	assert.Equal(t, "King", found.LastName)
	assert.Nil(t, found.Books)

	found.LastName = "Queen"
	again, err := s.Authors().FindByID(ctx, king.ID)
	require.NoError(t, err)
	assert.Equal(t, "King", again.LastName)

	_, err = s.Authors().FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeleteAuthorRemovesBooks(t *testing.T) {
	s := New()
	ctx := context.Background()
	king, _ := seed(t, s)

	require.NoError(t, s.Authors().Delete(ctx, king.ID))
	assert.Empty(t, fetchAll[*book.Book](t, s.Books().BooksForAuthor(king.ID, repositories.BookFilter{})))

	exists, err := s.Authors().Exists(ctx, king.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, s.Authors().Delete(ctx, king.ID), repositories.ErrNotFound)
}

func TestBooks(t *testing.T) {
	s := New()
	ctx := context.Background()
	king, lapidus := seed(t, s)
	shining := king.Books[0]

	books := fetchAll[*book.Book](t, s.Books().BooksForAuthor(king.ID, repositories.BookFilter{Search: "nurse"}))
	require.Len(t, books, 1)
	assert.Equal(t, "Misery", books[0].Title)

	_, err := s.Books().FindForAuthor(ctx, lapidus.ID, shining.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	updated := *shining
	updated.Title = "The Shining (1977)"
	require.NoError(t, s.Books().Update(ctx, &updated))
	got, err := s.Books().FindForAuthor(ctx, king.ID, shining.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Shining (1977)", got.Title)

	assert.ErrorIs(t, s.Books().Insert(ctx, book.NewBook(uuid.New(), "Orphan", "")), repositories.ErrNotFound)

	require.NoError(t, s.Books().Delete(ctx, king.ID, shining.ID))
	assert.ErrorIs(t, s.Books().Delete(ctx, king.ID, shining.ID), repositories.ErrNotFound)
}

func TestTransactionRollbackDiscardsChanges(t *testing.T) {
	s := New()
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	a := author.NewAuthor("Neil", "Gaiman", time.Date(1960, 11, 10, 0, 0, 0, 0, time.UTC), "Fantasy")
	require.NoError(t, tx.AuthorRepository().Insert(ctx, a))

	exists, err := tx.AuthorRepository().Exists(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, tx.Rollback(ctx))
	require.NoError(t, tx.Rollback(ctx))

	exists, err = s.Authors().Exists(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTransactionCommitPublishesChanges(t *testing.T) {
	s := New()
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	a := author.NewAuthor("Neil", "Gaiman", time.Date(1960, 11, 10, 0, 0, 0, 0, time.UTC), "Fantasy")
	require.NoError(t, tx.AuthorRepository().Insert(ctx, a))
	require.NoError(t, tx.BookRepository().Insert(ctx, book.NewBook(a.ID, "American Gods", "")))
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))
	assert.Error(t, tx.Commit(ctx))

	found, err := s.Authors().FindByIDs(ctx, []uuid.UUID{a.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Len(t, fetchAll[*book.Book](t, s.Books().BooksForAuthor(a.ID, repositories.BookFilter{})), 1)
}
