package cache

import (
	"context"
	"testing"
	"time"

	"libraryapi/internal/domain/author"
	"libraryapi/internal/domain/book"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeAuthorDropsBooks(t *testing.T) {
	a := author.NewAuthor("Jens", "Lapidus", time.Date(1974, 5, 24, 0, 0, 0, 0, time.UTC), "Thriller")
	a.AddBook(book.NewBook(a.ID, "Easy Money", ""))

	b, err := encodeAuthor(a)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "Easy Money")

	got, err := decodeAuthor(b)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.FullName(), got.FullName())
	assert.True(t, a.DateOfBirth.Equal(got.DateOfBirth))
	assert.Equal(t, a.Genre, got.Genre)
	assert.Nil(t, got.Books)
}

func TestDecodeAuthorRejectsGarbage(t *testing.T) {
	_, err := decodeAuthor([]byte("{not json"))
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c AuthorCache = Noop{}
	ctx := context.Background()
	a := author.NewAuthor("Neil", "Gaiman", time.Date(1960, 11, 10, 0, 0, 0, 0, time.UTC), "Fantasy")

	require.NoError(t, c.Set(ctx, a))
	got, ok, err := c.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, c.Delete(ctx, uuid.New()))
	assert.NoError(t, c.Close())
}

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "redis://:bad port", time.Minute)
	assert.Error(t, err)
}
