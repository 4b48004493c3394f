package library

import (
	"context"

	"libraryapi/internal/domain/author"

	"github.com/google/uuid"
)

type fakeCache struct {
	entries map[uuid.UUID]*author.Author
	err     error
}

func (c *fakeCache) Get(_ context.Context, id uuid.UUID) (*author.Author, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	a, ok := c.entries[id]
	return a, ok, nil
}

func (c *fakeCache) Set(_ context.Context, a *author.Author) error {
	if c.err != nil {
		return c.err
	}
	c.entries[a.ID] = a
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id uuid.UUID) error {
	if c.err != nil {
		return c.err
	}
	delete(c.entries, id)
	return nil
}

func (c *fakeCache) Close() error { return nil }
