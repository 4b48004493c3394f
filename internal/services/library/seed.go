package library

import (
	"context"
	"time"

	"libraryapi/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SampleAuthors is the demo catalogue loaded into an empty store.
func SampleAuthors() []AuthorForCreation {
	return []AuthorForCreation{
		{
			FirstName: "Stephen", LastName: "King", DateOfBirth: date(1947, 9, 21), Genre: "Horror",
			Books: []BookForCreation{
				{Title: "The Shining", Description: "The Shining is a horror novel by American author Stephen King. Published in 1977."},
				{Title: "Misery", Description: "Misery is a 1987 psychological horror novel by Stephen King."},
				{Title: "It", Description: "It is a 1986 horror novel by American author Stephen King."},
				{Title: "The Stand", Description: "The Stand is a post-apocalyptic horror/fantasy novel by American author Stephen King."},
			},
		},
		{
			FirstName: "George", LastName: "RR Martin", DateOfBirth: date(1948, 9, 20), Genre: "Fantasy",
			Books: []BookForCreation{
				{Title: "A Game of Thrones", Description: "A Game of Thrones is the first novel in A Song of Ice and Fire, a series of fantasy novels by American author George R. R. Martin."},
			},
		},
		{
			FirstName: "Neil", LastName: "Gaiman", DateOfBirth: date(1960, 11, 10), Genre: "Fantasy",
			Books: []BookForCreation{
				{Title: "American Gods", Description: "American Gods is a Hugo and Nebula Award-winning novel by English author Neil Gaiman."},
			},
		},
		{
			FirstName: "Tom", LastName: "Lanoye", DateOfBirth: date(1958, 8, 27), Genre: "Various",
			Books: []BookForCreation{
				{Title: "Speechless", Description: "Good-natured and often humorous, Speechless is at times a 'song of curses', as Lanoye describes the conflicts with his beloved diva of a mother and her brave struggle with decline and death."},
			},
		},
		{
			FirstName: "Douglas", LastName: "Adams", DateOfBirth: date(1952, 3, 11), Genre: "Science fiction",
			Books: []BookForCreation{
				{Title: "The Hitchhiker's Guide to the Galaxy", Description: "The Hitchhiker's Guide to the Galaxy is the first of five books in the Hitchhiker's Guide to the Galaxy comedy science fiction trilogy by Douglas Adams."},
			},
		},
		{
			FirstName: "James", LastName: "Ellroy", DateOfBirth: date(1948, 3, 4), Genre: "Thriller",
			Books: []BookForCreation{
				{Title: "American Tabloid", Description: "American Tabloid is a 1995 novel by James Ellroy that chronicles the events surrounding three rogue American agents from November 22, 1958 through November 22, 1963."},
			},
		},
		{
			FirstName: "Jens", LastName: "Lapidus", DateOfBirth: date(1974, 5, 24), Genre: "Thriller",
			Books: []BookForCreation{
				{Title: "Easy Money", Description: "Easy Money or Snabba cash is a novel from 2006 by Jens Lapidus."},
			},
		},
	}
}

// Seed loads SampleAuthors when the store holds no authors. It returns the
// number of authors created.
func (s *Service) Seed(ctx context.Context) (int, error) {
	n, err := s.authors.Authors(repositories.AuthorFilter{}).Count(ctx)
	if err != nil {
		return 0, fail("seed", err)
	}
	if n > 0 {
		log.Info().Int("authors", n).Msg("store not empty, skipping seed")
		return 0, nil
	}
	created, err := s.CreateAuthorCollection(ctx, SampleAuthors())
	if err != nil {
		return 0, err
	}
	return len(created), nil
}
