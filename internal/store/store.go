package store

import (
	"context"
	"fmt"

	"libraryapi/internal/config"
	"libraryapi/internal/store/memory"
	"libraryapi/internal/store/postgres"
	"libraryapi/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

// Set is the repository bundle of the configured driver.
type Set struct {
	Authors    repositories.AuthorRepository
	Books      repositories.BookRepository
	UnitOfWork repositories.UnitOfWork
	Close      func()
}

// Open connects the store selected by STORE_DRIVER and applies migrations
// when enabled.
func Open(ctx context.Context, cfg config.DBCfg) (*Set, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Info().Msg("using in-memory store")
		m := memory.New()
		return &Set{Authors: m.Authors(), Books: m.Books(), UnitOfWork: m, Close: func() {}}, nil

	case config.DriverPostgres:
		pool := postgres.MustOpen(ctx, cfg.DSN)
		if cfg.Migrate {
			if err := postgres.Migrate(cfg.DSN); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &Set{
			Authors:    postgres.NewAuthorRepository(pool),
			Books:      postgres.NewBookRepository(pool),
			UnitOfWork: postgres.NewUnitOfWork(pool),
			Close:      pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
