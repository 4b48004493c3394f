package postgres

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// connectTimeout bounds how long startup waits for the database.
const connectTimeout = 30 * time.Second

// MustOpen connects and pings the database, retrying with exponential
// backoff while it comes up. It exits the process when the database stays
// unreachable.
func MustOpen(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect fail")
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = connectTimeout
	notify := func(err error, next time.Duration) {
		log.Warn().Err(err).Dur("retry_in", next).Msg("db ping fail, retrying")
	}
	if err := backoff.RetryNotify(func() error { return pool.Ping(ctx) }, backoff.WithContext(b, ctx), notify); err != nil {
		log.Fatal().Err(err).Msg("db ping fail")
	}
	return pool
}
