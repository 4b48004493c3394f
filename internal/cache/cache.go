package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"libraryapi/internal/domain/author"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultPrefix = "library:author:"

// AuthorCache is a read-through cache for single authors.
type AuthorCache interface {
	// Get returns the cached author and whether it was present.
	Get(ctx context.Context, id uuid.UUID) (*author.Author, bool, error)
	Set(ctx context.Context, a *author.Author) error
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to Redis at addr, either host:port or a
// redis:// URL, and pings it.
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration) (AuthorCache, error) {
	opt := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		var err error
		if opt, err = redis.ParseURL(addr); err != nil {
			return nil, err
		}
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &redisCache{rdb: rdb, prefix: defaultPrefix, ttl: ttl}, nil
}

func (c *redisCache) key(id uuid.UUID) string { return c.prefix + id.String() }

func (c *redisCache) Get(ctx context.Context, id uuid.UUID) (*author.Author, bool, error) {
	b, err := c.rdb.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	a, err := decodeAuthor(b)
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func (c *redisCache) Set(ctx context.Context, a *author.Author) error {
	b, err := encodeAuthor(a)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(a.ID), b, c.ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.rdb.Del(ctx, c.key(id)).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }

// cachedAuthor is the stored form; books are never cached.
type cachedAuthor struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Genre       string    `json:"genre"`
}

func encodeAuthor(a *author.Author) ([]byte, error) {
	return json.Marshal(cachedAuthor{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DateOfBirth: a.DateOfBirth,
		Genre:       a.Genre,
	})
}

func decodeAuthor(b []byte) (*author.Author, error) {
	var c cachedAuthor
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &author.Author{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		DateOfBirth: c.DateOfBirth,
		Genre:       c.Genre,
	}, nil
}

// Noop never stores anything. It is used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, uuid.UUID) (*author.Author, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, *author.Author) error                    { return nil }
func (Noop) Delete(context.Context, uuid.UUID) error                      { return nil }
func (Noop) Close() error                                                 { return nil }
