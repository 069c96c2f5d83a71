package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/Pratheesh-555/My-Portfolio/portfolio"
)

// RedisStore keeps the document as JSON text under a single key.
// SET replaces the value whole, which gives the same last-write-wins
// semantics as the file store.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore does not contact the server; connection errors surface on
// the first Read or Write.
func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	return &RedisStore{rdb: rdb, key: key}
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) Read(ctx context.Context) (*portfolio.Document, error) {
	raw, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, readError(err)
	}
	doc, err := portfolio.Unmarshal(raw)
	if err != nil {
		return nil, readError(err)
	}
	return doc, nil
}

func (s *RedisStore) Write(ctx context.Context, doc *portfolio.Document) error {
	if err := portfolio.Validate(doc); err != nil {
		return err
	}
	b, err := portfolio.Marshal(doc)
	if err != nil {
		return writeError(err)
	}
	if err := s.rdb.Set(ctx, s.key, b, 0).Err(); err != nil {
		return writeError(err)
	}
	return nil
}
