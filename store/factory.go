package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Options carries the settings each backend needs.
type Options struct {
	// DataFile is the JSON file path. The sqlite database lives next to it
	// with a .db extension.
	DataFile string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
}

func (o Options) sqlitePath() string {
	return strings.TrimSuffix(o.DataFile, filepath.Ext(o.DataFile)) + ".db"
}

// New creates a Store based on the backend name.
//
// Supported backends:
//
//	"json"   - one JSON file at DataFile (default)
//	"sqlite" - SQLite database next to DataFile
//	"redis"  - a single key on a Redis server
//	"memory" - in-memory (ephemeral, for testing)
func New(backend string, opts Options) (Store, error) {
	switch backend {
	case "json", "":
		s, err := NewJsonFileStore(opts.DataFile)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		s, err := NewSqliteStore(opts.sqlitePath())
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		return NewRedisStore(rdb, opts.RedisKey), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: json, sqlite, redis, memory)", backend)
	}
}
