package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend string `toml:"backend"`

	// File backend
	Dir string `toml:"dir"`

	// Redis backend
	RedisURL    string `toml:"redis_url"`
	RedisPrefix string `toml:"redis_prefix"`

	// Mongo backend
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Open creates the cache described by cfg. An empty backend means file;
// an empty directory means DefaultDir.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("cache dir: %w", err)
			}
			dir = d
		}
		return NewFileCache(dir)
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires redis_url")
		}
		prefix := cfg.RedisPrefix
		if prefix == "" {
			prefix = "wordcloud:"
		}
		return NewRedisCache(ctx, cfg.RedisURL, prefix)
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("mongo backend requires mongo_uri")
		}
		return NewMongoCache(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w %q (valid: file, redis, mongo, none)", ErrUnknownBackend, cfg.Backend)
	}
}
