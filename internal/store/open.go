package store

import (
	"context"
	"fmt"
)

// Kind names a backend implementation.
type Kind string

// Supported backends.
const (
	KindMemory   Kind = "memory"
	KindFile     Kind = "file"
	KindRedis    Kind = "redis"
	KindPostgres Kind = "postgres"
	KindS3       Kind = "s3"
)

// Kinds lists every supported backend.
func Kinds() []Kind {
	return []Kind{KindMemory, KindFile, KindRedis, KindPostgres, KindS3}
}

// BackendConfig selects and configures a backend.
type BackendConfig struct {
	Kind        Kind
	DataDir     string
	RedisURL    string
	DatabaseURL string
	S3          S3Config
}

// OpenBackend constructs the configured backend.
func OpenBackend(ctx context.Context, cfg BackendConfig) (Backend, error) {
	switch cfg.Kind {
	case KindMemory:
		return NewMemoryBackend(), nil
	case KindFile, "":
		return NewFileBackend(cfg.DataDir)
	case KindRedis:
		return NewRedisBackend(ctx, cfg.RedisURL)
	case KindPostgres:
		return NewPostgresBackend(ctx, cfg.DatabaseURL)
	case KindS3:
		return NewS3Backend(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Kind)
	}
}
