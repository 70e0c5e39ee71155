package cache

// Package cache provides short-lived caching for rendered catalog data.

import (
	"context"
	"fmt"
	"time"
)

// Provider defines the interface for caching encoded catalog pages
type Provider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	Provider      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "memory", "":
		return NewMemoryProvider()
	case "redis":
		return NewRedisProvider(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unsupported cache provider: %s", cfg.Provider)
	}
}

// ListingKey names the cache entry for one page of the catalog listing
// under one language variant.
func ListingKey(language string, page int) string {
	return fmt.Sprintf("listing:%s:%d", language, page)
}
