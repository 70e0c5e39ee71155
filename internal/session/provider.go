package session

import (
	"context"
	"fmt"
	"strings"
)

// Config selects where cart sessions live. Provider is "memory" (the
// default) or "redis"; the redis fields are only read for "redis".
type Config struct {
	Provider      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// NewStore builds the session store named by cfg. The redis store is pinged
// before use, so a bad address fails at startup rather than on the first
// cart write.
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unsupported session store provider: %s", cfg.Provider)
	}
}
