package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/annotations"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
)

// annotationStore persists annotation snapshots under their session
// keys. Entries carry a TTL as a backstop; the authoritative cleanup is
// the explicit Delete on session exit.
type annotationStore struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewAnnotationPersistence connects to REDIS_ADDR and returns a
// Persistence for the annotation manager.
func NewAnnotationPersistence(log *logger.Logger) (annotations.Persistence, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &annotationStore{
		log: log.With("service", "RedisAnnotationStore"),
		rdb: rdb,
		ttl: 24 * time.Hour,
	}, nil
}

func (s *annotationStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *annotationStore) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return raw, nil
}

func (s *annotationStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}
