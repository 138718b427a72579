package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"course-copilot/config"
	"course-copilot/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Store is a JSON key-value adapter over redis with per-entry TTL. Entries
// are replaced wholesale, never merged, so there are no read-modify-write
// races to guard.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get loads the value stored under key into dest. The second return is false
// when the key is absent. Store errors are returned to the caller, which per
// the pipeline's failure policy treats them like a miss.
func (s *Store) Get(ctx context.Context, key string, dest any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A corrupt entry behaves like a miss; the next write replaces it.
		logger.Error(err, "%v: corrupt cache entry for %s", config.ModuleCache, key)
		return false, nil
	}
	return true, nil
}

// Set stores value under key with the given TTL.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, raw, ttl).Err()
}
