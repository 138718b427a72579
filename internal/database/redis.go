package database

import (
	"context"
	"time"

	"course-copilot/config"
	"course-copilot/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the process-wide redis client used by the answer
// cache. A failed ping is logged, not fatal: the pipeline degrades to
// cache-miss behavior when the store is unreachable.
func NewRedisClient() *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Cfg.Redis.Addr,
		Password: config.Cfg.Redis.Password,
		DB:       config.Cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error(err, "%v: redis ping failed", config.ModuleRedis)
	}

	return rdb
}
