package healthcheck

import (
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r fiber.Router, rdb *redis.Client) {
	grp := r.Group("/health")

	grp.Get("/api", ApiHealthCheck)
	grp.Get("/database", DatabaseHealthCheck)
	grp.Get("/milvus", MilvusHealthCheck)
	grp.Get("/redis", RedisHealthCheck(rdb))
}
