package main

import (
	"fmt"

	"course-copilot/config"
	askapi "course-copilot/internal/api/ask"
	"course-copilot/internal/api/download"
	"course-copilot/internal/api/healthcheck"
	"course-copilot/internal/core/analytics"
	coreask "course-copilot/internal/core/ask"
	"course-copilot/internal/core/cache"
	"course-copilot/internal/core/course"
	"course-copilot/internal/core/llm"
	"course-copilot/internal/core/retriever"
	"course-copilot/internal/database"
	"course-copilot/internal/middleware"
	"course-copilot/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

func main() {
	app := fiber.New(fiber.Config{
		AppName:   config.Cfg.Server.AppName,
		BodyLimit: config.Cfg.Server.BodyLimit,
	})

	middleware.Register(app)

	if err := database.Migrate(); err != nil {
		logger.Error(err, "%v: migrate failed", config.ModuleDatabase)
	}

	// All provider clients are built once here and handed to the pipeline
	// explicitly; nothing down the call chain reaches for a global.
	rdb := database.NewRedisClient()

	svc := coreask.NewService(coreask.Deps{
		Cache:           cache.NewStore(rdb),
		Embedder:        retriever.NewEmbedder(),
		Searcher:        retriever.NewSearcher(),
		Courses:         course.NewCatalog(),
		Generator:       llm.NewGenerator(),
		Analytics:       analytics.NewRecorder(),
		EmbeddingReady:  config.EmbeddingConfigured(),
		GenerationReady: config.GenerationConfigured(),
	})

	askapi.RegisterRoutes(app, askapi.NewHandler(svc))
	download.RegisterRoutes(app)
	healthcheck.RegisterRoutes(app, rdb)

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	if err := app.Listen(addr); err != nil {
		logger.Fatal(err, "%v: server error", config.ModuleServer)
	}
}
