package ask

import (
	"context"
	"fmt"
	"strings"
	"time"

	"course-copilot/config"
	"course-copilot/internal/core/analytics"
	"course-copilot/internal/core/cache"
	"course-copilot/internal/core/retriever"
	"course-copilot/pkg/logger"
)

// Deps are the collaborators the pipeline orchestrates. All of them are
// constructed once at process start and shared read-only across requests.
type Deps struct {
	Cache     Cache
	Embedder  Embedder
	Searcher  Searcher
	Courses   Catalog
	Generator Generator
	Analytics Recorder

	// Provider credential presence, checked per request before any
	// provider or cache call is made.
	EmbeddingReady  bool
	GenerationReady bool
}

// Service is the sole entry point of the answer pipeline. One call to Run
// handles one question, strictly sequentially: cache lookup before provider
// calls, embedding before retrieval, context assembly before generation.
type Service struct {
	deps Deps

	threshold float64
	maxChunks int
	cacheTTL  time.Duration
}

func NewService(deps Deps) *Service {
	return &Service{
		deps:      deps,
		threshold: config.Cfg.Ask.SimilarityThreshold,
		maxChunks: config.Cfg.Ask.MaxChunks,
		cacheTTL:  time.Duration(config.Cfg.Ask.CacheTTLDays) * 24 * time.Hour,
	}
}

// Run executes the cache-checked answer flow:
// validate -> config check -> cache lookup -> embed -> search -> prompt ->
// generate -> best-effort cache write -> fire-and-forget analytics.
func (s *Service) Run(ctx context.Context, req Request) (Response, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return Response{}, ErrEmptyQuestion
	}
	if !s.deps.EmbeddingReady {
		return Response{}, &ConfigError{Provider: "embedding"}
	}
	if !s.deps.GenerationReady {
		return Response{}, &ConfigError{Provider: "generation"}
	}

	key := cache.Key(question, req.CourseID)

	var entry CacheEntry
	hit, err := s.deps.Cache.Get(ctx, key, &entry)
	if err != nil {
		// A broken store degrades to a miss, never to a failed request.
		logger.Error(err, "%v: cache read failed, treating as miss", config.ModuleAsk)
		hit = false
	}
	if hit {
		s.deps.Analytics.Record(analytics.Event{
			Question:    question,
			CourseID:    req.CourseID,
			SourcesUsed: len(entry.Sources),
			Cached:      true,
		})
		return Response{Answer: entry.Answer, Sources: entry.Sources, Cached: true}, nil
	}

	embedCtx, cancelEmbed := context.WithTimeout(ctx, 3*time.Second)
	defer cancelEmbed()
	vec, err := s.deps.Embedder.Embed(embedCtx, question)
	if err != nil {
		logger.Error(err, "%v: embed question failed", config.ModuleAsk)
		return Response{}, fmt.Errorf("embed question: %w", err)
	}

	searchCtx, cancelSearch := context.WithTimeout(ctx, 2*time.Second)
	defer cancelSearch()
	chunks, err := s.deps.Searcher.Search(searchCtx, vec, s.threshold, s.maxChunks, retriever.Filters{CourseID: req.CourseID})
	if err != nil {
		logger.Error(err, "%v: chunk search failed", config.ModuleAsk)
		return Response{}, fmt.Errorf("search chunks: %w", err)
	}

	// No relevant material is a normal outcome, answered with the fixed
	// fallback text and no generation call.
	if len(chunks) == 0 {
		s.deps.Analytics.Record(analytics.Event{
			Question:    question,
			CourseID:    req.CourseID,
			SourcesUsed: 0,
			Cached:      false,
		})
		return Response{Answer: fallbackAnswer, Sources: []Source{}, Cached: false}, nil
	}

	contextBlock := assembleContext(chunks)
	courseName := s.resolveCourseName(ctx, req.CourseID)
	prompt := buildPrompt(courseName, contextBlock, question)

	genCtx, cancelGen := context.WithTimeout(ctx, 15*time.Second)
	defer cancelGen()
	answer, err := s.deps.Generator.Generate(genCtx, prompt)
	if err != nil {
		logger.Error(err, "%v: answer generation failed", config.ModuleAsk)
		return Response{}, fmt.Errorf("generate answer: %w", err)
	}

	sources := formatSources(chunks)

	// Best-effort write, detached from the response path.
	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.deps.Cache.Set(writeCtx, key, CacheEntry{Answer: answer, Sources: sources}, s.cacheTTL); err != nil {
			logger.Error(err, "%v: cache write failed for %s", config.ModuleAsk, key)
		}
	}()

	s.deps.Analytics.Record(analytics.Event{
		Question:    question,
		CourseID:    req.CourseID,
		SourcesUsed: len(sources),
		Cached:      false,
	})

	return Response{Answer: answer, Sources: sources, Cached: false}, nil
}

// resolveCourseName falls back to a generic label when no course id was
// given, the course row is absent, or the lookup errors. None of these are
// fatal to the request.
func (s *Service) resolveCourseName(ctx context.Context, id string) string {
	if id == "" {
		return defaultCourseLabel
	}
	name, found, err := s.deps.Courses.Name(ctx, id)
	if err != nil || !found {
		return defaultCourseLabel
	}
	return name
}
