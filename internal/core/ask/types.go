package ask

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course-copilot/internal/core/analytics"
	"course-copilot/internal/core/retriever"
)

// Request is one student question, optionally scoped to a course.
type Request struct {
	Question string `json:"question"`
	CourseID string `json:"course_id"`
}

// Source is one citation in the response, aligned with the bracketed
// indices the model was shown in its context block.
type Source struct {
	Index      int     `json:"index"`
	Preview    string  `json:"preview"`
	Page       int32   `json:"page"`
	Similarity float64 `json:"similarity"`
}

// Response is the externally observable answer shape. Cached distinguishes a
// cache hit from a freshly generated answer.
type Response struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
	Cached  bool     `json:"cached"`
}

// CacheEntry is what gets persisted under a question's cache key. Entries
// are immutable once written; a later write for the same key replaces it.
type CacheEntry struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// ErrEmptyQuestion is the validation failure for a missing question. It is
// raised before any provider is touched.
var ErrEmptyQuestion = errors.New("question is empty")

// ConfigError means a required provider credential is absent. It is distinct
// from a transient provider failure and is surfaced to the caller naming the
// unavailable provider.
type ConfigError struct {
	Provider string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s provider is not configured", e.Provider)
}

// Cache is a key-value store with per-entry expiry. Read errors are treated
// as misses by the pipeline; write errors are swallowed.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Embedder maps text to a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher returns ranked chunks for a query vector, highest similarity
// first, already filtered by the similarity threshold.
type Searcher interface {
	Search(ctx context.Context, query []float32, threshold float64, limit int, filters retriever.Filters) ([]retriever.Chunk, error)
}

// Catalog resolves a course id to its display name with an explicit
// not-found outcome.
type Catalog interface {
	Name(ctx context.Context, id string) (string, bool, error)
}

// Generator produces an answer from an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Recorder is the fire-and-forget analytics sink.
type Recorder interface {
	Record(ev analytics.Event)
}
