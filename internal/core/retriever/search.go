package retriever

import (
	"context"
	"fmt"
	"strings"
	"time"

	"course-copilot/config"
	"course-copilot/pkg/logger"

	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	milvusentity "github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// Searcher runs vector similarity searches against the Milvus chunk
// collection. It is a stateless wrapper over network calls and is safe to
// share across requests.
type Searcher struct{}

func NewSearcher() *Searcher {
	return &Searcher{}
}

// Search returns up to limit chunks whose similarity to the query vector is
// at least threshold, highest similarity first. The ordering comes from
// Milvus and is not re-sorted by callers. An empty result is a normal
// outcome, not an error.
func (s *Searcher) Search(ctx context.Context, query []float32, threshold float64, limit int, filters Filters) ([]Chunk, error) {
	if limit <= 0 {
		limit = 5
	}
	if len(query) == 0 {
		return []Chunk{}, nil
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
	}

	cli, err := milvusclient.NewClient(ctx, milvusclient.Config{Address: config.Cfg.Milvus.Address})
	if err != nil {
		return nil, err
	}
	defer cli.Close()

	collection := config.Cfg.Milvus.Collection
	if collection == "" {
		collection = "chunks"
	}

	exists, err := cli.HasCollection(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("collection %q not found", collection)
	}
	if err := cli.LoadCollection(ctx, collection, false); err != nil {
		return nil, err
	}

	metricType := milvusentity.MetricType(config.Cfg.Milvus.IndexHNSWConfig.MetricType)
	ef := 64
	searchParam, err := milvusentity.NewIndexHNSWSearchParam(ef)
	if err != nil {
		return nil, err
	}

	expr := buildExpr(filters)
	outputFields := []string{"id", "course_id", "page_number", "content"}
	vectors := []milvusentity.Vector{milvusentity.FloatVector(query)}

	start := time.Now()
	results, err := cli.Search(
		ctx,
		collection,
		nil, // partitions
		expr,
		outputFields,
		vectors,
		"embedding",
		metricType,
		limit,
		searchParam,
	)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error(err, "%v: milvus search failed", config.ModuleRetriever)
		return nil, err
	}
	logger.Info("%v: milvus search done in %dms", config.ModuleRetriever, elapsed.Milliseconds())

	if len(results) == 0 {
		return []Chunk{}, nil
	}
	it := results[0]

	chunks := make([]Chunk, 0, it.ResultCount)
	for i := 0; i < it.ResultCount; i++ {
		var c Chunk
		c.ID = it.IDs.(*milvusentity.ColumnInt64).Data()[i]
		c.Similarity = float64(it.Scores[i])

		for _, field := range it.Fields {
			switch col := field.(type) {
			case *milvusentity.ColumnInt32:
				if col.Name() == "page_number" {
					c.PageNumber = col.Data()[i]
				}
			case *milvusentity.ColumnVarChar:
				switch col.Name() {
				case "content":
					c.Text = col.Data()[i]
				case "course_id":
					c.CourseID = col.Data()[i]
				}
			}
		}

		// Hits come back ordered by similarity, so the first one below the
		// threshold ends the result set.
		if c.Similarity < threshold {
			break
		}
		chunks = append(chunks, c)
	}
	return chunks, nil
}

func buildExpr(f Filters) string {
	if f.CourseID == "" {
		return ""
	}
	return fmt.Sprintf(`course_id == "%s"`, escapeExpr(f.CourseID))
}

func escapeExpr(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
