package retriever

import (
	"context"
	"testing"
	"time"
)

func TestEmbed_EmptyQuestion(t *testing.T) {
	_, err := NewEmbedder().Embed(context.Background(), "")
	if err == nil {
		t.Fatalf("expected error for empty question")
	}
}

func TestSearch_EmptyVectorShortCircuits(t *testing.T) {
	// A nil query vector never reaches the network and returns an empty,
	// non-nil result.
	chunks, err := NewSearcher().Search(context.Background(), nil, 0.7, 5, Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunks == nil || len(chunks) != 0 {
		t.Fatalf("expected empty chunk slice, got %v", chunks)
	}
}

// Full end-to-end search requires a running Milvus; here we only assert the
// call honors a small context deadline instead of hanging.
func TestSearch_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := NewSearcher().Search(ctx, make([]float32, 1536), 0.7, 5, Filters{})
	if err == nil {
		t.Log("search completed without error (Milvus may be running locally)")
	}
}

func TestBuildExpr(t *testing.T) {
	if got := buildExpr(Filters{}); got != "" {
		t.Fatalf("expected empty expr without a course filter, got %q", got)
	}
	if got := buildExpr(Filters{CourseID: "CS201"}); got != `course_id == "CS201"` {
		t.Fatalf("unexpected expr: %q", got)
	}
	// Quotes in the id must not break the expression.
	if got := buildExpr(Filters{CourseID: `C"1`}); got != `course_id == "C\"1"` {
		t.Fatalf("unexpected escaped expr: %q", got)
	}
}
