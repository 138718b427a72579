package ask

import (
	"strings"
	"testing"

	"course-copilot/internal/core/retriever"
)

func TestAssembleContext_NumbersAndDelimits(t *testing.T) {
	chunks := []retriever.Chunk{
		{Text: "alpha"},
		{Text: "beta"},
		{Text: "gamma"},
	}
	block := assembleContext(chunks)

	for _, want := range []string{"[1] alpha", "[2] beta", "[3] gamma"} {
		if !strings.Contains(block, want) {
			t.Fatalf("context block missing %q:\n%s", want, block)
		}
	}
	if strings.Count(block, contextDelimiter) != 2 {
		t.Fatalf("expected 2 delimiters between 3 chunks:\n%s", block)
	}
}

func TestAssembleContext_SanitizesChunkText(t *testing.T) {
	block := assembleContext([]retriever.Chunk{{Text: "  padded\x00text  "}})
	if block != "[1] paddedtext" {
		t.Fatalf("unexpected block: %q", block)
	}
}

func TestBuildPrompt_CarriesAllGroundingRules(t *testing.T) {
	prompt := buildPrompt("Data Structures", "[1] a BST orders keys", "What is a BST?")

	rules := []string{
		"Answer only from the course materials",
		"do not contain enough information",
		"Never invent facts",
		"bracketed numbers",
		"friendly and easy to follow",
		"direct the student to their course instructor",
	}
	for _, rule := range rules {
		if !strings.Contains(prompt, rule) {
			t.Fatalf("prompt missing grounding rule %q:\n%s", rule, prompt)
		}
	}
	if !strings.Contains(prompt, "Data Structures") {
		t.Fatal("prompt missing resolved course name")
	}
	if !strings.Contains(prompt, "[1] a BST orders keys") {
		t.Fatal("prompt missing the assembled context verbatim")
	}
	if !strings.Contains(prompt, "Student question: What is a BST?") {
		t.Fatal("prompt missing the verbatim question")
	}
}

func TestFormatSources_TruncatesPreview(t *testing.T) {
	long := strings.Repeat("x", previewRunes+50)
	sources := formatSources([]retriever.Chunk{
		{Text: long, PageNumber: 7, Similarity: 0.82},
		{Text: "short", PageNumber: 9, Similarity: 0.71},
	})

	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if !strings.HasSuffix(sources[0].Preview, "...") {
		t.Fatalf("long preview not truncated: %q", sources[0].Preview)
	}
	if got := len([]rune(sources[0].Preview)); got != previewRunes+3 {
		t.Fatalf("preview length %d, want %d", got, previewRunes+3)
	}
	if sources[1].Preview != "short" {
		t.Fatalf("short preview altered: %q", sources[1].Preview)
	}
	if sources[0].Index != 1 || sources[1].Index != 2 {
		t.Fatalf("unexpected indices: %+v", sources)
	}
}
