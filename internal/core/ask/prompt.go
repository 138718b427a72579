package ask

import (
	"fmt"
	"strings"

	"course-copilot/internal/core/retriever"
)

// fallbackAnswer is returned verbatim when retrieval finds no relevant
// chunks. It is not templated.
const fallbackAnswer = "I couldn't find anything about that in your course materials. " +
	"The topic may not be covered yet, or it might help to rephrase your question."

// defaultCourseLabel replaces the course name when the lookup fails or no
// course id was given.
const defaultCourseLabel = "your course"

const (
	contextDelimiter = "\n\n---\n\n"
	previewRunes     = 150
)

// assembleContext builds the numbered, citable text block the model answers
// from. Chunk i is prefixed "[i]" with 1-based indices; these must match the
// indices formatSources reports, since they are the model's citation keys.
func assembleContext(chunks []retriever.Chunk) string {
	parts := make([]string, 0, len(chunks))
	for i, c := range chunks {
		parts = append(parts, fmt.Sprintf("[%d] %s", i+1, sanitize(c.Text)))
	}
	return strings.Join(parts, contextDelimiter)
}

// buildPrompt produces the grounded generation prompt. The six rules are a
// hard contract on prompt content, not a style suggestion.
func buildPrompt(courseName, contextBlock, question string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are a friendly study assistant helping a student of %s.\n", courseName))
	b.WriteString("Use ONLY the course materials below to answer the student's question.\n\n")
	b.WriteString("Course materials:\n")
	b.WriteString(contextBlock)
	b.WriteString("\n\nRules:\n")
	b.WriteString("1. Answer only from the course materials above; do not use outside knowledge.\n")
	b.WriteString("2. If the materials do not contain enough information to answer, say so explicitly.\n")
	b.WriteString("3. Never invent facts, examples, or citations that are not in the materials.\n")
	b.WriteString("4. Cite the materials you rely on with their bracketed numbers, e.g. [1] or [2].\n")
	b.WriteString("5. Keep the tone friendly and easy to follow for a student.\n")
	b.WriteString("6. If the question is about a specific exam, direct the student to their course instructor.\n")
	b.WriteString(fmt.Sprintf("\nStudent question: %s\n", question))
	return b.String()
}

// formatSources derives the citation list from the retrieved chunks, in the
// same order, indexed 1..N.
func formatSources(chunks []retriever.Chunk) []Source {
	sources := make([]Source, 0, len(chunks))
	for i, c := range chunks {
		sources = append(sources, Source{
			Index:      i + 1,
			Preview:    truncate(c.Text, previewRunes),
			Page:       c.PageNumber,
			Similarity: c.Similarity,
		})
	}
	return sources
}

func sanitize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
