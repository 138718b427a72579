package cache

import (
	"fmt"
	"strconv"
	"strings"
)

// noCourseScope is the key segment used when a question is not tied to a
// course.
const noCourseScope = "global"

// Key derives the deterministic cache key for a question. The question text
// is lowercased before hashing, so keys are case-insensitive; the course id
// is part of the key verbatim, so the same question asked against two
// courses never collides. Never fails, any string (including empty) is a
// valid input.
func Key(question, courseID string) string {
	scope := courseID
	if scope == "" {
		scope = noCourseScope
	}
	return fmt.Sprintf("answer:%s:%s", scope, hashQuestion(strings.ToLower(question)))
}

// hashQuestion is a 31-polynomial rolling hash with wrapping signed 32-bit
// arithmetic, rendered in base 36. Determinism matters here, collision
// resistance only has to be good enough for a cache namespace.
func hashQuestion(s string) string {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	return strconv.FormatInt(int64(h), 36)
}
