package retriever

// Chunk is a unit of previously ingested course material returned by the
// similarity search. The pipeline treats chunks as read-only.
type Chunk struct {
	ID         int64   `json:"id"`
	Text       string  `json:"text"`
	PageNumber int32   `json:"page_number"`
	Similarity float64 `json:"similarity"`
	CourseID   string  `json:"course_id"`
}

// Filters represents optional constraints applied during search. An empty
// CourseID searches across all courses.
type Filters struct {
	CourseID string
}
