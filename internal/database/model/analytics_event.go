package model

import "time"

// AnalyticsEvent is an append-only record of a question being asked. Losing
// one must never fail the request that produced it.
type AnalyticsEvent struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type        string     `gorm:"size:64;not null;index" json:"type"`
	Question    string     `gorm:"type:text;not null" json:"question"`
	CourseID    string     `gorm:"size:64;index" json:"course_id"`
	SourcesUsed int        `json:"sources_used"`
	Cached      bool       `json:"cached"`
	CreatedAt   *time.Time `json:"created_at"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
