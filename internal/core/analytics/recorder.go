package analytics

import (
	"context"
	"time"

	"course-copilot/config"
	"course-copilot/internal/database"
	"course-copilot/internal/database/model"
	"course-copilot/pkg/logger"
)

// EventQuestionAsked is the single event type this service emits.
const EventQuestionAsked = "question_asked"

// Event is the payload of one question_asked record.
type Event struct {
	Question    string
	CourseID    string
	SourcesUsed int
	Cached      bool
}

// Recorder appends analytics events. Delivery is fire-and-forget: Record
// returns immediately and failures are only logged.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record hands the event to a detached goroutine with its own context, so a
// slow or failing insert can never delay or fail the request that produced
// the event.
func (r *Recorder) Record(ev Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		now := time.Now()
		row := model.AnalyticsEvent{
			Type:        EventQuestionAsked,
			Question:    ev.Question,
			CourseID:    ev.CourseID,
			SourcesUsed: ev.SourcesUsed,
			Cached:      ev.Cached,
			CreatedAt:   &now,
		}
		if err := database.CreateEntity(ctx, &row); err != nil {
			logger.Error(err, "%v: record event failed", config.ModuleAnalytics)
		}
	}()
}
