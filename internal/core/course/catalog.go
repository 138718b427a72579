package course

import (
	"context"
	"errors"
	"time"

	"course-copilot/config"
	"course-copilot/internal/database"
	"course-copilot/internal/database/model"
	"course-copilot/pkg/logger"
)

// Catalog resolves course ids to human-readable names.
type Catalog struct{}

func NewCatalog() *Catalog {
	return &Catalog{}
}

// Name looks up the display name for a course id. A missing row is an
// explicit not-found outcome (found=false, err=nil), never an error string
// callers have to sniff.
func (c *Catalog) Name(ctx context.Context, id string) (string, bool, error) {
	if id == "" {
		return "", false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	row, err := database.GetEntityByID[model.Course](ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		logger.Error(err, "%v: lookup failed for %s", config.ModuleCourse, id)
		return "", false, err
	}
	return row.Name, true, nil
}
