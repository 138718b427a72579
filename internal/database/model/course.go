package model

import "time"

// Course is a row of the course catalog. Rows are created out-of-band by the
// ingestion tooling; this service only reads them.
type Course struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}
