package entity

import (
	"time"

	"jobtrack/constants"
)

// Job represents one tracked job application for data transfer between layers.
type Job struct {
	ID        int64               `json:"id"`
	Title     string              `json:"title"`
	Company   string              `json:"company"`
	Link      string              `json:"link,omitempty"`
	Status    constants.JobStatus `json:"status"`
	Deadline  *time.Time          `json:"deadline,omitempty"`
	Notes     string              `json:"notes,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// DeadlineString renders the deadline as YYYY-MM-DD, or "" when unset.
func (j *Job) DeadlineString() string {
	if j.Deadline == nil {
		return ""
	}
	return j.Deadline.Format("2006-01-02")
}
