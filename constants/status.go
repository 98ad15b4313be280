package constants

import "fmt"

// JobStatus is the canonical lifecycle stage for rows in jobs.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	StatusInterested JobStatus = "interested" // default on creation
	StatusApplied    JobStatus = "applied"
	StatusInterview  JobStatus = "interview"
	StatusOffer      JobStatus = "offer"
	StatusRejected   JobStatus = "rejected"
)

// AllStatuses lists every valid status in lifecycle order.
var AllStatuses = []JobStatus{
	StatusInterested,
	StatusApplied,
	StatusInterview,
	StatusOffer,
	StatusRejected,
}

// ParseJobStatus converts a raw string to a JobStatus, returning an error
// for unknown values.
func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	switch st {
	case StatusInterested, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}
