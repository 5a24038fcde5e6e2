// internal/models/application.go
package models

import "time"

const (
	ApplicationStatusSubmitted = "submitted"
	ApplicationStatusWithdrawn = "withdrawn"
)

// Application is a job seeker's application to a posting.
type Application struct {
	ID          string    `json:"id"`
	SeekerID    string    `json:"seekerId"`
	JobID       string    `json:"jobId"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	ResumeID    string    `json:"resumeId,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
