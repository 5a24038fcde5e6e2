// internal/workers/application/submit-application/models.go
package submitapplication

type Input struct {
	SeekerID    string `json:"seekerId" validate:"required"`
	JobID       string `json:"jobId" validate:"required"`
	CoverLetter string `json:"coverLetter,omitempty"`
	ResumeID    string `json:"resumeId,omitempty"`
}

type Output struct {
	ApplicationID     string `json:"applicationId"`
	ApplicationStatus string `json:"applicationStatus"`
	JobTitle          string `json:"jobTitle"`
	CreatedAt         string `json:"createdAt"` // ISO 8601
}
