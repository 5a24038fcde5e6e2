// internal/models/job.go
package models

import (
	"strconv"
	"strings"
	"time"
)

// Salary is expressed in thousands of USD per year. A zero side is unknown.
type Salary struct {
	Min int `json:"min,omitempty"`
	Max int `json:"max,omitempty"`
}

// CompanySummary is the company block embedded in a job posting.
type CompanySummary struct {
	Name        string `json:"name"`
	Size        string `json:"size,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Funding     string `json:"funding,omitempty"`
	Founded     string `json:"founded,omitempty"`
	Description string `json:"description,omitempty"`
}

// SizeLowerBound parses the first number of a size band such as "51-200" or
// "1000+".
func (c CompanySummary) SizeLowerBound() (int, bool) {
	s := strings.TrimSpace(c.Size)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

type Job struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Company         CompanySummary `json:"company"`
	Location        string         `json:"location"`
	Salary          Salary         `json:"salary"`
	Type            string         `json:"type"`
	IsRemote        bool           `json:"isRemote"`
	ExperienceLevel string         `json:"experienceLevel"`
	Skills          []string       `json:"skills"`
	Description     string         `json:"description,omitempty"`
	PostedAt        time.Time      `json:"postedAt"`
	MatchScore      *int           `json:"matchScore,omitempty"`
	VisaSponsorship bool           `json:"visaSponsorship"`
}
