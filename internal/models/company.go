// internal/models/company.go
package models

type Company struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Industry  string  `json:"industry"`
	Employees string  `json:"employees,omitempty"`
	Rating    float64 `json:"rating"`
	Location  string  `json:"location,omitempty"`
	OpenJobs  int     `json:"openJobs"`
}
