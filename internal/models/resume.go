// internal/models/resume.go
package models

const (
	TemplateModern       = "modern"
	TemplateCreative     = "creative"
	TemplateMinimal      = "minimal"
	TemplateProfessional = "professional"
)

// ResumeTemplates lists the templates a resume can be rendered with.
var ResumeTemplates = []string{TemplateModern, TemplateCreative, TemplateMinimal, TemplateProfessional}

type PersonalInfo struct {
	FirstName string `json:"firstName" mapstructure:"firstName"`
	LastName  string `json:"lastName" mapstructure:"lastName"`
	Email     string `json:"email" mapstructure:"email"`
	Phone     string `json:"phone,omitempty" mapstructure:"phone"`
	Location  string `json:"location,omitempty" mapstructure:"location"`
	LinkedIn  string `json:"linkedin,omitempty" mapstructure:"linkedin"`
	Website   string `json:"website,omitempty" mapstructure:"website"`
}

type ExperienceEntry struct {
	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Company     string `json:"company" mapstructure:"company"`
	Location    string `json:"location,omitempty" mapstructure:"location"`
	StartDate   string `json:"startDate,omitempty" mapstructure:"startDate"`
	EndDate     string `json:"endDate,omitempty" mapstructure:"endDate"`
	Current     bool   `json:"current" mapstructure:"current"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

type EducationEntry struct {
	ID             string `json:"id" mapstructure:"id"`
	Degree         string `json:"degree" mapstructure:"degree"`
	Institution    string `json:"institution" mapstructure:"institution"`
	GraduationYear string `json:"graduationYear,omitempty" mapstructure:"graduationYear"`
	GPA            string `json:"gpa,omitempty" mapstructure:"gpa"`
}

type Skill struct {
	ID    string `json:"id" mapstructure:"id"`
	Name  string `json:"name" mapstructure:"name"`
	Level string `json:"level,omitempty" mapstructure:"level"`
}

type Project struct {
	ID           string   `json:"id" mapstructure:"id"`
	Name         string   `json:"name" mapstructure:"name"`
	Description  string   `json:"description,omitempty" mapstructure:"description"`
	Technologies []string `json:"technologies,omitempty" mapstructure:"technologies"`
	URL          string   `json:"url,omitempty" mapstructure:"url"`
}

type Certification struct {
	Name   string `json:"name" mapstructure:"name"`
	Issuer string `json:"issuer,omitempty" mapstructure:"issuer"`
	Year   string `json:"year,omitempty" mapstructure:"year"`
}

// Resume is the exported document produced by the resume builder.
type Resume struct {
	Template       string            `json:"template" mapstructure:"template"`
	PersonalInfo   PersonalInfo      `json:"personalInfo" mapstructure:"personalInfo"`
	Summary        string            `json:"summary,omitempty" mapstructure:"summary"`
	Experience     []ExperienceEntry `json:"experience" mapstructure:"experience"`
	Education      []EducationEntry  `json:"education" mapstructure:"education"`
	Skills         []Skill           `json:"skills" mapstructure:"skills"`
	Projects       []Project         `json:"projects" mapstructure:"projects"`
	Certifications []Certification   `json:"certifications,omitempty" mapstructure:"certifications"`
}
