// internal/flows/resume.go
package flows

import (
	"encoding/json"
	"fmt"
	"strings"

	"technet-workers/internal/models"
	"technet-workers/internal/wizard"
)

const Resume = "resume"

const defaultSkillLevel = "intermediate"

func ResumeDefinition() wizard.Definition {
	return wizard.Definition{
		Name: Resume,
		Steps: []wizard.Step{
			{Index: 1, Title: "Choose Template", Validate: validateTemplate},
			{Index: 2, Title: "Personal Info", Validate: validatePersonalInfo},
			{Index: 3, Title: "Experience", Validate: validateExperience},
			{Index: 4, Title: "Education", Validate: validateEducation},
			{Index: 5, Title: "Skills", Validate: validateSkills},
			{Index: 6, Title: "Projects", Validate: validateProjects},
			{Index: 7, Title: "Preview & Download"},
		},
		Derived: []wizard.DerivedField{
			{
				Name:      "skillCount",
				DependsOn: []string{"skills"},
				Compute: func(d wizard.Draft) interface{} {
					var skills []models.Skill
					if err := decode(d["skills"], &skills); err != nil {
						return 0
					}
					return len(NormalizeSkills(skills))
				},
			},
		},
	}
}

func validateTemplate(d wizard.Draft) wizard.Errors {
	t := stringField(d, "template")
	for _, known := range models.ResumeTemplates {
		if t == known {
			return nil
		}
	}
	return wizard.Errors{"template": "Please choose a template"}
}

func validatePersonalInfo(d wizard.Draft) wizard.Errors {
	var info models.PersonalInfo
	if err := decode(d["personalInfo"], &info); err != nil {
		return wizard.Errors{"personalInfo": "Personal information could not be read"}
	}

	errs := wizard.Errors{}
	if strings.TrimSpace(info.FirstName) == "" {
		errs["personalInfo.firstName"] = "First name is required"
	}
	if strings.TrimSpace(info.LastName) == "" {
		errs["personalInfo.lastName"] = "Last name is required"
	}
	switch email := strings.TrimSpace(info.Email); {
	case email == "":
		errs["personalInfo.email"] = "Email is required"
	case !ValidEmail(email):
		errs["personalInfo.email"] = "Please enter a valid email address"
	}
	return errs
}

func validateExperience(d wizard.Draft) wizard.Errors {
	var entries []models.ExperienceEntry
	if err := decode(d["experience"], &entries); err != nil {
		return wizard.Errors{"experience": "Experience entries could not be read"}
	}

	errs := wizard.Errors{}
	for i, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			errs[fmt.Sprintf("experience.%d.title", i)] = "Job title is required"
		}
		if strings.TrimSpace(e.Company) == "" {
			errs[fmt.Sprintf("experience.%d.company", i)] = "Company is required"
		}
		if !e.Current && strings.TrimSpace(e.EndDate) == "" {
			errs[fmt.Sprintf("experience.%d.endDate", i)] = "End date is required unless this is your current role"
		}
	}
	return errs
}

func validateEducation(d wizard.Draft) wizard.Errors {
	var entries []models.EducationEntry
	if err := decode(d["education"], &entries); err != nil {
		return wizard.Errors{"education": "Education entries could not be read"}
	}

	errs := wizard.Errors{}
	for i, e := range entries {
		if strings.TrimSpace(e.Degree) == "" {
			errs[fmt.Sprintf("education.%d.degree", i)] = "Degree is required"
		}
		if strings.TrimSpace(e.Institution) == "" {
			errs[fmt.Sprintf("education.%d.institution", i)] = "Institution is required"
		}
	}
	return errs
}

func validateSkills(d wizard.Draft) wizard.Errors {
	var skills []models.Skill
	if err := decode(d["skills"], &skills); err != nil {
		return wizard.Errors{"skills": "Skills could not be read"}
	}
	if len(NormalizeSkills(skills)) == 0 {
		return wizard.Errors{"skills": "Add at least one skill"}
	}
	return nil
}

func validateProjects(d wizard.Draft) wizard.Errors {
	var projects []models.Project
	if err := decode(d["projects"], &projects); err != nil {
		return wizard.Errors{"projects": "Projects could not be read"}
	}

	errs := wizard.Errors{}
	for i, p := range projects {
		if strings.TrimSpace(p.Name) == "" {
			errs[fmt.Sprintf("projects.%d.name", i)] = "Project name is required"
		}
	}
	return errs
}

// NormalizeSkills trims names, drops blanks and keeps the first occurrence of
// each name, compared case-insensitively.
func NormalizeSkills(skills []models.Skill) []models.Skill {
	seen := make(map[string]bool, len(skills))
	out := make([]models.Skill, 0, len(skills))
	for _, s := range skills {
		s.Name = strings.TrimSpace(s.Name)
		key := strings.ToLower(s.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if s.Level == "" {
			s.Level = defaultSkillLevel
		}
		out = append(out, s)
	}
	return out
}

// ResumeFromPayload decodes a submitted resume draft.
func ResumeFromPayload(payload wizard.Draft) (models.Resume, error) {
	var r models.Resume
	if err := decode(payload, &r); err != nil {
		return models.Resume{}, err
	}
	r.Skills = NormalizeSkills(r.Skills)
	if r.Experience == nil {
		r.Experience = []models.ExperienceEntry{}
	}
	if r.Education == nil {
		r.Education = []models.EducationEntry{}
	}
	if r.Projects == nil {
		r.Projects = []models.Project{}
	}
	return r, nil
}

// ExportResumeJSON renders the downloadable JSON document.
func ExportResumeJSON(r models.Resume) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
