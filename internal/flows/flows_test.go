// internal/flows/flows_test.go
package flows

import (
	"encoding/json"
	"testing"

	"technet-workers/internal/models"
	"technet-workers/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func start(t *testing.T, flow string) *wizard.Controller {
	def, err := Lookup(flow)
	require.NoError(t, err)
	c, err := wizard.New(def)
	require.NoError(t, err)
	return c
}

// jsonDraft mimics values that arrive from job variables.
func jsonValue(t *testing.T, raw string) interface{} {
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

// ==========================
// Registration Tests
// ==========================

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		score    int
		label    string
	}{
		{"", 0, "Weak"},
		{"abc", 25, "Fair"},
		{"abcdefgh", 50, "Good"},
		{"Abcdefgh", 75, "Strong"},
		{"Abcdefg1", 100, "Strong"},
		{"12345678", 50, "Good"},
		{"A1", 50, "Good"},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.score, PasswordStrength(tt.password))
			assert.Equal(t, tt.label, PasswordStrengthLabel(tt.score))
		})
	}
}

func TestRegistration_StepOneErrors(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]interface{}
		expected wizard.Errors
	}{
		{
			name:   "everything missing",
			fields: map[string]interface{}{},
			expected: wizard.Errors{
				"fullName": "Full name is required",
				"email":    "Email is required",
				"password": "Password is required",
			},
		},
		{
			name:     "bad email",
			fields:   map[string]interface{}{"fullName": "Ada", "email": "not-an-email", "password": "Secur3Pass"},
			expected: wizard.Errors{"email": "Please enter a valid email address"},
		},
		{
			name:     "short password",
			fields:   map[string]interface{}{"fullName": "Ada", "email": "ada@example.com", "password": "Ab1"},
			expected: wizard.Errors{"password": "Password must be at least 8 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := start(t, Registration)
			for k, v := range tt.fields {
				c.UpdateField(k, v)
			}
			assert.Equal(t, wizard.OutcomeBlocked, c.GoNext())
			assert.Equal(t, tt.expected, c.View().Errors)
			assert.Equal(t, 1, c.StepIndex())
		})
	}
}

func TestRegistration_PasswordStrengthIsLive(t *testing.T) {
	c := start(t, Registration)
	assert.Equal(t, 0, c.View().Draft["passwordStrength"])
	assert.Equal(t, "Weak", c.View().Draft["passwordStrengthLabel"])

	c.UpdateField("password", "abcdefgh")
	assert.Equal(t, 50, c.View().Draft["passwordStrength"])
	assert.Equal(t, "Good", c.View().Draft["passwordStrengthLabel"])

	c.UpdateField("password", "Abcdefg1")
	assert.Equal(t, 100, c.View().Draft["passwordStrength"])
}

func TestRegistration_WeakPasswordOnlyShowsInMeter(t *testing.T) {
	c := start(t, Registration)
	c.UpdateField("fullName", "Ada")
	c.UpdateField("email", "ada@example.com")
	c.UpdateField("password", "!!!!!!!!")

	assert.Equal(t, 25, c.View().Draft["passwordStrength"])
	assert.Equal(t, "Fair", c.View().Draft["passwordStrengthLabel"])
	assert.Equal(t, wizard.OutcomeAdvanced, c.GoNext())
	assert.Equal(t, 2, c.StepIndex())
}

func TestRegistration_ProviderMarkerCannotBeSetByEdits(t *testing.T) {
	c := start(t, Registration)
	c.UpdateField("fullName", "Eve")
	c.UpdateField("email", "eve@example.com")
	c.UpdateField(SignupProviderField, "anything")
	assert.Nil(t, c.View().Draft[SignupProviderField])

	assert.Equal(t, wizard.OutcomeBlocked, c.Prefill(wizard.Draft{SignupProviderField: "linkedin"}, 2))
	assert.Equal(t, wizard.Errors{"password": "Password is required"}, c.View().Errors)
	assert.Equal(t, 1, c.StepIndex())
}

func TestRegistration_FullFlowProducesProfile(t *testing.T) {
	c := start(t, Registration)

	c.UpdateField("fullName", " Ada Lovelace ")
	c.UpdateField("email", "ada@example.com")
	c.UpdateField("password", "Secur3Pass")
	require.Equal(t, wizard.OutcomeAdvanced, c.GoNext())

	assert.Equal(t, wizard.OutcomeBlocked, c.GoNext())
	assert.Equal(t, "Please select at least one programming language", c.View().Errors["primaryLanguages"])

	c.UpdateField("currentRole", "backend-developer")
	c.UpdateField("company", "Analytical Engines")
	c.UpdateField("experienceLevel", "senior")
	c.UpdateField("primaryLanguages", jsonValue(t, `["go","python","go"]`))
	assert.Equal(t, 3, c.View().Draft["primaryLanguageCount"])
	require.Equal(t, wizard.OutcomeAdvanced, c.GoNext())

	_, ok := c.Submit()
	require.False(t, ok)
	assert.Equal(t, wizard.Errors{
		"agreeToTerms":   "You must agree to the Terms of Service",
		"agreeToPrivacy": "You must agree to the Privacy Policy",
	}, c.View().Errors)

	c.UpdateField("agreeToTerms", true)
	c.UpdateField("agreeToPrivacy", true)
	payload, ok := c.Submit()
	require.True(t, ok)

	doc, err := Document(Registration, payload)
	require.NoError(t, err)
	profile, ok := doc.(models.Profile)
	require.True(t, ok)

	assert.Equal(t, "Ada Lovelace", profile.FullName)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Equal(t, []string{"go", "python"}, profile.PrimaryLanguages)
	assert.True(t, profile.AgreeToTerms)

	out, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Secur3Pass")
}

func TestSocialPrefill(t *testing.T) {
	profile := map[string]interface{}{
		"fullName":         "Grace Hopper",
		"email":            "grace@example.com",
		"company":          "Navy",
		"primaryLanguages": []interface{}{"cobol"},
		"password":         "ignored",
	}
	provider, values, step, err := SocialPrefill("LinkedIn", profile)
	require.NoError(t, err)
	assert.Equal(t, "linkedin", provider)
	assert.Equal(t, 2, step)
	assert.Equal(t, wizard.Draft{
		"fullName": "Grace Hopper",
		"email":    "grace@example.com",
		"company":  "Navy",
	}, values)

	c := start(t, Registration)
	outcome, err := StartSocial(c, "LinkedIn", profile)
	require.NoError(t, err)
	assert.Equal(t, wizard.OutcomeAdvanced, outcome)
	assert.Equal(t, 2, c.StepIndex(), "social sign-up skips the password")
	assert.Equal(t, "linkedin", c.View().Draft[SignupProviderField])

	_, _, _, err = SocialPrefill("myspace", nil)
	assert.ErrorIs(t, err, ErrUnknownProvider)
	_, err = StartSocial(start(t, Registration), "myspace", nil)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

// ==========================
// Resume Tests
// ==========================

func TestResume_StepTitles(t *testing.T) {
	def := ResumeDefinition()
	require.NoError(t, def.Check())

	titles := make([]string, 0, len(def.Steps))
	for _, s := range def.Steps {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{
		"Choose Template", "Personal Info", "Experience", "Education",
		"Skills", "Projects", "Preview & Download",
	}, titles)
}

func TestResume_FullFlow(t *testing.T) {
	c := start(t, Resume)

	assert.Equal(t, wizard.OutcomeBlocked, c.GoNext())
	assert.Equal(t, wizard.Errors{"template": "Please choose a template"}, c.View().Errors)
	c.UpdateField("template", models.TemplateMinimal)
	require.Equal(t, wizard.OutcomeAdvanced, c.GoNext())

	c.UpdateField("personalInfo", jsonValue(t, `{"firstName":"Ada","email":"ada@"}`))
	assert.Equal(t, wizard.OutcomeBlocked, c.GoNext())
	assert.Equal(t, wizard.Errors{
		"personalInfo.lastName": "Last name is required",
		"personalInfo.email":    "Please enter a valid email address",
	}, c.View().Errors)

	c.UpdateField("personalInfo", jsonValue(t, `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}`))
	assert.Empty(t, c.View().Errors, "editing the section clears its nested errors")
	require.Equal(t, wizard.OutcomeAdvanced, c.GoNext())

	c.UpdateField("experience", jsonValue(t, `[{"id":"1","title":"Engineer","company":""}]`))
	assert.Equal(t, wizard.OutcomeBlocked, c.GoNext())
	assert.Equal(t, wizard.Errors{
		"experience.0.company": "Company is required",
		"experience.0.endDate": "End date is required unless this is your current role",
	}, c.View().Errors)
	c.UpdateField("experience", jsonValue(t, `[{"id":"1","title":"Engineer","company":"Babbage Ltd","current":false}]`))
	assert.Equal(t, wizard.OutcomeBlocked, c.GoNext())
	assert.Equal(t, wizard.Errors{"experience.0.endDate": "End date is required unless this is your current role"}, c.View().Errors)
	c.UpdateField("experience", jsonValue(t, `[{"id":"1","title":"Engineer","company":"Babbage Ltd","current":true}]`))
	require.Equal(t, wizard.OutcomeAdvanced, c.GoNext())

	require.Equal(t, wizard.OutcomeAdvanced, c.GoNext(), "education is optional")

	c.UpdateField("skills", jsonValue(t, `[{"id":"1","name":"  "}]`))
	assert.Equal(t, 0, c.View().Draft["skillCount"])
	assert.Equal(t, wizard.OutcomeBlocked, c.GoNext())
	c.UpdateField("skills", jsonValue(t, `[{"id":"1","name":"Go","level":"expert"},{"id":"2","name":"go"},{"id":"3","name":"SQL"}]`))
	assert.Equal(t, 2, c.View().Draft["skillCount"])
	require.Equal(t, wizard.OutcomeAdvanced, c.GoNext())

	require.Equal(t, wizard.OutcomeAdvanced, c.GoNext(), "projects are optional")
	assert.Equal(t, wizard.OutcomeReady, c.GoNext())

	payload, ok := c.Submit()
	require.True(t, ok)

	doc, err := Document(Resume, payload)
	require.NoError(t, err)
	resume := doc.(models.Resume)

	assert.Equal(t, models.TemplateMinimal, resume.Template)
	assert.Equal(t, "Lovelace", resume.PersonalInfo.LastName)
	require.Len(t, resume.Experience, 1)
	assert.True(t, resume.Experience[0].Current)
	assert.Equal(t, []models.Skill{
		{ID: "1", Name: "Go", Level: "expert"},
		{ID: "3", Name: "SQL", Level: "intermediate"},
	}, resume.Skills)
	assert.NotNil(t, resume.Education)

	exported, err := ExportResumeJSON(resume)
	require.NoError(t, err)
	assert.Contains(t, string(exported), `"template": "minimal"`)
}

func TestNormalizeSkills(t *testing.T) {
	in := []models.Skill{{Name: " React "}, {Name: "react"}, {Name: ""}, {Name: "Docker", Level: "advanced"}}
	assert.Equal(t, []models.Skill{
		{Name: "React", Level: "intermediate"},
		{Name: "Docker", Level: "advanced"},
	}, NormalizeSkills(in))
}

// ==========================
// Registry Tests
// ==========================

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{Registration, Resume}, Names())

	_, err := Lookup("onboarding")
	assert.ErrorIs(t, err, ErrUnknownFlow)

	_, err = Document("onboarding", wizard.Draft{})
	assert.ErrorIs(t, err, ErrUnknownFlow)
}
