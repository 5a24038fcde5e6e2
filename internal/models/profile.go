// internal/models/profile.go
package models

// Profile is the completed registration, without credentials.
type Profile struct {
	FullName         string   `json:"fullName" mapstructure:"fullName"`
	Email            string   `json:"email" mapstructure:"email"`
	CurrentRole      string   `json:"currentRole" mapstructure:"currentRole"`
	Company          string   `json:"company" mapstructure:"company"`
	ExperienceLevel  string   `json:"experienceLevel" mapstructure:"experienceLevel"`
	PrimaryLanguages []string `json:"primaryLanguages" mapstructure:"primaryLanguages"`
	Interests        []string `json:"interests,omitempty" mapstructure:"interests"`
	MarketingEmails  bool     `json:"marketingEmails" mapstructure:"marketingEmails"`
	AgreeToTerms     bool     `json:"agreeToTerms" mapstructure:"agreeToTerms"`
	AgreeToPrivacy   bool     `json:"agreeToPrivacy" mapstructure:"agreeToPrivacy"`
	SignupProvider   string   `json:"signupProvider,omitempty" mapstructure:"signupProvider"`
}
