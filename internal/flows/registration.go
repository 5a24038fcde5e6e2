// internal/flows/registration.go
package flows

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"technet-workers/internal/models"
	"technet-workers/internal/wizard"
)

const Registration = "registration"

const minPasswordLength = 8

// SignupProviderField marks a registration started through a social
// provider. It is protected: only StartSocial can write it.
const SignupProviderField = "signupProvider"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail applies the same loose address check the sign-up form uses.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// PasswordStrength scores a password in steps of 25: one step each for a
// length of at least 8, an upper-case letter, a lower-case letter and a digit.
func PasswordStrength(password string) int {
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	score := 0
	for _, ok := range []bool{len(password) >= minPasswordLength, upper, lower, digit} {
		if ok {
			score += 25
		}
	}
	return score
}

func PasswordStrengthLabel(score int) string {
	switch {
	case score < 25:
		return "Weak"
	case score < 50:
		return "Fair"
	case score < 75:
		return "Good"
	}
	return "Strong"
}

// social providers pre-fill step one and start the flow on step two
var socialPrefillFields = map[string][]string{
	"linkedin": {"fullName", "email", "currentRole", "company", "experienceLevel"},
	"github":   {"fullName", "email", "primaryLanguages"},
}

// SocialPrefill keeps the fields a provider is allowed to supply and returns
// the normalised provider name and the step the flow should resume on.
func SocialPrefill(provider string, profile map[string]interface{}) (string, wizard.Draft, int, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	allowed, ok := socialPrefillFields[provider]
	if !ok {
		return "", nil, 0, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	values := wizard.Draft{}
	for _, field := range allowed {
		if v, ok := profile[field]; ok && !wizard.IsBlank(v) {
			values[field] = v
		}
	}
	return provider, values, 2, nil
}

// StartSocial marks a fresh registration controller with the provider and
// applies the provider's profile.
func StartSocial(c *wizard.Controller, provider string, profile map[string]interface{}) (wizard.Outcome, error) {
	name, values, target, err := SocialPrefill(provider, profile)
	if err != nil {
		return "", err
	}
	c.Seed(SignupProviderField, name)
	return c.Prefill(values, target), nil
}

func RegistrationDefinition() wizard.Definition {
	return wizard.Definition{
		Name:      Registration,
		Protected: []string{SignupProviderField},
		Steps: []wizard.Step{
			{
				Index:    1,
				Title:    "Basic Information",
				Validate: validateBasicInfo,
			},
			{
				Index:    2,
				Title:    "Professional Details",
				Validate: validateProfessionalInfo,
			},
			{
				Index:    3,
				Title:    "Preferences & Terms",
				Validate: validateTerms,
			},
		},
		Derived: []wizard.DerivedField{
			{
				Name:      "passwordStrength",
				DependsOn: []string{"password"},
				Compute: func(d wizard.Draft) interface{} {
					return PasswordStrength(stringField(d, "password"))
				},
			},
			{
				Name:      "passwordStrengthLabel",
				DependsOn: []string{"password"},
				Compute: func(d wizard.Draft) interface{} {
					return PasswordStrengthLabel(PasswordStrength(stringField(d, "password")))
				},
			},
			{
				Name:      "primaryLanguageCount",
				DependsOn: []string{"primaryLanguages"},
				Compute: func(d wizard.Draft) interface{} {
					return len(stringList(d["primaryLanguages"]))
				},
			},
		},
	}
}

func validateBasicInfo(d wizard.Draft) wizard.Errors {
	errs := wizard.Errors{}

	if strings.TrimSpace(stringField(d, "fullName")) == "" {
		errs["fullName"] = "Full name is required"
	}

	email := strings.TrimSpace(stringField(d, "email"))
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !ValidEmail(email):
		errs["email"] = "Please enter a valid email address"
	}

	// accounts created through a social provider carry no password
	if stringField(d, SignupProviderField) != "" {
		return errs
	}

	password := stringField(d, "password")
	switch {
	case password == "":
		errs["password"] = "Password is required"
	case len(password) < minPasswordLength:
		errs["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}
	return errs
}

func validateProfessionalInfo(d wizard.Draft) wizard.Errors {
	errs := wizard.Errors{}
	if wizard.IsBlank(d["currentRole"]) {
		errs["currentRole"] = "Please select your current role"
	}
	if wizard.IsBlank(d["company"]) {
		errs["company"] = "Company is required"
	}
	if wizard.IsBlank(d["experienceLevel"]) {
		errs["experienceLevel"] = "Please select your experience level"
	}
	if len(stringList(d["primaryLanguages"])) == 0 {
		errs["primaryLanguages"] = "Please select at least one programming language"
	}
	return errs
}

func validateTerms(d wizard.Draft) wizard.Errors {
	errs := wizard.Errors{}
	if !boolField(d, "agreeToTerms") {
		errs["agreeToTerms"] = "You must agree to the Terms of Service"
	}
	if !boolField(d, "agreeToPrivacy") {
		errs["agreeToPrivacy"] = "You must agree to the Privacy Policy"
	}
	return errs
}

// ProfileFromPayload turns a submitted registration draft into a profile.
// The password never leaves the wizard.
func ProfileFromPayload(payload wizard.Draft) (models.Profile, error) {
	var p models.Profile
	if err := decode(payload, &p); err != nil {
		return models.Profile{}, err
	}
	p.Email = strings.TrimSpace(p.Email)
	p.FullName = strings.TrimSpace(p.FullName)
	p.PrimaryLanguages = dedupe(p.PrimaryLanguages)
	return p, nil
}
