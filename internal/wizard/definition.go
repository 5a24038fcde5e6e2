// internal/wizard/definition.go
package wizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoSteps          = errors.New("WIZARD_NO_STEPS")
	ErrStepIndexInvalid = errors.New("WIZARD_STEP_INDEX_INVALID")
)

// Draft is the uncommitted form data, keyed by field name.
type Draft map[string]interface{}

// Errors maps a field name to the message shown next to it.
type Errors map[string]string

// Step is one page of a flow. A forward transition out of the step requires
// every RequiredFields entry to be present and Validate to report nothing.
type Step struct {
	Index          int
	Title          string
	RequiredFields []string
	Validate       func(Draft) Errors
}

// DerivedField is recomputed whenever one of its dependencies is updated.
type DerivedField struct {
	Name      string
	DependsOn []string
	Compute   func(Draft) interface{}
}

// Definition describes a multi-step flow.
type Definition struct {
	Name    string
	Steps   []Step
	Derived []DerivedField

	// Protected fields are written by the host through Seed and refused by
	// UpdateField.
	Protected []string

	// RequiredMessage renders the message for a missing required field.
	// Defaults to "<field> is required".
	RequiredMessage func(field string) string
}

// Check verifies that step indices are contiguous from 1.
func (d Definition) Check() error {
	if len(d.Steps) == 0 {
		return fmt.Errorf("%w: flow %q", ErrNoSteps, d.Name)
	}
	for i, s := range d.Steps {
		if s.Index != i+1 {
			return fmt.Errorf("%w: flow %q position %d has index %d", ErrStepIndexInvalid, d.Name, i+1, s.Index)
		}
	}
	return nil
}

// TotalSteps returns the number of steps.
func (d Definition) TotalSteps() int { return len(d.Steps) }

func (d Definition) step(index int) Step {
	return d.Steps[index-1]
}

func (d Definition) isDerived(name string) bool {
	for _, f := range d.Derived {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (d Definition) isProtected(name string) bool {
	for _, p := range d.Protected {
		if p == name {
			return true
		}
	}
	return false
}

func (d Definition) requiredMessage(field string) string {
	if d.RequiredMessage != nil {
		return d.RequiredMessage(field)
	}
	return field + " is required"
}

// validate runs the required-field check and the step validator.
// Validator messages win over the generic required message.
func (d Definition) validate(index int, draft Draft) Errors {
	s := d.step(index)
	errs := Errors{}

	for _, field := range s.RequiredFields {
		if IsBlank(draft[field]) {
			errs[field] = d.requiredMessage(field)
		}
	}
	if s.Validate != nil {
		for field, msg := range s.Validate(draft) {
			errs[field] = msg
		}
	}
	return errs
}

// IsBlank reports whether a draft value counts as missing: nil, an empty or
// whitespace string, false, or an empty collection.
func IsBlank(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case []interface{}:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	return false
}
