// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"technet-workers/internal/common/errors"
	"technet-workers/pkg/registry"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// GetErrorMessages returns "field: message" lines sorted by field.
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	sort.Strings(messages)
	return messages
}

func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Validator holds one compiled input schema per task type.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles every input schema in reg.
func NewValidator(reg *registry.ActivityRegistry) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(reg.Activities))}
	for _, activity := range reg.Activities {
		if len(activity.InputSchema) == 0 {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(activity.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", activity.TaskType, err)
		}
		v.schemas[activity.TaskType] = schema
	}
	return v, nil
}

// Check validates raw job variables against the schema for taskType. Task
// types without a schema always pass.
func (v *Validator) Check(taskType, variables string) (*ValidationResult, error) {
	schema, ok := v.schemas[taskType]
	if !ok {
		return &ValidationResult{Valid: true}, nil
	}
	if strings.TrimSpace(variables) == "" {
		variables = "{}"
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(variables))
	if err != nil {
		return nil, err
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		field := e.Field()
		if field == "(root)" {
			if missing, ok := e.Details()["property"].(string); ok {
				field = missing
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}
	return out, nil
}

// Validate is Check reduced to an INVALID_INPUT error.
func (v *Validator) Validate(taskType, variables string) error {
	result, err := v.Check(taskType, variables)
	if err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("variables are not valid JSON: %v", err))
	}
	if result.Valid {
		return nil
	}
	return errors.NewInvalidInputError(strings.Join(result.GetErrorMessages(), "; ")).
		WithMetadata("validationErrors", result.Errors)
}
