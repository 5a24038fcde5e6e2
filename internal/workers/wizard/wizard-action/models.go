// internal/workers/wizard/wizard-action/models.go
package wizardaction

import "technet-workers/internal/wizard"

// Input is shared by every wizard task type; each action reads the fields it
// needs.
type Input struct {
	SessionID string                 `json:"sessionId,omitempty"`
	Flow      string                 `json:"flow,omitempty"`
	Field     string                 `json:"field,omitempty"`
	Value     interface{}            `json:"value,omitempty"`
	Values    map[string]interface{} `json:"values,omitempty"`
	Target    int                    `json:"target,omitempty"`
	Provider  string                 `json:"provider,omitempty"`
	Profile   map[string]interface{} `json:"profile,omitempty"`
}

type Output struct {
	SessionID string      `json:"sessionId"`
	Wizard    wizard.View `json:"wizard"`
	Outcome   string      `json:"outcome,omitempty"`
	Submitted bool        `json:"submitted"`
	Document  interface{} `json:"document,omitempty"`
	// Export is the downloadable JSON of a submitted resume.
	Export string `json:"export,omitempty"`
}
