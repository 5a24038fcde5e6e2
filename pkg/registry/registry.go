// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed activities.json
var builtinActivities []byte

// Default returns the registry compiled into the binary.
func Default() (*ActivityRegistry, error) {
	return parse(builtinActivities)
}

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse activity registry: %w", err)
	}
	seen := make(map[string]bool, len(reg.Activities))
	for _, a := range reg.Activities {
		if a.TaskType == "" {
			return nil, fmt.Errorf("activity %q has no task type", a.ID)
		}
		if seen[a.TaskType] {
			return nil, fmt.Errorf("task type %q registered twice", a.TaskType)
		}
		seen[a.TaskType] = true
	}
	return &reg, nil
}

// Find returns the activity registered for taskType.
func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	return out
}
