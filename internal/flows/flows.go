// internal/flows/flows.go
package flows

import (
	"errors"
	"fmt"
	"sort"

	"technet-workers/internal/wizard"
)

var (
	ErrUnknownFlow     = errors.New("UNKNOWN_FLOW")
	ErrUnknownProvider = errors.New("UNKNOWN_SIGNUP_PROVIDER")
	ErrPayloadDecode   = errors.New("PAYLOAD_DECODE_FAILED")
)

var definitions = map[string]func() wizard.Definition{
	Registration: RegistrationDefinition,
	Resume:       ResumeDefinition,
}

// Lookup returns the definition registered under name.
func Lookup(name string) (wizard.Definition, error) {
	build, ok := definitions[name]
	if !ok {
		return wizard.Definition{}, fmt.Errorf("%w: %q", ErrUnknownFlow, name)
	}
	return build(), nil
}

// Names lists the registered flows in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Document converts a submitted payload into the typed record of its flow.
func Document(flow string, payload wizard.Draft) (interface{}, error) {
	switch flow {
	case Registration:
		return ProfileFromPayload(payload)
	case Resume:
		return ResumeFromPayload(payload)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFlow, flow)
}
