// internal/flows/decode.go
package flows

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"technet-workers/internal/wizard"
)

func decode(input interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPayloadDecode, err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("%w: %v", ErrPayloadDecode, err)
	}
	return nil
}

func stringField(d wizard.Draft, name string) string {
	s, _ := d[name].(string)
	return s
}

func boolField(d wizard.Draft, name string) bool {
	b, _ := d[name].(bool)
	return b
}

// stringList accepts the shapes a multi-select arrives in and drops blanks.
func stringList(v interface{}) []string {
	var out []string
	switch t := v.(type) {
	case []string:
		for _, s := range t {
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, s := range strings.Split(t, ",") {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
