package record

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Raw is an unvalidated input record: string keys mapped to strings, string
// lists or dates. Anything else is coerced during sanitisation.
type Raw map[string]any

// FromJSON decodes a JSON object into a Raw record.
func FromJSON(data []byte) (Raw, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Raw{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("record: decode json: %w", err)
	}
	return Raw(out), nil
}

// FromValues builds a Raw record from query or form values. Repeated "tags"
// parameters become a list; other keys keep their first value.
func FromValues(values url.Values) Raw {
	out := make(Raw, len(values))
	for key, vals := range values {
		if len(vals) == 0 || !IsInputField(key) {
			continue
		}
		if key == FieldTags && len(vals) > 1 {
			out[key] = append([]string(nil), vals...)
			continue
		}
		out[key] = vals[0]
	}
	return out
}

// Clone returns a shallow copy.
func (r Raw) Clone() Raw {
	out := make(Raw, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}
