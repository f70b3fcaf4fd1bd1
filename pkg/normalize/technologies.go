package normalize

import (
	"encoding/json"
	"sort"
)

// Technologies normalizes the project "technologies" field into its
// canonical in-memory form: a map from technology name to a marker.
//
// Accepted input shapes:
//   - A JSON object: passed through, each key kept with the truthiness of
//     its value.
//   - A JSON array: each element contributes one entry - a bare string
//     becomes {name: true}, an object with a "name" property contributes
//     its name. Elements of any other shape are dropped.
//   - Absent input or any other shape: an empty map.
//
// Like List, Technologies never fails; malformed input degrades to an empty
// map. Note that array-of-objects input keeps only the name - any metadata
// beyond it is dropped (matching what the admin forms consume).
func Technologies(raw json.RawMessage) map[string]bool {
	result := make(map[string]bool)
	if len(raw) == 0 {
		return result
	}

	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asMap); err == nil && asMap != nil {
		for name, value := range asMap {
			result[name] = truthy(value)
		}
		return result
	}

	var asArray []json.RawMessage
	if err := json.Unmarshal(raw, &asArray); err != nil {
		return result
	}
	for _, element := range asArray {
		var name string
		if err := json.Unmarshal(element, &name); err == nil {
			if name != "" {
				result[name] = true
			}
			continue
		}
		var named struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(element, &named); err == nil && named.Name != "" {
			result[named.Name] = true
		}
	}
	return result
}

// DenormalizeTechnologies is the inverse applied at submit time: the
// canonical map becomes the sorted list of enabled technology names, the
// shape the backend accepts on writes. Round-tripping a canonical map
// through DenormalizeTechnologies and Technologies is lossless.
func DenormalizeTechnologies(technologies map[string]bool) []string {
	names := make([]string, 0, len(technologies))
	for name, enabled := range technologies {
		if enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// truthy reports whether a JSON value counts as an enabled marker:
// false, null, 0, and "" are falsy, everything else is truthy.
func truthy(raw json.RawMessage) bool {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}
