package hydrate

import "encoding/json"

// ParseOrDefault decodes a value that may arrive either as a JSON-encoded
// string or as an already-structured value, falling back to def on any
// failure. Row shapes differ between the legacy importer and the current
// write path, so every JSON column goes through here on read.
func ParseOrDefault[T any](raw interface{}, def T) T {
	if raw == nil {
		return def
	}

	var out T
	switch v := raw.(type) {
	case string:
		if v == "" {
			return def
		}
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return def
		}
		return out
	case []byte:
		if len(v) == 0 {
			return def
		}
		if err := json.Unmarshal(v, &out); err != nil {
			return def
		}
		return out
	case T:
		return v
	default:
		// Structured but not the exact target type (e.g. map[string]interface{}
		// from a driver). Round-trip through JSON.
		encoded, err := json.Marshal(v)
		if err != nil {
			return def
		}
		if err := json.Unmarshal(encoded, &out); err != nil {
			return def
		}
		return out
	}
}
