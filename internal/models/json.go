package models

import (
	"bytes"
	"encoding/json"
)

// DecodeJSON reads a loosely-typed stored field into T, falling back to the
// given default when the value is absent, null, malformed, or not the
// expected shape. Legacy rows store some fields double-encoded (a JSON
// string whose contents are the serialized object); that form is decoded
// transparently. DecodeJSON never fails.
func DecodeJSON[T any](raw []byte, fallback T) T {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return fallback
	}

	var out T
	if err := json.Unmarshal(raw, &out); err == nil {
		return out
	}

	// Legacy form: the column holds a JSON string wrapping the object.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &out); err == nil {
			return out
		}
	}

	return fallback
}

// HasStoredValue reports whether a stored field carries any value at all
// (present and not null), regardless of whether it decodes cleanly.
func HasStoredValue(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
