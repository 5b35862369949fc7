// Package decoder unwraps the JSON envelopes the backend uses
// inconsistently across endpoints.
package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeList decodes body as a JSON array of T. When body is an object
// instead, the array is taken from the first of keys present in it.
func DecodeList[T any](body []byte, keys ...string) ([]T, error) {
	var out []T

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		return out, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}

	for _, key := range keys {
		raw, ok := envelope[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}

		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("failed to decode list under %q: %w", key, err)
		}
		return out, nil
	}

	return nil, fmt.Errorf("no list found under any of %v", keys)
}

// DecodeObject decodes body into a T, first unwrapping it from the first of
// keys that holds a JSON object.
func DecodeObject[T any](body []byte, keys ...string) (T, error) {
	var out T

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return out, fmt.Errorf("failed to decode object: %w", err)
	}

	for _, key := range keys {
		raw, ok := envelope[key]
		trimmed := bytes.TrimSpace(raw)
		if !ok || len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}

		if err := json.Unmarshal(trimmed, &out); err != nil {
			return out, fmt.Errorf("failed to decode object under %q: %w", key, err)
		}
		return out, nil
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("failed to decode object: %w", err)
	}

	return out, nil
}
