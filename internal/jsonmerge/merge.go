// Package jsonmerge deep-merges JSON documents and reads and writes them
// in the generated-file format (two-space indent, trailing newline).
package jsonmerge

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Merge returns base with overlay applied. Objects merge key by key,
// recursively; any other overlay value, arrays included, replaces the base
// value. Neither argument is modified.
func Merge(base, overlay any) any {
	baseObj, ok := base.(map[string]any)
	if !ok {
		return overlay
	}
	overlayObj, ok := overlay.(map[string]any)
	if !ok {
		return overlay
	}

	merged := make(map[string]any, len(baseObj)+len(overlayObj))
	for k, v := range baseObj {
		merged[k] = v
	}
	for k, v := range overlayObj {
		if existing, ok := merged[k]; ok {
			merged[k] = Merge(existing, v)
		} else {
			merged[k] = v
		}
	}
	return merged
}

// Decode parses a JSON document keeping numbers as json.Number, so values
// survive a decode/encode cycle unchanged.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON document")
	}
	return v, nil
}

// DecodeObject parses a JSON document that must be an object.
func DecodeObject(data []byte) (map[string]any, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
	return obj, nil
}

// Encode renders v as indented JSON with a trailing newline. HTML
// characters are written as-is so URLs stay readable.
func Encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
