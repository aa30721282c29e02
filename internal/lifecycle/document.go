package lifecycle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// encodeDocument flattens a typed field struct into the JSON document stored
// in the fields column.
func encodeDocument[T any](value T) (map[string]any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	return doc, nil
}

// decodeDocument reads a stored document leniently so rows written by older
// builds keep loading.
func decodeDocument[T any](doc map[string]any) (T, error) {
	var out T
	if len(doc) == 0 {
		return out, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("decode fields: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode fields: %w", err)
	}
	return out, nil
}

// decodePatched strictly decodes a merged document. Unknown keys surface as
// ErrUnknownField.
func decodePatched[T any](doc map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(doc)
	if err != nil {
		return out, err
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&out); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return out, fmt.Errorf("%w: %s", ErrUnknownField, strings.TrimPrefix(err.Error(), "json: "))
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return out, fmt.Errorf("%s: expected %s", typeErr.Field, typeErr.Type)
		}
		return out, err
	}
	return out, nil
}

// mergeDocument overlays patch onto base by key presence.
func mergeDocument(base, patch map[string]any) map[string]any {
	merged := cloneDocument(base)
	if merged == nil {
		merged = map[string]any{}
	}
	for key, value := range patch {
		merged[key] = value
	}
	return merged
}

func cloneDocument(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneDocument(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return typed
	}
}
