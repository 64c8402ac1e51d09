package schema

import (
	"encoding/json"
	"net/url"
	"sort"
	"strconv"

	qs "github.com/derekstavis/go-qs"

	"github.com/mmrzaf/rowgen/internal/domain"
)

// Two encodings are accepted for the fields parameter on the query
// string: Rack-style bracket notation, where an array-aware parse of
// the raw query yields fields as a native sequence
// (fields[0][name]=id&fields[0][type]=uuid), and a single JSON-encoded
// string value. Bracket notation is inspected first; the JSON fallback
// reports invalid_fields_format when the string does not parse.

// ResolveQueryFields extracts the raw field sequence from an encoded
// query string.
func ResolveQueryFields(rawQuery string) ([]any, error) {
	if parsed, err := qs.Unmarshal(rawQuery); err == nil {
		if v, present := parsed["fields"]; present {
			return resolveFieldsValue(v)
		}
	}

	// The bracket-aware parse can reject query strings that stdlib
	// parsing accepts; fall back to the plain value.
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, &domain.InvalidFieldsError{Reason: "unparsable query string"}
	}
	if raw := values.Get("fields"); raw != "" {
		return resolveFieldsValue(raw)
	}
	return nil, &domain.InvalidFieldsError{Reason: "fields parameter is required"}
}

// ResolveBodyFields extracts the raw field sequence from a decoded POST
// body attribute, which may be a native array or a JSON string.
func ResolveBodyFields(v any) ([]any, error) {
	if v == nil {
		return nil, &domain.InvalidFieldsError{Reason: "fields attribute is required"}
	}
	return resolveFieldsValue(v)
}

func resolveFieldsValue(v any) ([]any, error) {
	switch val := v.(type) {
	case []any:
		return val, nil
	case map[string]any:
		// Rack-style parsers deliver fields[0][name]=... as a hash keyed
		// by index string, not as an array.
		if seq, ok := indexedToSlice(val); ok {
			return seq, nil
		}
		return []any{val}, nil
	case string:
		var decoded any
		if err := json.Unmarshal([]byte(val), &decoded); err != nil {
			return nil, &domain.InvalidFieldsError{Reason: "fields is not valid JSON"}
		}
		if list, ok := decoded.([]any); ok {
			return list, nil
		}
		// Parsed but not a sequence: hand the value to the validator,
		// which reports the malformed descriptor.
		return []any{decoded}, nil
	default:
		return []any{val}, nil
	}
}

// indexedToSlice converts a map keyed "0", "1", ... into a slice
// ordered by integer key. Any non-numeric key means the map is a plain
// object, not an encoded sequence.
func indexedToSlice(m map[string]any) ([]any, bool) {
	if len(m) == 0 {
		return nil, false
	}

	indices := make([]int, 0, len(m))
	byIndex := make(map[int]any, len(m))
	for k, v := range m {
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 0 {
			return nil, false
		}
		indices = append(indices, idx)
		byIndex[idx] = v
	}
	sort.Ints(indices)

	out := make([]any, 0, len(indices))
	for _, idx := range indices {
		out = append(out, byIndex[idx])
	}
	return out, true
}
