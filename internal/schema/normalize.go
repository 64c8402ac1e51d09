package schema

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mmrzaf/rowgen/internal/domain"
)

// Normalize converts loosely-typed raw field objects into canonical
// descriptors. Query-string submissions deliver every attribute as a
// string, so numeric attributes are coerced when present and non-empty.
// Missing name or type passes through untouched; reporting that is the
// validator's job, not a parse failure.
func Normalize(raw []any) []domain.FieldDescriptor {
	fields := make([]domain.FieldDescriptor, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			fields = append(fields, domain.FieldDescriptor{})
			continue
		}

		fd := domain.FieldDescriptor{
			Name:    toString(m["name"]),
			Type:    domain.FieldType(toString(m["type"])),
			Related: toString(m["related"]),
			Format:  toString(m["format"]),
		}
		fd.Min = toNumber(m["min"])
		fd.Max = toNumber(m["max"])
		if n := toNumber(m["length"]); n != nil {
			l := int(*n)
			fd.Length = &l
		}
		if v, present := m["values"]; present && v != nil {
			if list, ok := v.([]any); ok {
				fd.Values = list
			} else {
				// A bare scalar is treated as a one-element candidate list.
				fd.Values = []any{v}
			}
		}

		fields = append(fields, fd)
	}
	return fields
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return ""
	}
}

// toNumber coerces string, integer and float attribute values to a
// number. Empty strings and absent values stay absent rather than
// becoming zero.
func toNumber(v any) *float64 {
	switch val := v.(type) {
	case float64:
		return &val
	case float32:
		f := float64(val)
		return &f
	case int:
		f := float64(val)
		return &f
	case int64:
		f := float64(val)
		return &f
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil
		}
		return &f
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
