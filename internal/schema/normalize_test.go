package schema

import (
	"testing"

	"github.com/mmrzaf/rowgen/internal/domain"
)

func TestNormalize_CoercesStringAttributes(t *testing.T) {
	raw := []any{
		map[string]any{
			"name":   "age",
			"type":   "number",
			"min":    "18",
			"max":    "65",
			"length": "7",
		},
	}

	fields := Normalize(raw)
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	fd := fields[0]
	if fd.Name != "age" || fd.Type != domain.FieldTypeNumber {
		t.Fatalf("unexpected name/type: %#v", fd)
	}
	if fd.Min == nil || *fd.Min != 18 {
		t.Fatalf("expected min=18, got %#v", fd.Min)
	}
	if fd.Max == nil || *fd.Max != 65 {
		t.Fatalf("expected max=65, got %#v", fd.Max)
	}
	if fd.Length == nil || *fd.Length != 7 {
		t.Fatalf("expected length=7, got %#v", fd.Length)
	}
}

func TestNormalize_EmptyStringAttributeStaysAbsent(t *testing.T) {
	raw := []any{
		map[string]any{"name": "n", "type": "number", "min": "", "max": "  "},
	}

	fd := Normalize(raw)[0]
	if fd.Min != nil || fd.Max != nil {
		t.Fatalf("expected absent bounds, got min=%v max=%v", fd.Min, fd.Max)
	}
}

func TestNormalize_KeepsNativeNumbers(t *testing.T) {
	raw := []any{
		map[string]any{"name": "n", "type": "number", "min": float64(5), "max": 10},
	}

	fd := Normalize(raw)[0]
	if fd.Min == nil || *fd.Min != 5 {
		t.Fatalf("expected min=5, got %#v", fd.Min)
	}
	if fd.Max == nil || *fd.Max != 10 {
		t.Fatalf("expected max=10, got %#v", fd.Max)
	}
}

func TestNormalize_WrapsScalarValues(t *testing.T) {
	raw := []any{
		map[string]any{"name": "role", "type": "enum", "values": "admin"},
	}

	fd := Normalize(raw)[0]
	if len(fd.Values) != 1 || fd.Values[0] != "admin" {
		t.Fatalf("expected single wrapped value, got %#v", fd.Values)
	}
}

func TestNormalize_KeepsValueSequenceOrder(t *testing.T) {
	raw := []any{
		map[string]any{"name": "role", "type": "enum", "values": []any{"a", "b", "c"}},
	}

	fd := Normalize(raw)[0]
	if len(fd.Values) != 3 || fd.Values[0] != "a" || fd.Values[2] != "c" {
		t.Fatalf("unexpected values: %#v", fd.Values)
	}
}

func TestNormalize_MissingNameAndTypePassThrough(t *testing.T) {
	raw := []any{
		map[string]any{"related": "vehicle.bicycle"},
		"not a field object",
	}

	fields := Normalize(raw)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Name != "" || fields[0].Type != "" {
		t.Fatalf("expected empty name/type to pass through: %#v", fields[0])
	}
	if fields[0].Related != "vehicle.bicycle" {
		t.Fatalf("expected related preserved: %#v", fields[0])
	}
	if fields[1].Name != "" {
		t.Fatalf("expected non-map entry to become an empty descriptor: %#v", fields[1])
	}
}

func TestNormalize_CoercesRelatedAndFormat(t *testing.T) {
	raw := []any{
		map[string]any{"name": "bike", "type": "string", "related": "vehicle.bicycle", "format": "plain"},
	}

	fd := Normalize(raw)[0]
	if fd.Related != "vehicle.bicycle" || fd.Format != "plain" {
		t.Fatalf("unexpected related/format: %#v", fd)
	}
}
