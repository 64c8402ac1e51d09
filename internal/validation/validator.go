package validation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmrzaf/rowgen/internal/domain"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRequest checks normalized fields plus count/seed candidates
// and returns a validated GenerationRequest. Violations are collected
// across the whole schema rather than stopping at the first bad field.
// count and seed may arrive as strings (query flow) or numbers (body
// flow); absent count defaults to 10.
func (v *Validator) ValidateRequest(fields []domain.FieldDescriptor, count any, seed any) (*domain.GenerationRequest, error) {
	errs := make([]domain.FieldError, 0)

	for i, fd := range fields {
		if strings.TrimSpace(fd.Name) == "" {
			errs = append(errs, domain.FieldError{
				Index:   i,
				Code:    domain.FieldErrEmptyName,
				Message: "field name is required",
			})
		}
		if !domain.IsValidFieldType(fd.Type) {
			errs = append(errs, domain.FieldError{
				Index:   i,
				Name:    fd.Name,
				Code:    domain.FieldErrUnknownType,
				Message: fmt.Sprintf("unknown field type: %q", string(fd.Type)),
			})
		}
		for j, val := range fd.Values {
			if !isScalarValue(val) {
				errs = append(errs, domain.FieldError{
					Index:   i,
					Name:    fd.Name,
					Code:    domain.FieldErrInvalidEnumValue,
					Message: fmt.Sprintf("values[%d] must be a string, number or boolean", j),
				})
			}
		}
	}

	req := &domain.GenerationRequest{Fields: fields, Count: domain.CountDefault}

	if n, ok, convErr := coerceInt(count); convErr != nil {
		errs = append(errs, domain.FieldError{
			Index:   -1,
			Name:    "count",
			Code:    domain.FieldErrCountOutOfRange,
			Message: "count must be an integer",
		})
	} else if ok {
		if n < domain.CountMin || n > domain.CountMax {
			errs = append(errs, domain.FieldError{
				Index:   -1,
				Name:    "count",
				Code:    domain.FieldErrCountOutOfRange,
				Message: fmt.Sprintf("count must be between %d and %d, got %d", domain.CountMin, domain.CountMax, n),
			})
		} else {
			req.Count = int(n)
		}
	}

	if n, ok, convErr := coerceInt(seed); convErr != nil {
		errs = append(errs, domain.FieldError{
			Index:   -1,
			Name:    "seed",
			Code:    domain.FieldErrInvalidSeed,
			Message: "seed must be an integer",
		})
	} else if ok {
		req.Seed = &n
	}

	if len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}
	return req, nil
}

func isScalarValue(v any) bool {
	switch v.(type) {
	case string, bool, int, int64, float32, float64, json.Number:
		return true
	default:
		return false
	}
}

// coerceInt returns (value, present, error). nil and empty strings count
// as absent, mirroring the normalizer's empty-attribute rule.
func coerceInt(v any) (int64, bool, error) {
	switch val := v.(type) {
	case nil:
		return 0, false, nil
	case int:
		return int64(val), true, nil
	case int64:
		return val, true, nil
	case float64:
		return int64(val), true, nil
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			f, ferr := val.Float64()
			if ferr != nil {
				return 0, false, err
			}
			return int64(f), true, nil
		}
		return n, true, nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil {
				return 0, false, err
			}
			return int64(f), true, nil
		}
		return n, true, nil
	default:
		return 0, false, fmt.Errorf("unsupported value type %T", v)
	}
}
