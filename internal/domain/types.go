package domain

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FieldDescriptor is one column of a generation schema. Numeric and
// string attributes are already coerced by the normalizer; a descriptor
// coming straight from a decoder may still be missing name or type,
// which the validator reports.
type FieldDescriptor struct {
	Name    string    `json:"name" yaml:"name"`
	Type    FieldType `json:"type" yaml:"type"`
	Related string    `json:"related,omitempty" yaml:"related,omitempty"`
	Values  []any     `json:"values,omitempty" yaml:"values,omitempty"`
	Min     *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64  `json:"max,omitempty" yaml:"max,omitempty"`
	Length  *int      `json:"length,omitempty" yaml:"length,omitempty"`
	Format  string    `json:"format,omitempty" yaml:"format,omitempty"`
}

type FieldType string

const (
	FieldTypeString     FieldType = "string"
	FieldTypeNumber     FieldType = "number"
	FieldTypeBoolean    FieldType = "boolean"
	FieldTypeDate       FieldType = "date"
	FieldTypeEnum       FieldType = "enum"
	FieldTypeEmail      FieldType = "email"
	FieldTypePhone      FieldType = "phone"
	FieldTypeUUID       FieldType = "uuid"
	FieldTypeURL        FieldType = "url"
	FieldTypeImage      FieldType = "image"
	FieldTypeAddress    FieldType = "address"
	FieldTypeCity       FieldType = "city"
	FieldTypeCountry    FieldType = "country"
	FieldTypeZipcode    FieldType = "zipcode"
	FieldTypeFirstName  FieldType = "firstname"
	FieldTypeLastName   FieldType = "lastname"
	FieldTypeFullName   FieldType = "fullname"
	FieldTypeUsername   FieldType = "username"
	FieldTypePassword   FieldType = "password"
	FieldTypeHexColor   FieldType = "hexcolor"
	FieldTypeCreditCard FieldType = "credit_card"
	FieldTypeCompany    FieldType = "company"
	FieldTypeJobTitle   FieldType = "job_title"
	FieldTypeIPv4       FieldType = "ipv4"
	FieldTypeIPv6       FieldType = "ipv6"
	FieldTypeLatitude   FieldType = "latitude"
	FieldTypeLongitude  FieldType = "longitude"
	FieldTypeSentence   FieldType = "sentence"
	FieldTypeParagraph  FieldType = "paragraph"
	FieldTypeWord       FieldType = "word"
)

// FieldTypes lists the closed type enumeration in a stable order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeString, FieldTypeNumber, FieldTypeBoolean, FieldTypeDate,
		FieldTypeEnum, FieldTypeEmail, FieldTypePhone, FieldTypeUUID,
		FieldTypeURL, FieldTypeImage, FieldTypeAddress, FieldTypeCity,
		FieldTypeCountry, FieldTypeZipcode, FieldTypeFirstName,
		FieldTypeLastName, FieldTypeFullName, FieldTypeUsername,
		FieldTypePassword, FieldTypeHexColor, FieldTypeCreditCard,
		FieldTypeCompany, FieldTypeJobTitle, FieldTypeIPv4, FieldTypeIPv6,
		FieldTypeLatitude, FieldTypeLongitude, FieldTypeSentence,
		FieldTypeParagraph, FieldTypeWord,
	}
}

func IsValidFieldType(t FieldType) bool {
	switch t {
	case FieldTypeString, FieldTypeNumber, FieldTypeBoolean, FieldTypeDate,
		FieldTypeEnum, FieldTypeEmail, FieldTypePhone, FieldTypeUUID,
		FieldTypeURL, FieldTypeImage, FieldTypeAddress, FieldTypeCity,
		FieldTypeCountry, FieldTypeZipcode, FieldTypeFirstName,
		FieldTypeLastName, FieldTypeFullName, FieldTypeUsername,
		FieldTypePassword, FieldTypeHexColor, FieldTypeCreditCard,
		FieldTypeCompany, FieldTypeJobTitle, FieldTypeIPv4, FieldTypeIPv6,
		FieldTypeLatitude, FieldTypeLongitude, FieldTypeSentence,
		FieldTypeParagraph, FieldTypeWord:
		return true
	default:
		return false
	}
}

const (
	CountMin     = 1
	CountMax     = 10000
	CountDefault = 10
)

// GenerationRequest is a validated generation call. Fields keeps the
// caller's column order, which is also the key order of output rows.
type GenerationRequest struct {
	Fields []FieldDescriptor `json:"fields"`
	Count  int               `json:"count"`
	Seed   *int64            `json:"seed,omitempty"`
}

// Row preserves schema field order when serialized to JSON. Duplicate
// names are not rejected upstream; a later Set overwrites in place.
type Row = *orderedmap.OrderedMap[string, any]

func NewRow() Row {
	return orderedmap.New[string, any]()
}

// HistoryRecord is the audit entry stored per generation call. It holds
// request metadata only, never generated data.
type HistoryRecord struct {
	ID         string `json:"id"`
	SchemaHash string `json:"schema_hash"`
	FieldCount int    `json:"field_count"`
	RowCount   int    `json:"row_count"`
	Seed       *int64 `json:"seed,omitempty"`
	Source     string `json:"source"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at"`
}

const (
	HistorySourceAPI = "api"
	HistorySourceCLI = "cli"

	HistoryStatusSuccess = "success"
	HistoryStatusFailed  = "failed"
)

// Preset is a named schema stored on disk, loadable by the CLI and API.
type Preset struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FieldDescriptor `json:"fields" yaml:"fields"`
	Count       int               `json:"count,omitempty" yaml:"count,omitempty"`
	Seed        *int64            `json:"seed,omitempty" yaml:"seed,omitempty"`
}
