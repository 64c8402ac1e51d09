package generators

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/mmrzaf/rowgen/internal/domain"
	"github.com/mmrzaf/rowgen/internal/logging"
	"github.com/mmrzaf/rowgen/internal/registry"
)

const (
	DefaultStringLength = 10
	PasswordLength      = 12

	DefaultNumberMin = 0
	DefaultNumberMax = 1000

	DefaultDateWindow = 30 * 24 * time.Hour
)

const (
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	passwordPool = alphanumeric + "!@#$%^&*-_"
)

// typeCapabilities maps each capability-backed type tag to its registry
// path. rng-driven tags (string, number, uuid, date, ...) are handled
// inline in generateByType.
var typeCapabilities = map[domain.FieldType]string{
	domain.FieldTypeEmail:      "internet.email",
	domain.FieldTypePhone:      "phone.number",
	domain.FieldTypeURL:        "internet.url",
	domain.FieldTypeImage:      "media.image_url",
	domain.FieldTypeAddress:    "address.street",
	domain.FieldTypeCity:       "address.city",
	domain.FieldTypeCountry:    "address.country",
	domain.FieldTypeZipcode:    "address.zipcode",
	domain.FieldTypeFirstName:  "person.first_name",
	domain.FieldTypeLastName:   "person.last_name",
	domain.FieldTypeFullName:   "person.full_name",
	domain.FieldTypeUsername:   "internet.username",
	domain.FieldTypeCreditCard: "payment.credit_card",
	domain.FieldTypeCompany:    "company.name",
	domain.FieldTypeJobTitle:   "company.job_title",
	domain.FieldTypeIPv4:       "internet.ipv4",
	domain.FieldTypeIPv6:       "internet.ipv6",
	domain.FieldTypeSentence:   "lorem.sentence",
	domain.FieldTypeParagraph:  "lorem.paragraph",
	domain.FieldTypeWord:       "lorem.word",
}

// ValueGenerator materializes one value per field descriptor per row.
type ValueGenerator struct {
	registry   *registry.CapabilityRegistry
	typeCaps   map[domain.FieldType]registry.Capability
	dateWindow time.Duration
	logger     *logging.Logger
}

func NewValueGenerator(reg *registry.CapabilityRegistry, dateWindow time.Duration, logger *logging.Logger) *ValueGenerator {
	if dateWindow <= 0 {
		dateWindow = DefaultDateWindow
	}
	typeCaps := make(map[domain.FieldType]registry.Capability, len(typeCapabilities))
	for t, path := range typeCapabilities {
		if fn, err := reg.Resolve(path); err == nil {
			typeCaps[t] = fn
		}
	}
	return &ValueGenerator{
		registry:   reg,
		typeCaps:   typeCaps,
		dateWindow: dateWindow,
		logger:     logger,
	}
}

// Generate dispatches in order: enum with candidates, then an explicit
// related capability path, then the per-type rule. A capability miss is
// logged and degrades to the type rule; it never aborts the row.
func (g *ValueGenerator) Generate(rng *rand.Rand, fd domain.FieldDescriptor) (any, error) {
	if fd.Type == domain.FieldTypeEnum && len(fd.Values) > 0 {
		return fd.Values[rng.Intn(len(fd.Values))], nil
	}

	if fd.Related != "" {
		fn, err := g.registry.Resolve(fd.Related)
		if err == nil {
			return fn(rng), nil
		}
		g.logger.Warnw("capability.miss", map[string]any{
			"field":   fd.Name,
			"related": fd.Related,
			"error":   err.Error(),
		})
	}

	return g.generateByType(rng, fd)
}

func (g *ValueGenerator) generateByType(rng *rand.Rand, fd domain.FieldDescriptor) (any, error) {
	if fn, ok := g.typeCaps[fd.Type]; ok {
		return fn(rng), nil
	}

	switch fd.Type {
	case domain.FieldTypeNumber:
		min := int64(DefaultNumberMin)
		max := int64(DefaultNumberMax)
		if fd.Min != nil {
			min = int64(*fd.Min)
		}
		if fd.Max != nil {
			max = int64(*fd.Max)
		}
		// Int63n panics on a non-positive span, so an inverted range is
		// reported instead of crashing the request.
		if max < min {
			return nil, fmt.Errorf("field %q: inverted number range [%d, %d]", fd.Name, min, max)
		}
		return min + rng.Int63n(max-min+1), nil

	case domain.FieldTypeBoolean:
		return rng.Intn(2) == 1, nil

	case domain.FieldTypeDate:
		offset := time.Duration(rng.Int63n(int64(g.dateWindow)))
		return time.Now().Add(-offset).UTC().Format(time.RFC3339), nil

	case domain.FieldTypeUUID:
		return uuidFromRNG(rng)

	case domain.FieldTypePassword:
		return randomString(rng, passwordPool, PasswordLength), nil

	case domain.FieldTypeHexColor:
		return fmt.Sprintf("#%02X%02X%02X", rng.Intn(256), rng.Intn(256), rng.Intn(256)), nil

	case domain.FieldTypeLatitude:
		return -90 + rng.Float64()*180, nil

	case domain.FieldTypeLongitude:
		return -180 + rng.Float64()*360, nil

	case domain.FieldTypeEnum:
		// Enum without candidates degrades to the string rule.
		return randomString(rng, alphanumeric, stringLength(fd)), nil

	default:
		// string, plus the permissive fallback for any tag that slipped
		// past validation.
		return randomString(rng, alphanumeric, stringLength(fd)), nil
	}
}

func stringLength(fd domain.FieldDescriptor) int {
	if fd.Length != nil {
		return *fd.Length
	}
	return DefaultStringLength
}

// randomString returns n characters drawn from pool; n <= 0 yields the
// empty string.
func randomString(rng *rand.Rand, pool string, n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = pool[rng.Intn(len(pool))]
	}
	return string(b)
}

// uuidFromRNG derives a v4 UUID from the request rng so seeded requests
// reproduce their identifiers.
func uuidFromRNG(rng *rand.Rand) (string, error) {
	b := make([]byte, 16)
	rng.Read(b)
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	u, err := uuid.FromBytes(b)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
