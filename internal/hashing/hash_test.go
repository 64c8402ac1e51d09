package hashing

import (
	"regexp"
	"testing"

	"github.com/mmrzaf/rowgen/internal/domain"
)

func TestHashRequest_StableAcrossCalls(t *testing.T) {
	min, max := 1.0, 10.0
	seed := int64(42)
	req := &domain.GenerationRequest{
		Fields: []domain.FieldDescriptor{
			{Name: "id", Type: domain.FieldTypeUUID},
			{Name: "n", Type: domain.FieldTypeNumber, Min: &min, Max: &max},
		},
		Count: 5,
		Seed:  &seed,
	}

	a, err := HashRequest(req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashRequest(req)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("hash not stable: %s vs %s", a, b)
	}
	if !regexp.MustCompile(`^[0-9a-f]{64}$`).MatchString(a) {
		t.Fatalf("expected sha256 hex, got %q", a)
	}
}

func TestHashRequest_FieldOrderMatters(t *testing.T) {
	a := &domain.GenerationRequest{
		Fields: []domain.FieldDescriptor{
			{Name: "a", Type: domain.FieldTypeWord},
			{Name: "b", Type: domain.FieldTypeWord},
		},
		Count: 10,
	}
	b := &domain.GenerationRequest{
		Fields: []domain.FieldDescriptor{
			{Name: "b", Type: domain.FieldTypeWord},
			{Name: "a", Type: domain.FieldTypeWord},
		},
		Count: 10,
	}

	ha, _ := HashRequest(a)
	hb, _ := HashRequest(b)
	if ha == hb {
		t.Fatal("expected field order to change the hash")
	}
}

func TestHashRequest_DistinguishesAttributes(t *testing.T) {
	base := func() *domain.GenerationRequest {
		return &domain.GenerationRequest{
			Fields: []domain.FieldDescriptor{{Name: "n", Type: domain.FieldTypeNumber}},
			Count:  10,
		}
	}

	h0, _ := HashRequest(base())

	withMax := base()
	max := 99.0
	withMax.Fields[0].Max = &max
	h1, _ := HashRequest(withMax)

	withSeed := base()
	seed := int64(1)
	withSeed.Seed = &seed
	h2, _ := HashRequest(withSeed)

	withCount := base()
	withCount.Count = 11
	h3, _ := HashRequest(withCount)

	hashes := map[string]bool{h0: true, h1: true, h2: true, h3: true}
	if len(hashes) != 4 {
		t.Fatalf("expected 4 distinct hashes, got %d", len(hashes))
	}
}

func TestHashRequest_EquivalentPointersHashEqual(t *testing.T) {
	// Attribute identity does not matter, only the pointed-to values.
	mk := func() *domain.GenerationRequest {
		min, max := 0.0, 50.0
		length := 8
		return &domain.GenerationRequest{
			Fields: []domain.FieldDescriptor{
				{Name: "n", Type: domain.FieldTypeNumber, Min: &min, Max: &max},
				{Name: "s", Type: domain.FieldTypeString, Length: &length},
			},
			Count: 10,
		}
	}

	ha, _ := HashRequest(mk())
	hb, _ := HashRequest(mk())
	if ha != hb {
		t.Fatal("expected equivalent requests to hash equal")
	}
}
