package registry

import (
	"math/rand"
	"sort"
	"testing"
)

func TestResolve_HitAndMiss(t *testing.T) {
	r := DefaultCapabilityRegistry()

	fn, err := r.Resolve("vehicle.bicycle")
	if err != nil {
		t.Fatalf("expected vehicle.bicycle to resolve: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	v, ok := fn(rng).(string)
	if !ok || v == "" {
		t.Fatalf("expected non-empty string value, got %#v", v)
	}

	if _, err := r.Resolve("vehicle.warp_drive"); err == nil {
		t.Fatal("expected miss for unknown method")
	}
	if _, err := r.Resolve("spacecraft.bicycle"); err == nil {
		t.Fatal("expected miss for unknown group")
	}
	if _, err := r.Resolve("nodots"); err == nil {
		t.Fatal("expected error for path without a dot")
	}
	if _, err := r.Resolve("trailing."); err == nil {
		t.Fatal("expected error for empty method segment")
	}
}

func TestList_SortedAndComplete(t *testing.T) {
	r := DefaultCapabilityRegistry()
	paths := r.List()

	if !sort.StringsAreSorted(paths) {
		t.Fatal("expected sorted capability paths")
	}

	want := []string{
		"address.city", "color.hex", "internet.email", "lorem.word",
		"media.image_url", "person.first_name", "vehicle.bicycle",
	}
	have := make(map[string]bool, len(paths))
	for _, p := range paths {
		have[p] = true
	}
	for _, p := range want {
		if !have[p] {
			t.Fatalf("expected %s in registry, got %v", p, paths)
		}
	}
}

func TestFakerBackedCapabilities_ProduceValues(t *testing.T) {
	r := DefaultCapabilityRegistry()
	rng := rand.New(rand.NewSource(3))

	for _, path := range []string{
		"person.first_name", "internet.email", "internet.ipv4",
		"phone.number", "lorem.sentence", "payment.credit_card",
		"time.timestamp",
	} {
		fn, err := r.Resolve(path)
		if err != nil {
			t.Fatalf("expected %s to resolve: %v", path, err)
		}
		v, ok := fn(rng).(string)
		if !ok || v == "" {
			t.Fatalf("%s: expected non-empty string, got %#v", path, v)
		}
	}

	fn, err := r.Resolve("time.unix")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fn(rng).(int64); !ok {
		t.Fatalf("time.unix: expected int64")
	}
}

func TestCuratedCapabilities_UseRequestRNG(t *testing.T) {
	r := DefaultCapabilityRegistry()
	city, err := r.Resolve("address.city")
	if err != nil {
		t.Fatal(err)
	}

	a := city(rand.New(rand.NewSource(7)))
	b := city(rand.New(rand.NewSource(7)))
	if a != b {
		t.Fatalf("expected identical draws for identical rng state: %v vs %v", a, b)
	}
}

func TestRegister_Overrides(t *testing.T) {
	r := NewCapabilityRegistry()
	r.Register("g", "m", func(*rand.Rand) any { return "first" })
	r.Register("g", "m", func(*rand.Rand) any { return "second" })

	fn, err := r.Resolve("g.m")
	if err != nil {
		t.Fatal(err)
	}
	if got := fn(rand.New(rand.NewSource(1))); got != "second" {
		t.Fatalf("expected override to win, got %v", got)
	}
}
