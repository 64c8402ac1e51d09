package timeutil

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		input    string
		expected time.Duration
	}{
		{"30s", 30 * time.Second},
		{"5m", 5 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"30d", 30 * 24 * time.Hour},
		{"2w", 14 * 24 * time.Hour},
		{"90m", 90 * time.Minute},
	}

	for _, tc := range cases {
		got, err := ParseDuration(tc.input)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.input, err)
		}
		if got != tc.expected {
			t.Fatalf("%s: expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, input := range []string{"", "d", "xd", "10y", "abc"} {
		if _, err := ParseDuration(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}
