package lending_test

import (
	"testing"

	"github.com/inversionesmg/lending-engine/lending"
)

func TestValidDocument(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"123456", true},
		{"1234567890", true},
		{"12345", false},        // below minimum
		{"12345678901", false},  // above maximum
		{"12345a", false},       // non-digit
		{" 123456", false},      // whitespace not stripped for documents
		{"", false},
	}

	for _, tc := range cases {
		if got := lending.ValidDocument(tc.value); got != tc.want {
			t.Errorf("ValidDocument(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"3001234567", true},
		{"300 123 4567", true},  // whitespace stripped
		{"  3001234567  ", true},
		{"2001234567", false},   // wrong leading digit
		{"300123456", false},    // too short
		{"30012345678", false},  // too long
		{"300123456a", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := lending.ValidPhone(tc.value); got != tc.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"maria@example.com", true},
		{"a@b.co", true},
		{"no-at-sign.com", false},
		{"two@@example.com", false},
		{"no-domain@", false},
		{"spaces in@example.com", false},
		{"no-tld@example", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := lending.ValidEmail(tc.value); got != tc.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
