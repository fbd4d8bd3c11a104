/*
validate.go - Structural validation of client-identifying fields

PURPOSE:
  Pure predicates used by intake flows before a client record is
  persisted. No side effects, no errors: malformed or empty input simply
  yields false, leaving user-facing messaging entirely to the caller.

RULES:
  Document: 6-10 ASCII digits, nothing else
  Phone:    exactly 10 digits starting with 3, whitespace ignored
  Email:    minimal name@domain.tld shape; optional field, callers skip
            the check when empty
*/
package lending

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	documentPattern = regexp.MustCompile(`^[0-9]{6,10}$`)
	phonePattern    = regexp.MustCompile(`^3[0-9]{9}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s]+$`)
)

// ValidDocument reports whether value is a well-formed document number.
func ValidDocument(value string) bool {
	return documentPattern.MatchString(value)
}

// ValidPhone reports whether value is a well-formed mobile number.
// Whitespace is stripped first, so "300 123 4567" is accepted.
func ValidPhone(value string) bool {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
	return phonePattern.MatchString(stripped)
}

// ValidEmail reports whether value looks like an email address.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}
