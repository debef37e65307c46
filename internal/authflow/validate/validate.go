// Package validate holds the field predicates shared by the login and signup
// forms.
//
// The predicates are UX gates, not security boundaries: the backend repeats
// its own checks.
package validate

import (
	"regexp"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password the forms accept.
const MinPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// IsValidEmail reports whether s has a "local@domain.tld" shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPassword reports whether s meets the minimum length.
func IsValidPassword(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLength
}

// IsValidPhone reports whether s is exactly ten decimal digits. The phone
// field is optional, so an empty value is accepted.
func IsValidPhone(s string) bool {
	if s == "" {
		return true
	}
	return phonePattern.MatchString(s)
}
