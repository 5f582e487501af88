package utils

import "regexp"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether the string looks like an email address.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}
