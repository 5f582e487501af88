package utils

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// Accepts digits with an optional leading +, after separators are removed
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	// Removes formatting characters commonly typed into phone fields
	separatorRegex = regexp.MustCompile(`[\s\-().]`)
)

// NormalizePhoneNumber strips formatting characters from a phone number and
// validates the result: 10 to 15 digits with an optional leading +.
func NormalizePhoneNumber(phone string) (string, error) {
	if phone == "" {
		return "", errors.New("phone number cannot be empty")
	}

	normalized := separatorRegex.ReplaceAllString(phone, "")

	// A + is only meaningful as the first character
	if strings.Count(normalized, "+") > 1 || strings.LastIndex(normalized, "+") > 0 {
		return "", errors.New("invalid phone number format")
	}

	if !phoneRegex.MatchString(normalized) {
		return "", errors.New("invalid phone number format")
	}

	return normalized, nil
}

// ValidatePhoneNumber reports whether a phone number is acceptable after
// normalization.
func ValidatePhoneNumber(phone string) bool {
	_, err := NormalizePhoneNumber(phone)
	return err == nil
}
