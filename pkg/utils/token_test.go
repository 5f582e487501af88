package utils

import (
	"strings"
	"testing"
)

func TestGenerateLinkToken(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		token, err := GenerateLinkToken()
		if err != nil {
			t.Fatalf("GenerateLinkToken() error: %v", err)
		}
		if len(token) != LinkTokenLength {
			t.Fatalf("token length = %d, want %d", len(token), LinkTokenLength)
		}
		for _, c := range token {
			if !strings.ContainsRune(linkAlphabet, c) {
				t.Fatalf("token %q contains character outside alphabet", token)
			}
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %q", token)
		}
		seen[token] = true
	}
}

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOTPCode()
		if err != nil {
			t.Fatalf("GenerateOTPCode() error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code length = %d, want 6", len(code))
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("code %q contains non-digit", code)
			}
		}
	}
}
