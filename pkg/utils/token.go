package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const linkAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// LinkTokenLength is the length of a workshop's public link token.
const LinkTokenLength = 16

// GenerateLinkToken returns a random alphanumeric token used as a workshop's
// opaque public link. Tokens are case sensitive.
func GenerateLinkToken() (string, error) {
	buf := make([]byte, LinkTokenLength)
	max := big.NewInt(int64(len(linkAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate link token: %w", err)
		}
		buf[i] = linkAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// GenerateOTPCode returns a random 6-digit one-time code.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
