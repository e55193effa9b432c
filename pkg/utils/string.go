package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const digits = "0123456789"

// GenerateNumericCode returns a uniformly random code of length digits, used
// for OTP and password reset codes.
func GenerateNumericCode(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(digits)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(digits[n.Int64()])
	}
	return b.String(), nil
}

// NormalizeIdentifier trims and lower-cases usernames and e-mail addresses.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
