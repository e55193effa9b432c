package bcrypt

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost = 10
	// MaxPasswordBytes is the longest input bcrypt hashes in full.
	MaxPasswordBytes = 72
)

var (
	ErrMismatch    = errors.New("password does not match")
	ErrTooLong     = fmt.Errorf("password longer than %d bytes", MaxPasswordBytes)
	ErrInvalidHash = errors.New("stored password is not a bcrypt hash")
)

// dummyHash is compared against when there is no account, so a lookup miss
// costs as much as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("cramr-dummy-password"), DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrTooLong
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// ComparePassword returns ErrMismatch for a wrong password and
// ErrInvalidHash when hashedPassword is not usable.
func ComparePassword(hashedPassword, password string) error {
	if !VerifyHash(hashedPassword) {
		return ErrInvalidHash
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("password comparison failed: %w", err)
	}
}

// CompareDummy spends the time of one comparison and always fails.
func CompareDummy(password string) error {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
	return ErrMismatch
}

// VerifyHash reports whether hash is a bcrypt hash with a readable cost.
func VerifyHash(hash string) bool {
	if len(hash) != 60 {
		return false
	}
	_, err := bcrypt.Cost([]byte(hash))
	return err == nil
}
