package cryptox

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used unless SetCost is called.
const DefaultCost = 10

var (
	ErrPasswordMismatch = errors.New("password does not match")
	ErrPasswordTooLong  = errors.New("password exceeds 72 bytes")
)

var cost atomic.Int64

func init() {
	cost.Store(DefaultCost)
}

// SetCost changes the bcrypt work factor for subsequent hashes. Values outside
// bcrypt's accepted range fall back to DefaultCost. Existing hashes keep
// verifying because the cost is encoded in them.
func SetCost(c int) {
	if c < bcrypt.MinCost || c > bcrypt.MaxCost {
		c = DefaultCost
	}
	cost.Store(int64(c))
}

// Cost returns the current bcrypt work factor.
func Cost() int {
	return int(cost.Load())
}

// HashPassword returns a salted bcrypt hash in modular crypt format ($2a$...).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost())
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a bcrypt hash using
// bcrypt's own constant-time comparison.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("invalid hash format: %w", err)
	}
}

// NeedsRehash reports whether the hash was produced with a different cost
// than the one currently configured.
func NeedsRehash(encodedHash string) bool {
	c, err := bcrypt.Cost([]byte(encodedHash))
	if err != nil {
		return true
	}
	return c != Cost()
}

// dummyHashes holds one throwaway hash per cost seen by VerifyDummy.
var dummyHashes sync.Map

func dummyHash() []byte {
	c := Cost()
	if h, ok := dummyHashes.Load(c); ok {
		return h.([]byte)
	}
	h, err := bcrypt.GenerateFromPassword([]byte("folio-no-such-account"), c)
	if err != nil {
		return nil
	}
	dummyHashes.Store(c, h)
	return h
}

// VerifyDummy spends one bcrypt comparison at the current cost and discards
// the result. Login calls it when there is no hash to check, so an unknown
// account costs the same as a wrong password.
func VerifyDummy(password string) {
	if h := dummyHash(); h != nil {
		_ = bcrypt.CompareHashAndPassword(h, []byte(password))
	}
}
