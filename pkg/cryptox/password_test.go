package cryptox

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	// Keep the suite quick, the cost is encoded in the hash anyway.
	SetCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 72)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$2a$"), "hash should be bcrypt modular crypt format")
			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)
	hash2, err := HashPassword(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.NoError(t, VerifyPassword(password, hash1))
	require.NoError(t, VerifyPassword(password, hash2))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name          string
		wrongPassword string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"similar password", "correct-passwor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword(tt.wrongPassword, hash), ErrPasswordMismatch)
		})
	}
}

func TestVerifyPassword_SingleBitFlip(t *testing.T) {
	password := "Tr0ub4dor&3"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	raw := []byte(password)
	for i := range raw {
		for bit := range 8 {
			flipped := make([]byte, len(raw))
			copy(flipped, raw)
			flipped[i] ^= 1 << bit

			require.ErrorIs(t, VerifyPassword(string(flipped), hash), ErrPasswordMismatch,
				"byte %d bit %d", i, bit)
		}
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"argon2 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"truncated bcrypt", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword("test-password", tt.invalidHash)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrPasswordMismatch)
		})
	}
}

func TestSetCost(t *testing.T) {
	t.Cleanup(func() { SetCost(bcrypt.MinCost) })

	SetCost(bcrypt.MinCost + 1)
	require.Equal(t, bcrypt.MinCost+1, Cost())

	SetCost(0)
	require.Equal(t, DefaultCost, Cost(), "out of range cost falls back to default")

	SetCost(bcrypt.MaxCost + 1)
	require.Equal(t, DefaultCost, Cost())
}

func TestNeedsRehash(t *testing.T) {
	t.Cleanup(func() { SetCost(bcrypt.MinCost) })

	SetCost(bcrypt.MinCost)
	hash, err := HashPassword("rehash-me")
	require.NoError(t, err)
	require.False(t, NeedsRehash(hash))

	SetCost(bcrypt.MinCost + 1)
	require.True(t, NeedsRehash(hash))
	require.True(t, NeedsRehash("not-a-hash"))
}

func TestVerifyDummyFollowsCost(t *testing.T) {
	defer SetCost(bcrypt.MinCost)

	for _, c := range []int{bcrypt.MinCost, bcrypt.MinCost + 1} {
		SetCost(c)
		VerifyDummy("whatever")

		h, ok := dummyHashes.Load(c)
		require.True(t, ok)
		got, err := bcrypt.Cost(h.([]byte))
		require.NoError(t, err)
		require.Equal(t, c, got)
	}

	// Over-long input must not panic.
	VerifyDummy(strings.Repeat("a", 100))
}
