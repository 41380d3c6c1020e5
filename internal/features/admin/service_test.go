package admin

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

// encodeArgon2id собирает хеш в том же формате, что scripts/generate_hash.go.
func encodeArgon2id(password string) string {
	salt := []byte("0123456789abcdef")
	var (
		memory      uint32 = 65536
		iterations  uint32 = 3
		parallelism uint8  = 2
	)
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, 32)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

func TestVerifyArgon2id(t *testing.T) {
	encoded := encodeArgon2id("s3cret")

	assert.True(t, verifyArgon2id("s3cret", encoded))
	assert.False(t, verifyArgon2id("wrong", encoded))
	assert.False(t, verifyArgon2id("", encoded))
}

func TestVerifyArgon2idMalformedHash(t *testing.T) {
	assert.False(t, verifyArgon2id("s3cret", ""))
	assert.False(t, verifyArgon2id("s3cret", "plaintext"))
	assert.False(t, verifyArgon2id("s3cret", "$argon2id$v=19$garbage"))
	assert.False(t, verifyArgon2id("s3cret", "$argon2id$v=19$m=65536,t=3,p=2$!!!$!!!"))
}

func TestGenerateSecureToken(t *testing.T) {
	a := generateSecureToken()
	b := generateSecureToken()

	require.NotEmpty(t, a)
	assert.NotEqual(t, a, b)

	// 32 случайных байта в base64 URL-safe
	raw, err := base64.URLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}
