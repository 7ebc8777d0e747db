package security

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func TestHashCheckRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashFormat(t *testing.T) {
	hash, err := HashPassword("whatever")
	require.NoError(t, err)

	parts := strings.SplitN(hash, ".", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "100000", parts[0])

	salt, err := base64.StdEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.Len(t, salt, 16)

	key, err := base64.StdEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPassword("same password")
	require.NoError(t, err)
	b, err := HashPassword("same password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCheckHonorsStoredWorkFactor(t *testing.T) {
	// A hash produced under an older, lower iteration count must keep
	// verifying after the default is raised.
	salt := []byte("0123456789abcdef")
	key := pbkdf2.Key([]byte("legacy"), salt, 1000, 32, sha256.New)
	legacy := "1000." +
		base64.StdEncoding.EncodeToString(salt) + "." +
		base64.StdEncoding.EncodeToString(key)

	assert.True(t, CheckPassword(legacy, "legacy"))
	assert.False(t, CheckPassword(legacy, "not legacy"))
}

func TestCheckMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("", "x"))
	assert.False(t, CheckPassword("notdots", "x"))
	assert.False(t, CheckPassword("abc.def.ghi", "x"))
	assert.False(t, CheckPassword("-5.AAAA.AAAA", "x"))
}
