package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/nacl/box"
)

func TestSealer_SealOpen(t *testing.T) {
	// Setup
	pub, priv, err := box.GenerateKey(rand.Reader)
	require.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString(pub[:])

	// Execute
	sealed, err := NewSealer().Seal(encoded, []byte("s3cr3t"))
	require.NoError(t, err)

	// Assert
	assert.NotContains(t, sealed, "s3cr3t")
	plaintext, err := Open(sealed, pub, priv)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cr3t"), plaintext)
}

func TestSealer_NonDeterministic(t *testing.T) {
	pub, _, err := box.GenerateKey(rand.Reader)
	require.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString(pub[:])
	s := NewSealer()

	first, err := s.Seal(encoded, []byte("value"))
	require.NoError(t, err)
	second, err := s.Seal(encoded, []byte("value"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each seal uses a fresh ephemeral key")
}

func TestSealer_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"not base64", "!!!"},
		{"too short", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSealer().Seal(tt.key, []byte("v"))
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestOpen_WrongKey(t *testing.T) {
	pub, _, err := box.GenerateKey(rand.Reader)
	require.NoError(t, err)
	otherPub, otherPriv, err := box.GenerateKey(rand.Reader)
	require.NoError(t, err)

	sealed, err := NewSealer().Seal(base64.StdEncoding.EncodeToString(pub[:]), []byte("v"))
	require.NoError(t, err)

	_, err = Open(sealed, otherPub, otherPriv)
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = Open("not-base64!", otherPub, otherPriv)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}
