// Package crypto seals repository secrets for the GitHub Actions secrets API.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/box"

	"github.com/runoshun/repo-actions/internal/domain"
)

// Ensure Sealer implements domain.SecretSealer interface.
var _ domain.SecretSealer = (*Sealer)(nil)

// KeySize is the size of a Curve25519 public key (32 bytes).
const KeySize = 32

var (
	// ErrInvalidKey is returned when the public key is not a base64-encoded 32 byte key.
	ErrInvalidKey = errors.New("invalid public key: must be 32 bytes, base64-encoded")
	// ErrDecryptionFailed is returned when a sealed box cannot be opened.
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or key")
)

// Sealer encrypts values with libsodium-compatible anonymous sealed boxes.
type Sealer struct {
	rand io.Reader
}

// NewSealer creates a new Sealer reading randomness from crypto/rand.
func NewSealer() *Sealer {
	return &Sealer{rand: rand.Reader}
}

// Seal encrypts value for the base64-encoded public key.
// Returns: base64(ephemeral public key + box)
func (s *Sealer) Seal(publicKey string, value []byte) (string, error) {
	key, err := DecodeKey(publicKey)
	if err != nil {
		return "", err
	}

	sealed, err := box.SealAnonymous(nil, value, key, s.rand)
	if err != nil {
		return "", fmt.Errorf("seal secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a base64-encoded sealed box with the given key pair.
func Open(sealed string, publicKey, privateKey *[KeySize]byte) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	plaintext, ok := box.OpenAnonymous(nil, data, publicKey, privateKey)
	if !ok {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// DecodeKey decodes a base64-encoded Curve25519 public key.
func DecodeKey(encoded string) (*[KeySize]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(raw) != KeySize {
		return nil, ErrInvalidKey
	}
	var key [KeySize]byte
	copy(key[:], raw)
	return &key, nil
}
