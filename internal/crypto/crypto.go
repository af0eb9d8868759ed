package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize   = 16      // Salt size in bytes
	KeySize    = 32      // AES-256 key size
	NonceSize  = 12      // GCM nonce size
	TagSize    = 16      // GCM authentication tag size
	Iterations = 100_000 // PBKDF2 iterations, shared by every envelope

	// MinEnvelopeSize is the size of an envelope sealing an empty plaintext.
	MinEnvelopeSize = SaltSize + NonceSize + TagSize
)

var (
	ErrInvalidSaltLength       = errors.New("invalid salt length")
	ErrRandomSourceUnavailable = errors.New("secure random source unavailable")
	ErrMalformedEnvelope       = errors.New("malformed envelope")
	ErrAuthFailed              = errors.New("authentication failed")
)

// DeriveKey derives a 32-byte key from password and salt.
// The caller owns the returned key and should clear it when done.
func DeriveKey(password, salt []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, ErrInvalidSaltLength
	}
	return pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New), nil
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
