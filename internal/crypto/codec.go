package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// Codec seals and opens envelopes. It holds no per-call state and is safe
// for concurrent use.
type Codec struct {
	rand io.Reader
}

// NewCodec returns a Codec drawing salts and nonces from crypto/rand.
func NewCodec() *Codec {
	return &Codec{rand: rand.Reader}
}

// Encrypt seals plaintext under a key derived from password with a fresh
// salt and nonce. Plaintext may be empty.
func (c *Codec) Encrypt(plaintext, password []byte) (Envelope, error) {
	env := make(Envelope, SaltSize+NonceSize, SaltSize+NonceSize+len(plaintext)+TagSize)
	if _, err := io.ReadFull(c.rand, env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSourceUnavailable, err)
	}

	key, err := DeriveKey(password, env.Salt())
	if err != nil {
		return nil, err
	}
	defer ClearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	// Encrypt and authenticate, appending after salt and nonce
	return gcm.Seal(env, env.Nonce(), plaintext, nil), nil
}

// Decrypt opens env with password. It returns ErrMalformedEnvelope for
// structurally invalid input and ErrAuthFailed when the password is wrong
// or any byte of the envelope was altered. No plaintext is returned on
// failure.
func (c *Codec) Decrypt(env Envelope, password []byte) ([]byte, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}

	key, err := DeriveKey(password, env.Salt())
	if err != nil {
		return nil, err
	}
	defer ClearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, env.Nonce(), env.Sealed(), nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
