package crypto

import (
	"encoding/base64"
)

// Envelope is a sealed message: salt | nonce | ciphertext | tag.
// It is treated as opaque outside this package.
type Envelope []byte

// ParseEnvelope decodes the base64 text form produced by Envelope.String.
func ParseEnvelope(s string) (Envelope, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrMalformedEnvelope
	}
	env := Envelope(data)
	if err := env.validate(); err != nil {
		return nil, err
	}
	return env, nil
}

func (e Envelope) validate() error {
	if len(e) < MinEnvelopeSize {
		return ErrMalformedEnvelope
	}
	return nil
}

// Salt returns the KDF salt. The envelope must be well formed.
func (e Envelope) Salt() []byte {
	return e[:SaltSize]
}

// Nonce returns the GCM nonce. The envelope must be well formed.
func (e Envelope) Nonce() []byte {
	return e[SaltSize : SaltSize+NonceSize]
}

// Sealed returns ciphertext with the trailing authentication tag.
func (e Envelope) Sealed() []byte {
	return e[SaltSize+NonceSize:]
}

// String returns the standard base64 encoding used for storage.
func (e Envelope) String() string {
	return base64.StdEncoding.EncodeToString(e)
}
