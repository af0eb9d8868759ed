package crypto

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Each property run performs full PBKDF2 derivations, so the run count
// stays small.
func sealingParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 15
	return parameters
}

func TestSealingInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	codec := NewCodec()
	properties := gopter.NewProperties(sealingParameters())

	properties.Property("decrypt(encrypt(p, w), w) == p", prop.ForAll(
		func(plaintext []byte, password string) bool {
			env, err := codec.Encrypt(plaintext, []byte(password))
			if err != nil {
				return false
			}
			if len(env) != MinEnvelopeSize+len(plaintext) {
				return false
			}
			got, err := codec.Decrypt(env, []byte(password))
			return err == nil && bytes.Equal(got, plaintext)
		},
		gen.SliceOf(gen.UInt8()),
		gen.AnyString(),
	))

	properties.Property("wrong password is rejected", prop.ForAll(
		func(plaintext []byte, password, other string) bool {
			if password == other {
				return true
			}
			env, err := codec.Encrypt(plaintext, []byte(password))
			if err != nil {
				return false
			}
			got, err := codec.Decrypt(env, []byte(other))
			return err == ErrAuthFailed && got == nil
		},
		gen.SliceOf(gen.UInt8()),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("any single bit flip is rejected", prop.ForAll(
		func(plaintext []byte, password string, pos int, bit uint8) bool {
			env, err := codec.Encrypt(plaintext, []byte(password))
			if err != nil {
				return false
			}
			i := pos % len(env)
			env[i] ^= 1 << (bit % 8)
			got, err := codec.Decrypt(env, []byte(password))
			return err == ErrAuthFailed && got == nil
		},
		gen.SliceOf(gen.UInt8()),
		gen.AlphaString(),
		gen.IntRange(0, 1<<20),
		gen.UInt8(),
	))

	properties.Property("short input is malformed", prop.ForAll(
		func(data []byte) bool {
			if len(data) >= MinEnvelopeSize {
				data = data[:MinEnvelopeSize-1]
			}
			_, err := codec.Decrypt(Envelope(data), []byte("pw"))
			return err == ErrMalformedEnvelope
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}
