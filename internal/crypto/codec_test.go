package crypto

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCodec returns a Codec reading salts and nonces from r.
func newTestCodec(r io.Reader) *Codec {
	return &Codec{rand: r}
}

func TestEncryptDecryptHelloWorld(t *testing.T) {
	codec := NewCodec()

	env, err := codec.Encrypt([]byte("hello world"), []byte("correct horse"))
	require.NoError(t, err)

	decoded, err := ParseEnvelope(env.String())
	require.NoError(t, err)
	assert.Len(t, decoded, 16+12+11+16)

	plaintext, err := codec.Decrypt(decoded, []byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(plaintext))

	plaintext, err = codec.Decrypt(decoded, []byte("wrong password"))
	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.Nil(t, plaintext)
}

func TestEncryptEmptyPlaintext(t *testing.T) {
	codec := NewCodec()

	env, err := codec.Encrypt(nil, []byte("any password"))
	require.NoError(t, err)
	assert.Len(t, env, MinEnvelopeSize)

	plaintext, err := codec.Decrypt(env, []byte("any password"))
	require.NoError(t, err)
	assert.NotNil(t, plaintext)
	assert.Empty(t, plaintext)
}

func TestEmptyPasswordAccepted(t *testing.T) {
	codec := NewCodec()

	env, err := codec.Encrypt([]byte("note"), nil)
	require.NoError(t, err)

	plaintext, err := codec.Decrypt(env, []byte{})
	require.NoError(t, err)
	assert.Equal(t, "note", string(plaintext))
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	codec := NewCodec()
	password := []byte("same password")

	env1, err := codec.Encrypt([]byte("same text"), password)
	require.NoError(t, err)
	env2, err := codec.Encrypt([]byte("same text"), password)
	require.NoError(t, err)

	assert.NotEqual(t, env1.Salt(), env2.Salt())
	assert.NotEqual(t, env1.Nonce(), env2.Nonce())
	assert.NotEqual(t, []byte(env1), []byte(env2))

	for _, env := range []Envelope{env1, env2} {
		plaintext, err := codec.Decrypt(env, password)
		require.NoError(t, err)
		assert.Equal(t, "same text", string(plaintext))
	}
}

func TestDecryptDetectsBitFlips(t *testing.T) {
	codec := NewCodec()
	password := []byte("correct horse")

	env, err := codec.Encrypt([]byte("hello world"), password)
	require.NoError(t, err)

	// One flip per byte covers salt, nonce, ciphertext and tag
	for i := range env {
		mutated := append(Envelope(nil), env...)
		mutated[i] ^= 1 << uint(i%8)

		plaintext, err := codec.Decrypt(mutated, password)
		assert.ErrorIs(t, err, ErrAuthFailed, "byte %d", i)
		assert.Nil(t, plaintext, "byte %d", i)
	}

	// The original still opens
	plaintext, err := codec.Decrypt(env, password)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(plaintext))
}

func TestDecryptRejectsShortEnvelope(t *testing.T) {
	codec := NewCodec()

	for _, size := range []int{0, 1, SaltSize, SaltSize + NonceSize, MinEnvelopeSize - 1} {
		_, err := codec.Decrypt(make(Envelope, size), []byte("pw"))
		assert.ErrorIs(t, err, ErrMalformedEnvelope, "size %d", size)
	}
}

func TestDecryptMinimumSizeIsNotMalformed(t *testing.T) {
	codec := NewCodec()

	_, err := codec.Decrypt(make(Envelope, MinEnvelopeSize), []byte("pw"))
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestDeterministicRandomSource(t *testing.T) {
	seed := bytes.Repeat([]byte{0xA5}, SaltSize+NonceSize)
	codec := newTestCodec(bytes.NewReader(seed))

	env, err := codec.Encrypt([]byte("fixed"), []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, seed[:SaltSize], env.Salt())
	assert.Equal(t, seed[SaltSize:], env.Nonce())

	again := newTestCodec(bytes.NewReader(seed))
	env2, err := again.Encrypt([]byte("fixed"), []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, []byte(env), []byte(env2))
}

func TestRandomSourceUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		source io.Reader
	}{
		{"read error", iotest.ErrReader(errors.New("entropy pool closed"))},
		{"short read", bytes.NewReader(make([]byte, SaltSize))},
		{"empty", bytes.NewReader(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := newTestCodec(tt.source).Encrypt([]byte("x"), []byte("pw"))
			assert.ErrorIs(t, err, ErrRandomSourceUnavailable)
			assert.Nil(t, env)
		})
	}
}

func TestDecryptDoesNotMutateEnvelope(t *testing.T) {
	codec := NewCodec()
	env, err := codec.Encrypt([]byte("keep me"), []byte("pw"))
	require.NoError(t, err)

	snapshot := append(Envelope(nil), env...)
	for i := 0; i < 2; i++ {
		_, err := codec.Decrypt(env, []byte("pw"))
		require.NoError(t, err)
	}
	_, _ = codec.Decrypt(env, []byte("nope"))
	assert.Equal(t, []byte(snapshot), []byte(env))
}

func TestCodecConcurrentUse(t *testing.T) {
	codec := NewCodec()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := []byte{byte('a' + i)}
			password := []byte{byte('0' + i)}
			env, err := codec.Encrypt(text, password)
			if err != nil {
				errs <- err
				return
			}
			got, err := codec.Decrypt(env, password)
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(got, text) {
				errs <- errors.New("round trip mismatch")
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
