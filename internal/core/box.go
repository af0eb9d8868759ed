package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/illarion/sealnote/internal/crypto"
	"github.com/illarion/sealnote/internal/logger"
	"github.com/illarion/sealnote/internal/storage"
)

const (
	StoreFile        = ".sealnote"
	DefaultListLimit = 50
)

var (
	ErrNotInitialized = errors.New("sealnote not initialized")
	ErrAlreadyExists  = errors.New("sealnote already exists")
	ErrWrongPassword  = errors.New("wrong password or corrupted message")
	ErrCorrupted      = errors.New("stored message is not a valid envelope")
	ErrEmptyMessage   = errors.New("message is empty")
	ErrNotFound       = storage.ErrNotFound
)

// Box manages sealed notes in a local store
type Box struct {
	path  string
	db    *storage.Storage
	codec *crypto.Codec
	log   logger.Logger
}

// Option configures a Box
type Option func(*Box)

// WithLogger sets the diagnostic logger
func WithLogger(l logger.Logger) Option {
	return func(b *Box) {
		b.log = l
	}
}

func newBox(dir string, opts []Option) *Box {
	b := &Box{
		path:  filepath.Join(dir, StoreFile),
		codec: crypto.NewCodec(),
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Init creates a new .sealnote store in dir and returns it opened
func Init(dir string, opts ...Option) (*Box, error) {
	b := newBox(dir, opts)
	if _, err := os.Stat(b.path); err == nil {
		return nil, ErrAlreadyExists
	}

	db, err := storage.Open(b.path)
	if err != nil {
		return nil, err
	}
	if err := db.Initialize(); err != nil {
		db.Close()
		os.Remove(b.path)
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	if _, err := db.GetOrCreateStoreID(); err != nil {
		db.Close()
		os.Remove(b.path)
		return nil, fmt.Errorf("failed to create store ID: %w", err)
	}

	b.db = db
	b.log.Infof("initialized store %s", b.path)
	return b, nil
}

// Open opens an existing .sealnote store in dir
func Open(dir string, opts ...Option) (*Box, error) {
	b := newBox(dir, opts)
	if _, err := os.Stat(b.path); err != nil {
		return nil, ErrNotInitialized
	}

	db, err := storage.Open(b.path)
	if err != nil {
		return nil, err
	}
	initialized, err := db.IsInitialized()
	if err != nil || !initialized {
		db.Close()
		return nil, ErrNotInitialized
	}

	b.db = db
	return b, nil
}

// Close releases the store
func (b *Box) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Path returns the store file path
func (b *Box) Path() string {
	return b.path
}

// StoreID returns the identifier used to scope keyring entries
func (b *Box) StoreID() (string, error) {
	return b.db.GetOrCreateStoreID()
}

// Revealed is a decrypted note with its stored labels
type Revealed struct {
	storage.Summary
	Plaintext []byte
}

// Seal encrypts text under password and stores it with the given labels.
// Whitespace-only text is rejected. An empty password is accepted.
func (b *Box) Seal(ctx context.Context, text, password []byte, labels []Label) (*storage.Message, error) {
	if strings.TrimSpace(string(text)) == "" {
		return nil, ErrEmptyMessage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	env, err := b.codec.Encrypt(text, password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt message: %w", err)
	}

	msg := &storage.Message{
		ID:               uuid.NewString(),
		EncryptedData:    env.String(),
		Emotions:         make([]string, 0, len(labels)),
		ConfidenceScores: make([]float64, 0, len(labels)),
		Timestamp:        time.Now().UTC(),
	}
	for _, l := range labels {
		msg.Emotions = append(msg.Emotions, l.Emotion)
		msg.ConfidenceScores = append(msg.ConfidenceScores, l.Confidence)
	}

	if err := b.db.PutMessage(msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	b.log.WithField("id", msg.ID).Debugf("sealed %d bytes in %s", len(text), time.Since(start))
	return msg, nil
}

// Reveal fetches the note with id and decrypts it
func (b *Box) Reveal(ctx context.Context, id string, password []byte) (*Revealed, error) {
	msg, err := b.db.GetMessage(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plaintext, err := b.open(msg, password)
	if err != nil {
		b.log.WithField("id", id).Debugf("reveal failed: %v", err)
		return nil, err
	}

	return &Revealed{Summary: msg.Summary(), Plaintext: plaintext}, nil
}

// open decrypts a stored message, mapping crypto failures to core errors
func (b *Box) open(msg *storage.Message, password []byte) ([]byte, error) {
	env, err := crypto.ParseEnvelope(msg.EncryptedData)
	if err != nil {
		return nil, ErrCorrupted
	}

	plaintext, err := b.codec.Decrypt(env, password)
	switch {
	case errors.Is(err, crypto.ErrAuthFailed):
		return nil, ErrWrongPassword
	case errors.Is(err, crypto.ErrMalformedEnvelope):
		return nil, ErrCorrupted
	case err != nil:
		return nil, err
	}
	return plaintext, nil
}

// VerifyPassword checks that password opens the note with id
func (b *Box) VerifyPassword(id string, password []byte) error {
	msg, err := b.db.GetMessage(id)
	if err != nil {
		return err
	}
	plaintext, err := b.open(msg, password)
	if err != nil {
		return err
	}
	crypto.ClearBytes(plaintext)
	return nil
}

// Rekey re-seals the note with id under newPassword. The ID, labels and
// timestamp are kept.
func (b *Box) Rekey(ctx context.Context, id string, currentPassword, newPassword []byte) error {
	revealed, err := b.Reveal(ctx, id, currentPassword)
	if err != nil {
		return err
	}
	defer crypto.ClearBytes(revealed.Plaintext)

	if err := ctx.Err(); err != nil {
		return err
	}

	env, err := b.codec.Encrypt(revealed.Plaintext, newPassword)
	if err != nil {
		return fmt.Errorf("failed to encrypt message: %w", err)
	}
	if err := b.db.UpdateEnvelope(id, env.String()); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}

	b.log.WithField("id", id).Infof("message re-sealed")
	return nil
}

// Diff reveals the note with id and returns a unified diff against local.
// An empty result means the texts are identical.
func (b *Box) Diff(ctx context.Context, id string, password []byte, local []byte) (string, error) {
	revealed, err := b.Reveal(ctx, id, password)
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(revealed.Plaintext)

	return GenerateUnifiedDiff(id, revealed.Plaintext, local)
}

// List returns up to limit note summaries, newest first.
// A zero limit uses DefaultListLimit; a negative limit lists everything.
func (b *Box) List(ctx context.Context, limit int) ([]storage.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case limit == 0:
		limit = DefaultListLimit
	case limit < 0:
		limit = 0
	}
	return b.db.ListMessages(limit)
}

// Count returns the number of stored notes
func (b *Box) Count() (int, error) {
	return b.db.Count()
}

// Remove deletes the note with id
func (b *Box) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.db.DeleteMessage(id); err != nil {
		return err
	}
	b.log.WithField("id", id).Infof("message removed")
	return nil
}

// Compact compacts the store to reclaim unused space.
// This is useful after removing notes.
func (b *Box) Compact() error {
	return b.db.Compact()
}
