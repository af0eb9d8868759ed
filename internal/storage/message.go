package storage

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound       = errors.New("message not found")
	ErrInvalidMessage = errors.New("invalid message")
)

// Message is a stored sealed note.
type Message struct {
	ID               string    `json:"id"`
	EncryptedData    string    `json:"encrypted_data"`
	Emotions         []string  `json:"emotions"`
	ConfidenceScores []float64 `json:"confidence_scores"`
	Timestamp        time.Time `json:"timestamp"`
}

// Summary is the listing view of a message. It carries no ciphertext.
type Summary struct {
	ID               string    `json:"id"`
	Emotions         []string  `json:"emotions"`
	ConfidenceScores []float64 `json:"confidence_scores"`
	Timestamp        time.Time `json:"timestamp"`
}

// Summary returns the listing view of m
func (m *Message) Summary() Summary {
	return Summary{
		ID:               m.ID,
		Emotions:         m.Emotions,
		ConfidenceScores: m.ConfidenceScores,
		Timestamp:        m.Timestamp,
	}
}

// Validate checks the fields required before a message is stored
func (m *Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidMessage)
	}
	if m.EncryptedData == "" {
		return fmt.Errorf("%w: encrypted data is required", ErrInvalidMessage)
	}
	if len(m.Emotions) != len(m.ConfidenceScores) {
		return fmt.Errorf("%w: %d emotions but %d confidence scores",
			ErrInvalidMessage, len(m.Emotions), len(m.ConfidenceScores))
	}
	for i, score := range m.ConfidenceScores {
		if !(score >= 0 && score <= 1) {
			return fmt.Errorf("%w: confidence score for %q out of range: %v",
				ErrInvalidMessage, m.Emotions[i], score)
		}
	}
	return nil
}
