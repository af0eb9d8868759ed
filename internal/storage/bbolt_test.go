package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.sealnote")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}
	return db
}

func testMessage(id string, ts time.Time) *Message {
	return &Message{
		ID:               id,
		EncryptedData:    "c2VhbGVkLWJ5dGVz",
		Emotions:         []string{"joy", "surprise"},
		ConfidenceScores: []float64{0.9, 0.25},
		Timestamp:        ts,
	}
}

func TestOpenAndInitialize(t *testing.T) {
	db := openTestStorage(t)

	initialized, err := db.IsInitialized()
	if err != nil {
		t.Fatalf("Failed to check initialization: %v", err)
	}
	if !initialized {
		t.Error("Database should be initialized")
	}

	created, err := db.GetCreated()
	if err != nil {
		t.Fatalf("Failed to get created time: %v", err)
	}
	if time.Since(created) > time.Minute {
		t.Errorf("Unexpected created time: %v", created)
	}

	// Initialize is idempotent and keeps the original creation time
	if err := db.Initialize(); err != nil {
		t.Fatalf("Second initialize failed: %v", err)
	}
	again, err := db.GetCreated()
	if err != nil {
		t.Fatalf("Failed to get created time: %v", err)
	}
	if !again.Equal(created) {
		t.Errorf("Created time changed: %v != %v", again, created)
	}
}

func TestUninitializedDatabase(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "empty.sealnote"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	initialized, err := db.IsInitialized()
	if err != nil {
		t.Fatalf("Failed to check initialization: %v", err)
	}
	if initialized {
		t.Error("Fresh database should not be initialized")
	}
}

func TestStoreID(t *testing.T) {
	db := openTestStorage(t)

	id, err := db.GetOrCreateStoreID()
	if err != nil {
		t.Fatalf("Failed to create store ID: %v", err)
	}
	if id == "" {
		t.Fatal("Store ID should not be empty")
	}

	again, err := db.GetOrCreateStoreID()
	if err != nil {
		t.Fatalf("Failed to get store ID: %v", err)
	}
	if again != id {
		t.Errorf("Store ID changed: %s != %s", again, id)
	}
}

func TestPutAndGetMessage(t *testing.T) {
	db := openTestStorage(t)

	// Envelope text must come back byte-for-byte
	msg := testMessage("msg-1", time.Now().UTC())
	msg.EncryptedData = "AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8gISIjJCUmJygpKiss+/8="
	if err := db.PutMessage(msg); err != nil {
		t.Fatalf("Failed to put message: %v", err)
	}

	got, err := db.GetMessage("msg-1")
	if err != nil {
		t.Fatalf("Failed to get message: %v", err)
	}
	if got.EncryptedData != msg.EncryptedData {
		t.Errorf("Envelope mismatch: got %q, want %q", got.EncryptedData, msg.EncryptedData)
	}
	if len(got.Emotions) != 2 || got.Emotions[0] != "joy" {
		t.Errorf("Emotions mismatch: %v", got.Emotions)
	}
	if len(got.ConfidenceScores) != 2 || got.ConfidenceScores[1] != 0.25 {
		t.Errorf("Scores mismatch: %v", got.ConfidenceScores)
	}
	if !got.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Timestamp mismatch: got %v, want %v", got.Timestamp, msg.Timestamp)
	}

	if _, err := db.GetMessage("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPutMessageSetsTimestamp(t *testing.T) {
	db := openTestStorage(t)

	msg := testMessage("msg-1", time.Time{})
	if err := db.PutMessage(msg); err != nil {
		t.Fatalf("Failed to put message: %v", err)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set on put")
	}
}

func TestPutMessageValidation(t *testing.T) {
	db := openTestStorage(t)
	now := time.Now()

	tests := []struct {
		name   string
		mutate func(m *Message)
	}{
		{"missing id", func(m *Message) { m.ID = "" }},
		{"missing envelope", func(m *Message) { m.EncryptedData = "" }},
		{"label count mismatch", func(m *Message) { m.ConfidenceScores = m.ConfidenceScores[:1] }},
		{"score above one", func(m *Message) { m.ConfidenceScores[0] = 1.5 }},
		{"negative score", func(m *Message) { m.ConfidenceScores[0] = -0.1 }},
		{"nan score", func(m *Message) { m.ConfidenceScores[0] = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := testMessage("msg-1", now)
			tt.mutate(msg)
			if err := db.PutMessage(msg); !errors.Is(err, ErrInvalidMessage) {
				t.Errorf("Expected ErrInvalidMessage, got %v", err)
			}
		})
	}

	// Unlabelled messages are fine
	msg := testMessage("plain", now)
	msg.Emotions, msg.ConfidenceScores = nil, nil
	if err := db.PutMessage(msg); err != nil {
		t.Errorf("Unlabelled message rejected: %v", err)
	}

	if err := db.PutMessage(testMessage("plain", now)); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("Expected duplicate ID to be rejected, got %v", err)
	}
}

func TestListMessagesNewestFirst(t *testing.T) {
	db := openTestStorage(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c", "d"} {
		if err := db.PutMessage(testMessage(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Failed to put %s: %v", id, err)
		}
	}

	all, err := db.ListMessages(0)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	want := []string{"d", "c", "b", "a"}
	if len(all) != len(want) {
		t.Fatalf("Expected %d summaries, got %d", len(want), len(all))
	}
	for i := range want {
		if all[i].ID != want[i] {
			t.Errorf("Position %d: got %s, want %s", i, all[i].ID, want[i])
		}
	}

	limited, err := db.ListMessages(2)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "d" || limited[1].ID != "c" {
		t.Errorf("Unexpected limited listing: %+v", limited)
	}

	n, err := db.Count()
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if n != 4 {
		t.Errorf("Expected 4 messages, got %d", n)
	}
}

func TestUpdateEnvelope(t *testing.T) {
	db := openTestStorage(t)
	msg := testMessage("msg-1", time.Now().UTC())
	if err := db.PutMessage(msg); err != nil {
		t.Fatalf("Failed to put message: %v", err)
	}

	if err := db.UpdateEnvelope("msg-1", "bmV3LWVudmVsb3Bl"); err != nil {
		t.Fatalf("Failed to update envelope: %v", err)
	}

	got, err := db.GetMessage("msg-1")
	if err != nil {
		t.Fatalf("Failed to get message: %v", err)
	}
	if got.EncryptedData != "bmV3LWVudmVsb3Bl" {
		t.Errorf("Envelope not updated: %q", got.EncryptedData)
	}
	if !got.Timestamp.Equal(msg.Timestamp) || len(got.Emotions) != 2 {
		t.Errorf("Update should keep labels and timestamp: %+v", got)
	}

	if err := db.UpdateEnvelope("missing", "eA=="); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := db.UpdateEnvelope("msg-1", ""); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("Expected ErrInvalidMessage, got %v", err)
	}
}

func TestDeleteMessage(t *testing.T) {
	db := openTestStorage(t)
	if err := db.PutMessage(testMessage("msg-1", time.Now().UTC())); err != nil {
		t.Fatalf("Failed to put message: %v", err)
	}

	if err := db.DeleteMessage("msg-1"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := db.GetMessage("msg-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	summaries, err := db.ListMessages(0)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("Timeline entry should be removed, got %+v", summaries)
	}

	if err := db.DeleteMessage("msg-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCompact(t *testing.T) {
	db := openTestStorage(t)
	now := time.Now().UTC()

	for _, id := range []string{"keep", "drop"} {
		if err := db.PutMessage(testMessage(id, now)); err != nil {
			t.Fatalf("Failed to put %s: %v", id, err)
		}
	}
	if err := db.DeleteMessage("drop"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	if err := db.Compact(); err != nil {
		t.Fatalf("Compact failed: %v", err)
	}

	if _, err := os.Stat(db.Path() + ".backup"); !os.IsNotExist(err) {
		t.Error("Backup file should be removed after compact")
	}

	got, err := db.GetMessage("keep")
	if err != nil {
		t.Fatalf("Message lost during compact: %v", err)
	}
	if got.EncryptedData != "c2VhbGVkLWJ5dGVz" {
		t.Errorf("Envelope changed during compact: %q", got.EncryptedData)
	}
	if _, err := db.GetMessage("drop"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deleted message reappeared: %v", err)
	}
}
