package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket   = []byte("config")   // Version, timestamps, store ID - unencrypted
	MessagesBucket = []byte("messages") // Message records keyed by ID
	TimelineBucket = []byte("timeline") // Creation order index
)

// Config keys
var (
	ConfigVersion = []byte("version")
	ConfigCreated = []byte("created")
	ConfigStoreID = []byte("store_id")
)

const openTimeout = 1 * time.Second

// Storage provides BBolt-based storage for sealnote
type Storage struct {
	db *bolt.DB
}

// Open opens or creates a sealnote database
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// Initialize creates the bucket structure for a new store
func (s *Storage) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, MessagesBucket, TimelineBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if config.Get(ConfigVersion) != nil {
			return nil
		}
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}

		created, _ := time.Now().MarshalBinary()
		return config.Put(ConfigCreated, created)
	})
}

// IsInitialized checks if the database has been initialized
func (s *Storage) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// GetCreated retrieves the store creation time
func (s *Storage) GetCreated() (time.Time, error) {
	var created time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigCreated)
		if data == nil {
			return fmt.Errorf("created time not found")
		}
		return created.UnmarshalBinary(data)
	})
	return created, err
}

// GetOrCreateStoreID retrieves the store ID, generating one on first use
func (s *Storage) GetOrCreateStoreID() (string, error) {
	var storeID string
	err := s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		if data := config.Get(ConfigStoreID); data != nil {
			storeID = string(data)
			return nil
		}
		storeID = uuid.NewString()
		return config.Put(ConfigStoreID, []byte(storeID))
	})
	return storeID, err
}

// timelineKey orders entries by creation time, ties broken by ID
func timelineKey(m *Message) []byte {
	key := make([]byte, 8+len(m.ID))
	binary.BigEndian.PutUint64(key, uint64(m.Timestamp.UnixNano()))
	copy(key[8:], m.ID)
	return key
}

// PutMessage stores a new message. Timestamp is set if zero.
func (s *Storage) PutMessage(m *Message) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	if err := m.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		messages := tx.Bucket(MessagesBucket)
		if messages == nil {
			return fmt.Errorf("messages bucket not found")
		}
		if messages.Get([]byte(m.ID)) != nil {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidMessage, m.ID)
		}
		if err := messages.Put([]byte(m.ID), data); err != nil {
			return err
		}
		return tx.Bucket(TimelineBucket).Put(timelineKey(m), []byte(m.ID))
	})
}

func getMessage(tx *bolt.Tx, id string) (*Message, error) {
	messages := tx.Bucket(MessagesBucket)
	if messages == nil {
		return nil, fmt.Errorf("messages bucket not found")
	}
	data := messages.Get([]byte(id))
	if data == nil {
		return nil, ErrNotFound
	}
	m := &Message{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message %s: %w", id, err)
	}
	return m, nil
}

// GetMessage retrieves a message by ID
func (s *Storage) GetMessage(id string) (*Message, error) {
	var m *Message
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		m, err = getMessage(tx, id)
		return err
	})
	return m, err
}

// UpdateEnvelope replaces the sealed text of an existing message.
// ID, labels and creation time are kept.
func (s *Storage) UpdateEnvelope(id, encryptedData string) error {
	if encryptedData == "" {
		return fmt.Errorf("%w: encrypted data is required", ErrInvalidMessage)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		m, err := getMessage(tx, id)
		if err != nil {
			return err
		}
		m.EncryptedData = encryptedData
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal message: %w", err)
		}
		return tx.Bucket(MessagesBucket).Put([]byte(id), data)
	})
}

// DeleteMessage removes a message and its timeline entry
func (s *Storage) DeleteMessage(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		m, err := getMessage(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Bucket(TimelineBucket).Delete(timelineKey(m)); err != nil {
			return err
		}
		return tx.Bucket(MessagesBucket).Delete([]byte(id))
	})
}

// ListMessages returns up to limit summaries, newest first.
// A limit <= 0 returns every message.
func (s *Storage) ListMessages(limit int) ([]Summary, error) {
	var summaries []Summary
	err := s.db.View(func(tx *bolt.Tx) error {
		timeline := tx.Bucket(TimelineBucket)
		if timeline == nil {
			return fmt.Errorf("timeline bucket not found")
		}
		c := timeline.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(summaries) >= limit {
				break
			}
			m, err := getMessage(tx, string(v))
			if err != nil {
				return err
			}
			summaries = append(summaries, m.Summary())
		}
		return nil
	})
	return summaries, err
}

// Count returns the number of stored messages
func (s *Storage) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		messages := tx.Bucket(MessagesBucket)
		if messages == nil {
			return fmt.Errorf("messages bucket not found")
		}
		n = messages.Stats().KeyN
		return nil
	})
	return n, err
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after deleting messages to reclaim disk space.
func (s *Storage) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	// Create new database
	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	// Copy all buckets
	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	// Reopen database
	s.db, err = bolt.Open(srcPath, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	return nil
}
