// Package storage provides the BBolt message store for sealnote.
//
// Database structure uses three buckets:
//   - config: format version, creation time, store ID (unencrypted)
//   - messages: message ID -> JSON record holding the sealed envelope text
//   - timeline: big-endian creation time + message ID -> message ID, for
//     newest-first listing
//
// The store never sees passwords or plaintext. Envelope text is stored and
// returned byte-for-byte.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
