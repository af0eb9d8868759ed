// Package crypto provides the password-based sealing primitive for sealnote.
//
// Encryption uses AES-256-GCM with:
//   - 32-byte key derived from password via PBKDF2
//   - 12-byte random nonce per encryption operation
//   - Authenticated encryption prevents tampering
//
// Key derivation uses PBKDF2-HMAC-SHA256 with:
//   - 16-byte random salt per encryption (stored in the envelope)
//   - 100,000 iterations
//
// Envelope layout:
//
//	salt (16) | nonce (12) | ciphertext | tag (16)
//
// A wrong password and a tampered envelope both surface as ErrAuthFailed.
//
// Memory safety:
//   - Derived keys are cleared before Encrypt and Decrypt return
//   - Use ClearBytes() to zero passwords after use
package crypto
