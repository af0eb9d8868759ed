// Package core provides the main sealnote operations.
//
// Core operations include:
//   - Init/Open: Create or open the .sealnote message store
//   - Seal: Encrypt a note under its own password and store it by ID
//   - Reveal: Fetch a note by ID and decrypt it
//   - Rekey: Re-seal a note under a new password, keeping its ID
//   - Diff: Compare a revealed note with local text
//   - List/Remove/Compact: Store maintenance without a password
//
// Every note has its own password. A wrong password and a tampered note are
// reported as the same ErrWrongPassword.
package core
