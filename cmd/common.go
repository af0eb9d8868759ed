package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/illarion/sealnote/internal/core"
	"github.com/illarion/sealnote/internal/crypto"
	"github.com/illarion/sealnote/internal/keyring"
	"github.com/illarion/sealnote/internal/logger"
	"github.com/illarion/sealnote/internal/storage"
)

// EnvDir overrides the directory holding the .sealnote store
const EnvDir = "SEALNOTE_DIR"

// Verbose enables debug logging for the current invocation
var Verbose bool

// PasswordSource records where a password came from
type PasswordSource int

const (
	SourcePrompt PasswordSource = iota
	SourceEnv
	SourceKeyring
)

// Dir returns the store directory
func Dir() string {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir
	}
	return "."
}

// OpenBox opens the store or exits with a friendly error
func OpenBox() *core.Box {
	box, err := core.Open(Dir(), core.WithLogger(logger.FromEnv(Verbose)))
	if err != nil {
		HandleError(err)
	}
	return box
}

// GetPassword retrieves password from environment or prompts user
// The caller is responsible for calling crypto.ClearBytes on the returned password
func GetPassword(prompt string) ([]byte, error) {
	// Try environment variable first
	password := core.GetPasswordFromEnv()
	if password != nil {
		return password, nil
	}

	// Prompt user
	password, err := core.ReadPassword(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	return password, nil
}

// GetPasswordOrExit is like GetPassword but exits on error
func GetPasswordOrExit(prompt string) []byte {
	password, err := GetPassword(prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return password
}

// GetPasswordForSeal retrieves the password for a new note.
// Checks environment variable first, then prompts with confirmation.
func GetPasswordForSeal(prompt string) ([]byte, error) {
	password := core.GetPasswordFromEnv()
	if password != nil {
		return password, nil
	}
	return core.ReadPasswordConfirm(prompt)
}

// GetPasswordWithRetry resolves the password for an existing note from the
// environment, then the keyring, then a prompt. A keyring entry that no
// longer opens the note is removed and the user is prompted instead.
func GetPasswordWithRetry(prompt, storeID, id string, verify func(string, []byte) error) ([]byte, PasswordSource, error) {
	if password := core.GetPasswordFromEnv(); password != nil {
		return password, SourceEnv, nil
	}

	if storeID != "" {
		if stored, err := keyring.GetPassword(storeID, id); err == nil {
			password := []byte(stored)
			err := verify(id, password)
			if err == nil {
				return password, SourceKeyring, nil
			}
			crypto.ClearBytes(password)
			if !errors.Is(err, core.ErrWrongPassword) {
				return nil, SourceKeyring, err
			}
			fmt.Fprintln(os.Stderr, "warning: stored keyring password no longer works, removing it")
			_ = keyring.DeletePassword(storeID, id)
		}
	}

	password, err := core.ReadPassword(prompt)
	if err != nil {
		return nil, SourcePrompt, err
	}
	return password, SourcePrompt, nil
}

// SavePasswordToKeyring stores password for the note, reporting failures
// as warnings
func SavePasswordToKeyring(storeID, id string, password []byte) {
	if err := keyring.SavePassword(storeID, id, string(password)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save to keyring: %s\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, "Password saved to keyring")
}

// WarnWeakPassword prints the informational strength rating for weak passwords
func WarnWeakPassword(password []byte) {
	strength := core.PasswordStrength(password)
	switch strength.Level {
	case core.StrengthEmpty:
		fmt.Fprintln(os.Stderr, "warning: empty password, anyone with the store can read this note")
	case core.StrengthWeak, core.StrengthFair:
		fmt.Fprintf(os.Stderr, "warning: password strength is %s (%d%%)\n", strength.Level, strength.Percentage)
	}
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, core.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: sealnote not initialized\n")
		fmt.Fprintf(os.Stderr, "Run 'sealnote init' first\n")
	case errors.Is(err, core.ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: .sealnote already exists in this directory\n")
		fmt.Fprintf(os.Stderr, "Use 'sealnote ls' to see stored notes\n")
	case errors.Is(err, core.ErrWrongPassword):
		fmt.Fprintf(os.Stderr, "Error: wrong password or corrupted message\n")
	case errors.Is(err, core.ErrNotFound):
		fmt.Fprintf(os.Stderr, "Error: message not found, check the message ID\n")
	case errors.Is(err, core.ErrEmptyMessage):
		fmt.Fprintf(os.Stderr, "Error: message is empty\n")
	case errors.Is(err, storage.ErrInvalidMessage), errors.Is(err, core.ErrInvalidLabel):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}
