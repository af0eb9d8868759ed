package core

import (
	"fmt"
	"os"
	"strings"
	"syscall"
	"unicode"
	"unicode/utf8"

	"github.com/illarion/sealnote/internal/crypto"
	"golang.org/x/term"
)

// EnvPassword is read before prompting
const EnvPassword = "SEALNOTE_PASSWORD"

// ReadPassword reads a password from the terminal without echoing
func ReadPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	// Read password without echo
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // New line after password

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	return password, nil
}

// ReadPasswordConfirm reads a password twice and ensures they match
func ReadPasswordConfirm(prompt string) ([]byte, error) {
	password1, err := ReadPassword(prompt)
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password1)

	password2, err := ReadPassword("Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password2)

	if !crypto.ConstantTimeCompare(password1, password2) {
		return nil, fmt.Errorf("passwords do not match")
	}

	// Return a copy of the password
	result := make([]byte, len(password1))
	copy(result, password1)
	return result, nil
}

// GetPasswordFromEnv reads password from SEALNOTE_PASSWORD environment variable
func GetPasswordFromEnv() []byte {
	password, ok := os.LookupEnv(EnvPassword)
	if !ok {
		return nil
	}
	// Return a copy to avoid issues when clearing the bytes
	result := make([]byte, len(password))
	copy(result, password)
	return result
}

// Strength levels reported by PasswordStrength
const (
	StrengthEmpty  = "Empty"
	StrengthWeak   = "Weak"
	StrengthFair   = "Fair"
	StrengthGood   = "Good"
	StrengthStrong = "Strong"
)

const strengthSymbols = `!@#$%^&*(),.?":{}|<>`

// Strength is an informational password rating. It is never enforced.
type Strength struct {
	Level      string
	Percentage int
}

// PasswordStrength scores a password on length, mixed case, digits and
// symbols.
func PasswordStrength(password []byte) Strength {
	n := utf8.RuneCount(password)
	if n == 0 {
		return Strength{Level: StrengthEmpty}
	}

	var lower, upper, digit, symbol bool
	for _, r := range string(password) {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(strengthSymbols, r):
			symbol = true
		}
	}

	score := 0
	if n >= 8 {
		score += 25
	}
	if n >= 12 {
		score += 25
	}
	if lower && upper {
		score += 25
	}
	if digit {
		score += 15
	}
	if symbol {
		score += 10
	}

	switch {
	case score <= 25:
		return Strength{Level: StrengthWeak, Percentage: score}
	case score <= 50:
		return Strength{Level: StrengthFair, Percentage: score}
	case score <= 75:
		return Strength{Level: StrengthGood, Percentage: score}
	}
	return Strength{Level: StrengthStrong, Percentage: 100}
}
