package core

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	BinarySampleSize   = 8192 // Bytes to sample for text/binary detection
	BinaryThresholdPct = 10   // Max % non-printable chars for text
)

// DetectFileType determines if content is likely text or binary.
// Returns true if the content appears to be text.
//
// Detection heuristic (in order):
//  1. Null bytes present → binary
//  2. Invalid UTF-8 → binary
//  3. >10% non-printable control chars → binary
func DetectFileType(data []byte) bool {
	if len(data) == 0 {
		return true
	}

	if bytes.IndexByte(data, 0) != -1 {
		return false
	}

	sample := data[:min(len(data), BinarySampleSize)]
	if !utf8.Valid(sample) {
		return false
	}

	nonPrintable := 0
	for _, b := range sample {
		// Allow common whitespace: space, tab, newline, carriage return
		if (b < 32 && b != 9 && b != 10 && b != 13) || b == 127 {
			nonPrintable++
		}
	}

	threshold := len(sample) * BinaryThresholdPct / 100
	return nonPrintable <= threshold
}

// CompareContents checks if two contents are identical
func CompareContents(a, b []byte) bool {
	aHash := sha256.Sum256(a)
	bHash := sha256.Sum256(b)
	return bytes.Equal(aHash[:], bHash[:])
}

// GenerateUnifiedDiff creates a unified-diff-style patch from the sealed
// note to the local text. Returns "" when they are identical.
func GenerateUnifiedDiff(name string, sealed, local []byte) (string, error) {
	if CompareContents(sealed, local) {
		return "", nil
	}

	if !DetectFileType(sealed) || !DetectFileType(local) {
		return fmt.Sprintf("Binary content %s has changed\n", name), nil
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	sealedStr, localStr := string(sealed), string(local)
	a, b, lineArray := dmp.DiffLinesToChars(sealedStr, localStr)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(sealedStr, diffs)
	if len(patches) == 0 {
		return "", nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- sealed/%s\n", name))
	result.WriteString(fmt.Sprintf("+++ local/%s\n", name))
	result.WriteString(dmp.PatchToText(patches))

	return result.String(), nil
}
