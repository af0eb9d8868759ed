package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/sealnote/internal/core"
	"github.com/illarion/sealnote/internal/crypto"
)

// Open reveals a note by ID. Plaintext goes to stdout, labels to stderr.
func Open(ctx context.Context, id string, remember bool) {
	box := OpenBox()
	defer box.Close()

	storeID, _ := box.StoreID()

	password, source, err := GetPasswordWithRetry("Enter password: ", storeID, id, box.VerifyPassword)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	revealed, err := box.Reveal(ctx, id, password)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(revealed.Plaintext)

	if len(revealed.Emotions) > 0 {
		fmt.Fprintf(os.Stderr, "emotions: %s\n", core.FormatLabels(revealed.Emotions, revealed.ConfidenceScores))
	}
	fmt.Fprintf(os.Stderr, "sealed: %s\n", revealed.Timestamp.Local().Format("2006-01-02 15:04:05"))
	os.Stdout.Write(revealed.Plaintext)
	if n := len(revealed.Plaintext); n > 0 && revealed.Plaintext[n-1] != '\n' {
		fmt.Println()
	}

	if remember && source == SourcePrompt && storeID != "" {
		SavePasswordToKeyring(storeID, id, password)
	}
}
