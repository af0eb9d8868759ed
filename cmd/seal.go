package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/illarion/sealnote/internal/core"
	"github.com/illarion/sealnote/internal/crypto"
)

// Seal encrypts a note and stores it, printing the new message ID.
// With no text arguments (or "-") the note is read from stdin.
func Seal(ctx context.Context, args []string, labelSpecs []string, remember bool) {
	labels, err := core.ParseLabels(labelSpecs)
	if err != nil {
		HandleError(err)
	}

	var text []byte
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		text, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read stdin: %s\n", err)
			os.Exit(1)
		}
	} else {
		text = []byte(strings.Join(args, " "))
	}
	defer crypto.ClearBytes(text)

	box := OpenBox()
	defer box.Close()

	password, err := GetPasswordForSeal("Enter password for this note: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(password)
	WarnWeakPassword(password)

	msg, err := box.Seal(ctx, text, password, labels)
	if err != nil {
		HandleError(err)
	}

	if remember {
		storeID, err := box.StoreID()
		if err == nil {
			SavePasswordToKeyring(storeID, msg.ID, password)
		}
	}

	fmt.Println(msg.ID)
}
