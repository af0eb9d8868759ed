package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/sealnote/internal/crypto"
)

// Diff compares a sealed note with a local file
func Diff(ctx context.Context, id, path string) {
	local, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read %s: %s\n", path, err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(local)

	box := OpenBox()
	defer box.Close()

	storeID, _ := box.StoreID()

	password, _, err := GetPasswordWithRetry("Enter password: ", storeID, id, box.VerifyPassword)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	diff, err := box.Diff(ctx, id, password, local)
	if err != nil {
		HandleError(err)
	}

	if diff == "" {
		fmt.Printf("%s matches the sealed note\n", path)
		return
	}
	fmt.Print(diff)
}
