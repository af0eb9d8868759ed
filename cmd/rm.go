package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/illarion/sealnote/internal/core"
	"github.com/illarion/sealnote/internal/keyring"
)

// Remove deletes notes by ID and compacts the store
func Remove(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: sealnote rm <id> [id...]")
		os.Exit(1)
	}

	box := OpenBox()
	defer box.Close()

	storeID, _ := box.StoreID()

	removed := 0
	for _, id := range ids {
		if err := box.Remove(ctx, id); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				fmt.Printf("warning: %s not found\n", id)
				continue
			}
			HandleError(err)
		}
		if storeID != "" {
			_ = keyring.DeletePassword(storeID, id)
		}
		fmt.Printf("removed: %s\n", id)
		removed++
	}

	if removed > 0 {
		if err := box.Compact(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to compact store: %s\n", err)
		}
	}
}
