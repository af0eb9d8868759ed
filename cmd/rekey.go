package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/sealnote/internal/core"
	"github.com/illarion/sealnote/internal/crypto"
	"github.com/illarion/sealnote/internal/keyring"
)

// Rekey re-seals a note under a new password
func Rekey(ctx context.Context, id string) {
	box := OpenBox()
	defer box.Close()

	storeID, _ := box.StoreID()

	currentPassword, _, err := GetPasswordWithRetry("Enter current password: ", storeID, id, box.VerifyPassword)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(currentPassword)

	// Fail before asking for the new password
	if err := box.VerifyPassword(id, currentPassword); err != nil {
		HandleError(err)
	}

	newPassword, err := core.ReadPasswordConfirm("Enter new password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(newPassword)
	WarnWeakPassword(newPassword)

	if err := box.Rekey(ctx, id, currentPassword, newPassword); err != nil {
		HandleError(err)
	}

	// Any cached password is now stale
	if storeID != "" && keyring.HasPassword(storeID, id) {
		SavePasswordToKeyring(storeID, id, newPassword)
	}

	// Old envelope bytes are still in free pages until compaction
	if err := box.Compact(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: compaction failed: %s\n", err)
	}

	fmt.Println("✓ Password changed")
}
