package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/sealnote/internal/core"
	"github.com/illarion/sealnote/internal/crypto"
	"github.com/illarion/sealnote/internal/keyring"
)

// KeyringSave saves a note password to the OS keyring
func KeyringSave(id string) {
	box := OpenBox()
	defer box.Close()

	// Prompt for password
	password, err := core.ReadPassword("Enter password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(password)

	// Verify password is correct
	if err := box.VerifyPassword(id, password); err != nil {
		HandleError(err)
	}

	storeID, err := box.StoreID()
	if err != nil {
		HandleError(err)
	}

	if err := keyring.SavePassword(storeID, id, string(password)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Password saved to keyring")
}

// KeyringDelete removes a note password from the OS keyring
func KeyringDelete(id string) {
	box := OpenBox()
	defer box.Close()

	storeID, err := box.StoreID()
	if err != nil {
		fmt.Println("No password stored in keyring")
		return
	}

	if err := keyring.DeletePassword(storeID, id); err != nil {
		fmt.Println("No password stored in keyring")
		return
	}

	fmt.Println("Password removed from keyring")
}

// KeyringStatus checks if a note password is stored in the keyring
func KeyringStatus(id string) {
	box := OpenBox()
	defer box.Close()

	storeID, err := box.StoreID()
	if err != nil {
		fmt.Println("Password: not stored")
		return
	}

	if keyring.HasPassword(storeID, id) {
		fmt.Println("Password: stored in keyring")
	} else {
		fmt.Println("Password: not stored")
	}
}
