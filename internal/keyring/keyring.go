package keyring

import (
	"github.com/zalando/go-keyring"
)

const serviceName = "sealnote"

// account scopes a message password to the store that holds the message
func account(storeID, messageID string) string {
	return storeID + "/" + messageID
}

// SavePassword stores a message password in the OS keyring
func SavePassword(storeID, messageID string, password string) error {
	return keyring.Set(serviceName, account(storeID, messageID), password)
}

// GetPassword retrieves a message password from the OS keyring
func GetPassword(storeID, messageID string) (string, error) {
	return keyring.Get(serviceName, account(storeID, messageID))
}

// DeletePassword removes a message password from the OS keyring
func DeletePassword(storeID, messageID string) error {
	return keyring.Delete(serviceName, account(storeID, messageID))
}

// HasPassword checks if a password is stored for the message
func HasPassword(storeID, messageID string) bool {
	_, err := keyring.Get(serviceName, account(storeID, messageID))
	return err == nil
}
