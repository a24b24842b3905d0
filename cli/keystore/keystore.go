// Package keystore provides encrypted storage for gateway API keys.
package keystore

import (
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"

	"github.com/wopr-network/wopr-go/cli/config"
)

// PassphraseEnvVar names the environment variable holding the keystore
// passphrase. When unset, a machine-derived key is used.
const PassphraseEnvVar = "WOPR_KEYSTORE_PASSPHRASE"

// Keystore defines the interface for secure key storage.
type Keystore interface {
	// Set stores a key-value pair.
	Set(name, value string) error
	// Get retrieves a value by name. Returns error if not found.
	Get(name string) (string, error)
	// Delete removes a key by name.
	Delete(name string) error
	// List returns all stored key names.
	List() ([]string, error)
}

// ErrKeyNotFound is returned when a requested key does not exist.
type ErrKeyNotFound struct {
	Name string
}

func (e *ErrKeyNotFound) Error() string {
	return "key not found: " + e.Name
}

// ErrEmptyMasterKey is returned by a MasterKeySource with nothing to offer.
var ErrEmptyMasterKey = errors.New("keystore: empty master key")

// MasterKeySource supplies the secret the file encryption key is derived from.
type MasterKeySource interface {
	GetMasterKey() ([]byte, error)
}

// PassphraseSource uses a fixed passphrase.
type PassphraseSource string

// GetMasterKey returns the passphrase bytes.
func (p PassphraseSource) GetMasterKey() ([]byte, error) {
	if p == "" {
		return nil, ErrEmptyMasterKey
	}
	return []byte(p), nil
}

// MachineSource derives a master key from the hostname and user name.
// It keeps keys out of plain text but does not protect against another
// process running as the same user.
type MachineSource struct{}

// GetMasterKey returns a digest of machine-specific data.
func (MachineSource) GetMasterKey() ([]byte, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}

	hash := sha256.Sum256([]byte(hostname + ":" + username + ":wopr-keystore"))
	return hash[:], nil
}

// DefaultKeystorePath returns the default keystore file path.
// - macOS/Linux: ~/.wopr/keys.enc
// - Windows: %USERPROFILE%\.wopr\keys.enc
func DefaultKeystorePath() string {
	dir := config.Dir()
	if dir == "" {
		return "keys.enc"
	}
	return filepath.Join(dir, "keys.enc")
}

// NewKeystore opens the keystore at the default path, keyed by
// WOPR_KEYSTORE_PASSPHRASE when set and by the machine otherwise.
func NewKeystore() (Keystore, error) {
	var source MasterKeySource = MachineSource{}
	if p := os.Getenv(PassphraseEnvVar); p != "" {
		source = PassphraseSource(p)
	}
	return NewFileKeystore(DefaultKeystorePath(), source)
}
