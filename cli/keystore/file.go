package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/argon2"
)

// File format constants
const (
	// magicHeader identifies keystore files
	magicHeader = "WOPR"
	// formatVersion is the current file format version
	formatVersion = byte(0x01)
	// saltLength is the length of the Argon2id salt
	saltLength = 16
	// nonceLength is the AES-GCM nonce length
	nonceLength = 12
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
)

// ErrCorrupt is returned when the keystore file is not in the expected format.
var ErrCorrupt = errors.New("keystore: unrecognized file format")

// FileKeystore implements Keystore using encrypted file storage.
// Keys are stored in a JSON map encrypted with AES-256-GCM under a key
// derived from the master key with Argon2id.
type FileKeystore struct {
	path      string
	masterKey []byte
	mu        sync.RWMutex
}

// NewFileKeystore creates a file-based keystore at path.
func NewFileKeystore(path string, source MasterKeySource) (*FileKeystore, error) {
	masterKey, err := source.GetMasterKey()
	if err != nil {
		return nil, err
	}
	if len(masterKey) == 0 {
		return nil, ErrEmptyMasterKey
	}

	return &FileKeystore{
		path:      path,
		masterKey: masterKey,
	}, nil
}

// Path returns the keystore file path.
func (f *FileKeystore) Path() string {
	return f.path
}

// Set stores a key-value pair.
func (f *FileKeystore) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.loadData()
	if err != nil {
		return err
	}

	data[name] = value
	return f.saveData(data)
}

// Get retrieves a value by name.
func (f *FileKeystore) Get(name string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.loadData()
	if err != nil {
		return "", err
	}

	value, ok := data[name]
	if !ok {
		return "", &ErrKeyNotFound{Name: name}
	}

	return value, nil
}

// Delete removes a key by name.
func (f *FileKeystore) Delete(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.loadData()
	if err != nil {
		return err
	}

	if _, ok := data[name]; !ok {
		return &ErrKeyNotFound{Name: name}
	}

	delete(data, name)
	return f.saveData(data)
}

// List returns all stored key names.
func (f *FileKeystore) List() ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.loadData()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// loadData reads and decrypts the keystore file.
func (f *FileKeystore) loadData() (map[string]string, error) {
	data := make(map[string]string)

	ciphertext, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}

	if len(ciphertext) == 0 {
		return data, nil
	}

	plaintext, err := f.decrypt(ciphertext)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, err
	}

	return data, nil
}

// saveData encrypts and writes the keystore file.
func (f *FileKeystore) saveData(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}

	plaintext, err := json.Marshal(data)
	if err != nil {
		return err
	}

	ciphertext, err := f.encrypt(plaintext)
	if err != nil {
		return err
	}

	// Write with restrictive permissions (user only)
	return os.WriteFile(f.path, ciphertext, 0600)
}

func deriveKey(masterKey, salt []byte) []byte {
	return argon2.IDKey(masterKey, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// encrypt seals plaintext with a fresh salt and nonce.
// Format: [magic (4)] [version (1)] [salt (16)] [nonce (12)] [ciphertext]
func (f *FileKeystore) encrypt(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	gcm, err := newGCM(deriveKey(f.masterKey, salt))
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	header := make([]byte, 0, len(magicHeader)+1+saltLength+nonceLength)
	header = append(header, magicHeader...)
	header = append(header, formatVersion)
	header = append(header, salt...)
	header = append(header, nonce...)

	// The header is authenticated as additional data.
	ciphertext := gcm.Seal(nil, nonce, plaintext, header)
	return append(header, ciphertext...), nil
}

func (f *FileKeystore) decrypt(ciphertext []byte) ([]byte, error) {
	headerLen := len(magicHeader) + 1 + saltLength + nonceLength
	if len(ciphertext) < headerLen ||
		string(ciphertext[:len(magicHeader)]) != magicHeader ||
		ciphertext[len(magicHeader)] != formatVersion {
		return nil, ErrCorrupt
	}

	offset := len(magicHeader) + 1
	salt := ciphertext[offset : offset+saltLength]
	offset += saltLength
	nonce := ciphertext[offset : offset+nonceLength]
	offset += nonceLength
	header := ciphertext[:offset]

	gcm, err := newGCM(deriveKey(f.masterKey, salt))
	if err != nil {
		return nil, err
	}

	return gcm.Open(nil, nonce, ciphertext[offset:], header)
}

// Ensure FileKeystore implements Keystore
var _ Keystore = (*FileKeystore)(nil)
