package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func newTestKeystore(t *testing.T) *FileKeystore {
	t.Helper()
	ks, err := NewFileKeystore(filepath.Join(t.TempDir(), "keys.enc"), PassphraseSource("correct horse"))
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}
	return ks
}

func TestFileKeystoreSetAndGet(t *testing.T) {
	ks := newTestKeystore(t)

	if err := ks.Set("wopr", "wopr_sk_test_12345"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, err := ks.Get("wopr")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "wopr_sk_test_12345" {
		t.Errorf("Get() = %q, want wopr_sk_test_12345", value)
	}
}

func TestFileKeystoreGetNotFound(t *testing.T) {
	ks := newTestKeystore(t)

	_, err := ks.Get("nonexistent")
	var nf *ErrKeyNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("Get() error = %v, want *ErrKeyNotFound", err)
	}
	if nf.Name != "nonexistent" {
		t.Errorf("Name = %q, want nonexistent", nf.Name)
	}
}

func TestFileKeystoreDelete(t *testing.T) {
	ks := newTestKeystore(t)

	if err := ks.Set("staging", "wopr_sk_staging"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := ks.Delete("staging"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := ks.Get("staging")
	if _, ok := err.(*ErrKeyNotFound); !ok {
		t.Error("Get() should return ErrKeyNotFound after Delete()")
	}

	if _, ok := ks.Delete("staging").(*ErrKeyNotFound); !ok {
		t.Error("Delete() of missing key should return ErrKeyNotFound")
	}
}

func TestFileKeystoreList(t *testing.T) {
	ks := newTestKeystore(t)

	names, err := ks.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() on empty keystore = %v", names)
	}

	for _, name := range []string{"wopr", "prod", "staging"} {
		if err := ks.Set(name, "k-"+name); err != nil {
			t.Fatalf("Set(%q) error = %v", name, err)
		}
	}

	names, err = ks.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"prod", "staging", "wopr"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestFileKeystoreEncryptsAtRest(t *testing.T) {
	ks := newTestKeystore(t)

	if err := ks.Set("wopr", "wopr_sk_secret_value"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	raw, err := os.ReadFile(ks.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.Contains(string(raw), "wopr_sk_secret_value") {
		t.Error("keystore file contains the plaintext key")
	}
	if !strings.HasPrefix(string(raw), magicHeader) {
		t.Errorf("keystore file should start with %q", magicHeader)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(ks.Path())
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("file mode = %o, want 600", perm)
		}
	}
}

func TestFileKeystoreWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")

	ks, _ := NewFileKeystore(path, PassphraseSource("right"))
	if err := ks.Set("wopr", "wopr_sk_1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	other, _ := NewFileKeystore(path, PassphraseSource("wrong"))
	if _, err := other.Get("wopr"); err == nil {
		t.Error("Get() with wrong passphrase should fail")
	}
}

func TestFileKeystoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")
	if err := os.WriteFile(path, []byte("not a keystore"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ks, _ := NewFileKeystore(path, PassphraseSource("p"))
	if _, err := ks.List(); !errors.Is(err, ErrCorrupt) {
		t.Errorf("List() error = %v, want ErrCorrupt", err)
	}
}

func TestNewFileKeystoreEmptyPassphrase(t *testing.T) {
	_, err := NewFileKeystore("keys.enc", PassphraseSource(""))
	if !errors.Is(err, ErrEmptyMasterKey) {
		t.Errorf("NewFileKeystore() error = %v, want ErrEmptyMasterKey", err)
	}
}

func TestMachineSourceStable(t *testing.T) {
	a, err := MachineSource{}.GetMasterKey()
	if err != nil {
		t.Fatalf("GetMasterKey() error = %v", err)
	}
	b, _ := MachineSource{}.GetMasterKey()
	if string(a) != string(b) || len(a) != 32 {
		t.Error("MachineSource should return a stable 32-byte key")
	}
}

func TestDefaultKeystorePath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("USERPROFILE", "/home/tester")

	path := DefaultKeystorePath()
	if filepath.Base(path) != "keys.enc" || filepath.Base(filepath.Dir(path)) != ".wopr" {
		t.Errorf("DefaultKeystorePath() = %q, want ~/.wopr/keys.enc", path)
	}
}
