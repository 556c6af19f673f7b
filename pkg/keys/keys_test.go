package keys

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestFileStore(t *testing.T) *EncryptedFileStore {
	t.Helper()
	t.Setenv("STEAMDEX_PASSPHRASE", "test-passphrase")

	store, err := NewEncryptedFileStore(filepath.Join(t.TempDir(), "apikey.enc"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestEncryptedStoreRoundtrip(t *testing.T) {
	store := newTestFileStore(t)

	if store.Exists() {
		t.Error("Fresh store should be empty")
	}
	if _, err := store.Get(); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}

	if err := store.Set("ABCDEF0123456789"); err != nil {
		t.Fatalf("Failed to store key: %v", err)
	}
	if !store.Exists() {
		t.Error("Store should report the key as present")
	}

	key, err := store.Get()
	if err != nil {
		t.Fatalf("Failed to read key: %v", err)
	}
	if key != "ABCDEF0123456789" {
		t.Errorf("Expected stored key back, got %q", key)
	}
}

func TestEncryptedStoreRejectsEmptyKey(t *testing.T) {
	store := newTestFileStore(t)
	if err := store.Set(""); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Expected ErrInvalidKey, got %v", err)
	}
}

func TestEncryptedStoreDelete(t *testing.T) {
	store := newTestFileStore(t)

	if err := store.Delete(); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound deleting empty store, got %v", err)
	}

	if err := store.Set("somekey123"); err != nil {
		t.Fatalf("Failed to store key: %v", err)
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("Failed to delete key: %v", err)
	}
	if store.Exists() {
		t.Error("Key should be gone after delete")
	}
}

func TestEncryptedStoreWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apikey.enc")

	t.Setenv("STEAMDEX_PASSPHRASE", "first")
	store, err := NewEncryptedFileStore(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Set("secretkey"); err != nil {
		t.Fatalf("Failed to store key: %v", err)
	}

	t.Setenv("STEAMDEX_PASSPHRASE", "second")
	other, err := NewEncryptedFileStore(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if _, err := other.Get(); err == nil {
		t.Error("Expected decryption failure with a different passphrase")
	}
}

func TestEnvStore(t *testing.T) {
	t.Setenv("STEAM_API_KEY", "env-key-1234")

	store := NewEnvStore()
	key, err := store.Get()
	if err != nil {
		t.Fatalf("Failed to read key: %v", err)
	}
	if key != "env-key-1234" {
		t.Errorf("Expected env key, got %q", key)
	}

	if err := store.Set("other"); !errors.Is(err, ErrReadOnlyStore) {
		t.Errorf("Expected ErrReadOnlyStore, got %v", err)
	}
	if err := store.Delete(); !errors.Is(err, ErrReadOnlyStore) {
		t.Errorf("Expected ErrReadOnlyStore, got %v", err)
	}
}

func TestManagerFallsThroughToWritableStore(t *testing.T) {
	t.Setenv("STEAM_API_KEY", "")

	fileStore := newTestFileStore(t)
	manager := NewManagerWithStores(NewEnvStore(), fileStore)

	// The env store is read-only, so the write lands in the file store.
	if err := manager.Set("managed-key"); err != nil {
		t.Fatalf("Failed to store key: %v", err)
	}
	key, err := fileStore.Get()
	if err != nil || key != "managed-key" {
		t.Fatalf("Expected key in file store, got %q, %v", key, err)
	}

	got, err := manager.Get()
	if err != nil || got != "managed-key" {
		t.Fatalf("Expected key from manager, got %q, %v", got, err)
	}

	source, err := manager.Source()
	if err != nil || source != "encrypted file" {
		t.Fatalf("Expected encrypted file source, got %q, %v", source, err)
	}
}

func TestManagerPrefersEarlierStore(t *testing.T) {
	t.Setenv("STEAM_API_KEY", "from-env")

	fileStore := newTestFileStore(t)
	if err := fileStore.Set("from-file"); err != nil {
		t.Fatalf("Failed to store key: %v", err)
	}

	manager := NewManagerWithStores(NewEnvStore(), fileStore)
	key, err := manager.Get()
	if err != nil {
		t.Fatalf("Failed to read key: %v", err)
	}
	if key != "from-env" {
		t.Errorf("Expected the first store to win, got %q", key)
	}
}

func TestMask(t *testing.T) {
	if got := Mask("ABCDEF0123456789"); got != "ABCD...6789" {
		t.Errorf("Unexpected mask: %q", got)
	}
	if got := Mask("short"); got != "********" {
		t.Errorf("Short keys must be fully masked, got %q", got)
	}
}
