// Package keys stores the Steam Web API key across several backends: the
// system keychain, an encrypted file, and the environment, in that order
// of preference.
package keys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

var (
	ErrKeyNotFound      = errors.New("API key not found")
	ErrInvalidKey       = errors.New("invalid API key")
	ErrStoreUnavailable = errors.New("key store unavailable")
	ErrReadOnlyStore    = errors.New("store is read-only")
)

// Store is one API-key storage backend.
type Store interface {
	Set(key string) error
	Get() (string, error)
	Delete() error
	Exists() bool
	Name() string
}

// Manager tries each backend in order: writes go to the first store that
// accepts them, reads return the first hit.
type Manager struct {
	stores []Store
}

// NewManager builds the standard fallback chain: keychain, encrypted file,
// environment.
func NewManager() (*Manager, error) {
	var stores []Store

	if keyringStore, err := NewKeyringStore(); err == nil {
		stores = append(stores, keyringStore)
	}

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "apikey.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)
	stores = append(stores, NewEnvStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores builds a manager over an explicit backend chain.
func NewManagerWithStores(stores ...Store) *Manager {
	return &Manager{stores: stores}
}

// Set saves the key to the first writable store.
func (m *Manager) Set(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	var lastErr error
	for _, store := range m.stores {
		if err := store.Set(key); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	if lastErr != nil {
		return fmt.Errorf("failed to store API key: %w", lastErr)
	}
	return ErrStoreUnavailable
}

// Get returns the key from the first store that has one.
func (m *Manager) Get() (string, error) {
	for _, store := range m.stores {
		if key, err := store.Get(); err == nil && key != "" {
			return key, nil
		}
	}
	return "", ErrKeyNotFound
}

// Source names the store the key would be read from.
func (m *Manager) Source() (string, error) {
	for _, store := range m.stores {
		if key, err := store.Get(); err == nil && key != "" {
			return store.Name(), nil
		}
	}
	return "", ErrKeyNotFound
}

// Delete removes the key from every store that holds it.
func (m *Manager) Delete() error {
	var deleted bool
	var lastErr error
	for _, store := range m.stores {
		switch err := store.Delete(); {
		case err == nil:
			deleted = true
		case errors.Is(err, ErrKeyNotFound), errors.Is(err, ErrReadOnlyStore):
		default:
			lastErr = err
		}
	}
	if deleted {
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("failed to delete API key: %w", lastErr)
	}
	return ErrKeyNotFound
}

// Mask hides all but the first and last 4 characters of a key for display.
func Mask(key string) string {
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "steamdex")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "steamdex")
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			configDir = filepath.Join(xdgConfig, "steamdex")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config", "steamdex")
		}
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}
