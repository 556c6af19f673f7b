package keys

import (
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "steamdex"
	keyringUser    = "steam_api_key"
)

// KeyringStore keeps the API key in the system keychain.
type KeyringStore struct{}

// NewKeyringStore probes the keychain with a throwaway entry; headless
// systems usually have no keyring daemon.
func NewKeyringStore() (*KeyringStore, error) {
	const probe = "availability_probe"
	if err := keyring.Set(keyringService, probe, "ok"); err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, probe)
	return &KeyringStore{}, nil
}

func (k *KeyringStore) Name() string { return "keychain" }

func (k *KeyringStore) Set(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}
	return nil
}

func (k *KeyringStore) Get() (string, error) {
	key, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read from keyring: %w", err)
	}
	return key, nil
}

func (k *KeyringStore) Delete() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrKeyNotFound
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}

func (k *KeyringStore) Exists() bool {
	_, err := keyring.Get(keyringService, keyringUser)
	return err == nil
}
