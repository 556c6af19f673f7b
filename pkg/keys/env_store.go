package keys

import "os"

// envVars are checked in order.
var envVars = []string{"STEAM_API_KEY", "STEAMDEX_STEAM_API_KEY"}

// EnvStore reads the API key from the environment. It is read-only; Set
// and Delete always fail so the manager falls through to a writable store.
type EnvStore struct{}

func NewEnvStore() *EnvStore { return &EnvStore{} }

func (s *EnvStore) Name() string { return "environment" }

func (s *EnvStore) Set(string) error { return ErrReadOnlyStore }

func (s *EnvStore) Get() (string, error) {
	for _, name := range envVars {
		if key := os.Getenv(name); key != "" {
			return key, nil
		}
	}
	return "", ErrKeyNotFound
}

func (s *EnvStore) Delete() error { return ErrReadOnlyStore }

func (s *EnvStore) Exists() bool {
	key, err := s.Get()
	return err == nil && key != ""
}
