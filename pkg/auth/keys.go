package auth

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

const (
	keyringService = "veritas"
	keyFileMode    = 0600

	// Known key names.
	KeyExplorer = "explorer_api_key"
	KeyInsight  = "insight_api_key"
	KeyScan     = "scan_api_key"
)

var ErrKeyNotFound = errors.New("key not found")

// Store saves named API keys on the OS keychain with a plain-file fallback
// for headless environments.
type Store struct {
	dir string
}

// NewStore returns a key store rooted at the app home directory, used only
// when the keychain is unavailable.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the key to the keychain, falling back to a file in the app
// home directory when the keychain is unavailable.
func (s *Store) Save(name, value string) error {
	if name == "" || value == "" {
		return errors.New("key name and value are required")
	}

	if err := keyring.Set(keyringService, name, value); err != nil {
		slog.Warn("keychain unavailable, falling back to file", "key", name, "error", err)
		return s.saveFile(name, value)
	}

	// Clean up a stale file copy if one exists.
	os.Remove(s.filePath(name))
	return nil
}

// Get resolves the named key: environment variable first (VERITAS_<NAME>),
// then keychain, then file fallback. A file hit is migrated back to the
// keychain when possible.
func (s *Store) Get(name string) (string, error) {
	if name == "" {
		return "", errors.New("key name is required")
	}

	if v := os.Getenv(envVar(name)); v != "" {
		return v, nil
	}

	if v, err := keyring.Get(keyringService, name); err == nil && v != "" {
		return v, nil
	}

	v, err := s.getFile(name)
	if err != nil {
		return "", errors.Wrapf(ErrKeyNotFound, "%s", name)
	}

	if migrateErr := keyring.Set(keyringService, name, v); migrateErr == nil {
		slog.Debug("migrated key from file to OS keychain", "key", name)
		os.Remove(s.filePath(name))
	}

	return v, nil
}

func (s *Store) saveFile(name, value string) error {
	if s.dir == "" {
		return errors.New("key store directory not set")
	}
	if err := os.WriteFile(s.filePath(name), []byte(value), keyFileMode); err != nil {
		return errors.Wrapf(err, "failed to write key file for %s", name)
	}
	return nil
}

func (s *Store) getFile(name string) (string, error) {
	b, err := os.ReadFile(s.filePath(name))
	if err != nil {
		return "", err
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", errors.New("empty key file")
	}
	return v, nil
}

func (s *Store) filePath(name string) string {
	return filepath.Join(s.dir, name)
}

func envVar(name string) string {
	return "VERITAS_" + strings.ToUpper(name)
}
