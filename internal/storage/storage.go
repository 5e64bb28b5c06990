// Package storage persists small string values for the frontend, the way a
// browser keeps localStorage. The session keeps its token under AuthTokenKey.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskflow-dev/taskflow/internal/config"
)

// AuthTokenKey is the fixed key the auth token is stored under
const AuthTokenKey = "authToken"

const (
	BackendKeyring = "keyring"
	BackendSQLite  = "sqlite"
	BackendMemory  = "memory"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a string key/value store. GetItem reports ok=false for a missing
// key; RemoveItem on a missing key is not an error.
type Store interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Open returns the backend selected in cfg
func Open(cfg config.StorageConfig, log zerolog.Logger) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendKeyring, "":
		log.Debug().Str("service", KeyringService).Msg("Using keyring storage")
		return NewKeyringStore(KeyringService), nil
	case BackendSQLite:
		log.Debug().Str("path", cfg.Path).Msg("Using sqlite storage")
		return OpenSQLiteStore(cfg.Path, log)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}

// Close releases resources held by s, if any
func Close(s Store) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// MemoryStore keeps values for the life of the process
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (m *MemoryStore) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[key]
	return value, ok, nil
}

func (m *MemoryStore) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryStore) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
