package storage

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/manav03panchal/tasksync/internal/logging"
)

// BlobStore is a string-keyed store of string blobs.
//
// Absent keys are reported with ok == false and a nil error. Errors are
// reserved for store-level failures.
type BlobStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

var (
	_ BlobStore = (*DB)(nil)
	_ BlobStore = (*MemoryStore)(nil)
	_ BlobStore = Unavailable{}
)

// MemoryStore is a volatile BlobStore.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get implements BlobStore.
func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements BlobStore.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Remove implements BlobStore.
func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys lists stored keys in sorted order.
func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Unavailable is a BlobStore with no backing: every key reads as absent and
// writes are dropped.
type Unavailable struct{}

// Get implements BlobStore.
func (Unavailable) Get(string) (string, bool, error) { return "", false, nil }

// Set implements BlobStore.
func (Unavailable) Set(string, string) error { return nil }

// Remove implements BlobStore.
func (Unavailable) Remove(string) error { return nil }

// readJSON decodes the blob under key into v. It reports false when the key
// is absent or the blob does not parse; v is left in an unspecified state
// in the latter case and callers fall back to their empty value.
func readJSON(store BlobStore, key string, v any) (bool, error) {
	raw, ok, err := store.Get(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logging.DebugLog("discarding unreadable blob", logging.KeyBlob, key, logging.KeyError, err)
		return false, nil
	}
	return true, nil
}

// writeJSON replaces the blob under key with v's JSON encoding.
func writeJSON(store BlobStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Set(key, string(data))
}
