package storage

import "sync"

// Logical record keys. Values are JSON documents; the key set matches
// the legacy client's local-storage layout so exported records can be
// imported as-is.
const (
	KeyUserStats        = "user_stats"
	KeyFavorites        = "favorites"
	KeyQuizData         = "quiz_data"
	KeyCurrentQuestion  = "current_question"
	KeyTheme            = "theme"
	KeyDataCache        = "history_data_cache"
	KeyDataCacheTime    = "history_data_cache_time"
	KeyDataCacheVersion = "history_data_cache_version"
	KeyBoundaryCache    = "map_boundary_cache"
	KeyBoundaryTime     = "map_boundary_cache_time"
)

// KV is the write-through key-value store all persisted records go
// through. Implementations must treat each Set as a full overwrite of
// the prior value.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Memory is an in-process KV used in tests and as the fallback when
// no database is reachable; progress then lives only for the life of
// the process.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
