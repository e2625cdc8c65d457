package storage

import "sync"

// MemoryPrefs keeps preferences in memory. Useful for tests and for hosts
// that run without a database.
type MemoryPrefs struct {
	mu      sync.Mutex
	values  map[string]float64
	flushes int
}

// NewMemoryPrefs creates empty in-memory preferences.
func NewMemoryPrefs() *MemoryPrefs {
	return &MemoryPrefs{values: make(map[string]float64)}
}

func (m *MemoryPrefs) GetInt(key string, def int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return int(v)
	}
	return def
}

func (m *MemoryPrefs) GetFloat(key string, def float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

func (m *MemoryPrefs) SetInt(key string, value int) {
	m.SetFloat(key, float64(value))
}

func (m *MemoryPrefs) SetFloat(key string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryPrefs) RaiseInt(key string, value int) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok && int(v) >= value {
		return int(v), false
	}
	m.values[key] = float64(value)
	return value, true
}

// Flush counts the call; there is nothing to write.
func (m *MemoryPrefs) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushes++
	return nil
}

// Flushes returns how many times Flush was called.
func (m *MemoryPrefs) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

var _ Prefs = (*MemoryPrefs)(nil)
