// Package session tracks the city each chat has selected.
package session

import "sync"

// Store maps a chat id to its selected city name. Absence means no selection.
type Store interface {
	Get(chatID int64) (string, bool)
	Set(chatID int64, city string)
}

type memoryStore struct {
	mu    sync.RWMutex
	chats map[int64]string
}

// NewMemoryStore returns a process-local Store. Concurrent writers for the same
// chat are not ordered: the last Set wins.
func NewMemoryStore() Store {
	return &memoryStore{chats: make(map[int64]string)}
}

// Get returns the selected city for chatID.
func (m *memoryStore) Get(chatID int64) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	city, ok := m.chats[chatID]
	return city, ok
}

// Set replaces the selection for chatID.
func (m *memoryStore) Set(chatID int64, city string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats[chatID] = city
}
