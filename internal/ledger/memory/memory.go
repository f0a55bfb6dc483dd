// Package memory provides an in-process ledger backend, used by tests and
// the default CLI configuration.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"liquidityEngine/internal/ledger"
)

// Store keeps the world state in a mutex-guarded map.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

func (s *Store) QueryByPrefix(_ context.Context, prefix string) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0)
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	entries := make([]ledger.Entry, 0, len(keys))
	for _, key := range keys {
		value := s.data[key]
		out := make([]byte, len(value))
		copy(out, value)
		entries = append(entries, ledger.Entry{Key: key, Value: out})
	}
	return entries, nil
}
