package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local runs without a
// database. Records round-trip through JSON so callers get the same value
// isolation the Postgres store gives them.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]json.RawMessage)}
}

func (s *MemoryStore) Create(ctx context.Context, collection, id string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		c = make(map[string]json.RawMessage)
		s.collections[collection] = c
	}
	if _, ok := c[id]; ok {
		return ErrAlreadyExists
	}
	c[id] = data

	return nil
}

func (s *MemoryStore) Read(ctx context.Context, collection, id string, out any) error {
	s.mu.RLock()
	data, ok := s.collections[collection][id]
	s.mu.RUnlock()

	if !ok {
		return ErrNoRecord
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode record %s/%s: %w", collection, id, err)
	}

	return nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return ErrNoRecord
	}
	s.collections[collection][id] = data

	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return ErrNoRecord
	}
	delete(s.collections[collection], id)

	return nil
}
