package storage

import "sync"

// MemoryStore is the in-process Store used by tests and local runs without a
// database. Update stages writes and applies them under a single lock, so a
// reader never observes a half-applied transaction.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.values[key]
	if !exists {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *MemoryStore) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Update(fn func(tx Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn := &memoryTxn{
		values:  s.values,
		pending: make(map[string]string),
		deleted: make(map[string]bool),
	}
	if err := fn(txn); err != nil {
		return err
	}
	for key, value := range txn.pending {
		s.values[key] = value
	}
	for key := range txn.deleted {
		delete(s.values, key)
	}
	return nil
}

type memoryTxn struct {
	values  map[string]string
	pending map[string]string
	deleted map[string]bool
}

func (t *memoryTxn) Get(key string) (string, error) {
	if t.deleted[key] {
		return "", ErrKeyNotFound
	}
	if value, exists := t.pending[key]; exists {
		return value, nil
	}
	value, exists := t.values[key]
	if !exists {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (t *memoryTxn) Put(key, value string) error {
	delete(t.deleted, key)
	t.pending[key] = value
	return nil
}

func (t *memoryTxn) Delete(key string) error {
	delete(t.pending, key)
	t.deleted[key] = true
	return nil
}
