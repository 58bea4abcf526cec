package store

import (
	"errors"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and embedded callers.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*FileRecord
}

// NewMemoryStore returns a ready-to-use store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*FileRecord)}
}

// Put inserts or overwrites the record for record.Path.
func (s *MemoryStore) Put(record *FileRecord) error {
	if record == nil || record.Path == "" {
		return errors.New("record with path required")
	}
	cp := *record
	if record.Metadata != nil {
		cp.Metadata = make(map[string]any, len(record.Metadata))
		for k, v := range record.Metadata {
			cp.Metadata[k] = v
		}
	}
	if record.Embedding != nil {
		cp.Embedding = append([]float32(nil), record.Embedding...)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Path] = &cp
	return nil
}

// Get returns the record for path, or ErrNotFound.
func (s *MemoryStore) Get(path string) (*FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[path]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// Exists reports whether a record is stored for path.
func (s *MemoryStore) Exists(path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[path]
	return ok, nil
}

// AllWithEmbedding returns every embedded record ordered by path.
func (s *MemoryStore) AllWithEmbedding() ([]PathEmbedding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []PathEmbedding
	for path, rec := range s.records {
		if rec.Embedding == nil {
			continue
		}
		out = append(out, PathEmbedding{
			Path:      path,
			Embedding: append([]float32(nil), rec.Embedding...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Counts returns total records and how many carry an embedding.
func (s *MemoryStore) Counts() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	embedded := 0
	for _, rec := range s.records {
		if rec.Embedding != nil {
			embedded++
		}
	}
	return len(s.records), embedded, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
