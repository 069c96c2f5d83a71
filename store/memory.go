package store

import (
	"context"
	"sync"

	"github.com/Pratheesh-555/My-Portfolio/portfolio"
)

// MemoryStore keeps the document in memory. Data is lost on restart.
// Safe for concurrent use.
type MemoryStore struct {
	mu  sync.RWMutex
	doc *portfolio.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Read(_ context.Context) (*portfolio.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc == nil {
		return nil, ErrNotFound
	}
	return m.doc.Clone(), nil
}

func (m *MemoryStore) Write(_ context.Context, doc *portfolio.Document) error {
	if err := portfolio.Validate(doc); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = doc.Clone()
	return nil
}
