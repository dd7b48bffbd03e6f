package history

import (
	"context"
	"sync"
	"time"

	"github.com/0xcro3dile/wordlookup-go/internal/domain/entities"
)

// MemoryStore keeps the journal in memory. Used when no database path is
// configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records []entities.LookupRecord
	nextID  int64
}

// NewMemoryStore creates an empty in-memory journal.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record appends a journal entry.
func (s *MemoryStore) Record(ctx context.Context, rec entities.LookupRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rec.ID = s.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	s.records = append(s.records, rec)
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]entities.LookupRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.records) {
		limit = len(s.records)
	}
	out := make([]entities.LookupRecord, 0, max(limit, 0))
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}
