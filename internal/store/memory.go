package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/desertthunder/lix/internal/shared"
)

// MemoryStore is a process-lifetime [SessionStore] backed by a mutex-guarded map.
//
// It is the default backend: records vanish when the process exits, which
// matches the web flow's re-authentication-on-restart behavior.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]TokenRecord
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]TokenRecord)}
}

// Put inserts or overwrites the record keyed by its member ID.
func (s *MemoryStore) Put(record TokenRecord) error {
	if record.MemberID == "" {
		return fmt.Errorf("%w: record has no member ID", shared.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.MemberID] = record
	return nil
}

// Get retrieves a member's record.
func (s *MemoryStore) Get(memberID string) (TokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[memberID]
	if !ok {
		return TokenRecord{}, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, memberID)
	}
	return record, nil
}

// Delete removes a member's record.
func (s *MemoryStore) Delete(memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, memberID)
	return nil
}

// Count reports how many members currently hold records.
func (s *MemoryStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// List returns every stored record, ordered by member ID.
func (s *MemoryStore) List() ([]TokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]TokenRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].MemberID < records[j].MemberID
	})
	return records, nil
}
