package contextstore

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory PersistenceAdapter. It is safe for
// concurrent use and keeps each user's log ordered by timestamp.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]Record)}
}

// Append stores a copy of the record in the user's log.
func (m *MemoryStore) Append(_ context.Context, record Record) error {
	if record.UserID == "" {
		return ErrEmptyUserID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	log := append(m.records[record.UserID], cloneRecord(record))
	// Appends are usually already in timestamp order; the stable sort
	// keeps insertion order for equal timestamps.
	sort.SliceStable(log, func(i, j int) bool {
		return log[i].Timestamp.Before(log[j].Timestamp)
	})
	m.records[record.UserID] = log
	return nil
}

// QueryByUser returns matching records, timestamp ascending. A positive
// limit keeps only the most recent limit records.
func (m *MemoryStore) QueryByUser(_ context.Context, userID string, f Filter, limit int) ([]Record, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Record
	for _, r := range m.records[userID] {
		if f.matches(r) {
			out = append(out, cloneRecord(r))
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// cloneRecord copies the record deeply enough that callers cannot mutate
// stored state through shared slices or maps.
func cloneRecord(r Record) Record {
	out := r
	if r.Embedding != nil {
		out.Embedding = append([]float32(nil), r.Embedding...)
	}
	if r.Keywords != nil {
		out.Keywords = append([]string(nil), r.Keywords...)
	}
	if r.Metadata != nil {
		out.Metadata = make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			out.Metadata[k] = v
		}
	}
	out.Analysis = r.Analysis
	out.Analysis.EmotionalTone = cloneStrings(r.Analysis.EmotionalTone)
	out.Analysis.Technologies = cloneStrings(r.Analysis.Technologies)
	out.Analysis.Intentions = cloneStrings(r.Analysis.Intentions)
	out.Analysis.TimeConstraints = cloneStrings(r.Analysis.TimeConstraints)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
