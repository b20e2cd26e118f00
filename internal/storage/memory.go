package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"punnettlab/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	crosses     map[string]model.CrossRecord
	seq         map[string]int
	next        int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.crosses = make(map[string]model.CrossRecord)
	s.seq = make(map[string]int)
	s.next = 0
	return nil
}

func (s *MemoryStore) SaveCross(_ context.Context, record model.CrossRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	if record.ID == "" {
		return errors.New("cross id is required")
	}
	if _, exists := s.seq[record.ID]; !exists {
		s.next++
		s.seq[record.ID] = s.next
	}
	s.crosses[record.ID] = cloneCross(record)
	return nil
}

func (s *MemoryStore) GetCross(_ context.Context, id string) (model.CrossRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.crosses[id]
	if !ok {
		return model.CrossRecord{}, false, nil
	}
	return cloneCross(record), true, nil
}

func (s *MemoryStore) ListCrosses(_ context.Context, limit int) ([]model.CrossRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.CrossRecord, 0, len(s.crosses))
	for _, record := range s.crosses {
		out = append(out, cloneCross(record))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAtUTC == out[j].CreatedAtUTC {
			// Prefer later saves for equal timestamps.
			return s.seq[out[i].ID] > s.seq[out[j].ID]
		}
		return out[i].CreatedAtUTC > out[j].CreatedAtUTC
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) DeleteCross(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.crosses, id)
	delete(s.seq, id)
	return nil
}

func cloneCross(record model.CrossRecord) model.CrossRecord {
	record.Stats.Genotypes = append(record.Stats.Genotypes[:0:0], record.Stats.Genotypes...)
	record.Stats.Phenotypes = append(record.Stats.Phenotypes[:0:0], record.Stats.Phenotypes...)
	return record
}
