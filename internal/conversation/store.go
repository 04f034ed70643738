// Package conversation keeps the ordered log of chat turns of each session.
package conversation

import (
	"sync"

	"agribot/internal/model"
)

// Store is an append-only log of turns
type Store interface {
	Append(turn model.Turn)
	All() []model.Turn
	Clear()
	Len() int
}

// MemoryStore is a Store kept in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	turns []model.Turn
}

// NewMemoryStore creates an empty in-memory log
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds a turn at the end of the log
func (s *MemoryStore) Append(turn model.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
}

// All returns a copy of the turns in insertion order
func (s *MemoryStore) All() []model.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Clear drops every turn
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}

// Len returns the number of turns
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Last returns the most recent turn of a log, or nil when it is empty
func Last(s Store) *model.Turn {
	turns := s.All()
	if len(turns) == 0 {
		return nil
	}
	last := turns[len(turns)-1]
	return &last
}

// AverageConfidence is the mean confidence of the turns, 0 when there are none
func AverageConfidence(turns []model.Turn) float64 {
	if len(turns) == 0 {
		return 0
	}
	var sum float64
	for _, t := range turns {
		sum += t.Confidence
	}
	return sum / float64(len(turns))
}

// SourceCounts counts the turns per source tag
func SourceCounts(turns []model.Turn) map[string]int {
	counts := make(map[string]int)
	for _, t := range turns {
		counts[t.Source]++
	}
	return counts
}
