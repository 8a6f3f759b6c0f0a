package cache

import (
	"sync"
	"time"
)

// Stats tracks cache effectiveness for the current process.
type Stats struct {
	mu         sync.Mutex
	hits       int64
	misses     int64
	operations map[string]opStats
}

type opStats struct {
	count int64
	total time.Duration
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Hits       int64
	Misses     int64
	HitRate    float64
	Operations map[string]OperationStats
}

// OperationStats summarizes one operation kind.
type OperationStats struct {
	Count   int64
	Average time.Duration
}

func newStats() *Stats {
	return &Stats{operations: make(map[string]opStats)}
}

func (s *Stats) recordHit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits++
}

func (s *Stats) recordMiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.misses++
}

func (s *Stats) recordOperation(name string, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	op := s.operations[name]
	op.count++
	op.total += elapsed
	s.operations[name] = op
}

// Snapshot copies the counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatsSnapshot{
		Hits:       s.hits,
		Misses:     s.misses,
		Operations: make(map[string]OperationStats, len(s.operations)),
	}
	if total := s.hits + s.misses; total > 0 {
		snap.HitRate = float64(s.hits) / float64(total)
	}
	for name, op := range s.operations {
		stat := OperationStats{Count: op.count}
		if op.count > 0 {
			stat.Average = op.total / time.Duration(op.count)
		}
		snap.Operations[name] = stat
	}

	return snap
}
