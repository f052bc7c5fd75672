// Package testutil holds deterministic helpers and record fixtures shared by
// the harness and package tests.
package testutil

import "sync"

// Sequence is a monotonic counter for numbering trace events.
//
// The first call to Next returns 1. Reset rewinds it so the same scenario
// can run again with identical numbering. Safe for concurrent use.
type Sequence struct {
	mu sync.Mutex
	n  int64
}

// NewSequence creates a sequence starting at 0.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next increments and returns the next value.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n
}

// Current returns the last value handed out.
func (s *Sequence) Current() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// Reset rewinds the sequence to 0.
func (s *Sequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n = 0
}
