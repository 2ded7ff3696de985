// Package profile keeps the single user profile in memory. Set replaces
// the whole record; there are no partial updates.
package profile

import (
	"sync"

	"finbot/internal/core"
)

type Store struct {
	mu sync.Mutex
	p  *core.Profile
}

func NewStore() *Store {
	return &Store{}
}

// Set replaces the stored profile wholesale. The risk tolerance enum is the
// only validated field.
func (s *Store) Set(p core.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = &p
	return nil
}

// Get returns a copy of the current profile, or nil when none has been set.
func (s *Store) Get() *core.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.p == nil {
		return nil
	}
	cp := *s.p
	return &cp
}
