// Package memory provides the in-process session scope backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dronesimulator/admin/internal/platform/timeouts"
	"github.com/dronesimulator/admin/internal/services/admin/storage"
)

type ownerValues struct {
	values    map[string]string
	touchedAt time.Time
}

// Store keeps values per owner until the owner goes unread and unwritten
// for longer than the TTL.
type Store struct {
	mu     sync.Mutex
	owners map[string]*ownerValues
	ttl    time.Duration
	now    func() time.Time
}

// New returns an empty store. A non-positive ttl uses timeouts.SessionIdle.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = timeouts.SessionIdle
	}
	return &Store{
		owners: make(map[string]*ownerValues),
		ttl:    ttl,
		now:    time.Now,
	}
}

// GetItem returns the value stored under key for owner and refreshes the
// owner's idle clock.
func (s *Store) GetItem(ctx context.Context, owner, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	owner, err := storage.ValidateOwner(owner)
	if err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.liveLocked(owner)
	if entry == nil {
		return "", false, nil
	}
	entry.touchedAt = s.now()
	value, ok := entry.values[key]
	return value, ok, nil
}

// SetItem stores value under key for owner and refreshes the owner's idle clock.
func (s *Store) SetItem(ctx context.Context, owner, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	owner, err := storage.ValidateOwner(owner)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	entry := s.liveLocked(owner)
	if entry == nil {
		entry = &ownerValues{values: make(map[string]string)}
		s.owners[owner] = entry
	}
	entry.values[key] = value
	entry.touchedAt = s.now()
	return nil
}

// RemoveItems deletes keys for owner. Missing keys are ignored.
func (s *Store) RemoveItems(ctx context.Context, owner string, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	owner, err := storage.ValidateOwner(owner)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.liveLocked(owner)
	if entry == nil {
		return nil
	}
	for _, key := range keys {
		delete(entry.values, key)
	}
	if len(entry.values) == 0 {
		delete(s.owners, owner)
	}
	return nil
}

// Close drops every owner.
func (s *Store) Close() error {
	s.mu.Lock()
	s.owners = make(map[string]*ownerValues)
	s.mu.Unlock()
	return nil
}

// Len reports how many owners currently hold values.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return len(s.owners)
}

// liveLocked returns the owner's entry, dropping it when idle past the TTL.
func (s *Store) liveLocked(owner string) *ownerValues {
	entry, ok := s.owners[owner]
	if !ok {
		return nil
	}
	if s.now().Sub(entry.touchedAt) > s.ttl {
		delete(s.owners, owner)
		return nil
	}
	return entry
}

func (s *Store) sweepLocked() {
	now := s.now()
	for owner, entry := range s.owners {
		if now.Sub(entry.touchedAt) > s.ttl {
			delete(s.owners, owner)
		}
	}
}

var _ storage.Store = (*Store)(nil)
