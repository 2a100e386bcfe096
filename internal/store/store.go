// Package store holds the current entity-store snapshot. There is exactly
// one logical writer (the active user action); every mutation produces the
// next snapshot and swaps it in wholesale, so readers never observe a
// half-applied change.
package store

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"proptrack/internal/models"
)

// ErrUnknownCollection is returned for a collection-replace against a name
// outside the seven persisted collections.
var ErrUnknownCollection = errors.New("unknown collection")

// Store is the snapshot container.
type Store struct {
	mu        sync.RWMutex
	state     models.Snapshot
	onReplace func(models.Snapshot)
	logger    *zap.Logger
}

// New creates a store holding the empty snapshot.
func New(logger *zap.Logger) *Store {
	return &Store{state: models.Empty(), logger: logger}
}

// OnReplace registers a hook invoked with a copy of the new snapshot after
// every successful replace. Persistence subscribes here; the store itself
// never serializes anything.
func (s *Store) OnReplace(fn func(models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReplace = fn
}

// Snapshot returns a deep copy of the current state. Callers may mutate it
// freely; only Update and ReplaceCollection change the stored state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Load replaces the whole state, e.g. after reading the persisted blob.
func (s *Store) Load(snapshot models.Snapshot) {
	snapshot.Normalize()
	s.mu.Lock()
	s.state = snapshot
	s.mu.Unlock()
}

// Update applies mutate to a copy of the current snapshot and swaps the
// result in as one unit. When mutate returns an error nothing changes and
// the error is passed through, which is what makes multi-collection
// transitions (lead conversion, house deletion) atomic.
func (s *Store) Update(mutate func(models.Snapshot) (models.Snapshot, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := mutate(s.state.Clone())
	if err != nil {
		return err
	}
	next.Normalize()
	s.state = next

	if s.onReplace != nil {
		s.onReplace(s.state.Clone())
	}
	return nil
}

// ReplaceCollection fully replaces one named collection, the write half of
// the boundary contract: callers read the snapshot, modify a whole
// collection and write it back. The value's type must match the named
// collection.
func (s *Store) ReplaceCollection(name models.Collection, value any) error {
	return s.Update(func(state models.Snapshot) (models.Snapshot, error) {
		switch name {
		case models.CollectionHouses:
			v, ok := value.([]models.House)
			if !ok {
				return state, typeMismatch(name, value)
			}
			state.Houses = v
		case models.CollectionRooms:
			v, ok := value.([]models.Room)
			if !ok {
				return state, typeMismatch(name, value)
			}
			state.Rooms = v
		case models.CollectionTenants:
			v, ok := value.([]models.Tenant)
			if !ok {
				return state, typeMismatch(name, value)
			}
			state.Tenants = v
		case models.CollectionPayments:
			v, ok := value.([]models.Payment)
			if !ok {
				return state, typeMismatch(name, value)
			}
			state.Payments = v
		case models.CollectionShowings:
			v, ok := value.([]models.Showing)
			if !ok {
				return state, typeMismatch(name, value)
			}
			state.Showings = v
		case models.CollectionLentItems:
			v, ok := value.([]models.LentItem)
			if !ok {
				return state, typeMismatch(name, value)
			}
			state.LentItems = v
		case models.CollectionLeads:
			v, ok := value.([]models.Lead)
			if !ok {
				return state, typeMismatch(name, value)
			}
			state.Leads = v
		default:
			return state, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
		}
		return state, nil
	})
}

func typeMismatch(name models.Collection, value any) error {
	return fmt.Errorf("collection %q cannot hold %T", name, value)
}
