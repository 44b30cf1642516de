// Package memory provides an in-memory store.Store. Records are copied on
// the way in and out, so callers never share state with the store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xraph/launchpad"
	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/inventory"
	"github.com/xraph/launchpad/journal"
	"github.com/xraph/launchpad/position"
	"github.com/xraph/launchpad/store"
	"github.com/xraph/launchpad/types"
)

var _ store.Store = (*Store)(nil)

type positionKey struct {
	launchpadID string
	account     types.Account
}

type Store struct {
	mu     sync.RWMutex
	closed bool

	// Position storage
	positions map[positionKey]*position.Position

	// Inventory storage, one per launchpad
	inventories map[string]*inventory.Inventory

	// Journal storage in append order
	entries []*journal.Entry
}

func New() *Store {
	return &Store{
		positions:   make(map[positionKey]*position.Position),
		inventories: make(map[string]*inventory.Inventory),
		entries:     make([]*journal.Entry, 0),
	}
}

// Position Store implementation
func (s *Store) GetPosition(_ context.Context, launchpadID id.LaunchpadID, account types.Account) (*position.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, launchpad.ErrStoreClosed
	}
	if p, ok := s.positions[positionKey{launchpadID.String(), account}]; ok {
		return p.Clone(), nil
	}
	return nil, launchpad.ErrPositionNotFound
}

func (s *Store) SavePosition(_ context.Context, p *position.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return launchpad.ErrStoreClosed
	}
	s.positions[positionKey{p.LaunchpadID.String(), p.Account}] = p.Clone()
	return nil
}

func (s *Store) DeletePosition(_ context.Context, launchpadID id.LaunchpadID, account types.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return launchpad.ErrStoreClosed
	}
	delete(s.positions, positionKey{launchpadID.String(), account})
	return nil
}

func (s *Store) ListPositions(_ context.Context, launchpadID id.LaunchpadID, opts position.ListOpts) ([]*position.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, launchpad.ErrStoreClosed
	}

	lpID := launchpadID.String()
	result := make([]*position.Position, 0)
	for key, p := range s.positions {
		if key.launchpadID != lpID {
			continue
		}
		if opts.Unlocked != nil && p.Unlocked != *opts.Unlocked {
			continue
		}
		result = append(result, p.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].Account < result[j].Account
	})

	return paginate(result, opts.Offset, opts.Limit), nil
}

// Inventory Store implementation
func (s *Store) GetInventory(_ context.Context, launchpadID id.LaunchpadID) (*inventory.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, launchpad.ErrStoreClosed
	}
	if inv, ok := s.inventories[launchpadID.String()]; ok {
		return inv.Clone(), nil
	}
	return nil, launchpad.ErrInventoryNotFound
}

func (s *Store) SaveInventory(_ context.Context, inv *inventory.Inventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return launchpad.ErrStoreClosed
	}
	s.inventories[inv.LaunchpadID.String()] = inv.Clone()
	return nil
}

// Journal Store implementation
func (s *Store) AppendEntry(_ context.Context, e *journal.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return launchpad.ErrStoreClosed
	}
	c := *e
	s.entries = append(s.entries, &c)
	return nil
}

func (s *Store) RemoveEntry(_ context.Context, entryID id.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return launchpad.ErrStoreClosed
	}
	target := entryID.String()
	for i, e := range s.entries {
		if e.ID.String() == target {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) ListEntries(_ context.Context, launchpadID id.LaunchpadID, opts journal.ListOpts) ([]*journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, launchpad.ErrStoreClosed
	}

	lpID := launchpadID.String()
	result := make([]*journal.Entry, 0)
	for _, e := range s.entries {
		if e.LaunchpadID.String() != lpID {
			continue
		}
		if opts.Account != "" && string(e.Account) != opts.Account {
			continue
		}
		if opts.Kind != "" && e.Kind != opts.Kind {
			continue
		}
		c := *e
		result = append(result, &c)
	}

	return paginate(result, opts.Offset, opts.Limit), nil
}

// Core methods
func (s *Store) Migrate(_ context.Context) error {
	return nil
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return launchpad.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// paginate applies offset and limit. Negative values count as zero.
func paginate[T any](result []T, offset, limit int) []T {
	offset = max(offset, 0)
	limit = max(limit, 0)
	start := offset
	if start > len(result) {
		start = len(result)
	}
	end := start + limit
	if limit == 0 || end > len(result) {
		end = len(result)
	}
	return result[start:end]
}
