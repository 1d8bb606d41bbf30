package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rkeulen/autokosten/internal/db"
	"github.com/rkeulen/autokosten/internal/models"
)

// Manager hands out one Session per owner (user), restoring persisted
// state on first access and writing it back in full on Persist.
type Manager struct {
	mu       sync.Mutex
	store    db.SnapshotStore
	vehicles VehicleSource
	taxes    TaxSource
	defaults models.Params
	ttl      time.Duration
	sessions map[string]*Session
}

func NewManager(store db.SnapshotStore, vehicles VehicleSource, taxes TaxSource, defaults models.Params, ttl time.Duration) *Manager {
	return &Manager{
		store:    store,
		vehicles: vehicles,
		taxes:    taxes,
		defaults: defaults,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Get returns the owner's session, creating it from the persisted
// snapshot when one exists.
func (m *Manager) Get(ctx context.Context, owner string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[owner]; ok {
		return s, nil
	}

	s := New(m.vehicles, m.taxes, m.defaults, m.ttl)
	if m.store != nil {
		snap, err := m.store.Load(ctx, owner)
		switch {
		case err == nil:
			s.Restore(snap)
		case !errors.Is(err, db.ErrNoSnapshot):
			return nil, err
		}
	}
	m.sessions[owner] = s
	return s, nil
}

// Persist writes the owner's full session state to the store.
func (m *Manager) Persist(ctx context.Context, owner string) error {
	m.mu.Lock()
	s, ok := m.sessions[owner]
	m.mu.Unlock()
	if !ok || m.store == nil {
		return nil
	}
	return m.store.Save(ctx, owner, s.Snapshot(owner))
}

// PersistAll writes every live session, for shutdown.
func (m *Manager) PersistAll(ctx context.Context) error {
	m.mu.Lock()
	owners := make([]string, 0, len(m.sessions))
	for owner := range m.sessions {
		owners = append(owners, owner)
	}
	m.mu.Unlock()

	var firstErr error
	for _, owner := range owners {
		if err := m.Persist(ctx, owner); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
