// Package session holds the per-user working state: the vehicle and tax
// caches, the parameter set and the per-vehicle overrides. All state is
// explicit and threaded through calls; nothing lives in package globals.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rkeulen/autokosten/internal/costs"
	"github.com/rkeulen/autokosten/internal/db"
	"github.com/rkeulen/autokosten/internal/models"
	"github.com/rkeulen/autokosten/internal/registry"
)

var (
	// ErrSourceUnavailable wraps transport failures talking to an
	// external source. The failure is cached per plate so the same
	// session never retries on its own; Refresh clears it.
	ErrSourceUnavailable = errors.New("external source unavailable")

	// ErrAllPlatesFailed is returned when not a single plate in a batch
	// could be resolved.
	ErrAllPlatesFailed = errors.New("no plate in the batch could be resolved")
)

// VehicleSource resolves a plate to a registry record.
type VehicleSource interface {
	Fetch(ctx context.Context, plate string) (*models.VehicleRecord, error)
}

// TaxSource resolves a plate to a jurisdiction tax amount.
type TaxSource interface {
	Lookup(ctx context.Context, plate string) (models.TaxAmount, error)
}

type vehicleEntry struct {
	rec       *models.VehicleRecord
	err       error
	fetchedAt time.Time
}

type taxEntry struct {
	tax       models.TaxAmount
	err       error
	fetchedAt time.Time
}

// Session is one user's working state. Both successful and failed
// lookups are cached by normalized plate; with a zero TTL entries never
// expire and only Refresh replaces them.
type Session struct {
	mu       sync.Mutex
	vehicles VehicleSource
	taxes    TaxSource
	ttl      time.Duration

	vehicleCache map[string]*vehicleEntry
	taxCache     map[string]*taxEntry
	params       models.Params
	overrides    models.Overrides
	lastResults  []models.CostBreakdown
}

func New(vehicles VehicleSource, taxes TaxSource, params models.Params, ttl time.Duration) *Session {
	return &Session{
		vehicles:     vehicles,
		taxes:        taxes,
		ttl:          ttl,
		vehicleCache: make(map[string]*vehicleEntry),
		taxCache:     make(map[string]*taxEntry),
		params:       params,
		overrides:    make(models.Overrides),
	}
}

// Params returns the current global parameters.
func (s *Session) Params() models.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetParams replaces the global parameters; the change applies to every
// vehicle on the next computation.
func (s *Session) SetParams(p models.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
}

// SetOverride stores a per-vehicle parameter override.
func (s *Session) SetOverride(plate, name string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.Set(plate, name, value)
}

// RemoveOverride drops a per-vehicle override; the global default
// applies again on the next computation.
func (s *Session) RemoveOverride(plate, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.Remove(plate, name)
}

// RemovePlateOverrides drops every override for a plate.
func (s *Session) RemovePlateOverrides(plate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.RemovePlate(plate)
}

func (s *Session) stale(fetchedAt time.Time) bool {
	return s.ttl > 0 && time.Since(fetchedAt) > s.ttl
}

// Vehicle returns the cached record for a plate, fetching it once. A
// fetch failure is cached too and keeps being returned until Refresh.
func (s *Session) Vehicle(ctx context.Context, plate string) (*models.VehicleRecord, error) {
	plate = models.NormalizePlate(plate)

	s.mu.Lock()
	if entry, ok := s.vehicleCache[plate]; ok && !s.stale(entry.fetchedAt) {
		s.mu.Unlock()
		return entry.rec, entry.err
	}
	s.mu.Unlock()

	rec, err := s.vehicles.Fetch(ctx, plate)
	if err != nil && !errors.Is(err, registry.ErrNotFound) {
		err = fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	s.mu.Lock()
	s.vehicleCache[plate] = &vehicleEntry{rec: rec, err: err, fetchedAt: time.Now()}
	s.mu.Unlock()
	return rec, err
}

// Tax returns the cached tax amount for a plate, fetching it once.
func (s *Session) Tax(ctx context.Context, plate string) (models.TaxAmount, error) {
	plate = models.NormalizePlate(plate)

	s.mu.Lock()
	if entry, ok := s.taxCache[plate]; ok && !s.stale(entry.fetchedAt) {
		s.mu.Unlock()
		return entry.tax, entry.err
	}
	s.mu.Unlock()

	tax, err := s.taxes.Lookup(ctx, plate)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	s.mu.Lock()
	s.taxCache[plate] = &taxEntry{tax: tax, err: err, fetchedAt: time.Now()}
	s.mu.Unlock()
	return tax, err
}

// Refresh drops the cached entries for a plate and fetches fresh data,
// overwriting whatever was there, error results included.
func (s *Session) Refresh(ctx context.Context, plate string) error {
	plate = models.NormalizePlate(plate)

	s.mu.Lock()
	delete(s.vehicleCache, plate)
	delete(s.taxCache, plate)
	s.mu.Unlock()

	if _, err := s.Vehicle(ctx, plate); err != nil {
		return err
	}
	_, err := s.Tax(ctx, plate)
	return err
}

// Compute resolves one plate end to end and returns its breakdown. A
// failing tax lookup degrades to "not found" (zero, auditable) rather
// than failing the plate; a failing vehicle lookup fails the plate.
func (s *Session) Compute(ctx context.Context, plate string) (models.CostBreakdown, error) {
	rec, err := s.Vehicle(ctx, plate)
	if err != nil {
		return models.CostBreakdown{}, err
	}

	tax, err := s.Tax(ctx, plate)
	if err != nil {
		log.WithField("plate", rec.Plate).WithError(err).Warn("tax lookup failed, using zero")
		tax = models.TaxAmount{Plate: rec.Plate}
	}

	consumption, unit := costs.ResolveConsumption(rec)

	// The engine reads the overrides outside the lock, so it gets its
	// own copy: SetOverride may mutate the inner maps concurrently.
	s.mu.Lock()
	params, overrides := s.params, s.overrides.Clone()
	s.mu.Unlock()

	return costs.Compute(rec, tax, consumption, unit, params, overrides), nil
}

// ComputeAll processes a batch of plates sequentially. Per-plate
// failures are isolated: one bad plate never blocks the rest. Only when
// every plate fails does the batch itself error.
func (s *Session) ComputeAll(ctx context.Context, plates []string) ([]models.CostBreakdown, map[string]error, error) {
	results := make([]models.CostBreakdown, 0, len(plates))
	failures := make(map[string]error)
	seen := make(map[string]bool)

	for _, plate := range plates {
		normalized := models.NormalizePlate(plate)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true

		breakdown, err := s.Compute(ctx, normalized)
		if err != nil {
			failures[normalized] = err
			continue
		}
		results = append(results, breakdown)
	}

	s.mu.Lock()
	s.lastResults = results
	s.mu.Unlock()

	// len(plates), not len(seen): a batch of plates that all normalize
	// to empty produced nothing and must not look like a success.
	if len(results) == 0 && len(plates) > 0 {
		return nil, failures, ErrAllPlatesFailed
	}
	return results, failures, nil
}

// LastResults returns the breakdowns of the most recent batch, for
// export.
func (s *Session) LastResults() []models.CostBreakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CostBreakdown, len(s.lastResults))
	copy(out, s.lastResults)
	return out
}

// Snapshot exports the persistable session state: parameters, overrides
// and the successfully cached records. Cached errors are deliberately
// not persisted; a new session retries them.
func (s *Session) Snapshot(owner string) *db.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &db.Snapshot{
		Owner:     owner,
		Params:    s.params,
		Overrides: s.overrides.Clone(),
		Vehicles:  make(map[string]*models.VehicleRecord),
		Taxes:     make(map[string]models.TaxAmount),
		SavedAt:   time.Now(),
	}
	for plate, entry := range s.vehicleCache {
		if entry.err == nil && entry.rec != nil {
			snap.Vehicles[plate] = entry.rec
		}
	}
	for plate, entry := range s.taxCache {
		if entry.err == nil {
			snap.Taxes[plate] = entry.tax
		}
	}
	return snap
}

// Restore loads a persisted snapshot into the session, replacing its
// current state. Cache timestamps come from the records themselves so a
// TTL policy keeps working across restarts.
func (s *Session) Restore(snap *db.Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = snap.Params
	s.overrides = snap.Overrides.Clone()
	s.vehicleCache = make(map[string]*vehicleEntry, len(snap.Vehicles))
	for plate, rec := range snap.Vehicles {
		s.vehicleCache[plate] = &vehicleEntry{rec: rec, fetchedAt: rec.FetchedAt}
	}
	s.taxCache = make(map[string]*taxEntry, len(snap.Taxes))
	for plate, tax := range snap.Taxes {
		s.taxCache[plate] = &taxEntry{tax: tax, fetchedAt: tax.FetchedAt}
	}
}
