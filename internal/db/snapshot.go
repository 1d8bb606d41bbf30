// Package db persists session snapshots and user accounts. A snapshot is
// always written in full: the override map, the cached vehicle and tax
// records, and the global parameters of one session owner.
package db

import (
	"context"
	"errors"
	"time"

	"github.com/rkeulen/autokosten/internal/models"
)

// ErrNoSnapshot means no snapshot has been saved for the owner yet.
var ErrNoSnapshot = errors.New("no snapshot for owner")

// Snapshot is the persisted form of a session.
type Snapshot struct {
	Owner     string                           `json:"owner" bson:"owner"`
	Params    models.Params                    `json:"params" bson:"params"`
	Overrides models.Overrides                 `json:"overrides" bson:"overrides"`
	Vehicles  map[string]*models.VehicleRecord `json:"vehicles" bson:"vehicles"`
	Taxes     map[string]models.TaxAmount      `json:"taxes" bson:"taxes"`
	SavedAt   time.Time                        `json:"saved_at" bson:"saved_at"`
}

// SnapshotStore loads and saves whole snapshots, never partial updates.
type SnapshotStore interface {
	Load(ctx context.Context, owner string) (*Snapshot, error)
	Save(ctx context.Context, owner string, snap *Snapshot) error
}
