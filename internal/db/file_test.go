package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rkeulen/autokosten/internal/models"
)

func testSnapshot(owner string) *Snapshot {
	list := 28500.0
	return &Snapshot{
		Owner:  owner,
		Params: models.DefaultParams(),
		Overrides: models.Overrides{
			"12AB34": {models.OverridePurchasePrice: 20000},
		},
		Vehicles: map[string]*models.VehicleRecord{
			"12AB34": {
				Plate:     "12AB34",
				Brand:     "VOLKSWAGEN",
				Model:     "GOLF",
				FuelType:  "Benzine",
				ListPrice: &list,
				FetchedAt: time.Now().Truncate(time.Second),
			},
		},
		Taxes: map[string]models.TaxAmount{
			"12AB34": {Plate: "12AB34", MonthlyAmount: 56, Found: true},
		},
		SavedAt: time.Now().Truncate(time.Second),
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	snap := testSnapshot("rogier")
	assert.NoError(t, store.Save(context.Background(), "rogier", snap))

	loaded, err := store.Load(context.Background(), "rogier")
	assert.NoError(t, err)
	assert.Equal(t, snap.Owner, loaded.Owner)
	assert.Equal(t, snap.Params, loaded.Params)
	assert.Equal(t, snap.Overrides, loaded.Overrides)
	assert.Equal(t, 28500.0, *loaded.Vehicles["12AB34"].ListPrice)
	assert.Equal(t, 56.0, loaded.Taxes["12AB34"].MonthlyAmount)
	assert.True(t, loaded.Taxes["12AB34"].Found)
}

func TestFileStore_MissingOwner(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	_, err = store.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestFileStore_OwnerNameIsSanitized(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	assert.NoError(t, err)

	assert.NoError(t, store.Save(context.Background(), "../../etc/passwd", testSnapshot("x")))

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), string(filepath.Separator))
	assert.NotContains(t, entries[0].Name(), "..")
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	first := testSnapshot("rogier")
	assert.NoError(t, store.Save(ctx, "rogier", first))

	second := testSnapshot("rogier")
	second.Params.AnnualKM = 30000
	assert.NoError(t, store.Save(ctx, "rogier", second))

	loaded, err := store.Load(ctx, "rogier")
	assert.NoError(t, err)
	assert.Equal(t, 30000.0, loaded.Params.AnnualKM)
}
