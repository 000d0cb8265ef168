package archive_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-expense-control/internal/archive"
	"vehicle-expense-control/internal/kv"
	"vehicle-expense-control/internal/models"
	"vehicle-expense-control/internal/store"
)

func setupStores(t *testing.T) (*store.FuelStore, *store.WashStore) {
	t.Helper()
	db, err := kv.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.NewFuelStore(db), store.NewWashStore(db)
}

func populate(t *testing.T, fuel *store.FuelStore, wash *store.WashStore) {
	t.Helper()
	_, err := fuel.Add(models.FuelDraft{Plate: "ABC-1234", QuantityLiters: "45.5", PricePerLiter: "5.89"})
	require.NoError(t, err)
	_, err = fuel.Add(models.FuelDraft{Plate: "DEF-5678", QuantityLiters: "30", PricePerLiter: "6.10"})
	require.NoError(t, err)
	_, err = wash.Add(models.WashDraft{Plate: "ABC-1234", Price: "25", Status: "Completed"})
	require.NoError(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	fuel, wash := setupStores(t)
	populate(t, fuel, wash)

	doc := archive.Export(fuel.List(), wash.List(), time.Now())
	data, err := archive.Encode(doc)
	require.NoError(t, err)

	// import into a fresh pair of stores
	fuel2, wash2 := setupStores(t)
	parsed, err := archive.Parse(data)
	require.NoError(t, err)
	require.NoError(t, archive.Apply(parsed, fuel2, wash2))

	assert.Equal(t, fuel.List(), fuel2.List())
	assert.Equal(t, wash.List(), wash2.List())
}

func TestExportCarriesTimestamp(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	doc := archive.Export(nil, nil, now)

	assert.Equal(t, "2026-08-28T14:30:00Z", doc.ExportedAt)
}

func TestExportEmptyListsEncodeAsArrays(t *testing.T) {
	doc := archive.Export(nil, nil, time.Now())
	data, err := archive.Encode(doc)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"fuelRecords": []`)
	assert.Contains(t, string(data), `"washRecords": []`)
	assert.NotContains(t, string(data), "null")
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "vehicle-expense-control-2026-08-28.json", archive.Filename(now))
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := archive.Parse([]byte(`{"fuelRecords": [`))
	assert.Error(t, err)
}

func TestMalformedImportLeavesStoresUntouched(t *testing.T) {
	fuel, wash := setupStores(t)
	populate(t, fuel, wash)
	beforeFuel, beforeWash := fuel.List(), wash.List()

	_, err := archive.Parse([]byte("not json at all"))
	require.Error(t, err)

	assert.Equal(t, beforeFuel, fuel.List())
	assert.Equal(t, beforeWash, wash.List())
}

func TestApplyReplacesOnlyPresentLists(t *testing.T) {
	fuel, wash := setupStores(t)
	populate(t, fuel, wash)
	beforeWash := wash.List()

	doc, err := archive.Parse([]byte(`{"fuelRecords": [{"id": "imported-1", "plate": "ZZZ-0000"}]}`))
	require.NoError(t, err)
	require.NoError(t, archive.Apply(doc, fuel, wash))

	require.Len(t, fuel.List(), 1)
	assert.Equal(t, "imported-1", fuel.List()[0].ID)
	assert.Equal(t, beforeWash, wash.List())
}

func TestApplyPresentButEmptyListClears(t *testing.T) {
	fuel, wash := setupStores(t)
	populate(t, fuel, wash)

	doc, err := archive.Parse([]byte(`{"fuelRecords": []}`))
	require.NoError(t, err)
	require.NoError(t, archive.Apply(doc, fuel, wash))

	assert.Empty(t, fuel.List())
	assert.NotEmpty(t, wash.List())
}

func TestApplyNoRecognizedLists(t *testing.T) {
	fuel, wash := setupStores(t)
	populate(t, fuel, wash)
	beforeFuel, beforeWash := fuel.List(), wash.List()

	doc, err := archive.Parse([]byte(`{"somethingElse": 42}`))
	require.NoError(t, err)

	err = archive.Apply(doc, fuel, wash)
	assert.ErrorIs(t, err, archive.ErrNoRecognizedLists)
	assert.Equal(t, beforeFuel, fuel.List())
	assert.Equal(t, beforeWash, wash.List())
}
