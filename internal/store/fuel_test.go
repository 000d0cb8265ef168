package store_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-expense-control/internal/kv"
	"vehicle-expense-control/internal/models"
	"vehicle-expense-control/internal/store"
)

func setupTest(t *testing.T) *kv.Store {
	t.Helper()
	db, err := kv.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func validFuelDraft() models.FuelDraft {
	return models.FuelDraft{
		Plate:          "ABC-1234",
		QuantityLiters: "45.5",
		PricePerLiter:  "5.89",
	}
}

func TestFuelAddComputesTotalAndDefaults(t *testing.T) {
	s := store.NewFuelStore(setupTest(t))

	rec, err := s.Add(validFuelDraft())
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.InDelta(t, 45.5*5.89, rec.TotalPrice, 1e-9)
	assert.InDelta(t, 45.5, rec.QuantityLiters, 1e-9)
	assert.InDelta(t, 5.89, rec.PricePerLiter, 1e-9)
	assert.Equal(t, models.FuelGasoline, rec.FuelType)
	assert.Equal(t, 0, rec.OdometerKm)
	assert.NotEmpty(t, rec.ID)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, rec.Date)
	assert.Regexp(t, `^\d{2}:\d{2}$`, rec.Time)
	assert.Empty(t, rec.Driver)
	assert.Empty(t, rec.Notes)

	assert.Len(t, s.List(), 1)
}

func TestFuelAddKeepsExplicitFields(t *testing.T) {
	s := store.NewFuelStore(setupTest(t))

	rec, err := s.Add(models.FuelDraft{
		Date:           "2026-01-15",
		Time:           "08:30",
		Plate:          "XYZ-9876",
		Model:          "Fiorino",
		Driver:         "Carlos",
		FuelType:       "Diesel",
		QuantityLiters: "30",
		PricePerLiter:  "6.10",
		OdometerKm:     "125000",
		Notes:          "highway trip",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-15", rec.Date)
	assert.Equal(t, "08:30", rec.Time)
	assert.Equal(t, models.FuelDiesel, rec.FuelType)
	assert.Equal(t, 125000, rec.OdometerKm)
	assert.Equal(t, "Carlos", rec.Driver)
	assert.Equal(t, "highway trip", rec.Notes)
}

func TestFuelAddRejectsMissingPlate(t *testing.T) {
	s := store.NewFuelStore(setupTest(t))

	draft := validFuelDraft()
	draft.Plate = "  "

	rec, err := s.Add(draft)
	assert.Nil(t, rec)

	var rej *store.RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, store.ReasonMissingPlate, rej.Reason)
	assert.Empty(t, s.List())
}

func TestFuelAddRejectsBadNumbers(t *testing.T) {
	s := store.NewFuelStore(setupTest(t))

	for _, bad := range []string{"", "abc", "0", "-3.5"} {
		draft := validFuelDraft()
		draft.QuantityLiters = bad
		_, err := s.Add(draft)
		var rej *store.RejectionError
		require.Truef(t, errors.As(err, &rej), "quantity %q should be rejected", bad)

		draft = validFuelDraft()
		draft.PricePerLiter = bad
		_, err = s.Add(draft)
		require.Truef(t, errors.As(err, &rej), "price %q should be rejected", bad)
	}

	assert.Empty(t, s.List())
}

func TestFuelRemove(t *testing.T) {
	s := store.NewFuelStore(setupTest(t))

	rec, err := s.Add(validFuelDraft())
	require.NoError(t, err)

	// unknown id is a no-op
	assert.False(t, s.Remove("no-such-id"))
	assert.Len(t, s.List(), 1)

	assert.True(t, s.Remove(rec.ID))
	assert.Empty(t, s.List())
}

func TestFuelReAddGetsFreshID(t *testing.T) {
	s := store.NewFuelStore(setupTest(t))

	first, err := s.Add(validFuelDraft())
	require.NoError(t, err)
	require.True(t, s.Remove(first.ID))

	second, err := s.Add(validFuelDraft())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestFuelListIsASnapshot(t *testing.T) {
	s := store.NewFuelStore(setupTest(t))

	_, err := s.Add(validFuelDraft())
	require.NoError(t, err)

	snapshot := s.List()
	snapshot[0].Plate = "mutated"

	assert.Equal(t, "ABC-1234", s.List()[0].Plate)
}

func TestFuelPersistenceRoundTrip(t *testing.T) {
	db := setupTest(t)

	s := store.NewFuelStore(db)
	first, err := s.Add(validFuelDraft())
	require.NoError(t, err)

	draft := validFuelDraft()
	draft.Plate = "DEF-5678"
	second, err := s.Add(draft)
	require.NoError(t, err)

	// a fresh store over the same database sees the same list
	reloaded := store.NewFuelStore(db)
	records := reloaded.List()
	require.Len(t, records, 2)
	assert.Equal(t, *first, records[0])
	assert.Equal(t, *second, records[1])
}

func TestFuelUnreadableSlotStartsEmpty(t *testing.T) {
	db := setupTest(t)
	require.NoError(t, db.Put("fuelRecords", []byte("{not json")))

	s := store.NewFuelStore(db)
	assert.Empty(t, s.List())
}

func TestFuelReplace(t *testing.T) {
	db := setupTest(t)

	s := store.NewFuelStore(db)
	_, err := s.Add(validFuelDraft())
	require.NoError(t, err)

	incoming := []models.FuelRecord{
		{ID: "imported-1", Plate: "GHI-1111", QuantityLiters: 10, PricePerLiter: 5, TotalPrice: 50},
	}
	s.Replace(incoming)

	require.Len(t, s.List(), 1)
	assert.Equal(t, "imported-1", s.List()[0].ID)

	// replacement is persisted too
	reloaded := store.NewFuelStore(db)
	require.Len(t, reloaded.List(), 1)
	assert.Equal(t, "imported-1", reloaded.List()[0].ID)
}
