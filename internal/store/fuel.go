package store

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vehicle-expense-control/internal/kv"
	"vehicle-expense-control/internal/models"
)

// FuelStore owns the list of fuel fill-up records. Every successful
// mutation rewrites the full list to its persistence slot.
type FuelStore struct {
	records []models.FuelRecord
	db      *kv.Store
}

// NewFuelStore loads any previously saved records from the fuelRecords
// slot. An absent or unreadable slot starts the store empty; it never
// fails construction.
func NewFuelStore(db *kv.Store) *FuelStore {
	s := &FuelStore{db: db}

	raw, found, err := db.Get(fuelRecordsKey)
	if err != nil {
		logrus.WithError(err).Warn("fuel store: reading saved records, starting empty")
		return s
	}
	if !found {
		return s
	}
	if err := json.Unmarshal(raw, &s.records); err != nil {
		logrus.WithError(err).Warn("fuel store: saved records unreadable, starting empty")
		s.records = nil
	}
	return s
}

// Add validates the draft and, if it passes, creates a record with defaults
// filled, a fresh id and the derived totalPrice, appends it and persists.
// Validation failures come back as *RejectionError.
func (s *FuelStore) Add(draft models.FuelDraft) (*models.FuelRecord, error) {
	if strings.TrimSpace(draft.Plate) == "" {
		return nil, &RejectionError{Reason: ReasonMissingPlate}
	}
	quantity, ok := parsePositive(draft.QuantityLiters)
	if !ok {
		return nil, &RejectionError{Reason: ReasonInvalidQuantity}
	}
	unitPrice, ok := parsePositive(draft.PricePerLiter)
	if !ok {
		return nil, &RejectionError{Reason: ReasonInvalidUnitCost}
	}

	fuelType := models.DefaultFuelType
	if draft.FuelType != "" {
		fuelType = models.FuelType(draft.FuelType)
	}

	rec := models.FuelRecord{
		ID:             uuid.NewString(),
		Date:           orDefault(draft.Date, todayDate()),
		Time:           orDefault(draft.Time, nowClock()),
		Plate:          draft.Plate,
		Model:          draft.Model,
		Driver:         draft.Driver,
		FuelType:       fuelType,
		QuantityLiters: quantity,
		PricePerLiter:  unitPrice,
		TotalPrice:     quantity * unitPrice,
		OdometerKm:     parseOdometer(draft.OdometerKm),
		Notes:          draft.Notes,
	}

	s.records = append(s.records, rec)
	s.persist()
	return &rec, nil
}

// Remove deletes the record with the given id. Removing an unknown id is
// a no-op and reports false.
func (s *FuelStore) Remove(id string) bool {
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// List returns a snapshot of the records in insertion order
func (s *FuelStore) List() []models.FuelRecord {
	out := make([]models.FuelRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Replace swaps the whole list wholesale (import path) and persists
func (s *FuelStore) Replace(records []models.FuelRecord) {
	s.records = make([]models.FuelRecord, len(records))
	copy(s.records, records)
	s.persist()
}

// persist mirrors the current list to the fuelRecords slot. Write failures
// are logged but do not roll back the in-memory state.
func (s *FuelStore) persist() {
	recs := s.records
	if recs == nil {
		recs = []models.FuelRecord{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		logrus.WithError(err).Error("fuel store: encoding records")
		return
	}
	if err := s.db.Put(fuelRecordsKey, data); err != nil {
		logrus.WithError(err).Error("fuel store: persisting records")
	}
}
