package store

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vehicle-expense-control/internal/kv"
	"vehicle-expense-control/internal/models"
)

// WashStore owns the list of car-wash service records. Same contract as
// FuelStore with the wash-specific mandatory fields and defaults.
type WashStore struct {
	records []models.WashRecord
	db      *kv.Store
}

// NewWashStore loads any previously saved records from the washRecords
// slot; an absent or unreadable slot starts the store empty.
func NewWashStore(db *kv.Store) *WashStore {
	s := &WashStore{db: db}

	raw, found, err := db.Get(washRecordsKey)
	if err != nil {
		logrus.WithError(err).Warn("wash store: reading saved records, starting empty")
		return s
	}
	if !found {
		return s
	}
	if err := json.Unmarshal(raw, &s.records); err != nil {
		logrus.WithError(err).Warn("wash store: saved records unreadable, starting empty")
		s.records = nil
	}
	return s
}

// Add validates the draft and, if it passes, creates a record with defaults
// filled and a fresh id, appends it and persists
func (s *WashStore) Add(draft models.WashDraft) (*models.WashRecord, error) {
	if strings.TrimSpace(draft.Plate) == "" {
		return nil, &RejectionError{Reason: ReasonMissingPlate}
	}
	price, ok := parsePositive(draft.Price)
	if !ok {
		return nil, &RejectionError{Reason: ReasonInvalidPrice}
	}

	washType := models.DefaultWashType
	if draft.WashType != "" {
		washType = models.WashType(draft.WashType)
	}
	status := models.DefaultWashStatus
	if draft.Status != "" {
		status = models.WashStatus(draft.Status)
	}

	rec := models.WashRecord{
		ID:       uuid.NewString(),
		Date:     orDefault(draft.Date, todayDate()),
		Time:     orDefault(draft.Time, nowClock()),
		Plate:    draft.Plate,
		Model:    draft.Model,
		Customer: draft.Customer,
		WashType: washType,
		Price:    price,
		Status:   status,
		Notes:    draft.Notes,
	}

	s.records = append(s.records, rec)
	s.persist()
	return &rec, nil
}

// Remove deletes the record with the given id; unknown ids are a no-op
func (s *WashStore) Remove(id string) bool {
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
func (s *WashStore) List() []models.WashRecord {
	out := make([]models.WashRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Replace swaps the whole list wholesale (import path) and persists
func (s *WashStore) Replace(records []models.WashRecord) {
	s.records = make([]models.WashRecord, len(records))
	copy(s.records, records)
	s.persist()
}

func (s *WashStore) persist() {
	recs := s.records
	if recs == nil {
		recs = []models.WashRecord{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		logrus.WithError(err).Error("wash store: encoding records")
		return
	}
	if err := s.db.Put(washRecordsKey, data); err != nil {
		logrus.WithError(err).Error("wash store: persisting records")
	}
}
