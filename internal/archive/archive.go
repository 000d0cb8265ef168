// Package archive implements the portable import/export document: a single
// JSON file carrying both record lists plus an export timestamp.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vehicle-expense-control/internal/models"
	"vehicle-expense-control/internal/store"
)

// ErrNoRecognizedLists reports a syntactically valid document that carries
// neither fuelRecords nor washRecords. Importing one changes nothing.
var ErrNoRecognizedLists = errors.New("document contains neither fuelRecords nor washRecords")

// Document is the export file format. The list fields are pointers so that
// import can tell an absent list (leave the store untouched) apart from a
// present-but-empty one (replace with nothing).
type Document struct {
	FuelRecords *[]models.FuelRecord `json:"fuelRecords,omitempty"`
	WashRecords *[]models.WashRecord `json:"washRecords,omitempty"`
	ExportedAt  string               `json:"exportedAt"`
}

// Export builds a document holding both full lists and the export time
func Export(fuel []models.FuelRecord, wash []models.WashRecord, now time.Time) *Document {
	if fuel == nil {
		fuel = []models.FuelRecord{}
	}
	if wash == nil {
		wash = []models.WashRecord{}
	}
	return &Document{
		FuelRecords: &fuel,
		WashRecords: &wash,
		ExportedAt:  now.Format(time.RFC3339),
	}
}

// Encode renders the document as indented JSON
func Encode(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Filename returns the dated download name for an export
func Filename(now time.Time) string {
	return fmt.Sprintf("vehicle-expense-control-%s.json", now.Format("2006-01-02"))
}

// Parse decodes an import document. Invalid JSON fails here, before
// anything touches the stores.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid import document: %w", err)
	}
	return &doc, nil
}

// Apply replaces store contents wholesale with exactly the lists the
// document carries. A document with neither list returns
// ErrNoRecognizedLists and leaves both stores untouched.
func Apply(doc *Document, fuel *store.FuelStore, wash *store.WashStore) error {
	if doc.FuelRecords == nil && doc.WashRecords == nil {
		return ErrNoRecognizedLists
	}
	if doc.FuelRecords != nil {
		fuel.Replace(*doc.FuelRecords)
	}
	if doc.WashRecords != nil {
		wash.Replace(*doc.WashRecords)
	}
	return nil
}
