// Package query holds the pure read-side functions over record lists:
// free-text filtering and summary aggregation. Nothing here mutates its
// input or caches results; callers recompute from current state.
package query

import (
	"strings"

	"vehicle-expense-control/internal/models"
)

// FilterFuel returns the records whose plate, model or driver contains the
// query, case-insensitively. An empty query matches everything. Order is
// preserved and the input list is never mutated.
func FilterFuel(records []models.FuelRecord, q string) []models.FuelRecord {
	q = strings.ToLower(q)
	out := make([]models.FuelRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Plate), q) ||
			strings.Contains(strings.ToLower(r.Model), q) ||
			strings.Contains(strings.ToLower(r.Driver), q) {
			out = append(out, r)
		}
	}
	return out
}

// FilterWash returns the records whose plate, model or customer contains
// the query, case-insensitively
func FilterWash(records []models.WashRecord, q string) []models.WashRecord {
	q = strings.ToLower(q)
	out := make([]models.WashRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Plate), q) ||
			strings.Contains(strings.ToLower(r.Model), q) ||
			strings.Contains(strings.ToLower(r.Customer), q) {
			out = append(out, r)
		}
	}
	return out
}

// SummarizeFuel computes totals over a fuel record list in a single pass.
// The average guards against an empty (or zero-liter) list.
func SummarizeFuel(records []models.FuelRecord) models.FuelSummary {
	var s models.FuelSummary
	for _, r := range records {
		s.TotalSpend += r.TotalPrice
		s.TotalLiters += r.QuantityLiters
	}
	if s.TotalLiters > 0 {
		s.AveragePricePerLiter = s.TotalSpend / s.TotalLiters
	}
	s.Count = len(records)
	return s
}

// SummarizeWash computes totals over a wash record list. Pending counts
// every record that is neither completed nor cancelled.
func SummarizeWash(records []models.WashRecord) models.WashSummary {
	var s models.WashSummary
	for _, r := range records {
		s.TotalSpend += r.Price
		switch r.Status {
		case models.StatusCompleted:
			s.CompletedCount++
		case models.StatusCancelled:
			// neither completed nor pending
		default:
			s.PendingCount++
		}
	}
	s.Count = len(records)
	return s
}
