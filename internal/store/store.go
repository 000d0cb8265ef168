package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Persistence slot keys
const (
	fuelRecordsKey = "fuelRecords"
	washRecordsKey = "washRecords"
)

// RejectionError reports a creation request that failed mandatory-field
// gating. No record is created and the list is left untouched.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("record rejected: %s", e.Reason)
}

// Rejection reasons
const (
	ReasonMissingPlate    = "plate is required"
	ReasonInvalidQuantity = "quantityLiters must be a positive number"
	ReasonInvalidUnitCost = "pricePerLiter must be a positive number"
	ReasonInvalidPrice    = "price must be a positive number"
)

func todayDate() string {
	return time.Now().Format("2006-01-02")
}

func nowClock() string {
	return time.Now().Format("15:04")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// parsePositive parses a mandatory numeric draft field. Empty, unparsable,
// zero and negative inputs all fail the gate.
func parsePositive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// parseOdometer parses the optional odometer field; anything unusable
// falls back to 0
func parseOdometer(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
