package models

// FuelType enumerates the accepted fuel kinds for a fill-up
type FuelType string

const (
	FuelGasoline FuelType = "Gasoline"
	FuelEthanol  FuelType = "Ethanol"
	FuelDiesel   FuelType = "Diesel"
	FuelCNG      FuelType = "CNG"
)

// DefaultFuelType is applied when a draft leaves the fuel type unset
const DefaultFuelType = FuelGasoline

// FuelRecord represents a single fuel fill-up entry
type FuelRecord struct {
	ID             string   `json:"id"`
	Date           string   `json:"date"`           // YYYY-MM-DD
	Time           string   `json:"time"`           // HH:MM
	Plate          string   `json:"plate"`
	Model          string   `json:"model"`
	Driver         string   `json:"driver"`
	FuelType       FuelType `json:"fuelType"`
	QuantityLiters float64  `json:"quantityLiters"`
	PricePerLiter  float64  `json:"pricePerLiter"`
	TotalPrice     float64  `json:"totalPrice"`     // quantityLiters * pricePerLiter, fixed at creation
	OdometerKm     int      `json:"odometerKm"`
	Notes          string   `json:"notes"`
}

// FuelDraft carries raw form input for a new fill-up. Numeric fields arrive
// as strings and are parsed during validation; plate, quantityLiters and
// pricePerLiter are mandatory, everything else gets a default.
type FuelDraft struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	Plate          string `json:"plate"`
	Model          string `json:"model"`
	Driver         string `json:"driver"`
	FuelType       string `json:"fuelType"`
	QuantityLiters string `json:"quantityLiters"`
	PricePerLiter  string `json:"pricePerLiter"`
	OdometerKm     string `json:"odometerKm"`
	Notes          string `json:"notes"`
}

// FuelSummary provides aggregated statistics over a fuel record list
type FuelSummary struct {
	TotalSpend           float64 `json:"totalSpend"`
	TotalLiters          float64 `json:"totalLiters"`
	AveragePricePerLiter float64 `json:"averagePricePerLiter"`
	Count                int     `json:"count"`
}
