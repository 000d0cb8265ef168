package models

// WashType enumerates the offered wash services
type WashType string

const (
	WashBasic     WashType = "Basic"
	WashFull      WashType = "Full"
	WashWaxing    WashType = "Waxing"
	WashDetailing WashType = "Detailing"
)

// WashStatus tracks the lifecycle of a scheduled wash
type WashStatus string

const (
	StatusScheduled  WashStatus = "Scheduled"
	StatusInProgress WashStatus = "InProgress"
	StatusCompleted  WashStatus = "Completed"
	StatusCancelled  WashStatus = "Cancelled"
)

// Defaults applied when a draft leaves the field unset
const (
	DefaultWashType   = WashBasic
	DefaultWashStatus = StatusScheduled
)

// WashRecord represents a single car-wash service entry
type WashRecord struct {
	ID       string     `json:"id"`
	Date     string     `json:"date"` // YYYY-MM-DD
	Time     string     `json:"time"` // HH:MM
	Plate    string     `json:"plate"`
	Model    string     `json:"model"`
	Customer string     `json:"customer"`
	WashType WashType   `json:"washType"`
	Price    float64    `json:"price"`
	Status   WashStatus `json:"status"`
	Notes    string     `json:"notes"`
}

// WashDraft carries raw form input for a new wash. Plate and price are
// mandatory; price arrives as a string and is parsed during validation.
type WashDraft struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Plate    string `json:"plate"`
	Model    string `json:"model"`
	Customer string `json:"customer"`
	WashType string `json:"washType"`
	Price    string `json:"price"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

// WashSummary provides aggregated statistics over a wash record list
type WashSummary struct {
	TotalSpend     float64 `json:"totalSpend"`
	CompletedCount int     `json:"completedCount"`
	PendingCount   int     `json:"pendingCount"`
	Count          int     `json:"count"`
}
