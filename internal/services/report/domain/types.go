// Package domain defines the report types shared by the service, the ledger and the API
package domain

import (
	"time"

	"ordertrack/internal/core/busdays"
	"ordertrack/internal/core/dates"
)

// Folded status and category values
const (
	StatusCompleted      = "completed"
	StatusInProgress     = "inprogress"
	CategoryDeactivation = "deactivation"
	CategorySalesOrder   = "salesorder"
)

// Sheet names in write order
const (
	SheetAll           = "TODAS LAS ORDENES"
	SheetOpen          = "ORDENES ABIERTAS"
	SheetTop           = "TOP 20 + ABIERTAS"
	SheetDeactivations = "BAJAS"
	SheetActivated     = "ORDENES ACTIVADAS"
	SheetByModel       = "ACTIVACIONES POR MODELO"
)

// Order is one deduplicated row
// Values holds the sheet cells in Report.Columns order: text, int days or nil
type Order struct {
	Values []any

	Status   string // folded
	Category string // folded

	Offer        string
	Model        string
	Subscription string
	Interaction  string
	Customer     string
	Responsible  string

	Created   dates.Result
	Activated dates.Result
	DaysOpen  busdays.Days
}

// ColumnStats counts resolution outcomes for one date column
// Missing cells are blank and are not counted as unresolvable
type ColumnStats struct {
	Column       string `json:"column"`
	Resolved     int    `json:"resolved"`
	Unresolvable int    `json:"unresolvable"`
	Missing      int    `json:"missing"`
}

// Report is the reshaped frame as of Today, read-only once built
type Report struct {
	Today      dates.Date
	Columns    []string
	Orders     []Order
	Duplicates int
	Dates      []ColumnStats
}

// Resolution sums every date column
func (r *Report) Resolution() (resolved, unresolvable int) {
	for _, c := range r.Dates {
		resolved += c.Resolved
		unresolvable += c.Unresolvable
	}
	return resolved, unresolvable
}

// Run outcomes
const (
	RunOK    = "ok"
	RunError = "error"
)

// Run is one ledger entry
type Run struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Today        string    `json:"today"`
	Sources      []string  `json:"sources"`
	Rows         int       `json:"rows"`
	Duplicates   int       `json:"duplicates"`
	Resolved     int       `json:"resolved"`
	Unresolvable int       `json:"unresolvable"`
	File         string    `json:"file,omitempty"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
}
