package domain

import "ordertrack/internal/core/busdays"

// KPIs are the headline counts
type KPIs struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inprogress"`
}

// DateView carries both serializations of a date, "" when unresolved
type DateView struct {
	ISO     string `json:"iso"`
	Display string `json:"display"`
}

// OrderView is one grid row
type OrderView struct {
	Status       string       `json:"status"`
	Category     string       `json:"category"`
	Offer        string       `json:"offer"`
	Model        string       `json:"model"`
	Subscription string       `json:"subscription"`
	Interaction  string       `json:"interaction"`
	Customer     string       `json:"customer"`
	Responsible  string       `json:"responsible"`
	Created      DateView     `json:"created"`
	Activated    DateView     `json:"activated"`
	DaysOpen     busdays.Days `json:"days_open"`
}

// Status filters for the orders grid
const (
	FilterAll        = "all"
	FilterCompleted  = StatusCompleted
	FilterInProgress = StatusInProgress
)

// CloudCount is a monthly bar
type CloudCount struct {
	Month string `json:"month"` // YYYY-MM
	Cloud string `json:"cloud"`
	Count int    `json:"count"`
}

// CloudRow is a detail row, DaysOpen runs from creation to today
type CloudRow struct {
	Cloud string `json:"cloud"`
	OrderView
}

// CloudsView is the third party cloud panel
type CloudsView struct {
	Months []string     `json:"months"`
	Series []CloudCount `json:"series"`
	Detail []CloudRow   `json:"detail"`
}

// BucketCount is a deactivation bar with its share of the charted total
type BucketCount struct {
	Bucket  string  `json:"bucket"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// DeactivationRow is a detail row, DaysOpen runs from creation to today
type DeactivationRow struct {
	Bucket string `json:"bucket"`
	OrderView
}

// DeactivationsView is the deactivation panel
type DeactivationsView struct {
	Series []BucketCount     `json:"series"`
	Detail []DeactivationRow `json:"detail"`
}
