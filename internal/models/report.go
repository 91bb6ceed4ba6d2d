package models

import (
	"time"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// ReservationRef is the display-level slice of a reservation used in daily
// activity lines.
type ReservationRef struct {
	ReservationID utils.SixID `json:"reservation_id"`
	ClientName    string      `json:"client_name,omitempty"`
	ChannelName   string      `json:"channel_name,omitempty"`
	Arrival       time.Time   `json:"arrival"`
	Departure     time.Time   `json:"departure"`
	Nights        int         `json:"nights"`
}

// PropertyDailyStatus classifies one property for a single reference date.
// Arrival and Departure may both be set on the same line (a back-to-back day);
// a free property reports its next confirmed arrival, or FullyOpen when none
// exists.
type PropertyDailyStatus struct {
	PropertyID       utils.SixID     `json:"property_id"`
	PropertyName     string          `json:"property_name"`
	Date             time.Time       `json:"date"`
	Arrival          *ReservationRef `json:"arrival,omitempty"`
	Departure        *ReservationRef `json:"departure,omitempty"`
	Staying          *ReservationRef `json:"staying,omitempty"`
	Free             bool            `json:"free"`
	NextArrival      *time.Time      `json:"next_arrival,omitempty"`
	DaysUntilArrival int             `json:"days_until_arrival,omitempty"`
	FullyOpen        bool            `json:"fully_open"`
}

// DateRange is a free interval inside an availability report.
type DateRange struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Nights int       `json:"nights"`
}

// PropertyAvailability lists the free gaps of one property over a period,
// with the nightly rate quoted for the tenant's default channel. Properties
// with no applicable rate period are excluded from the report entirely.
type PropertyAvailability struct {
	PropertyID   utils.SixID `json:"property_id"`
	PropertyName string      `json:"property_name"`
	NightlyRate  float64     `json:"nightly_rate"`
	Gaps         []DateRange `json:"gaps"`
}

// SweepSummary reports one run of the proposal expiry sweep.
type SweepSummary struct {
	RunID         string    `json:"run_id"`
	StartedAt     time.Time `json:"started_at"`
	GroupsExpired int       `json:"groups_expired"`
	GroupsFailed  int       `json:"groups_failed"`
	RowsExpired   int       `json:"rows_expired"`
}
