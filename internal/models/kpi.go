package models

import (
	"time"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// KpiRollup is one bucket of occupancy and revenue figures. It appears once
// globally and once per property. Derived on every query, never persisted.
type KpiRollup struct {
	NightsAvailable         int     `json:"nights_available"`
	NightsOccupiedInvoiced  int     `json:"nights_occupied_invoiced"`
	NightsOccupiedConfirmed int     `json:"nights_occupied_confirmed"`
	RevenueInvoiced         float64 `json:"revenue_invoiced"`
	RevenueConfirmed        float64 `json:"revenue_confirmed"`
	PayoutInvoiced          float64 `json:"payout_invoiced"`
	PayoutConfirmed         float64 `json:"payout_confirmed"`
	OccupancyRate           float64 `json:"occupancy_rate"` // percent, confirmed nights over available
	ADR                     float64 `json:"adr"`            // invoiced revenue per invoiced night
	RevPAR                  float64 `json:"rev_par"`        // invoiced revenue per available night
	ChannelDiscounts        float64 `json:"channel_discounts"`
	InternalAdjustments     float64 `json:"internal_adjustments"`
}

// PropertyKpi is the per-property mirror of the global rollup.
type PropertyKpi struct {
	PropertyID   utils.SixID `json:"property_id"`
	PropertyName string      `json:"property_name"`
	KpiRollup
}

// ChannelKpi aggregates sales figures per channel. Bookings counts unique
// booking groups, not reservation rows.
type ChannelKpi struct {
	ChannelID            utils.SixID `json:"channel_id"`
	ChannelName          string      `json:"channel_name"`
	Bookings             int         `json:"bookings"`
	NightsSold           int         `json:"nights_sold"`
	Revenue              float64     `json:"revenue"`
	Payout               float64     `json:"payout"`
	ChannelCost          float64     `json:"channel_cost"`
	AvgRevenuePerBooking float64     `json:"avg_revenue_per_booking"`
	AvgNightsPerBooking  float64     `json:"avg_nights_per_booking"`
}

// KpiResult is the full answer to one KPI query.
type KpiResult struct {
	TenantID    utils.SixID   `json:"tenant_id"`
	PeriodStart time.Time     `json:"period_start"`
	PeriodEnd   time.Time     `json:"period_end"`
	Global      KpiRollup     `json:"global"`
	Properties  []PropertyKpi `json:"properties"`
	Channels    []ChannelKpi  `json:"channels"`
}
