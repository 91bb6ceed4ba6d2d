package models

import (
	"time"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// ReservationStatus is the management lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationExpired   ReservationStatus = "expired"
)

// PaymentStatus tracks payment separately from the management status. It is
// only meaningful for proposal-style bookings awaiting payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentExpired PaymentStatus = "expired"
)

// ReservationValues holds the monetary figures of a reservation, all in the
// reservation's native currency. Potential is the list/undiscounted value the
// channel reports it would have charged absent promotions; 0 means the channel
// did not report one.
type ReservationValues struct {
	Guest        float64 `bson:"guest" json:"guest"`
	ChannelCost  float64 `bson:"channel_cost" json:"channel_cost"`
	Potential    float64 `bson:"potential,omitempty" json:"potential,omitempty"`
	CurrencyCode string  `bson:"currency_code" json:"currency_code"`
}

// Reservation is a date-ranged stay of one client in one property, sold
// through one channel. The stay interval is half-open: a night is billable if
// its start date falls in [Arrival, Departure). One logical guest booking may
// span several reservation rows sharing a BookingGroupID.
type Reservation struct {
	Base           `bson:",inline"`
	TenantID       utils.SixID       `bson:"tenant_id" json:"tenant_id"`
	PropertyID     utils.SixID       `bson:"property_id" json:"property_id"`
	ChannelID      utils.SixID       `bson:"channel_id" json:"channel_id"`
	ClientID       utils.SixID       `bson:"client_id,omitempty" json:"client_id,omitempty"`
	BookingGroupID string            `bson:"booking_group_id" json:"booking_group_id"`
	Arrival        time.Time         `bson:"arrival" json:"arrival"`
	Departure      time.Time         `bson:"departure" json:"departure"`
	Nights         int               `bson:"nights" json:"nights"`
	Values         ReservationValues `bson:"values" json:"values"`
	Status         ReservationStatus `bson:"status" json:"status"`
	// Invoiced marks a confirmed reservation as financially closed out. For
	// KPI purposes the invoiced set is always a subset of the confirmed set.
	Invoiced      bool          `bson:"invoiced" json:"invoiced"`
	PaymentStatus PaymentStatus `bson:"payment_status,omitempty" json:"payment_status,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
	ExpiredAt     *time.Time    `bson:"expired_at,omitempty" json:"expired_at,omitempty"`
	Deleted       bool          `bson:"deleted" json:"-"`
}

// GroupKey returns the identifier under which this reservation is grouped for
// per-booking figures. Rows without an external booking group fall back to
// their own ID, so a direct booking still counts as one booking.
func (r *Reservation) GroupKey() string {
	if r.BookingGroupID != "" {
		return r.BookingGroupID
	}
	return r.ID.String()
}
