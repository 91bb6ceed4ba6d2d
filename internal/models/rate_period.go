package models

import (
	"time"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// ChannelPrice is the nightly price a rate period defines for one sales channel.
type ChannelPrice struct {
	ChannelID    utils.SixID `bson:"channel_id" json:"channel_id"`
	Amount       float64     `bson:"amount" json:"amount"`
	CurrencyCode string      `bson:"currency_code" json:"currency_code"`
}

// RatePeriod defines per-channel nightly prices for a property over a closed
// date interval [Start, End]. Periods for the same property may overlap; when
// several cover the same day the one with the latest Start governs
// (CreatedAt, then ID, break remaining ties so resolution is deterministic).
type RatePeriod struct {
	Base       `bson:",inline"`
	TenantID   utils.SixID    `bson:"tenant_id" json:"tenant_id"`
	PropertyID utils.SixID    `bson:"property_id" json:"property_id"`
	Start      time.Time      `bson:"start" json:"start"`
	End        time.Time      `bson:"end" json:"end"`
	Prices     []ChannelPrice `bson:"prices" json:"prices"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
	Deleted    bool           `bson:"deleted" json:"-"`
}

// PriceFor returns the nightly price this period defines for the given
// channel, and whether one is defined at all.
func (rp *RatePeriod) PriceFor(channelID utils.SixID) (float64, bool) {
	for _, p := range rp.Prices {
		if p.ChannelID == channelID {
			return p.Amount, true
		}
	}
	return 0, false
}

// Covers reports whether the given day falls inside [Start, End].
func (rp *RatePeriod) Covers(date time.Time) bool {
	return !date.Before(rp.Start) && !date.After(rp.End)
}
