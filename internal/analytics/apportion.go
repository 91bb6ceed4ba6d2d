package analytics

import (
	"time"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/models"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// ApportionedSlice is the part of one reservation that falls inside a query
// period: its overlapping nights and the per-night prorated share of its
// monetary values.
type ApportionedSlice struct {
	ReservationID utils.SixID
	PropertyID    utils.SixID
	ChannelID     utils.SixID
	GroupKey      string
	Invoiced      bool

	Nights      int
	GuestValue  float64
	ChannelCost float64
	Payout      float64

	// ChannelDiscount and InternalAdjustment are mutually exclusive per
	// reservation; at most one is non-zero.
	ChannelDiscount    float64
	InternalAdjustment float64
}

// Apportion prorates a reservation across the intersection of its stay and
// the query period. Returns nil when the reservation does not intersect the
// window at all; such a reservation is excluded from every rollup rather than
// zero-filled.
//
// Discount attribution is a best-effort heuristic, not exact accounting: a
// channel-reported potential value above the guest value is attributed as a
// channel discount; otherwise a resolvable list rate above the guest value is
// attributed as an internal manual adjustment (a manually discounted direct
// booking). The two branches never both fire for one reservation, and a
// potential value below the guest value floors the discount at 0 without
// falling back to the adjustment branch.
func Apportion(res *models.Reservation, periodStart, periodEnd time.Time, defaultChannelID utils.SixID, ratePeriods []models.RatePeriod) *ApportionedSlice {
	nights := NightsInOverlap(res.Arrival, res.Departure, periodStart, periodEnd)
	if nights <= 0 {
		return nil
	}

	totalNights := res.Nights
	if totalNights <= 0 {
		totalNights = NightsBetween(res.Arrival, res.Departure)
	}
	if totalNights <= 0 {
		return nil
	}

	perNightGuest := res.Values.Guest / float64(totalNights)
	perNightCost := res.Values.ChannelCost / float64(totalNights)

	slice := &ApportionedSlice{
		ReservationID: res.ID,
		PropertyID:    res.PropertyID,
		ChannelID:     res.ChannelID,
		GroupKey:      res.GroupKey(),
		Invoiced:      res.Invoiced,
		Nights:        nights,
		GuestValue:    perNightGuest * float64(nights),
		ChannelCost:   perNightCost * float64(nights),
	}
	slice.Payout = slice.GuestValue - slice.ChannelCost

	if res.Values.Potential > 0 {
		perNightPotential := res.Values.Potential / float64(totalNights)
		if discount := perNightPotential*float64(nights) - slice.GuestValue; discount > 0 {
			slice.ChannelDiscount = discount
		}
	} else {
		rate := ResolveRate(res.PropertyID, res.Arrival, defaultChannelID, ratePeriods)
		listValue := rate * float64(nights)
		if adjustment := listValue - slice.GuestValue; adjustment > 0 {
			slice.InternalAdjustment = adjustment
		}
	}

	return slice
}
