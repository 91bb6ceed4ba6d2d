package analytics

import (
	"time"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/models"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// ResolveRate finds the nightly price a property charges on a given date
// through a given channel. Among the rate periods of the property whose
// [Start, End] covers the date and which define a price for the channel, the
// one with the latest Start wins; remaining ties fall to the most recently
// created period, then to the ID string, so resolution is deterministic.
//
// Returns 0 when no rate is defined. Absence of pricing is a valid and common
// state (new properties, unconfigured channels) and must not abort a larger
// aggregation, so it is not an error.
func ResolveRate(propertyID utils.SixID, date time.Time, channelID utils.SixID, periods []models.RatePeriod) float64 {
	day := DayStart(date)

	var best *models.RatePeriod
	var bestPrice float64
	for i := range periods {
		rp := &periods[i]
		if rp.PropertyID != propertyID || rp.Deleted {
			continue
		}
		if !rp.Covers(day) {
			continue
		}
		price, ok := rp.PriceFor(channelID)
		if !ok {
			continue
		}
		if best == nil || laterRatePeriod(rp, best) {
			best = rp
			bestPrice = price
		}
	}
	if best == nil {
		return 0
	}
	return bestPrice
}

// laterRatePeriod reports whether a takes precedence over b: latest Start
// governs, CreatedAt encodes "last write wins" for overrides, ID breaks the
// final tie.
func laterRatePeriod(a, b *models.RatePeriod) bool {
	if !a.Start.Equal(b.Start) {
		return a.Start.After(b.Start)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}
