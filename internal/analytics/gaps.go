package analytics

import (
	"sort"
	"time"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/models"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// BuildAvailabilityGaps computes, per property, the free intervals inside
// [periodStart, periodEnd] left between its confirmed reservations. A property
// with no rate period applicable to the window is left out of the report
// entirely; with no price there is nothing to quote.
func BuildAvailabilityGaps(periodStart, periodEnd time.Time, properties []models.Property, reservations []models.Reservation, ratePeriods []models.RatePeriod, defaultChannelID utils.SixID) []models.PropertyAvailability {
	start := DayStart(periodStart)
	end := DayStart(periodEnd)

	byProperty := make(map[utils.SixID][]*models.Reservation)
	for i := range reservations {
		res := &reservations[i]
		if res.Status != models.ReservationConfirmed || res.Deleted {
			continue
		}
		byProperty[res.PropertyID] = append(byProperty[res.PropertyID], res)
	}

	report := make([]models.PropertyAvailability, 0, len(properties))
	for _, p := range properties {
		rate, ok := quoteRate(p.ID, start, end, defaultChannelID, ratePeriods)
		if !ok {
			continue
		}

		resList := byProperty[p.ID]
		sort.Slice(resList, func(i, j int) bool {
			return resList[i].Arrival.Before(resList[j].Arrival)
		})

		avail := models.PropertyAvailability{
			PropertyID:   p.ID,
			PropertyName: p.Name,
			NightlyRate:  rate,
		}

		cursor := start
		for _, res := range resList {
			arrival := DayStart(res.Arrival)
			departure := DayStart(res.Departure)
			if !departure.After(cursor) || !arrival.Before(end) {
				continue
			}
			if arrival.After(cursor) {
				avail.Gaps = append(avail.Gaps, gap(cursor, arrival))
			}
			if departure.After(cursor) {
				cursor = departure
			}
		}
		if cursor.Before(end) {
			avail.Gaps = append(avail.Gaps, gap(cursor, end))
		}

		report = append(report, avail)
	}

	sort.Slice(report, func(i, j int) bool {
		return report[i].PropertyName < report[j].PropertyName
	})
	return report
}

func gap(from, to time.Time) models.DateRange {
	return models.DateRange{From: from, To: to, Nights: NightsBetween(from, to)}
}

// quoteRate resolves the default-channel nightly rate to quote for the window,
// scanning forward from the window start to the first covered day. The second
// return is false when no rate period applies anywhere in the window.
func quoteRate(propertyID utils.SixID, start, end time.Time, defaultChannelID utils.SixID, ratePeriods []models.RatePeriod) (float64, bool) {
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if rate := ResolveRate(propertyID, day, defaultChannelID, ratePeriods); rate > 0 {
			return rate, true
		}
	}
	return 0, false
}
