package analytics

import (
	"sort"
	"time"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/models"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// BuildDailyActivity classifies every property for a single reference date:
// who departs today, who arrives today, who is mid-stay, and which properties
// are free. Arrival and departure are separate facets and may both appear on
// one property line (a back-to-back day). A free property reports its nearest
// future confirmed arrival with days-until, or is marked fully open.
//
// Only confirmed (including invoiced) reservations count as activity.
func BuildDailyActivity(date time.Time, properties []models.Property, reservations []models.Reservation, channels []models.Channel, clients []models.Client) []models.PropertyDailyStatus {
	day := DayStart(date)

	channelNames := make(map[utils.SixID]string, len(channels))
	for _, c := range channels {
		channelNames[c.ID] = c.Name
	}
	clientNames := make(map[utils.SixID]string, len(clients))
	for _, c := range clients {
		clientNames[c.ID] = c.Name
	}

	byProperty := make(map[utils.SixID][]*models.Reservation)
	for i := range reservations {
		res := &reservations[i]
		if res.Status != models.ReservationConfirmed || res.Deleted {
			continue
		}
		byProperty[res.PropertyID] = append(byProperty[res.PropertyID], res)
	}

	ref := func(res *models.Reservation) *models.ReservationRef {
		return &models.ReservationRef{
			ReservationID: res.ID,
			ClientName:    clientNames[res.ClientID],
			ChannelName:   channelNames[res.ChannelID],
			Arrival:       DayStart(res.Arrival),
			Departure:     DayStart(res.Departure),
			Nights:        res.Nights,
		}
	}

	statuses := make([]models.PropertyDailyStatus, 0, len(properties))
	for _, p := range properties {
		status := models.PropertyDailyStatus{
			PropertyID:   p.ID,
			PropertyName: p.Name,
			Date:         day,
		}

		var nextArrival *models.Reservation
		for _, res := range byProperty[p.ID] {
			arrival := DayStart(res.Arrival)
			departure := DayStart(res.Departure)

			switch {
			case arrival.Equal(day):
				status.Arrival = ref(res)
			case departure.Equal(day):
				status.Departure = ref(res)
			case arrival.Before(day) && departure.After(day):
				status.Staying = ref(res)
			case arrival.After(day):
				if nextArrival == nil || arrival.Before(DayStart(nextArrival.Arrival)) {
					nextArrival = res
				}
			}
		}

		if status.Arrival == nil && status.Departure == nil && status.Staying == nil {
			status.Free = true
			if nextArrival != nil {
				arrival := DayStart(nextArrival.Arrival)
				status.NextArrival = &arrival
				status.DaysUntilArrival = NightsBetween(day, arrival)
			} else {
				status.FullyOpen = true
			}
		}

		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].PropertyName < statuses[j].PropertyName
	})
	return statuses
}
