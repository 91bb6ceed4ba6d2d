package analytics

import (
	"sort"
	"time"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/models"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// Aggregator folds apportioned reservation slices into per-property,
// per-channel and global rollups. Feed it the invoiced set first, then the
// confirmed set; reservations already counted as invoiced are skipped on the
// confirmed pass, so the two sets stay additive without double counting.
type Aggregator struct {
	tenantID    utils.SixID
	periodStart time.Time
	periodEnd   time.Time

	global     models.KpiRollup
	properties map[utils.SixID]*models.PropertyKpi
	propOrder  []utils.SixID
	channels   map[utils.SixID]*channelAccum
	chanNames  map[utils.SixID]string
	seen       map[utils.SixID]bool
}

type channelAccum struct {
	kpi    models.ChannelKpi
	groups map[string]bool
}

// NewAggregator prepares rollup buckets for every property of the tenant.
// Callers must reject an empty property set before this point; with zero
// properties every figure would be meaningless.
func NewAggregator(tenantID utils.SixID, periodStart, periodEnd time.Time, properties []models.Property, channels []models.Channel) *Aggregator {
	days := DaysInPeriod(periodStart, periodEnd)

	a := &Aggregator{
		tenantID:    tenantID,
		periodStart: DayStart(periodStart),
		periodEnd:   DayStart(periodEnd),
		properties:  make(map[utils.SixID]*models.PropertyKpi, len(properties)),
		channels:    make(map[utils.SixID]*channelAccum),
		chanNames:   make(map[utils.SixID]string, len(channels)),
		seen:        make(map[utils.SixID]bool),
	}

	for _, p := range properties {
		a.properties[p.ID] = &models.PropertyKpi{
			PropertyID:   p.ID,
			PropertyName: p.Name,
			KpiRollup:    models.KpiRollup{NightsAvailable: days},
		}
		a.propOrder = append(a.propOrder, p.ID)
	}
	a.global.NightsAvailable = len(properties) * days

	for _, c := range channels {
		a.chanNames[c.ID] = c.Name
	}

	return a
}

// Add folds one slice into the rollups. Invoiced slices count in both the
// invoiced and confirmed figures (invoiced is a subset of confirmed); a slice
// whose reservation was already added is ignored.
func (a *Aggregator) Add(slice *ApportionedSlice) {
	if slice == nil || a.seen[slice.ReservationID] {
		return
	}
	a.seen[slice.ReservationID] = true

	prop, ok := a.properties[slice.PropertyID]
	if !ok {
		// Reservation for a property outside the tenant's set; a data gap,
		// not an error. Skip rather than poison the rollups.
		return
	}

	for _, r := range []*models.KpiRollup{&a.global, &prop.KpiRollup} {
		r.NightsOccupiedConfirmed += slice.Nights
		r.RevenueConfirmed += slice.GuestValue
		r.PayoutConfirmed += slice.Payout
		if slice.Invoiced {
			r.NightsOccupiedInvoiced += slice.Nights
			r.RevenueInvoiced += slice.GuestValue
			r.PayoutInvoiced += slice.Payout
		}
		r.ChannelDiscounts += slice.ChannelDiscount
		r.InternalAdjustments += slice.InternalAdjustment
	}

	ch, ok := a.channels[slice.ChannelID]
	if !ok {
		ch = &channelAccum{
			kpi:    models.ChannelKpi{ChannelID: slice.ChannelID, ChannelName: a.chanNames[slice.ChannelID]},
			groups: make(map[string]bool),
		}
		a.channels[slice.ChannelID] = ch
	}
	ch.groups[slice.GroupKey] = true
	ch.kpi.NightsSold += slice.Nights
	ch.kpi.Revenue += slice.GuestValue
	ch.kpi.Payout += slice.Payout
	ch.kpi.ChannelCost += slice.ChannelCost
}

// Result derives the rate figures and returns the finished KpiResult.
// Sorted output keeps responses stable across runs.
func (a *Aggregator) Result() models.KpiResult {
	finalizeRollup(&a.global)

	result := models.KpiResult{
		TenantID:    a.tenantID,
		PeriodStart: a.periodStart,
		PeriodEnd:   a.periodEnd,
		Global:      a.global,
	}

	for _, id := range a.propOrder {
		prop := a.properties[id]
		finalizeRollup(&prop.KpiRollup)
		result.Properties = append(result.Properties, *prop)
	}
	sort.Slice(result.Properties, func(i, j int) bool {
		return result.Properties[i].PropertyName < result.Properties[j].PropertyName
	})

	for _, ch := range a.channels {
		kpi := ch.kpi
		kpi.Bookings = len(ch.groups)
		if kpi.Bookings > 0 {
			kpi.AvgRevenuePerBooking = kpi.Revenue / float64(kpi.Bookings)
			kpi.AvgNightsPerBooking = float64(kpi.NightsSold) / float64(kpi.Bookings)
		}
		result.Channels = append(result.Channels, kpi)
	}
	sort.Slice(result.Channels, func(i, j int) bool {
		return result.Channels[i].ChannelName < result.Channels[j].ChannelName
	})

	return result
}

// finalizeRollup derives occupancy, ADR and RevPAR with zero guards; none of
// the rates may ever come out NaN.
func finalizeRollup(r *models.KpiRollup) {
	if r.NightsAvailable > 0 {
		r.OccupancyRate = float64(r.NightsOccupiedConfirmed) / float64(r.NightsAvailable) * 100
		r.RevPAR = r.RevenueInvoiced / float64(r.NightsAvailable)
	}
	if r.NightsOccupiedInvoiced > 0 {
		r.ADR = r.RevenueInvoiced / float64(r.NightsOccupiedInvoiced)
	}
}
