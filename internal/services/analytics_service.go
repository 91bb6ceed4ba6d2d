package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/analytics"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/db"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/models"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// ErrNoProperties signals a misconfigured tenant: every rollup is meaningless
// without a property set, so this is a hard failure, unlike all the other
// empty-result cases which degrade to zero-valued metrics.
var ErrNoProperties = errors.New("no properties found for tenant")

// ErrInvalidPeriod rejects a missing or inverted date range before any store
// access happens.
var ErrInvalidPeriod = errors.New("invalid report period")

// DefaultProposalExpiry is how long a payment-pending proposal may sit before
// the sweep expires it.
const DefaultProposalExpiry = 48 * time.Hour

// IAnalyticsService is the analytics and lifecycle surface of the engine.
// Every entry point takes the tenant and date range explicitly; no ambient
// tenant state is involved.
type IAnalyticsService interface {
	ComputeKPIs(ctx context.Context, tenantID utils.SixID, periodStart, periodEnd time.Time, channelFilter *utils.SixID) (*models.KpiResult, error)
	ComputeDailyActivity(ctx context.Context, tenantID utils.SixID, date time.Time) ([]models.PropertyDailyStatus, error)
	ComputeAvailabilityGaps(ctx context.Context, tenantID utils.SixID, periodStart, periodEnd time.Time) ([]models.PropertyAvailability, error)
	SweepExpiredProposals(ctx context.Context, tenantID utils.SixID, threshold time.Duration) (*models.SweepSummary, error)
}

// analyticsService implements IAnalyticsService on top of the catalog and
// reservation services. It holds no state of its own; each query re-reads
// fresh inputs, so results stay consistent with concurrent writes at call
// time (reads are not snapshot-isolated across the computation, an accepted
// trade-off for a reporting surface).
type analyticsService struct {
	catalog      ICatalogService
	reservations IReservationService
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(catalog ICatalogService, reservations IReservationService) IAnalyticsService {
	return &analyticsService{
		catalog:      catalog,
		reservations: reservations,
	}
}

func validPeriod(periodStart, periodEnd time.Time) bool {
	return !periodStart.IsZero() && !periodEnd.IsZero() && periodEnd.After(periodStart)
}

// fetchKpiInputs issues the four independent reads of a KPI computation
// concurrently; there is no ordering dependency among them.
func (s *analyticsService) fetchKpiInputs(ctx context.Context, tenantID utils.SixID, periodEnd time.Time) (
	properties []models.Property, periods []models.RatePeriod, channels []models.Channel, reservations []models.Reservation, err error,
) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		properties, err = s.catalog.PropertiesByTenant(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		periods, err = s.catalog.RatePeriodsByTenant(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		channels, err = s.catalog.ChannelsByTenant(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = s.reservations.FindForPeriod(gctx, tenantID, periodEnd)
		return err
	})
	err = g.Wait()
	return
}

func defaultChannelID(channels []models.Channel) utils.SixID {
	for _, c := range channels {
		if c.IsDefault {
			return c.ID
		}
	}
	// No default channel configured: list rates resolve to 0 and no internal
	// adjustment gets attributed. A data gap, not an error.
	return utils.SixID{}
}

func (s *analyticsService) ComputeKPIs(ctx context.Context, tenantID utils.SixID, periodStart, periodEnd time.Time, channelFilter *utils.SixID) (*models.KpiResult, error) {
	if !validPeriod(periodStart, periodEnd) {
		return nil, ErrInvalidPeriod
	}

	properties, periods, channels, reservations, err := s.fetchKpiInputs(ctx, tenantID, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch KPI inputs for tenant %s: %w", tenantID.String(), err)
	}
	if len(properties) == 0 {
		return nil, fmt.Errorf("tenant %s: %w", tenantID.String(), ErrNoProperties)
	}

	defaultChannel := defaultChannelID(channels)
	agg := analytics.NewAggregator(tenantID, periodStart, periodEnd, properties, channels)

	// Invoiced first, then confirmed; the aggregator skips anything already
	// counted, keeping the two sets additive without double counting.
	for _, pass := range []bool{true, false} {
		for i := range reservations {
			res := &reservations[i]
			if res.Invoiced != pass {
				continue
			}
			if channelFilter != nil && res.ChannelID != *channelFilter {
				continue
			}
			agg.Add(analytics.Apportion(res, periodStart, periodEnd, defaultChannel, periods))
		}
	}

	result := agg.Result()
	return &result, nil
}

func (s *analyticsService) ComputeDailyActivity(ctx context.Context, tenantID utils.SixID, date time.Time) ([]models.PropertyDailyStatus, error) {
	if date.IsZero() {
		return nil, ErrInvalidPeriod
	}
	day := analytics.DayStart(date)

	var (
		properties   []models.Property
		channels     []models.Channel
		clients      []models.Client
		reservations []models.Reservation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		properties, err = s.catalog.PropertiesByTenant(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		channels, err = s.catalog.ChannelsByTenant(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = s.catalog.ClientsByTenant(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = s.reservations.FindActiveFrom(gctx, tenantID, day)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch daily activity inputs for tenant %s: %w", tenantID.String(), err)
	}
	if len(properties) == 0 {
		return nil, fmt.Errorf("tenant %s: %w", tenantID.String(), ErrNoProperties)
	}

	return analytics.BuildDailyActivity(day, properties, reservations, channels, clients), nil
}

func (s *analyticsService) ComputeAvailabilityGaps(ctx context.Context, tenantID utils.SixID, periodStart, periodEnd time.Time) ([]models.PropertyAvailability, error) {
	if !validPeriod(periodStart, periodEnd) {
		return nil, ErrInvalidPeriod
	}

	properties, periods, channels, reservations, err := s.fetchKpiInputs(ctx, tenantID, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability inputs for tenant %s: %w", tenantID.String(), err)
	}
	if len(properties) == 0 {
		return nil, fmt.Errorf("tenant %s: %w", tenantID.String(), ErrNoProperties)
	}

	return analytics.BuildAvailabilityGaps(periodStart, periodEnd, properties, reservations, periods, defaultChannelID(channels)), nil
}

// SweepExpiredProposals finds payment-pending reservations older than the
// threshold, groups them by booking group, and expires each group atomically.
// Groups fail independently: an error is logged and counted, never aborting
// the sweep. Re-running is idempotent, an expired row no longer matches the
// pending filter.
func (s *analyticsService) SweepExpiredProposals(ctx context.Context, tenantID utils.SixID, threshold time.Duration) (*models.SweepSummary, error) {
	if threshold <= 0 {
		threshold = DefaultProposalExpiry
	}
	now := time.Now().UTC()
	cutoff := now.Add(-threshold)

	summary := &models.SweepSummary{
		RunID:     uuid.NewString(),
		StartedAt: now,
	}

	stale, err := s.reservations.FindStalePending(ctx, tenantID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to find stale pending reservations: %w", err)
	}
	if len(stale) == 0 {
		return summary, nil
	}

	groups := make(map[string][]utils.SixID)
	for i := range stale {
		key := stale[i].GroupKey()
		groups[key] = append(groups[key], stale[i].ID)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		rowIDs := groups[key]
		var expired int64
		err := db.WithRetries(func() error {
			var err error
			expired, err = s.reservations.ExpireGroup(ctx, key, rowIDs, now)
			return err
		}, 1, db.IsTransientTxError)
		if err != nil {
			// A failed group stays pending and is picked up again next tick.
			log.Printf("[sweep %s] failed to expire group %s (%d rows): %v", summary.RunID, key, len(rowIDs), err)
			summary.GroupsFailed++
			continue
		}
		summary.GroupsExpired++
		summary.RowsExpired += int(expired)
	}

	log.Printf("[sweep %s] expired %d groups (%d rows), %d failed", summary.RunID, summary.GroupsExpired, summary.RowsExpired, summary.GroupsFailed)
	return summary, nil
}
