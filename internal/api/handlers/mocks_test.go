package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/models"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// MockAnalyticsService implements services.IAnalyticsService
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) ComputeKPIs(ctx context.Context, tenantID utils.SixID, periodStart, periodEnd time.Time, channelFilter *utils.SixID) (*models.KpiResult, error) {
	args := m.Called(ctx, tenantID, periodStart, periodEnd, channelFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KpiResult), args.Error(1)
}

func (m *MockAnalyticsService) ComputeDailyActivity(ctx context.Context, tenantID utils.SixID, date time.Time) ([]models.PropertyDailyStatus, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropertyDailyStatus), args.Error(1)
}

func (m *MockAnalyticsService) ComputeAvailabilityGaps(ctx context.Context, tenantID utils.SixID, periodStart, periodEnd time.Time) ([]models.PropertyAvailability, error) {
	args := m.Called(ctx, tenantID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropertyAvailability), args.Error(1)
}

func (m *MockAnalyticsService) SweepExpiredProposals(ctx context.Context, tenantID utils.SixID, threshold time.Duration) (*models.SweepSummary, error) {
	args := m.Called(ctx, tenantID, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SweepSummary), args.Error(1)
}
