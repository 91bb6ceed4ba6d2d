package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/api/handlers"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/models"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/services"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

func setupTestRouter(mockAnalytics *MockAnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewAnalyticsHandler(mockAnalytics)

	tenant := r.Group("/v1/tenant/:tenant_id")
	tenant.GET("/kpis", h.GetKPIs)
	tenant.GET("/daily", h.GetDailyActivity)
	tenant.GET("/gaps", h.GetAvailabilityGaps)
	tenant.POST("/proposals/sweep", h.SweepProposals)
	return r
}

func performRequest(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetKPIs_Success(t *testing.T) {
	mockAnalytics := new(MockAnalyticsService)
	tenantID := utils.NewSixID()
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)

	result := &models.KpiResult{
		TenantID:    tenantID,
		PeriodStart: from,
		PeriodEnd:   to,
		Global:      models.KpiRollup{NightsAvailable: 30, OccupancyRate: 40},
	}
	mockAnalytics.On("ComputeKPIs", mock.Anything, tenantID, from, to, (*utils.SixID)(nil)).Return(result, nil)

	router := setupTestRouter(mockAnalytics)
	w := performRequest(router, "GET", fmt.Sprintf("/v1/tenant/%s/kpis?from=2025-08-01&to=2025-08-31", tenantID.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	var body models.KpiResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 30, body.Global.NightsAvailable)
	assert.Equal(t, 40.0, body.Global.OccupancyRate)
	mockAnalytics.AssertExpectations(t)
}

func TestGetKPIs_ChannelFilterPassedThrough(t *testing.T) {
	mockAnalytics := new(MockAnalyticsService)
	tenantID := utils.NewSixID()
	channelID := utils.NewSixID()

	mockAnalytics.On("ComputeKPIs", mock.Anything, tenantID, mock.Anything, mock.Anything, &channelID).
		Return(&models.KpiResult{TenantID: tenantID}, nil)

	router := setupTestRouter(mockAnalytics)
	w := performRequest(router, "GET", fmt.Sprintf("/v1/tenant/%s/kpis?from=2025-08-01&to=2025-08-31&channel=%s", tenantID.String(), channelID.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	mockAnalytics.AssertExpectations(t)
}

func TestGetKPIs_MissingDates(t *testing.T) {
	mockAnalytics := new(MockAnalyticsService)
	router := setupTestRouter(mockAnalytics)

	w := performRequest(router, "GET", fmt.Sprintf("/v1/tenant/%s/kpis?to=2025-08-31", utils.NewSixID().String()))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, "GET", fmt.Sprintf("/v1/tenant/%s/kpis?from=2025-08-01&to=31/08/2025", utils.NewSixID().String()))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockAnalytics.AssertNotCalled(t, "ComputeKPIs", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetKPIs_InvalidTenant(t *testing.T) {
	mockAnalytics := new(MockAnalyticsService)
	router := setupTestRouter(mockAnalytics)

	w := performRequest(router, "GET", "/v1/tenant/not-valid!/kpis?from=2025-08-01&to=2025-08-31")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAnalytics.AssertNotCalled(t, "ComputeKPIs", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetKPIs_ServiceErrors(t *testing.T) {
	cases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"no properties", fmt.Errorf("tenant x: %w", services.ErrNoProperties), http.StatusNotFound},
		{"invalid period", services.ErrInvalidPeriod, http.StatusBadRequest},
		{"store failure", errors.New("mongo down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockAnalytics := new(MockAnalyticsService)
			mockAnalytics.On("ComputeKPIs", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tc.serviceErr)

			router := setupTestRouter(mockAnalytics)
			w := performRequest(router, "GET", fmt.Sprintf("/v1/tenant/%s/kpis?from=2025-08-01&to=2025-08-31", utils.NewSixID().String()))

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestGetDailyActivity_ExplicitDate(t *testing.T) {
	mockAnalytics := new(MockAnalyticsService)
	tenantID := utils.NewSixID()
	day := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	statuses := []models.PropertyDailyStatus{{PropertyName: "Cabaña 1", FullyOpen: true}}
	mockAnalytics.On("ComputeDailyActivity", mock.Anything, tenantID, day).Return(statuses, nil)

	router := setupTestRouter(mockAnalytics)
	w := performRequest(router, "GET", fmt.Sprintf("/v1/tenant/%s/daily?date=2025-08-15", tenantID.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Date       string                       `json:"date"`
		Properties []models.PropertyDailyStatus `json:"properties"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2025-08-15", body.Date)
	assert.Len(t, body.Properties, 1)
	mockAnalytics.AssertExpectations(t)
}

func TestGetDailyActivity_DefaultsToToday(t *testing.T) {
	mockAnalytics := new(MockAnalyticsService)
	tenantID := utils.NewSixID()

	mockAnalytics.On("ComputeDailyActivity", mock.Anything, tenantID, mock.MatchedBy(func(d time.Time) bool {
		return time.Since(d) < time.Minute
	})).Return([]models.PropertyDailyStatus{}, nil)

	router := setupTestRouter(mockAnalytics)
	w := performRequest(router, "GET", fmt.Sprintf("/v1/tenant/%s/daily", tenantID.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	mockAnalytics.AssertExpectations(t)
}

func TestGetAvailabilityGaps_Success(t *testing.T) {
	mockAnalytics := new(MockAnalyticsService)
	tenantID := utils.NewSixID()

	report := []models.PropertyAvailability{{PropertyName: "Cabaña 1", NightlyRate: 95000}}
	mockAnalytics.On("ComputeAvailabilityGaps", mock.Anything, tenantID, mock.Anything, mock.Anything).Return(report, nil)

	router := setupTestRouter(mockAnalytics)
	w := performRequest(router, "GET", fmt.Sprintf("/v1/tenant/%s/gaps?from=2025-08-01&to=2025-08-31", tenantID.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	mockAnalytics.AssertExpectations(t)
}

func TestSweepProposals_Success(t *testing.T) {
	mockAnalytics := new(MockAnalyticsService)
	tenantID := utils.NewSixID()

	summary := &models.SweepSummary{RunID: "run-1", GroupsExpired: 2, RowsExpired: 5}
	mockAnalytics.On("SweepExpiredProposals", mock.Anything, tenantID, time.Duration(0)).Return(summary, nil)

	router := setupTestRouter(mockAnalytics)
	w := performRequest(router, "POST", fmt.Sprintf("/v1/tenant/%s/proposals/sweep", tenantID.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	var body models.SweepSummary
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.GroupsExpired)
	mockAnalytics.AssertExpectations(t)
}

func TestSweepProposals_ThresholdOverride(t *testing.T) {
	mockAnalytics := new(MockAnalyticsService)
	tenantID := utils.NewSixID()

	mockAnalytics.On("SweepExpiredProposals", mock.Anything, tenantID, 12*time.Hour).
		Return(&models.SweepSummary{RunID: "run-2"}, nil)

	router := setupTestRouter(mockAnalytics)
	w := performRequest(router, "POST", fmt.Sprintf("/v1/tenant/%s/proposals/sweep?threshold_hours=12", tenantID.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	mockAnalytics.AssertExpectations(t)
}

func TestSweepProposals_InvalidThreshold(t *testing.T) {
	mockAnalytics := new(MockAnalyticsService)
	router := setupTestRouter(mockAnalytics)

	w := performRequest(router, "POST", fmt.Sprintf("/v1/tenant/%s/proposals/sweep?threshold_hours=-3", utils.NewSixID().String()))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAnalytics.AssertNotCalled(t, "SweepExpiredProposals", mock.Anything, mock.Anything, mock.Anything)
}
