package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/services"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// AnalyticsHandler handles REST requests for the analytics and lifecycle
// endpoints. All routes are tenant-scoped through the path parameter.
type AnalyticsHandler struct {
	analyticsService services.IAnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.IAnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

func tenantIDParam(c *gin.Context) (utils.SixID, bool) {
	tenantID, err := utils.ParseSixID(c.Param("tenant_id"))
	if err != nil || tenantID.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant ID"})
		return utils.SixID{}, false
	}
	return tenantID, true
}

// dateQuery parses a required YYYY-MM-DD query parameter.
func dateQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: " + key})
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date for " + key + ", expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return parsed, true
}

func (h *AnalyticsHandler) renderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidPeriod):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report period"})
	case errors.Is(err, services.ErrNoProperties):
		c.JSON(http.StatusNotFound, gin.H{"error": "No properties found for tenant"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
	}
}

// GetKPIs handles GET /v1/tenant/:tenant_id/kpis?from=...&to=...&channel=...
func (h *AnalyticsHandler) GetKPIs(c *gin.Context) {
	tenantID, ok := tenantIDParam(c)
	if !ok {
		return
	}
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	var channelFilter *utils.SixID
	if channelParam := c.Query("channel"); channelParam != "" {
		channelID, err := utils.ParseSixID(channelParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid channel ID"})
			return
		}
		channelFilter = &channelID
	}

	result, err := h.analyticsService.ComputeKPIs(c.Request.Context(), tenantID, from, to, channelFilter)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDailyActivity handles GET /v1/tenant/:tenant_id/daily?date=...
// The date defaults to today when absent.
func (h *AnalyticsHandler) GetDailyActivity(c *gin.Context) {
	tenantID, ok := tenantIDParam(c)
	if !ok {
		return
	}

	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	statuses, err := h.analyticsService.ComputeDailyActivity(c.Request.Context(), tenantID, day)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": day.Format(time.DateOnly), "properties": statuses})
}

// GetAvailabilityGaps handles GET /v1/tenant/:tenant_id/gaps?from=...&to=...
func (h *AnalyticsHandler) GetAvailabilityGaps(c *gin.Context) {
	tenantID, ok := tenantIDParam(c)
	if !ok {
		return
	}
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	report, err := h.analyticsService.ComputeAvailabilityGaps(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": report})
}

// SweepProposals handles POST /v1/tenant/:tenant_id/proposals/sweep.
// The optional threshold_hours query overrides the configured expiry window.
func (h *AnalyticsHandler) SweepProposals(c *gin.Context) {
	tenantID, ok := tenantIDParam(c)
	if !ok {
		return
	}

	var threshold time.Duration
	if raw := c.Query("threshold_hours"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid threshold_hours"})
			return
		}
		threshold = time.Duration(hours) * time.Hour
	}

	summary, err := h.analyticsService.SweepExpiredProposals(c.Request.Context(), tenantID, threshold)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run expiry sweep"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
