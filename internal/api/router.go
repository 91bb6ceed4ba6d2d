package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/api/handlers"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/api/middleware"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/config"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/services"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database) *gin.Engine {
	// Initialize services needed by API handlers
	catalogService := services.NewCatalogService(db)
	reservationService := services.NewReservationService(db)
	analyticsService := services.NewAnalyticsService(catalogService, reservationService)

	r := gin.Default()

	// Apply global middleware first (order matters)
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)
	r.Use(middleware.CORSMiddleware(cfg.CorsAllowedOrigin))
	r.Use(rateLimiter.Limit())

	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		tenant := v1.Group("/tenant/:tenant_id")
		{
			tenant.GET("/kpis", analyticsHandler.GetKPIs)
			tenant.GET("/daily", analyticsHandler.GetDailyActivity)
			tenant.GET("/gaps", analyticsHandler.GetAvailabilityGaps)
			tenant.POST("/proposals/sweep", analyticsHandler.SweepProposals)
		}
	}

	return r
}
