package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/api"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/cache"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/config"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/db"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/services"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/tasks"
)

var runMode = flag.String("m", "all", "Run mode: 'api', 'bg' (background tasks), 'all' (default)")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*runMode)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Database
	mongoClient, mongoDb, err := db.ConnectDB(cfg.MongoURI, cfg.MongoDbName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.DisconnectDB(mongoClient); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	// Initialize Cache (Redis)
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer func() {
		if err := cache.DisconnectRedis(redisClient); err != nil {
			log.Printf("Error disconnecting from Redis: %v", err)
		}
	}()

	// Initialize Services needed by the task processor
	catalogService := services.NewCatalogService(mongoDb)
	reservationService := services.NewReservationService(mongoDb)
	analyticsService := services.NewAnalyticsService(catalogService, reservationService)

	taskProcessor := tasks.NewTaskProcessor(cfg, analyticsService)

	var apiSrv *http.Server
	var taskSrv *asynq.Server
	var scheduler *asynq.Scheduler

	log.Printf("Starting application in '%s' mode...", cfg.RunMode)

	apiMode := func() {
		router := api.SetupRouter(cfg, mongoDb)
		apiSrv = &http.Server{
			Addr:    ":" + cfg.ApiPort,
			Handler: router,
		}
		go func() {
			log.Printf("API listening on :%s", cfg.ApiPort)
			if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("API ListenAndServe error: %v", err)
			}
			log.Println("API server stopped.")
		}()
	}

	bgMode := func() {
		srv, mux := tasks.SetupServer(redisClient, taskProcessor)
		taskSrv = srv
		if err := taskSrv.Start(mux); err != nil {
			log.Fatalf("Failed to start task server: %v", err)
		}
		log.Println("Background task server started.")

		scheduler, err = tasks.SetupScheduler(redisClient, cfg)
		if err != nil {
			log.Fatalf("Failed to set up task scheduler: %v", err)
		}
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start task scheduler: %v", err)
		}
		log.Println("Task scheduler started.")
	}

	switch cfg.RunMode {
	case "api":
		apiMode()
	case "bg":
		bgMode()
	case "all":
		apiMode()
		bgMode()
	default:
		log.Fatalf("Invalid run mode specified: %s.", cfg.RunMode)
	}

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("Received signal: %s. Shutting down gracefully...", sig)

	if scheduler != nil {
		log.Println("Shutting down task scheduler...")
		scheduler.Shutdown()
	}
	if taskSrv != nil {
		log.Println("Shutting down background task server...")
		taskSrv.Shutdown()
	}

	if apiSrv != nil {
		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()
		log.Println("Shutting down API server...")
		if err := apiSrv.Shutdown(ctxShutdown); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}

	log.Println("Server gracefully stopped")
}
