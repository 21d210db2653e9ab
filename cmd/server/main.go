package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	advertisingapp "github.com/tourdesk/backend/internal/application/advertising"
	bookingapp "github.com/tourdesk/backend/internal/application/booking"
	financeapp "github.com/tourdesk/backend/internal/application/finance"
	reportapp "github.com/tourdesk/backend/internal/application/report"
	"github.com/tourdesk/backend/internal/domain/report"
	"github.com/tourdesk/backend/internal/domain/tour"
	"github.com/tourdesk/backend/internal/infrastructure/config"
	"github.com/tourdesk/backend/internal/infrastructure/logger"
	"github.com/tourdesk/backend/internal/infrastructure/persistence"
	"github.com/tourdesk/backend/internal/infrastructure/scheduler"
	"github.com/tourdesk/backend/internal/interfaces/http/handler"
	"github.com/tourdesk/backend/internal/interfaces/http/middleware"
	"github.com/tourdesk/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting TourDesk Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	adSpendRepo := persistence.NewGormAdSpendRepository(db.DB)
	monthlyCostRepo := persistence.NewGormMonthlyCostRepository(db.DB)

	// Margin table and reporting timezone come from configuration
	margins := tour.NewMarginTable(cfg.Report.TourMargins)
	location := cfg.Report.Location()

	// Initialize application services
	profitabilityService := reportapp.NewProfitabilityService(orderRepo, adSpendRepo, monthlyCostRepo, location, log)
	adSpendService := advertisingapp.NewAdSpendService(adSpendRepo)
	monthlyCostService := financeapp.NewMonthlyCostService(monthlyCostRepo)
	recomputeService := bookingapp.NewRecomputeService(orderRepo, margins, bookingapp.RecomputeConfig{
		MaxOrders:       cfg.Recompute.MaxOrders,
		BatchSize:       cfg.Recompute.BatchSize,
		InterItemDelay:  cfg.Recompute.InterItemDelay,
		InterBatchDelay: cfg.Recompute.InterBatchDelay,
		FailureBackoff:  cfg.Recompute.FailureBackoff,
	}, log)

	// Background recompute scheduler (if enabled)
	if cfg.Recompute.SchedulerEnabled {
		recomputeScheduler := scheduler.NewRecomputeScheduler(scheduler.RecomputeSchedulerConfig{
			Interval: cfg.Recompute.SchedulerInterval,
		}, recomputeService, log)
		if err := recomputeScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start recompute scheduler", zap.Error(err))
		}
		defer func() {
			if err := recomputeScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping recompute scheduler", zap.Error(err))
			}
		}()
		log.Info("Recompute scheduler started",
			zap.Duration("interval", cfg.Recompute.SchedulerInterval),
		)
	}

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler()
	reportHandler := handler.NewReportHandler(profitabilityService, report.Granularity(cfg.Report.DefaultGranularity))
	recomputeHandler := handler.NewRecomputeHandler(recomputeService)
	adSpendHandler := handler.NewAdSpendHandler(adSpendService)
	monthlyCostHandler := handler.NewMonthlyCostHandler(monthlyCostService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))
	engine.GET("/ready", readyHandler(db))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(reportHandler).
		Register(recomputeHandler).
		Register(adSpendHandler).
		Register(monthlyCostHandler)
	r.Setup()

	// Create HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

// readyHandler reports readiness with connection pool statistics
func readyHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		stats, err := db.Stats()
		if err != nil {
			reqLog.Warn("Readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"pool":   stats,
		})
	}
}
