package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/moneta-app/moneta-backend/internal/config"
	"github.com/moneta-app/moneta-backend/internal/handler"
	"github.com/moneta-app/moneta-backend/internal/middleware"
	"github.com/moneta-app/moneta-backend/internal/repository/postgres"
	"github.com/moneta-app/moneta-backend/internal/repository/storage"
	"github.com/moneta-app/moneta-backend/internal/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Object storage is optional; exports and receipts degrade without it
	var store storage.ObjectStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3ObjectStore(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
		store = s3Store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Object storage enabled")
	}

	// Initialize repositories
	expenseRepo := postgres.NewExpenseRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)

	// Initialize services
	clock := service.SystemClock()
	summaryService := service.NewSummaryService(expenseRepo, categoryRepo, clock)
	trendService := service.NewTrendService(expenseRepo, clock)
	budgetAnalysisService := service.NewBudgetAnalysisService(budgetRepo, expenseRepo, categoryRepo, clock)
	insightService := service.NewInsightService(summaryService, trendService, budgetAnalysisService, expenseRepo, clock)
	comparisonService := service.NewComparisonService(expenseRepo)
	savingsService := service.NewSavingsService(summaryService, expenseRepo, categoryRepo, clock)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo, clock, summaryService)
	categoryService := service.NewCategoryService(categoryRepo, expenseRepo, summaryService)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo, summaryService)
	exportService := service.NewExportService(expenseRepo, categoryRepo, store, clock)
	receiptService := service.NewReceiptService(expenseRepo, store)

	// Initialize handlers
	expenseHandler := handler.NewExpenseHandler(expenseService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	analyticsHandler := handler.NewAnalyticsHandler(summaryService, trendService, budgetAnalysisService, insightService, comparisonService, savingsService)
	exportHandler := handler.NewExportHandler(exportService)
	receiptHandler := handler.NewReceiptHandler(receiptService)

	// Rate limiter shared across routes
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, middleware.StaticTokenAuth(cfg.APIToken), rateLimiter,
		expenseHandler, categoryHandler, budgetHandler, analyticsHandler, exportHandler, receiptHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
