package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	billingapp "github.com/astris/backend/internal/application/billing"
	forecastapp "github.com/astris/backend/internal/application/forecast"
	identityapp "github.com/astris/backend/internal/application/identity"
	"github.com/astris/backend/internal/infrastructure/auth"
	infrabilling "github.com/astris/backend/internal/infrastructure/billing"
	"github.com/astris/backend/internal/infrastructure/config"
	"github.com/astris/backend/internal/infrastructure/logger"
	"github.com/astris/backend/internal/infrastructure/mail"
	"github.com/astris/backend/internal/infrastructure/persistence"
	"github.com/astris/backend/internal/interfaces/http/handler"
	"github.com/astris/backend/internal/interfaces/http/middleware"
	"github.com/astris/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Astris Forecasting API
//	@version		1.0
//	@description	Financial forecasting backend: account management, forecast projects, P&L and balance sheet rows, billing and entitlements.

//	@contact.name	API Support
//	@contact.email	support@astris.app

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

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

	log.Info("Starting Astris Backend",
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
	userRepo := persistence.NewGormUserRepository(db.DB)
	accountTokenRepo := persistence.NewGormAccountTokenRepository(db.DB)
	billingProfileRepo := persistence.NewGormBillingProfileRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	pnlRowRepo := persistence.NewGormPnlRowRepository(db.DB)
	balanceRowRepo := persistence.NewGormBalanceRowRepository(db.DB)

	// Infrastructure adapters
	jwtService := auth.NewJWTService(cfg.JWT)
	mailSender := mail.NewSender(cfg.App, cfg.Mail, log)
	stripeGateway, err := infrabilling.NewStripeAdapter(cfg.Stripe, log)
	if err != nil {
		log.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, accountTokenRepo, jwtService, mailSender, cfg.App.BaseURL, log)
	entitlementService := billingapp.NewEntitlementService(billingProfileRepo, projectRepo, log)
	checkoutService := billingapp.NewCheckoutService(billingProfileRepo, stripeGateway, log)
	webhookService := billingapp.NewWebhookService(billingProfileRepo, stripeGateway, cfg.Stripe.WebhookSecret, log)
	projectService := forecastapp.NewProjectService(projectRepo, entitlementService, log)
	pnlService := forecastapp.NewPnlService(projectRepo, pnlRowRepo, log)
	balanceService := forecastapp.NewBalanceService(projectRepo, balanceRowRepo, pnlRowRepo, log)
	cashflowService := forecastapp.NewCashflowService(projectRepo, pnlRowRepo, balanceRowRepo, log)
	dashboardService := forecastapp.NewDashboardService(projectRepo, pnlRowRepo, balanceRowRepo, log)

	// HTTP handlers
	handlers := router.Handlers{
		System:    handler.NewSystemHandler(),
		Auth:      handler.NewAuthHandler(authService),
		Project:   handler.NewProjectHandler(projectService),
		Pnl:       handler.NewPnlHandler(pnlService),
		Balance:   handler.NewBalanceHandler(balanceService),
		Aggregate: handler.NewAggregateHandler(cashflowService, dashboardService),
		Billing:   handler.NewBillingHandler(entitlementService, checkoutService),
		Webhook:   handler.NewStripeWebhookHandler(webhookService),
	}

	// Set gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom validators
	middleware.SetupValidator()

	engine := gin.New()

	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	// Global middleware
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes.
	// The Stripe webhook authenticates with a signature header instead
	// of a bearer token, so it is listed among the public paths.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/billing/webhook",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/auth",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Stricter rate limiting for credential endpoints (if enabled)
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRateLimit := middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			return c.ClientIP()
		})
		r.Use(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/v1/auth/") {
				authRateLimit(c)
				return
			}
			c.Next()
		})
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}

	r.Register(router.Build(handlers)...)
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
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
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
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
