package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/clients"
	"storefront-service/common/errors"
	"storefront-service/common/logger"
	commonmw "storefront-service/common/middleware"
	"storefront-service/config"
	"storefront-service/controllers"
	"storefront-service/middleware"
	awspkg "storefront-service/pkg/aws"
	"storefront-service/routes"
	"storefront-service/services"
	"storefront-service/session"
	"storefront-service/store"
	"storefront-service/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const serviceName = "storefront"

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- 1. AWS, logging and secrets ---
	awsCfg, err := awspkg.LoadAWSConfig(ctx)
	if err != nil {
		logger.Initialize(cfg.Environment)
		logger.Log.Fatal("Failed to load AWS config", zap.Error(err))
	}

	if cfg.CloudWatchEnabled {
		cwLogs, err := awspkg.NewCloudWatchLogsClient(ctx, awsCfg, serviceName)
		if err != nil {
			logger.Initialize(cfg.Environment)
			logger.Log.Warn("CloudWatch Logs unavailable, logging to stdout only", zap.Error(err))
		} else {
			logger.InitializeWithWriter(cfg.Environment, cwLogs)
		}
	} else {
		logger.Initialize(cfg.Environment)
	}
	defer logger.Sync()

	if cfg.SessionSecret == "" && cfg.SessionSecretName != "" {
		secret, err := awspkg.NewSecretsClient(awsCfg).SessionSecret(ctx, cfg.SessionSecretName, "SESSION_SECRET")
		if err != nil {
			logger.Log.Fatal("Failed to read session secret", zap.String("secret", cfg.SessionSecretName), zap.Error(err))
		}
		cfg.SessionSecret = secret
	}
	if cfg.SessionSecret == "" {
		logger.Log.Fatal("SESSION_SECRET or SESSION_SECRET_NAME must be set")
	}

	metricsClient := awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchEnabled)

	// --- 2. Visitor store and catalog cache ---
	var (
		visitors    store.VisitorStore
		cache       clients.Cache
		redisClient *redis.Client
	)
	if cfg.RedisURL != "" {
		redisClient, err = store.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		visitors = store.NewRedisStore(redisClient, cfg.VisitorTTL)
		cache = clients.NewRedisCache(redisClient, cfg.CatalogCacheTTL, metricsClient)
		logger.Log.Info("Using Redis visitor store and catalog cache")
	} else {
		memory := store.NewMemoryStore(cfg.VisitorTTL)
		go memory.RunSweeper(ctx, 10*time.Minute)
		visitors = memory
		logger.Log.Info("REDIS_URL not set, using in-memory visitor store without catalog cache")
	}

	// --- 3. Dependency Injection ---
	api := clients.NewCommerceClient(clients.NewAPIClient(cfg.APIBaseURL, cfg.RequestTimeout).WithMetrics(metricsClient), cache)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionMaxAge, cfg.SecureCookies)

	carts := services.NewCartService(api, cfg.CartDebounce, metricsClient)
	catalog := services.NewCatalogService(api, cfg.PageSize)
	wishlist := services.NewWishlistService(api)
	accounts := services.NewAccountService(api)
	checkout := services.NewCheckoutService(api, cfg.PublicURL, metricsClient)

	ctl := routes.Controllers{
		Catalog:  controllers.NewCatalogController(catalog, carts, wishlist),
		Cart:     controllers.NewCartController(carts),
		Wishlist: controllers.NewWishlistController(wishlist, carts),
		Auth:     controllers.NewAuthController(accounts, carts, sessions),
		Account:  controllers.NewAccountController(accounts, carts, sessions),
		Checkout: controllers.NewCheckoutController(checkout, accounts),
	}

	// --- 4. HTTP Server & Middleware ---
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	tmpl, err := views.Load(cfg.Currency)
	if err != nil {
		logger.Log.Fatal("Failed to parse templates", zap.Error(err))
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery())
	r.Use(commonmw.RequestID())
	r.Use(commonmw.RequestLogger(logger.Log))
	r.Use(errors.ErrorMiddleware())
	r.Use(commonmw.MetricsMiddleware(metricsClient, serviceName))
	r.Use(commonmw.SecurityHeaders(cfg.ImageHosts...))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		if redisClient != nil {
			if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DEGRADED", "redis": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.StaticFS("/static", views.Static())

	pages := r.Group("/")
	pages.Use(middleware.Visitor(visitors, cfg.SecureCookies))
	pages.Use(middleware.Session(sessions, carts))
	pages.Use(middleware.Gate())
	r.NoRoute(middleware.Visitor(visitors, cfg.SecureCookies), middleware.Session(sessions, carts), controllers.NotFound)

	authLimiter := commonmw.NewRateLimiter(ctx, rate.Every(time.Second), 10, 10*time.Minute)
	routes.RegisterRoutes(pages, ctl, authLimiter)

	// --- 5. Graceful Shutdown ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Storefront starting", zap.String("port", cfg.Port), zap.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down storefront...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Log.Error("Failed to close Redis", zap.Error(err))
		}
	}
	logger.Log.Info("Storefront stopped gracefully")
}
