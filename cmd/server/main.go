package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"bidapos/internal/config"
	"bidapos/internal/handlers"
	"bidapos/internal/repositories/mongodb"
	"bidapos/internal/services"
	"bidapos/internal/utils"
	"bidapos/pkg/cache"
	"bidapos/pkg/database"
	"bidapos/pkg/logger"
	"bidapos/pkg/websocket"
	"bidapos/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	auditLogger, err := logger.NewAuditLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize audit logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		cancelIndexes()
		appLogger.WithError(err).Fatal("Failed to ensure indexes")
	}
	cancelIndexes()

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	cacheService := services.NewCacheService(redisCache, appLogger, "bidapos", utils.PromotionCacheTTL)

	// Repositories
	promotionRepo := mongodb.NewPromotionRepository(db.Database, cacheService)
	tableRepo := mongodb.NewTableRepository(db.Database, cacheService)
	areaRepo := mongodb.NewAreaRepository(db.Database)
	productRepo := mongodb.NewProductRepository(db.Database)
	sessionRepo := mongodb.NewSessionRepository(db.Database)
	billRepo := mongodb.NewBillRepository(db.Database)
	staffRepo := mongodb.NewStaffRepository(db.Database)

	// Real-time fan-out to POS terminals
	wsHandler := websocket.NewHandler()

	// Services
	authService := services.NewAuthService(staffRepo, cacheService, cfg.Security.JWTSecret, auditLogger, appLogger)
	promotionService := services.NewPromotionService(promotionRepo, wsHandler, appLogger)
	tableService := services.NewTableService(tableRepo, sessionRepo, wsHandler, appLogger)
	areaService := services.NewAreaService(areaRepo, tableRepo)
	productService := services.NewProductService(productRepo)
	sessionService := services.NewSessionService(sessionRepo, tableRepo, productRepo, billRepo, promotionService, wsHandler, auditLogger, appLogger)
	billService := services.NewBillService(billRepo, auditLogger, appLogger)
	reportService := services.NewReportService(billRepo, cacheService, appLogger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	routes.SetupRoutes(router, &routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Promotion: handlers.NewPromotionHandler(promotionService),
		Table:     handlers.NewTableHandler(tableService),
		Area:      handlers.NewAreaHandler(areaService),
		Product:   handlers.NewProductHandler(productService),
		Session:   handlers.NewSessionHandler(sessionService),
		Bill:      handlers.NewBillHandler(billService),
		Report:    handlers.NewReportHandler(reportService),
		Health:    handlers.NewHealthHandler(db, cacheService),
		WS:        wsHandler,
	}, cfg.Security.JWTSecret, appLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	// Block until we get a shutdown signal, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}

	appLogger.Info("Server stopped")
}
