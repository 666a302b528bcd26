package routes

import (
	"github.com/gin-gonic/gin"

	"bidapos/internal/handlers"
	"bidapos/internal/middleware"
	"bidapos/pkg/logger"
	"bidapos/pkg/websocket"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Promotion *handlers.PromotionHandler
	Table     *handlers.TableHandler
	Area      *handlers.AreaHandler
	Product   *handlers.ProductHandler
	Session   *handlers.SessionHandler
	Bill      *handlers.BillHandler
	Report    *handlers.ReportHandler
	Health    *handlers.HealthHandler
	WS        *websocket.Handler
}

func SetupRoutes(router *gin.Engine, h *Handlers, jwtSecret string, log *logger.Logger) {
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(gin.Recovery())

	router.GET("/health", h.Health.Health)
	router.GET("/ws", middleware.AuthRequired(jwtSecret), h.WS.HandleWebSocket)

	api := router.Group("/api/v1")

	SetupAuthRoutes(api, h.Auth, jwtSecret)
	SetupPromotionRoutes(api, h.Promotion, jwtSecret)
	SetupFloorRoutes(api, h.Table, h.Area, jwtSecret)
	SetupProductRoutes(api, h.Product, jwtSecret)
	SetupSessionRoutes(api, h.Session, jwtSecret)
	SetupBillRoutes(api, h.Bill, h.Report, jwtSecret)
}
