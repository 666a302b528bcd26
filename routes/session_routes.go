package routes

import (
	"github.com/gin-gonic/gin"

	"bidapos/internal/handlers"
	"bidapos/internal/middleware"
)

func SetupSessionRoutes(r *gin.RouterGroup, sessionHandler *handlers.SessionHandler, jwtSecret string) {
	sessions := r.Group("/sessions")
	sessions.Use(middleware.AuthRequired(jwtSecret))
	{
		sessions.POST("", sessionHandler.OpenSession)
		sessions.GET("", sessionHandler.ListSessions)
		sessions.GET("/:id", sessionHandler.GetSession)

		sessions.POST("/:id/items", sessionHandler.AddItem)
		sessions.PATCH("/:id/items/:itemId", sessionHandler.UpdateItem)
		sessions.DELETE("/:id/items/:itemId", sessionHandler.RemoveItem)

		sessions.POST("/:id/preview-close", sessionHandler.PreviewClose)
		sessions.POST("/:id/checkout", sessionHandler.Checkout)
		sessions.POST("/:id/void", sessionHandler.VoidSession)
	}
}
