package routes

import (
	"github.com/gin-gonic/gin"

	"bidapos/internal/handlers"
	"bidapos/internal/middleware"
)

func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// Staff accounts are managed by admins only
	staff := r.Group("/staff")
	staff.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		staff.POST("", authHandler.CreateStaff)
		staff.GET("", authHandler.ListStaff)
		staff.GET("/:id", authHandler.GetStaff)
		staff.PUT("/:id", authHandler.UpdateStaff)
		staff.DELETE("/:id", authHandler.DeleteStaff)
	}
}
