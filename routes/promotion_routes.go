package routes

import (
	"github.com/gin-gonic/gin"

	"bidapos/internal/handlers"
	"bidapos/internal/middleware"
)

func SetupPromotionRoutes(r *gin.RouterGroup, promotionHandler *handlers.PromotionHandler, jwtSecret string) {
	promotions := r.Group("/promotions")
	promotions.Use(middleware.AuthRequired(jwtSecret))
	{
		promotions.GET("", promotionHandler.ListPromotions)
		promotions.GET("/:id", promotionHandler.GetPromotion)
		promotions.POST("/:id/preview", promotionHandler.PreviewPromotion)
		promotions.POST("/quote", promotionHandler.Quote)
	}

	// Changing the promotion catalog is an admin operation
	admin := r.Group("/promotions")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("", promotionHandler.CreatePromotion)
		admin.PUT("/:id", promotionHandler.UpdatePromotion)
		admin.DELETE("/:id", promotionHandler.DeletePromotion)
	}
}
