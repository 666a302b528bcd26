package routes

import (
	"github.com/gin-gonic/gin"

	"bidapos/internal/handlers"
	"bidapos/internal/middleware"
)

func SetupProductRoutes(r *gin.RouterGroup, productHandler *handlers.ProductHandler, jwtSecret string) {
	products := r.Group("/products")
	products.Use(middleware.AuthRequired(jwtSecret))
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	admin := r.Group("/products")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("", productHandler.CreateProduct)
		admin.PUT("/:id", productHandler.UpdateProduct)
		admin.DELETE("/:id", productHandler.DeleteProduct)
	}
}
