package routes

import (
	"github.com/gin-gonic/gin"

	"bidapos/internal/handlers"
	"bidapos/internal/middleware"
)

// SetupFloorRoutes wires tables and areas, the physical layout of the club.
func SetupFloorRoutes(r *gin.RouterGroup, tableHandler *handlers.TableHandler, areaHandler *handlers.AreaHandler, jwtSecret string) {
	tables := r.Group("/tables")
	tables.Use(middleware.AuthRequired(jwtSecret))
	{
		tables.GET("", tableHandler.ListTables)
		tables.GET("/:id", tableHandler.GetTable)

		// Floor staff flip tables between reserved and maintenance
		tables.PATCH("/:id/status", tableHandler.UpdateTableStatus)
	}

	adminTables := r.Group("/tables")
	adminTables.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		adminTables.POST("", tableHandler.CreateTable)
		adminTables.PATCH("/reorder", tableHandler.ReorderTables)
		adminTables.PUT("/:id", tableHandler.UpdateTable)
		adminTables.DELETE("/:id", tableHandler.DeleteTable)
		adminTables.PATCH("/:id/active", tableHandler.UpdateTableActive)
		adminTables.PATCH("/:id/rate", tableHandler.UpdateTableRate)
	}

	areas := r.Group("/areas")
	areas.Use(middleware.AuthRequired(jwtSecret))
	{
		areas.GET("", areaHandler.ListAreas)
		areas.GET("/:id", areaHandler.GetArea)
	}

	adminAreas := r.Group("/areas")
	adminAreas.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		adminAreas.POST("", areaHandler.CreateArea)
		adminAreas.PUT("/:id", areaHandler.UpdateArea)
		adminAreas.DELETE("/:id", areaHandler.DeleteArea)
	}
}
