package routes

import (
	"github.com/gin-gonic/gin"

	"bidapos/internal/handlers"
	"bidapos/internal/middleware"
)

func SetupBillRoutes(r *gin.RouterGroup, billHandler *handlers.BillHandler, reportHandler *handlers.ReportHandler, jwtSecret string) {
	bills := r.Group("/bills")
	bills.Use(middleware.AuthRequired(jwtSecret))
	{
		bills.GET("", billHandler.ListBills)
		bills.GET("/:id", billHandler.GetBill)
		bills.PATCH("/:id/pay", billHandler.PayBill)
	}

	reports := r.Group("/reports")
	reports.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		reports.GET("/summary", reportHandler.Summary)
		reports.GET("/by-day", reportHandler.RevenueByDay)
		reports.GET("/by-table", reportHandler.RevenueByTable)
		reports.GET("/top-products", reportHandler.TopProducts)
	}
}
