package routes

import (
	"github.com/c14220110/clinic-backend/internal/pharmacy/controllers"
	"github.com/labstack/echo/v4"
)

// RegisterPharmacyRoutes mounts the stock and sale endpoints on g.
func RegisterPharmacyRoutes(g *echo.Group, stock *controllers.StockController, sales *controllers.SaleController) {
	st := g.Group("/stock")
	st.GET("", stock.ListStock)
	st.POST("", stock.CreateStock)
	st.GET("/out-of-stock", stock.ListOutOfStock)
	st.GET("/export", stock.ExportStock)
	st.PATCH("/bulk/update", sales.BulkDeduct)
	st.GET("/:id", stock.GetStock)
	st.PATCH("/:id", stock.UpdateStock)

	sa := g.Group("/sales")
	sa.POST("", sales.RecordSale)
	sa.GET("", sales.ListSales)
}
