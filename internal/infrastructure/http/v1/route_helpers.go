package v1

import (
	"github.com/gin-gonic/gin"

	"inventrack/internal/infrastructure/http/v1/handlers"
)

// registerProductRoutes mounts the product endpoints. The paths are the ones
// the web UI calls.
func registerProductRoutes(rg *gin.RouterGroup, h *handlers.ProductHandler) {
	rg.GET("/products", h.List)
	rg.GET("/categories", h.Categories)
	rg.GET("/subcategories", h.Subcategories)
	rg.GET("/product/:identifier", h.Get)
	rg.POST("/add", h.Create)
	rg.POST("/update/:id", h.Update)
	rg.DELETE("/delete/:id", h.Delete)
}

// registerSalesRoutes mounts the ledger endpoints.
func registerSalesRoutes(rg *gin.RouterGroup, h *handlers.SalesHandler) {
	rg.GET("/sales-summary/monthly", h.MonthlySummary)
	rg.GET("/sales-log", h.Log)
}
