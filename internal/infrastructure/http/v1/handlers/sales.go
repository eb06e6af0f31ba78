package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"inventrack/internal/domain/sales"
	"inventrack/internal/infrastructure/http/v1/dto"
)

// SalesService is the ledger as seen by the HTTP layer.
type SalesService interface {
	MonthlySummary(ctx context.Context) ([]sales.MonthlySummary, error)
	ListByProduct(ctx context.Context, productID int64) ([]sales.Entry, error)
}

// SalesHandler handles ledger endpoints.
type SalesHandler struct {
	*BaseHandler
	service SalesService
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(base *BaseHandler, service SalesService) *SalesHandler {
	return &SalesHandler{BaseHandler: base, service: service}
}

// MonthlySummary handles GET /api/sales-summary/monthly
func (h *SalesHandler) MonthlySummary(c *gin.Context) {
	items, err := h.service.MonthlySummary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromMonthlySummaries(items))
}

// Log handles GET /api/sales-log?product_id=
func (h *SalesHandler) Log(c *gin.Context) {
	var q dto.SalesLogQuery
	if !h.BindQuery(c, &q) {
		return
	}

	items, err := h.service.ListByProduct(c.Request.Context(), q.ProductID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromEntries(items))
}
