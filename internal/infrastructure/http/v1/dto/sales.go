package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"inventrack/internal/domain/sales"
)

// SalesLogQuery is the query of GET /api/sales-log.
type SalesLogQuery struct {
	ProductID int64 `form:"product_id" binding:"required,min=1"`
}

// MonthlySummaryResponse is one month of GET /api/sales-summary/monthly.
type MonthlySummaryResponse struct {
	SaleMonth      string          `json:"sale_month"`
	TotalItemsSold int64           `json:"total_items_sold"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalCOGS      decimal.Decimal `json:"total_cogs"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
}

// FromMonthlySummaries converts the report rows.
func FromMonthlySummaries(items []sales.MonthlySummary) []MonthlySummaryResponse {
	out := make([]MonthlySummaryResponse, 0, len(items))
	for _, m := range items {
		out = append(out, MonthlySummaryResponse(m))
	}
	return out
}

// SalesLogEntryResponse is one ledger entry.
type SalesLogEntryResponse struct {
	LogID                       int64           `json:"log_id"`
	ProductID                   int64           `json:"product_id"`
	QuantitySold                int64           `json:"quantity_sold"`
	SalePricePerItem            decimal.Decimal `json:"sale_price_per_item"`
	WholesalePricePerItemAtSale decimal.Decimal `json:"wholesale_price_per_item_at_sale"`
	SaleTimestamp               time.Time       `json:"sale_timestamp"`
}

// FromEntries converts ledger entries.
func FromEntries(items []sales.Entry) []SalesLogEntryResponse {
	out := make([]SalesLogEntryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, SalesLogEntryResponse(e))
	}
	return out
}
