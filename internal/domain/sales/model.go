// Package sales provides the append-only sales ledger and its monthly report.
package sales

import (
	"time"

	"inventrack/internal/core/apperror"
	"inventrack/internal/core/types"
)

// Entry is one completed sale. Entries are never updated or deleted.
//
// ProductID is a plain reference: deleting the product keeps its entries.
type Entry struct {
	LogID                       int64       `db:"log_id"`
	ProductID                   int64       `db:"product_id"`
	QuantitySold                int64       `db:"quantity_sold"`
	SalePricePerItem            types.Money `db:"sale_price_per_item"`
	WholesalePricePerItemAtSale types.Money `db:"wholesale_price_per_item_at_sale"`
	SaleTimestamp               time.Time   `db:"sale_timestamp"`
}

// Validate checks an entry before it is appended.
func (e Entry) Validate() error {
	if e.ProductID <= 0 {
		return apperror.NewValidation("sale must reference a product").
			WithDetail("product_id", e.ProductID)
	}
	if e.QuantitySold <= 0 {
		return apperror.NewValidation("quantity sold must be positive").
			WithDetail("quantity_sold", e.QuantitySold)
	}
	if e.SalePricePerItem.IsNegative() {
		return apperror.NewValidation("sale price must not be negative")
	}
	if e.WholesalePricePerItemAtSale.IsNegative() {
		return apperror.NewValidation("wholesale price at sale must not be negative")
	}
	return nil
}

// Revenue returns quantity × sale price.
func (e Entry) Revenue() types.Money {
	return types.LineTotal(e.QuantitySold, e.SalePricePerItem)
}

// COGS returns quantity × wholesale price captured at sale time.
func (e Entry) COGS() types.Money {
	return types.LineTotal(e.QuantitySold, e.WholesalePricePerItemAtSale)
}

// MonthlySummary aggregates the entries of one calendar month (UTC).
type MonthlySummary struct {
	SaleMonth      string      `db:"sale_month"` // YYYY-MM
	TotalItemsSold int64       `db:"total_items_sold"`
	TotalRevenue   types.Money `db:"total_revenue"`
	TotalCOGS      types.Money `db:"total_cogs"`
	TotalProfit    types.Money `db:"total_profit"`
}

// MonthKey formats t as the summary month key.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
