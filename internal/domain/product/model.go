// Package product provides the product store and the quantity/pricing rules
// that decide when a stock change is a sale.
package product

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"inventrack/internal/core/types"
)

// Product is one stocked item.
type Product struct {
	ID          int64  `db:"id"`
	ProductCode string `db:"product_code"`
	Category    string `db:"category"`
	Subcategory string `db:"subcategory"`

	// OriginalQuantity is the stock level set by the last restock.
	OriginalQuantity int64 `db:"original_quantity"`
	// CurrentQuantity is what is on the shelf now.
	CurrentQuantity int64 `db:"current_quantity"`

	WholesalePrice types.Money         `db:"wholesale_price"`
	RetailPrice    decimal.NullDecimal `db:"retail_price"`

	// Derived, see RecomputeTotals.
	WholesaleTotalPrice types.Money `db:"wholesale_total_price"`
	RetailTotalPrice    types.Money `db:"retail_total_price"`

	BarcodeValue *string `db:"barcode_value"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// EffectiveRetailPrice is the retail price, or the wholesale price when unset.
func (p *Product) EffectiveRetailPrice() types.Money {
	if p.RetailPrice.Valid {
		return p.RetailPrice.Decimal
	}
	return p.WholesalePrice
}

// RecomputeTotals derives both totals from the current quantity and prices.
func (p *Product) RecomputeTotals() {
	p.WholesaleTotalPrice = types.LineTotal(p.CurrentQuantity, p.WholesalePrice)
	p.RetailTotalPrice = types.LineTotal(p.CurrentQuantity, p.EffectiveRetailPrice())
}

// CheckTotals reports an error when the stored totals disagree with the
// quantity and prices.
func (p *Product) CheckTotals() error {
	if want := types.LineTotal(p.CurrentQuantity, p.WholesalePrice); !p.WholesaleTotalPrice.Equal(want) {
		return fmt.Errorf("product %d: wholesale total %s, want %s", p.ID, p.WholesaleTotalPrice, want)
	}
	if want := types.LineTotal(p.CurrentQuantity, p.EffectiveRetailPrice()); !p.RetailTotalPrice.Equal(want) {
		return fmt.Errorf("product %d: retail total %s, want %s", p.ID, p.RetailTotalPrice, want)
	}
	return nil
}

// Filter narrows List. Empty fields do not filter.
type Filter struct {
	Category    string
	Subcategory string
}

// CreateInput holds the validated fields of a new product.
// RetailPrice nil means "same as wholesale".
type CreateInput struct {
	Category       string
	Subcategory    string
	Quantity       int64
	WholesalePrice types.Money
	RetailPrice    *types.Money
}

// CreateResult is returned by Service.Create.
type CreateResult struct {
	ID          int64
	ProductCode string
}
