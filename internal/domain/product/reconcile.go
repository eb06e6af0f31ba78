package product

import (
	"strings"

	"github.com/shopspring/decimal"

	"inventrack/internal/core/types"
)

// Sale is the ledger entry implied by a SaleAdjustment that lowers stock.
type Sale struct {
	QuantitySold                int64
	SalePricePerItem            types.Money
	WholesalePricePerItemAtSale types.Money
}

// Reconcile applies u to prior and returns the product to store, plus the
// sale to book when the update is a stock decrease through SaleAdjustment.
//
// prior is not modified. u must have passed ValidateUpdate.
func Reconcile(prior Product, u Update) (Product, *Sale) {
	next := prior
	edit := u.Edit()

	if edit.Category != nil {
		next.Category = strings.TrimSpace(*edit.Category)
	}
	if edit.Subcategory != nil {
		next.Subcategory = strings.TrimSpace(*edit.Subcategory)
	}
	if edit.WholesalePrice != nil {
		next.WholesalePrice = *edit.WholesalePrice
	}
	if edit.RetailPrice != nil {
		next.RetailPrice = decimal.NewNullDecimal(*edit.RetailPrice)
	}
	if !next.RetailPrice.Valid {
		next.RetailPrice = decimal.NewNullDecimal(next.WholesalePrice)
	}

	var sale *Sale
	switch v := u.(type) {
	case Restock:
		next.OriginalQuantity = v.Quantity
		next.CurrentQuantity = v.Quantity
	case SaleAdjustment:
		next.CurrentQuantity = v.CurrentQuantity
		if v.CurrentQuantity < prior.CurrentQuantity {
			price := prior.EffectiveRetailPrice()
			if edit.RetailPrice != nil {
				price = *edit.RetailPrice
			}
			sale = &Sale{
				QuantitySold:                prior.CurrentQuantity - v.CurrentQuantity,
				SalePricePerItem:            price,
				WholesalePricePerItemAtSale: prior.WholesalePrice,
			}
		}
	}

	next.RecomputeTotals()
	return next, sale
}

// NewProduct builds a product from validated input and its assigned code.
func NewProduct(in CreateInput, code string) Product {
	p := Product{
		ProductCode:      code,
		Category:         strings.TrimSpace(in.Category),
		Subcategory:      strings.TrimSpace(in.Subcategory),
		OriginalQuantity: in.Quantity,
		CurrentQuantity:  in.Quantity,
		WholesalePrice:   in.WholesalePrice,
		RetailPrice:      decimal.NewNullDecimal(in.WholesalePrice),
		BarcodeValue:     &code,
	}
	if in.RetailPrice != nil && !in.RetailPrice.IsNegative() {
		p.RetailPrice = decimal.NewNullDecimal(*in.RetailPrice)
	}
	p.RecomputeTotals()
	return p
}
