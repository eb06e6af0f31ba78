package product

import (
	"strings"

	"inventrack/internal/core/apperror"
	"inventrack/internal/core/types"
)

// Update is a change request for an existing product. It is exactly one of
// Restock, SaleAdjustment or MetadataEdit.
type Update interface {
	// Edit returns the field changes that accompany the update.
	Edit() MetadataEdit
	// Kind names the variant for logs and metrics.
	Kind() string

	sealed()
}

// MetadataEdit changes descriptive fields and prices. Nil means unchanged.
type MetadataEdit struct {
	Category       *string
	Subcategory    *string
	WholesalePrice *types.Money
	RetailPrice    *types.Money
}

// Restock records fresh stock-in: both quantities become Quantity.
type Restock struct {
	Quantity int64
	MetadataEdit
}

// SaleAdjustment sets the shelf quantity. A decrease is booked as a sale at
// RetailPrice (when given) or the stored retail price.
type SaleAdjustment struct {
	CurrentQuantity int64
	MetadataEdit
}

func (e MetadataEdit) Edit() MetadataEdit { return e }
func (MetadataEdit) Kind() string         { return "metadata" }
func (MetadataEdit) sealed()              {}

func (Restock) Kind() string        { return "restock" }
func (SaleAdjustment) Kind() string { return "sale_adjustment" }

// IsEmpty reports whether the edit changes nothing.
func (e MetadataEdit) IsEmpty() bool {
	return e.Category == nil && e.Subcategory == nil && e.WholesalePrice == nil && e.RetailPrice == nil
}

func (e MetadataEdit) validate() error {
	if e.Category != nil && strings.TrimSpace(*e.Category) == "" {
		return apperror.NewValidation("category must not be empty")
	}
	if e.Subcategory != nil && strings.TrimSpace(*e.Subcategory) == "" {
		return apperror.NewValidation("subcategory must not be empty")
	}
	if e.WholesalePrice != nil && e.WholesalePrice.IsNegative() {
		return apperror.NewValidation("wholesale_price must be a non-negative number")
	}
	if e.RetailPrice != nil && e.RetailPrice.IsNegative() {
		return apperror.NewValidation("retail_price must be a non-negative number")
	}
	return nil
}

// ValidateUpdate checks u before anything is read or written.
func ValidateUpdate(u Update) error {
	switch v := u.(type) {
	case Restock:
		if v.Quantity < 0 {
			return apperror.NewValidation("original_quantity must be a non-negative integer")
		}
	case SaleAdjustment:
		if v.CurrentQuantity < 0 {
			return apperror.NewValidation("quantity must be a non-negative integer")
		}
	case MetadataEdit:
	case nil:
		return apperror.NewValidation("empty update")
	}
	return u.Edit().validate()
}
