// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"inventrack/internal/core/apperror"
	"inventrack/internal/core/types"
	"inventrack/internal/domain/product"
)

// --- Request DTOs ---

// ProductFilter is the query of GET /api/products.
type ProductFilter struct {
	Category    string `form:"category"`
	Subcategory string `form:"subcategory"`
}

// ToFilter converts DTO to domain filter.
func (f ProductFilter) ToFilter() product.Filter {
	return product.Filter{Category: f.Category, Subcategory: f.Subcategory}
}

// CreateProductRequest is the body of POST /api/add.
// Numbers may be sent as JSON numbers or numeric strings.
type CreateProductRequest struct {
	Category       string       `json:"category"`
	Subcategory    string       `json:"subcategory"`
	Quantity       types.Number `json:"quantity"`
	WholesalePrice types.Number `json:"wholesale_price"`
	RetailPrice    types.Number `json:"retail_price"`
}

// ToInput validates the request. An unusable retail price falls back to the
// wholesale price.
func (r *CreateProductRequest) ToInput() (product.CreateInput, error) {
	category := strings.TrimSpace(r.Category)
	subcategory := strings.TrimSpace(r.Subcategory)
	if category == "" || subcategory == "" || !r.Quantity.Set || !r.WholesalePrice.Set {
		return product.CreateInput{}, apperror.NewValidation(
			"Category, subcategory, initial quantity and wholesale_price are required.")
	}

	qty, err := types.ParseQuantity(r.Quantity.Raw)
	if err != nil {
		return product.CreateInput{}, apperror.NewValidation("quantity must be a non-negative integer").
			WithDetail("quantity", r.Quantity.Raw)
	}
	wholesale, err := types.ParseMoney(r.WholesalePrice.Raw)
	if err != nil {
		return product.CreateInput{}, apperror.NewValidation("wholesale_price must be a non-negative number").
			WithDetail("wholesale_price", r.WholesalePrice.Raw)
	}

	in := product.CreateInput{
		Category:       category,
		Subcategory:    subcategory,
		Quantity:       qty,
		WholesalePrice: wholesale,
	}
	if r.RetailPrice.Set {
		if retail, err := types.ParseMoney(r.RetailPrice.Raw); err == nil {
			in.RetailPrice = &retail
		}
	}
	return in, nil
}

// UpdateProductRequest is the body of POST /api/update/:id. Absent and null
// fields mean "unchanged".
type UpdateProductRequest struct {
	Category         *string      `json:"category"`
	Subcategory      *string      `json:"subcategory"`
	Quantity         types.Number `json:"quantity"`
	OriginalQuantity types.Number `json:"original_quantity"`
	WholesalePrice   types.Number `json:"wholesale_price"`
	RetailPrice      types.Number `json:"retail_price"`
}

// ToUpdate classifies the request: original_quantity makes it a Restock,
// otherwise quantity makes it a SaleAdjustment, otherwise a MetadataEdit.
func (r *UpdateProductRequest) ToUpdate() (product.Update, error) {
	edit := product.MetadataEdit{
		Category:    r.Category,
		Subcategory: r.Subcategory,
	}
	if r.WholesalePrice.Set {
		v, err := types.ParseMoney(r.WholesalePrice.Raw)
		if err != nil {
			return nil, apperror.NewValidation("wholesale_price must be a non-negative number").
				WithDetail("wholesale_price", r.WholesalePrice.Raw)
		}
		edit.WholesalePrice = &v
	}
	if r.RetailPrice.Set {
		v, err := types.ParseMoney(r.RetailPrice.Raw)
		if err != nil {
			return nil, apperror.NewValidation("retail_price must be a non-negative number").
				WithDetail("retail_price", r.RetailPrice.Raw)
		}
		edit.RetailPrice = &v
	}

	switch {
	case r.OriginalQuantity.Set:
		qty, err := types.ParseQuantity(r.OriginalQuantity.Raw)
		if err != nil {
			return nil, apperror.NewValidation("original_quantity must be a non-negative integer").
				WithDetail("original_quantity", r.OriginalQuantity.Raw)
		}
		return product.Restock{Quantity: qty, MetadataEdit: edit}, nil
	case r.Quantity.Set:
		qty, err := types.ParseQuantity(r.Quantity.Raw)
		if err != nil {
			return nil, apperror.NewValidation("quantity must be a non-negative integer").
				WithDetail("quantity", r.Quantity.Raw)
		}
		return product.SaleAdjustment{CurrentQuantity: qty, MetadataEdit: edit}, nil
	default:
		return edit, nil
	}
}

// --- Response DTOs ---

// ProductResponse is the JSON form of a product.
type ProductResponse struct {
	ID                  int64               `json:"id"`
	ProductCode         string              `json:"product_code"`
	Category            string              `json:"category"`
	Subcategory         string              `json:"subcategory"`
	OriginalQuantity    int64               `json:"original_quantity"`
	CurrentQuantity     int64               `json:"current_quantity"`
	WholesalePrice      decimal.Decimal     `json:"wholesale_price"`
	RetailPrice         decimal.NullDecimal `json:"retail_price"`
	WholesaleTotalPrice decimal.Decimal     `json:"wholesale_total_price"`
	RetailTotalPrice    decimal.Decimal     `json:"retail_total_price"`
	BarcodeValue        *string             `json:"barcode_value"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// FromProduct creates ProductResponse from the domain product.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:                  p.ID,
		ProductCode:         p.ProductCode,
		Category:            p.Category,
		Subcategory:         p.Subcategory,
		OriginalQuantity:    p.OriginalQuantity,
		CurrentQuantity:     p.CurrentQuantity,
		WholesalePrice:      p.WholesalePrice,
		RetailPrice:         p.RetailPrice,
		WholesaleTotalPrice: p.WholesaleTotalPrice,
		RetailTotalPrice:    p.RetailTotalPrice,
		BarcodeValue:        p.BarcodeValue,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// FromProducts converts a list; never returns nil so the JSON is [] not null.
func FromProducts(items []*product.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromProduct(p))
	}
	return out
}

// CreateProductResponse is returned by POST /api/add.
type CreateProductResponse struct {
	ID          int64  `json:"id"`
	ProductCode string `json:"product_code"`
}

// UpdatedResponse is returned by POST /api/update/:id.
type UpdatedResponse struct {
	Updated int64 `json:"updated"`
}

// DeletedResponse is returned by DELETE /api/delete/:id.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
