package product

import (
	"context"

	"inventrack/internal/domain/sales"
)

// Repository defines product persistence. Every method honours a transaction
// carried in ctx.
type Repository interface {
	// Create inserts p and sets its ID and timestamps. A taken product_code
	// yields apperror CodeDuplicate without aborting the transaction.
	Create(ctx context.Context, p *Product) error

	// GetByID returns apperror CodeNotFound when absent.
	GetByID(ctx context.Context, id int64) (*Product, error)

	// GetForUpdate is GetByID with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*Product, error)

	// GetByCode matches product_code case-insensitively.
	GetByCode(ctx context.Context, code string) (*Product, error)

	List(ctx context.Context, filter Filter) ([]*Product, error)

	// DistinctCategories returns sorted non-empty categories.
	DistinctCategories(ctx context.Context) ([]string, error)

	// DistinctSubcategories returns sorted non-empty subcategories of category.
	DistinctSubcategories(ctx context.Context, category string) ([]string, error)

	// Update writes every mutable column of p and returns rows affected.
	Update(ctx context.Context, p *Product) (int64, error)

	// Delete removes the row and returns rows affected. Ledger rows stay.
	Delete(ctx context.Context, id int64) (int64, error)
}

// Ledger receives the sales booked by updates.
type Ledger interface {
	Append(ctx context.Context, entry sales.Entry) (*sales.Entry, error)
}

// Metrics observes product events. Implementations must be safe for
// concurrent use.
type Metrics interface {
	ProductCreated(category string)
	ProductUpdated(kind string)
	SaleRecorded(units int64, revenue float64)
}

type nopMetrics struct{}

func (nopMetrics) ProductCreated(string)        {}
func (nopMetrics) ProductUpdated(string)        {}
func (nopMetrics) SaleRecorded(int64, float64) {}
