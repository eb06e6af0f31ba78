package sales

import "context"

// Repository persists ledger entries.
type Repository interface {
	// Append inserts entry and returns it with LogID and SaleTimestamp set.
	Append(ctx context.Context, entry Entry) (*Entry, error)

	// MonthlySummary aggregates all entries per month, newest month first.
	MonthlySummary(ctx context.Context) ([]MonthlySummary, error)

	// ListByProduct returns the entries of one product, newest first.
	ListByProduct(ctx context.Context, productID int64) ([]Entry, error)
}
