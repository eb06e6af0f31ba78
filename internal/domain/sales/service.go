package sales

import (
	"context"

	"inventrack/internal/core/apperror"
	"inventrack/pkg/logger"
)

// Service exposes the ledger.
type Service struct {
	repo Repository
}

// NewService creates a ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Append validates and stores entry. Called inside the product update
// transaction, so a failure here rolls the stock change back.
func (s *Service) Append(ctx context.Context, entry Entry) (*Entry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	stored, err := s.repo.Append(ctx, entry)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "sale recorded",
		"log_id", stored.LogID,
		"product_id", stored.ProductID,
		"quantity_sold", stored.QuantitySold,
	)
	return stored, nil
}

// MonthlySummary is recomputed from the ledger on every call.
func (s *Service) MonthlySummary(ctx context.Context) ([]MonthlySummary, error) {
	return s.repo.MonthlySummary(ctx)
}

// ListByProduct returns ledger entries of productID. Orphaned ids are valid.
func (s *Service) ListByProduct(ctx context.Context, productID int64) ([]Entry, error) {
	if productID <= 0 {
		return nil, apperror.NewValidation("product_id must be a positive integer")
	}
	return s.repo.ListByProduct(ctx, productID)
}
