package product

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"inventrack/internal/core/apperror"
	"inventrack/internal/core/numerator"
	"inventrack/internal/core/tx"
	"inventrack/internal/domain/sales"
	"inventrack/pkg/logger"
)

// maxCodeAttempts bounds how often Create retries after a product_code clash.
const maxCodeAttempts = 5

// ServiceConfig wires a Service.
type ServiceConfig struct {
	Repo      Repository
	Ledger    Ledger
	Numerator numerator.Generator
	TxManager tx.Manager
	Metrics   Metrics // optional
}

// Service implements the product store operations and the update rules.
type Service struct {
	repo      Repository
	ledger    Ledger
	numerator numerator.Generator
	txm       tx.Manager
	metrics   Metrics
}

// NewService creates a product service.
func NewService(cfg ServiceConfig) *Service {
	m := cfg.Metrics
	if m == nil {
		m = nopMetrics{}
	}
	return &Service{
		repo:      cfg.Repo,
		ledger:    cfg.Ledger,
		numerator: cfg.Numerator,
		txm:       cfg.TxManager,
		metrics:   m,
	}
}

// Create validates in, assigns the next code of its series and stores the
// product. Code assignment and insert share one transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Subcategory) == "" {
		return nil, apperror.NewValidation("category and subcategory are required")
	}
	if in.Quantity < 0 {
		return nil, apperror.NewValidation("quantity must be a non-negative integer")
	}
	if in.WholesalePrice.IsNegative() {
		return nil, apperror.NewValidation("wholesale_price must be a non-negative number")
	}
	series, err := CodeSeries(in.Category, in.Subcategory)
	if err != nil {
		return nil, err
	}

	var created Product
	for attempt := 1; ; attempt++ {
		err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
			code, err := s.numerator.GetNextNumber(ctx, series)
			if err != nil {
				return fmt.Errorf("generate product code: %w", err)
			}
			created = NewProduct(in, code)
			return s.repo.Create(ctx, &created)
		})
		if err == nil {
			break
		}
		if !apperror.IsDuplicate(err) || attempt == maxCodeAttempts {
			return nil, err
		}
		logger.Warn(ctx, "product code taken, retrying", "prefix", series.Prefix, "attempt", attempt)
	}

	s.metrics.ProductCreated(created.Category)
	logger.Info(ctx, "product created",
		"product_id", created.ID,
		"product_code", created.ProductCode,
		"quantity", created.CurrentQuantity,
	)
	return &CreateResult{ID: created.ID, ProductCode: created.ProductCode}, nil
}

// Get resolves identifier as a numeric id first, then as a product code.
func (s *Service) Get(ctx context.Context, identifier string) (*Product, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, apperror.NewValidation("identifier is required")
	}

	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil && id > 0 {
		p, err := s.repo.GetByID(ctx, id)
		if err == nil {
			return p, nil
		}
		if !apperror.IsNotFound(err) {
			return nil, err
		}
	}

	p, err := s.repo.GetByCode(ctx, identifier)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", identifier)
		}
		return nil, err
	}
	return p, nil
}

// List returns products matching filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Product, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Subcategory = strings.TrimSpace(filter.Subcategory)
	return s.repo.List(ctx, filter)
}

// Categories returns the sorted distinct categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.DistinctCategories(ctx)
}

// Subcategories returns the sorted distinct subcategories of category.
// No category means no subcategories.
func (s *Service) Subcategories(ctx context.Context, category string) ([]string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return []string{}, nil
	}
	return s.repo.DistinctSubcategories(ctx, category)
}

// Update applies u to product id. The row lock, the product write and the
// ledger entry of a sale commit or roll back together.
func (s *Service) Update(ctx context.Context, id int64, u Update) (int64, error) {
	if err := ValidateUpdate(u); err != nil {
		return 0, err
	}

	var (
		affected int64
		booked   *sales.Entry
	)
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		booked = nil
		prior, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		next, sale := Reconcile(*prior, u)
		if err := next.CheckTotals(); err != nil {
			return apperror.NewInternal(err)
		}

		affected, err = s.repo.Update(ctx, &next)
		if err != nil {
			return err
		}

		if sale == nil {
			return nil
		}
		booked, err = s.ledger.Append(ctx, sales.Entry{
			ProductID:                   id,
			QuantitySold:                sale.QuantitySold,
			SalePricePerItem:            sale.SalePricePerItem,
			WholesalePricePerItemAtSale: sale.WholesalePricePerItemAtSale,
		})
		if err != nil {
			return fmt.Errorf("record sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.metrics.ProductUpdated(u.Kind())
	if booked != nil {
		revenue, _ := booked.Revenue().Float64()
		s.metrics.SaleRecorded(booked.QuantitySold, revenue)
		logger.Info(ctx, "sale recorded",
			"product_id", id,
			"log_id", booked.LogID,
			"quantity_sold", booked.QuantitySold,
		)
	}
	return affected, nil
}

// Delete removes product id. Its ledger entries are kept.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info(ctx, "product deleted", "product_id", id)
	}
	return n, nil
}
