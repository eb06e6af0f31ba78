package importer

import (
	"context"
	"fmt"

	"inventrack/internal/core/apperror"
	"inventrack/internal/core/numerator"
	"inventrack/internal/core/tx"
	"inventrack/internal/domain/product"
	"inventrack/pkg/logger"
)

// Source yields a sheet as rows of cells, the header row first.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([][]string, error)
}

// Repository is the bulk side of product storage.
type Repository interface {
	// DeleteAll removes every product and returns how many there were.
	DeleteAll(ctx context.Context) (int64, error)

	// InsertBatch inserts products as given, codes included.
	InsertBatch(ctx context.Context, products []product.Product) (int64, error)
}

// Metrics observes import runs.
type Metrics interface {
	RowsImported(n int)
	RowsSkipped(n int)
}

type nopMetrics struct{}

func (nopMetrics) RowsImported(int) {}
func (nopMetrics) RowsSkipped(int)  {}

// ServiceConfig wires a Service.
type ServiceConfig struct {
	Repo      Repository
	Numerator numerator.Generator
	TxManager tx.Manager
	Metrics   Metrics // optional
}

// Service runs imports.
type Service struct {
	repo      Repository
	numerator numerator.Generator
	txm       tx.Manager
	metrics   Metrics
}

// NewService creates an import service.
func NewService(cfg ServiceConfig) *Service {
	m := cfg.Metrics
	if m == nil {
		m = nopMetrics{}
	}
	return &Service{
		repo:      cfg.Repo,
		numerator: cfg.Numerator,
		txm:       cfg.TxManager,
		metrics:   m,
	}
}

// Options tune a run.
type Options struct {
	// DryRun parses and validates without touching the database.
	DryRun bool
}

// Warning is a non-fatal problem found in one sheet row.
type Warning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Report summarises a run.
type Report struct {
	Source    string    `json:"source"`
	DryRun    bool      `json:"dry_run"`
	Rows      int       `json:"rows"`
	Imported  int       `json:"imported"`
	Skipped   int       `json:"skipped"`
	Generated int       `json:"generated_codes"`
	Deleted   int64     `json:"deleted"`
	Warnings  []Warning `json:"warnings,omitempty"`
}

type pendingRow struct {
	Row
	series numerator.Config
}

// Run replaces all products with the rows of src. Clearing the table and
// inserting every row happen in one transaction: any failure leaves the
// previous products in place.
//
// Rows without a product_code get the next code of their category series,
// after all rows that carry a code are stored.
func (s *Service) Run(ctx context.Context, src Source, opts Options) (*Report, error) {
	table, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Name(), err)
	}

	report := &Report{Source: src.Name(), DryRun: opts.DryRun}
	coded, uncoded, err := s.plan(ctx, Records(table), report)
	if err != nil {
		return nil, err
	}
	report.Imported = len(coded) + len(uncoded)
	report.Generated = len(uncoded)

	s.metrics.RowsSkipped(report.Skipped)
	if report.Rows == 0 {
		logger.Warn(ctx, "sheet has no data rows, products left unchanged", "source", report.Source)
		return report, nil
	}
	if opts.DryRun {
		logger.Info(ctx, "dry run, nothing written",
			"source", report.Source,
			"rows", report.Rows,
			"importable", report.Imported,
			"skipped", report.Skipped,
		)
		return report, nil
	}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		deleted, err := s.repo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("clear products: %w", err)
		}
		report.Deleted = deleted

		if _, err := s.repo.InsertBatch(ctx, coded); err != nil {
			return fmt.Errorf("insert rows with codes: %w", err)
		}

		generated := make([]product.Product, 0, len(uncoded))
		for _, r := range uncoded {
			code, err := s.numerator.GetNextNumber(ctx, r.series)
			if err != nil {
				return fmt.Errorf("generate code for line %d: %w", r.Line, err)
			}
			p := r.Product
			p.ProductCode = code
			if p.BarcodeValue == nil {
				p.BarcodeValue = &code
			}
			generated = append(generated, p)
		}
		if _, err := s.repo.InsertBatch(ctx, generated); err != nil {
			return fmt.Errorf("insert rows with generated codes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RowsImported(report.Imported)
	logger.Info(ctx, "import complete",
		"source", report.Source,
		"deleted", report.Deleted,
		"imported", report.Imported,
		"generated_codes", report.Generated,
		"skipped", report.Skipped,
	)
	return report, nil
}

// plan parses records and splits them by whether the sheet supplies a code.
// Duplicate sheet codes fail the whole run before anything is written.
func (s *Service) plan(ctx context.Context, records []Record, report *Report) ([]product.Product, []pendingRow, error) {
	report.Rows = len(records)

	var (
		coded   []product.Product
		uncoded []pendingRow
		seen    = make(map[string]int)
	)
	addWarning := func(line int, msg string) {
		report.Warnings = append(report.Warnings, Warning{Line: line, Message: msg})
		logger.Warn(ctx, "import row warning", "line", line, "warning", msg)
	}

	for _, rec := range records {
		row, ok := ParseRecord(rec)
		if !ok {
			report.Skipped++
			continue
		}
		for _, w := range row.Warnings {
			addWarning(row.Line, w)
		}

		p := row.Product
		if p.ProductCode != "" {
			if first, dup := seen[p.ProductCode]; dup {
				return nil, nil, apperror.NewValidation(
					fmt.Sprintf("product_code %q on line %d repeats line %d", p.ProductCode, row.Line, first)).
					WithDetail("line", row.Line)
			}
			seen[p.ProductCode] = row.Line
			if p.BarcodeValue == nil {
				code := p.ProductCode
				p.BarcodeValue = &code
			}
			coded = append(coded, p)
			continue
		}

		series, err := product.CodeSeries(p.Category, p.Subcategory)
		if err != nil {
			addWarning(row.Line, "no product_code and category/subcategory too short to generate one")
			report.Skipped++
			continue
		}
		uncoded = append(uncoded, pendingRow{Row: row, series: series})
	}
	return coded, uncoded, nil
}
