package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventrack/internal/core/apperror"
	"inventrack/internal/core/numerator"
	"inventrack/internal/domain/product"
)

type staticSource struct {
	table [][]string
	err   error
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Fetch(context.Context) ([][]string, error) { return s.table, s.err }

// memoryRepo keeps products in a slice and restores it when a transaction fails.
type memoryRepo struct {
	products  []product.Product
	insertErr error
}

func (m *memoryRepo) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := append([]product.Product(nil), m.products...)
	if err := fn(ctx); err != nil {
		m.products = snapshot
		return err
	}
	return nil
}

func (m *memoryRepo) DeleteAll(context.Context) (int64, error) {
	n := int64(len(m.products))
	m.products = nil
	return n, nil
}

func (m *memoryRepo) InsertBatch(_ context.Context, products []product.Product) (int64, error) {
	if m.insertErr != nil && len(products) > 0 {
		return 0, m.insertErr
	}
	m.products = append(m.products, products...)
	return int64(len(products)), nil
}

type countingMetrics struct {
	imported, skipped int
}

func (c *countingMetrics) RowsImported(n int) { c.imported += n }
func (c *countingMetrics) RowsSkipped(n int)  { c.skipped += n }

var sheet = [][]string{
	{"Category", "Subcategory", "Original Quantity", "Wholesale Price", "Retail Price", "Product Code", "Barcode Value"},
	{"Clothing", "Shirts", "10", "5", "12.5", "CL-SHI-007", ""},
	{"Clothing", "Shirts", "3", "4", "", "", ""},
	{"", "", "1", "1", "1", "", ""},
	{"C", "Hats", "2", "2", "", "", ""},
	{"Toys", "Cars", "x", "2", "3", "TO-CAR-001", "4006381333931"},
}

func newTestService(repo *memoryRepo, gen numerator.Generator, m Metrics) *Service {
	return NewService(ServiceConfig{Repo: repo, Numerator: gen, TxManager: repo, Metrics: m})
}

func TestService_Run_ReplacesProducts(t *testing.T) {
	repo := &memoryRepo{products: []product.Product{{ProductCode: "OLD-001"}, {ProductCode: "OLD-002"}}}
	gen := &numerator.MockGenerator{
		GetNextNumberFunc: func(_ context.Context, cfg numerator.Config) (string, error) {
			return cfg.Format(8), nil
		},
	}
	metrics := &countingMetrics{}

	report, err := newTestService(repo, gen, metrics).Run(context.Background(), staticSource{table: sheet}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 5, report.Rows)
	assert.Equal(t, 3, report.Imported)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 1, report.Generated)
	assert.Equal(t, int64(2), report.Deleted)
	assert.Equal(t, 3, metrics.imported)
	assert.Equal(t, 2, metrics.skipped)

	require.Len(t, repo.products, 3)
	codes := []string{repo.products[0].ProductCode, repo.products[1].ProductCode, repo.products[2].ProductCode}
	assert.Equal(t, []string{"CL-SHI-007", "TO-CAR-001", "CL-SHI-008"}, codes, "sheet codes are stored before generated ones")

	assert.Equal(t, "CL-SHI-007", *repo.products[0].BarcodeValue)
	assert.Equal(t, "4006381333931", *repo.products[1].BarcodeValue)
	assert.Equal(t, "CL-SHI-008", *repo.products[2].BarcodeValue)
	assert.Equal(t, int64(0), repo.products[1].CurrentQuantity, "bad quantity defaults to 0")
}

func TestService_Run_DryRunWritesNothing(t *testing.T) {
	repo := &memoryRepo{products: []product.Product{{ProductCode: "OLD-001"}}}
	report, err := newTestService(repo, &numerator.MockGenerator{}, nil).
		Run(context.Background(), staticSource{table: sheet}, Options{DryRun: true})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 3, report.Imported)
	assert.NotEmpty(t, report.Warnings)
	require.Len(t, repo.products, 1)
	assert.Equal(t, "OLD-001", repo.products[0].ProductCode)
}

func TestService_Run_FailureKeepsPreviousProducts(t *testing.T) {
	repo := &memoryRepo{
		products:  []product.Product{{ProductCode: "OLD-001"}},
		insertErr: errors.New("duplicate key"),
	}
	_, err := newTestService(repo, &numerator.MockGenerator{}, nil).
		Run(context.Background(), staticSource{table: sheet}, Options{})
	require.Error(t, err)

	require.Len(t, repo.products, 1)
	assert.Equal(t, "OLD-001", repo.products[0].ProductCode)
}

func TestService_Run_DuplicateSheetCodes(t *testing.T) {
	table := [][]string{
		{"category", "subcategory", "product_code"},
		{"Clothing", "Shirts", "CL-SHI-001"},
		{"Clothing", "Shirts", "CL-SHI-001"},
	}
	repo := &memoryRepo{}
	_, err := newTestService(repo, &numerator.MockGenerator{}, nil).
		Run(context.Background(), staticSource{table: table}, Options{})

	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "line 3 repeats line 2")
}

func TestService_Run_SourceError(t *testing.T) {
	repo := &memoryRepo{}
	_, err := newTestService(repo, &numerator.MockGenerator{}, nil).
		Run(context.Background(), staticSource{err: errors.New("403 forbidden")}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read static")
}

func TestService_Run_EmptySheet(t *testing.T) {
	repo := &memoryRepo{products: []product.Product{{ProductCode: "OLD-001"}}}
	report, err := newTestService(repo, &numerator.MockGenerator{}, nil).
		Run(context.Background(), staticSource{table: [][]string{{"category"}}}, Options{})
	require.NoError(t, err)

	assert.Zero(t, report.Imported)
	require.Len(t, repo.products, 1, "an empty sheet never wipes the table")
}
