package sales

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventrack/internal/core/apperror"
	"inventrack/internal/core/types"
)

// memoryRepo is an in-memory Repository used by the service tests.
type memoryRepo struct {
	mu      sync.Mutex
	entries []Entry
	nextID  int64
	now     func() time.Time
	failErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{now: time.Now}
}

func (r *memoryRepo) Append(_ context.Context, entry Entry) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}
	r.nextID++
	entry.LogID = r.nextID
	if entry.SaleTimestamp.IsZero() {
		entry.SaleTimestamp = r.now()
	}
	r.entries = append(r.entries, entry)
	stored := entry
	return &stored, nil
}

func (r *memoryRepo) MonthlySummary(context.Context) ([]MonthlySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byMonth := make(map[string]*MonthlySummary)
	for _, e := range r.entries {
		key := MonthKey(e.SaleTimestamp)
		m, ok := byMonth[key]
		if !ok {
			m = &MonthlySummary{SaleMonth: key}
			byMonth[key] = m
		}
		m.TotalItemsSold += e.QuantitySold
		m.TotalRevenue = m.TotalRevenue.Add(e.Revenue())
		m.TotalCOGS = m.TotalCOGS.Add(e.COGS())
	}

	out := make([]MonthlySummary, 0, len(byMonth))
	for _, m := range byMonth {
		m.TotalProfit = m.TotalRevenue.Sub(m.TotalCOGS)
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleMonth > out[j].SaleMonth })
	return out, nil
}

func (r *memoryRepo) ListByProduct(_ context.Context, productID int64) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Entry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].ProductID == productID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func entryAt(productID, qty int64, price, cost string, at time.Time) Entry {
	return Entry{
		ProductID:                   productID,
		QuantitySold:                qty,
		SalePricePerItem:            types.MustMoney(price),
		WholesalePricePerItemAtSale: types.MustMoney(cost),
		SaleTimestamp:               at,
	}
}

func TestService_Append_Validation(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name  string
		entry Entry
	}{
		{"zero quantity", entryAt(1, 0, "9", "5", now)},
		{"negative quantity", entryAt(1, -2, "9", "5", now)},
		{"negative sale price", entryAt(1, 1, "-1", "5", now)},
		{"negative cost", entryAt(1, 1, "9", "-5", now)},
		{"missing product", entryAt(0, 1, "9", "5", now)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Append(ctx, tt.entry)
			assert.True(t, apperror.IsValidation(err), "got %v", err)
		})
	}
}

func TestService_Append_AssignsIDs(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	stored, err := svc.Append(context.Background(), entryAt(7, 3, "9", "5", time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.LogID)
	assert.False(t, stored.SaleTimestamp.IsZero())
}

func TestService_Append_PropagatesStorageError(t *testing.T) {
	repo := newMemoryRepo()
	repo.failErr = errors.New("disk full")
	svc := NewService(repo)

	_, err := svc.Append(context.Background(), entryAt(7, 3, "9", "5", time.Now()))
	assert.ErrorContains(t, err, "disk full")
}

func TestService_MonthlySummary(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	jan := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	for _, e := range []Entry{
		entryAt(1, 3, "9", "5", jan),
		entryAt(2, 2, "10.50", "7.25", jan),
		entryAt(1, 1, "8", "5", feb),
	} {
		_, err := svc.Append(ctx, e)
		require.NoError(t, err)
	}

	summary, err := svc.MonthlySummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	assert.Equal(t, "2024-02", summary[0].SaleMonth)
	assert.Equal(t, "2024-01", summary[1].SaleMonth)

	janRow := summary[1]
	assert.Equal(t, int64(5), janRow.TotalItemsSold)
	assert.Equal(t, "48", janRow.TotalRevenue.String()) // 27 + 21
	assert.Equal(t, "29.5", janRow.TotalCOGS.String())  // 15 + 14.5
	assert.Equal(t, "18.5", janRow.TotalProfit.String())

	for _, row := range summary {
		assert.True(t, row.TotalProfit.Equal(row.TotalRevenue.Sub(row.TotalCOGS)))
	}
}

func TestService_ListByProduct(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.ListByProduct(ctx, 0)
	assert.True(t, apperror.IsValidation(err))

	_, _ = svc.Append(ctx, entryAt(4, 1, "2", "1", time.Now()))
	_, _ = svc.Append(ctx, entryAt(5, 1, "2", "1", time.Now()))
	_, _ = svc.Append(ctx, entryAt(4, 2, "2", "1", time.Now()))

	entries, err := svc.ListByProduct(ctx, 4)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].QuantitySold)
}

func TestMonthKey_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 1 Feb 01:00 at UTC+3 is still January in UTC.
	assert.Equal(t, "2024-01", MonthKey(time.Date(2024, time.February, 1, 1, 0, 0, 0, loc)))
}
