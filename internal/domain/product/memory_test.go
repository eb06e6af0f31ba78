package product

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"inventrack/internal/core/apperror"
	"inventrack/internal/domain/sales"
)

// memoryStore is an in-memory Repository, Ledger and tx.Manager in one.
// A failed transaction restores the state captured when it began.
type memoryStore struct {
	mu       sync.Mutex
	products map[int64]Product
	entries  []sales.Entry
	nextID   int64
	nextLog  int64
	inTx     bool

	appendErr error
	updateErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{products: make(map[int64]Product)}
}

func (m *memoryStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	if m.inTx {
		m.mu.Unlock()
		return fn(ctx)
	}
	snapshot := make(map[int64]Product, len(m.products))
	for k, v := range m.products {
		snapshot[k] = v
	}
	entries := append([]sales.Entry(nil), m.entries...)
	nextID, nextLog := m.nextID, m.nextLog
	m.inTx = true
	m.mu.Unlock()

	err := fn(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inTx = false
	if err != nil {
		m.products, m.entries = snapshot, entries
		m.nextID, m.nextLog = nextID, nextLog
	}
	return err
}

func (m *memoryStore) Create(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.products {
		if strings.EqualFold(existing.ProductCode, p.ProductCode) {
			return apperror.NewDuplicate("product", "product_code", p.ProductCode)
		}
	}
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.products[p.ID] = *p
	return nil
}

func (m *memoryStore) GetByID(_ context.Context, id int64) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, apperror.NewNotFound("product", id)
	}
	return &p, nil
}

func (m *memoryStore) GetForUpdate(ctx context.Context, id int64) (*Product, error) {
	return m.GetByID(ctx, id)
}

func (m *memoryStore) GetByCode(_ context.Context, code string) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if strings.EqualFold(p.ProductCode, code) {
			found := p
			return &found, nil
		}
	}
	return nil, apperror.NewNotFound("product", code)
}

func (m *memoryStore) List(_ context.Context, filter Filter) ([]*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Product, 0, len(m.products))
	for _, p := range m.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Subcategory != "" && p.Subcategory != filter.Subcategory {
			continue
		}
		item := p
		out = append(out, &item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) distinct(pick func(Product) (string, bool)) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range m.products {
		v, ok := pick(p)
		if !ok || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (m *memoryStore) DistinctCategories(context.Context) ([]string, error) {
	return m.distinct(func(p Product) (string, bool) { return p.Category, true }), nil
}

func (m *memoryStore) DistinctSubcategories(_ context.Context, category string) ([]string, error) {
	return m.distinct(func(p Product) (string, bool) { return p.Subcategory, p.Category == category }), nil
}

func (m *memoryStore) Update(_ context.Context, p *Product) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return 0, m.updateErr
	}
	if _, ok := m.products[p.ID]; !ok {
		return 0, nil
	}
	p.UpdatedAt = time.Now()
	m.products[p.ID] = *p
	return 1, nil
}

func (m *memoryStore) Delete(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return 0, nil
	}
	delete(m.products, id)
	return 1, nil
}

func (m *memoryStore) Append(_ context.Context, entry sales.Entry) (*sales.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	m.nextLog++
	entry.LogID = m.nextLog
	entry.SaleTimestamp = time.Now()
	m.entries = append(m.entries, entry)
	stored := entry
	return &stored, nil
}

func (m *memoryStore) ledger() []sales.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sales.Entry(nil), m.entries...)
}
