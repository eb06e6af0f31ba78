package numerator

import (
	"context"
	"sync"
)

// MockGenerator is a test implementation of Generator.
// Without GetNextNumberFunc it keeps an in-memory counter per prefix.
type MockGenerator struct {
	GetNextNumberFunc func(ctx context.Context, cfg Config) (string, error)

	mu       sync.Mutex
	counters map[string]int64
}

// GetNextNumber implements Generator.
func (m *MockGenerator) GetNextNumber(ctx context.Context, cfg Config) (string, error) {
	if m.GetNextNumberFunc != nil {
		return m.GetNextNumberFunc(ctx, cfg)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]int64)
	}
	m.counters[cfg.Prefix]++
	return cfg.Format(m.counters[cfg.Prefix]), nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
