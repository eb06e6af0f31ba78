package numerator

import (
	"context"
)

// Generator hands out the next code of a series.
// Implementations must never return the same code twice for a series, even
// under concurrent callers.
type Generator interface {
	GetNextNumber(ctx context.Context, cfg Config) (string, error)
}
