// Package numerator provides the PostgreSQL implementation of code numbering.
// It implements core/numerator.Generator on top of a per-prefix counter table.
package numerator

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	corenumerator "inventrack/internal/core/numerator"
)

// Querier is the subset of pgx used here.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QuerierFunc resolves the querier for ctx: the active transaction if there
// is one, the pool otherwise.
type QuerierFunc func(ctx context.Context) Querier

// nextValueSQL bumps the counter of a prefix and returns the new value.
//
// The counter never drops below the highest numeric suffix already present in
// products, so codes loaded by the importer are never handed out again. The
// row lock taken by the upsert serializes concurrent callers of one prefix.
const nextValueSQL = `
INSERT INTO product_code_sequences AS s (prefix, current_val)
VALUES ($1, (
    SELECT COALESCE(MAX(substr(p.product_code, char_length($1) + 1)::bigint), 0) + 1
    FROM products p
    WHERE upper(left(p.product_code, char_length($1))) = $1
      AND substr(p.product_code, char_length($1) + 1) ~ '^[0-9]{1,18}$'
))
ON CONFLICT (prefix) DO UPDATE
    SET current_val = GREATEST(s.current_val, EXCLUDED.current_val - 1) + 1
RETURNING current_val`

// Service hands out product codes.
type Service struct {
	querier QuerierFunc
}

// New creates a numerator that runs its queries through querier.
func New(querier QuerierFunc) *Service {
	return &Service{querier: querier}
}

var _ corenumerator.Generator = (*Service)(nil)

// GetNextNumber implements corenumerator.Generator.
// Runs in the caller's transaction when ctx carries one.
func (s *Service) GetNextNumber(ctx context.Context, cfg corenumerator.Config) (string, error) {
	if s == nil || s.querier == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if cfg.Prefix == "" {
		return "", fmt.Errorf("numerator: empty prefix")
	}

	var num int64
	if err := s.querier(ctx).QueryRow(ctx, nextValueSQL, cfg.Prefix).Scan(&num); err != nil {
		return "", fmt.Errorf("next code for %s: %w", cfg.Prefix, err)
	}
	return cfg.Format(num), nil
}
