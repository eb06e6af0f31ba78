// Package sales_repo provides the PostgreSQL implementation of the sales ledger.
package sales_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"inventrack/internal/core/apperror"
	"inventrack/internal/domain/sales"
	"inventrack/internal/infrastructure/storage/postgres"
)

const tableName = "sales_log"

// monthlySummaryQuery groups by UTC calendar month so the report does not
// depend on the session time zone.
const monthlySummaryQuery = `
	SELECT
		to_char(sale_timestamp AT TIME ZONE 'UTC', 'YYYY-MM') AS sale_month,
		SUM(quantity_sold)::bigint AS total_items_sold,
		SUM(quantity_sold * sale_price_per_item) AS total_revenue,
		SUM(quantity_sold * wholesale_price_per_item_at_sale) AS total_cogs,
		SUM(quantity_sold * sale_price_per_item)
			- SUM(quantity_sold * wholesale_price_per_item_at_sale) AS total_profit
	FROM sales_log
	GROUP BY sale_month
	ORDER BY sale_month DESC
`

// SalesRepo implements sales.Repository.
type SalesRepo struct {
	txm        *postgres.TxManager
	selectCols []string
	builder    squirrel.StatementBuilderType
}

// NewSalesRepo creates a sales ledger repository.
func NewSalesRepo(txm *postgres.TxManager) *SalesRepo {
	return &SalesRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[sales.Entry](),
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Append inserts entry. The timestamp is taken from the database clock.
func (r *SalesRepo) Append(ctx context.Context, entry sales.Entry) (*sales.Entry, error) {
	sql, args, err := r.appendQuery(entry).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	row := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...)
	if err := row.Scan(&entry.LogID, &entry.SaleTimestamp); err != nil {
		return nil, apperror.NewDatabase("append sale", err)
	}
	return &entry, nil
}

func (r *SalesRepo) appendQuery(entry sales.Entry) squirrel.InsertBuilder {
	return r.builder.
		Insert(tableName).
		Columns("product_id", "quantity_sold", "sale_price_per_item", "wholesale_price_per_item_at_sale").
		Values(entry.ProductID, entry.QuantitySold, entry.SalePricePerItem, entry.WholesalePricePerItemAtSale).
		Suffix("RETURNING log_id, sale_timestamp")
}

// MonthlySummary aggregates the whole ledger per month, newest first.
func (r *SalesRepo) MonthlySummary(ctx context.Context) ([]sales.MonthlySummary, error) {
	items := make([]sales.MonthlySummary, 0)
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, monthlySummaryQuery); err != nil {
		return nil, apperror.NewDatabase("monthly sales summary", err)
	}
	return items, nil
}

// ListByProduct returns the entries of productID, newest first.
func (r *SalesRepo) ListByProduct(ctx context.Context, productID int64) ([]sales.Entry, error) {
	sql, args, err := r.byProductQuery(productID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	items := make([]sales.Entry, 0)
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, apperror.NewDatabase("list sales", err)
	}
	return items, nil
}

func (r *SalesRepo) byProductQuery(productID int64) squirrel.SelectBuilder {
	return r.builder.
		Select(r.selectCols...).
		From(tableName).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("sale_timestamp DESC", "log_id DESC")
}
