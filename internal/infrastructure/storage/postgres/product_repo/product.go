// Package product_repo provides the PostgreSQL implementation of product.Repository.
package product_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"inventrack/internal/core/apperror"
	"inventrack/internal/domain/product"
	"inventrack/internal/infrastructure/storage/postgres"
)

const tableName = "products"

// Columns written by Create. id and the timestamps come from the database.
var insertColumns = []string{
	"product_code",
	"category",
	"subcategory",
	"original_quantity",
	"current_quantity",
	"wholesale_price",
	"retail_price",
	"wholesale_total_price",
	"retail_total_price",
	"barcode_value",
}

// Columns written by Update. product_code and barcode_value never change.
var updateColumns = []string{
	"category",
	"subcategory",
	"original_quantity",
	"current_quantity",
	"wholesale_price",
	"retail_price",
	"wholesale_total_price",
	"retail_total_price",
}

// ProductRepo implements product.Repository.
type ProductRepo struct {
	txm        *postgres.TxManager
	batch      *postgres.BatchExecutor
	selectCols []string
}

// NewProductRepo creates a product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		txm:        txm,
		batch:      postgres.NewBatchExecutor(txm),
		selectCols: postgres.ExtractDBColumns[product.Product](),
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *ProductRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ProductRepo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().Select(r.selectCols...).From(tableName)
}

// Create inserts p. A taken product_code is reported as a duplicate; the
// insert uses ON CONFLICT DO NOTHING so the surrounding transaction stays usable.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	sql, args, err := r.insertQuery(p).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	row := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewDuplicate("product", "product_code", p.ProductCode)
		}
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("product", "product_code", p.ProductCode).WithCause(err)
		}
		return apperror.NewDatabase("insert product", err)
	}
	return nil
}

func (r *ProductRepo) insertQuery(p *product.Product) squirrel.InsertBuilder {
	data := postgres.PickColumns(postgres.StructToMap(p), insertColumns)
	return r.Builder().
		Insert(tableName).
		SetMap(data).
		Suffix("ON CONFLICT (product_code) DO NOTHING RETURNING id, created_at, updated_at")
}

// GetByID returns the product with id.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return r.getOne(ctx, r.baseSelect().Where(squirrel.Eq{"id": id}), id)
}

// GetForUpdate returns the product with id and locks its row.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*product.Product, error) {
	q := r.baseSelect().Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE")
	return r.getOne(ctx, q, id)
}

// GetByCode matches product_code case-insensitively.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	return r.getOne(ctx, r.byCodeQuery(code), code)
}

func (r *ProductRepo) byCodeQuery(code string) squirrel.SelectBuilder {
	return r.baseSelect().
		Where("lower(product_code) = lower(?)", code).
		OrderBy("id").
		Limit(1)
}

func (r *ProductRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, key any) (*product.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", key)
		}
		return nil, apperror.NewDatabase("select product", err)
	}
	return &p, nil
}

// List returns products matching filter in id order.
func (r *ProductRepo) List(ctx context.Context, filter product.Filter) ([]*product.Product, error) {
	sql, args, err := r.listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	items := make([]*product.Product, 0)
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, apperror.NewDatabase("list products", err)
	}
	return items, nil
}

func (r *ProductRepo) listQuery(filter product.Filter) squirrel.SelectBuilder {
	q := r.baseSelect()
	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Subcategory != "" {
		q = q.Where(squirrel.Eq{"subcategory": filter.Subcategory})
	}
	return q.OrderBy("id")
}

// DistinctCategories returns sorted non-empty categories.
func (r *ProductRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, r.distinctQuery("category", nil))
}

// DistinctSubcategories returns sorted non-empty subcategories of category.
func (r *ProductRepo) DistinctSubcategories(ctx context.Context, category string) ([]string, error) {
	return r.distinct(ctx, r.distinctQuery("subcategory", squirrel.Eq{"category": category}))
}

func (r *ProductRepo) distinctQuery(column string, where squirrel.Sqlizer) squirrel.SelectBuilder {
	q := r.Builder().
		Select(column).
		Distinct().
		From(tableName).
		Where(squirrel.NotEq{column: ""})
	if where != nil {
		q = q.Where(where)
	}
	return q.OrderBy(column)
}

func (r *ProductRepo) distinct(ctx context.Context, q squirrel.SelectBuilder) ([]string, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	values := make([]string, 0)
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &values, sql, args...); err != nil {
		return nil, apperror.NewDatabase("list distinct values", err)
	}
	return values, nil
}

// Update writes the mutable columns of p and bumps updated_at.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) (int64, error) {
	sql, args, err := r.updateQuery(p).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, apperror.NewDatabase("update product", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ProductRepo) updateQuery(p *product.Product) squirrel.UpdateBuilder {
	data := postgres.PickColumns(postgres.StructToMap(p), updateColumns)
	return r.Builder().
		Update(tableName).
		SetMap(data).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID})
}

// Delete removes product id. sales_log has no foreign key, so history stays.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (int64, error) {
	sql, args, err := r.Builder().Delete(tableName).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, apperror.NewDatabase("delete product", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteAll removes every product. Used by the spreadsheet import.
func (r *ProductRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, "DELETE FROM "+tableName)
	if err != nil {
		return 0, apperror.NewDatabase("delete all products", err)
	}
	return tag.RowsAffected(), nil
}

// InsertBatch inserts products in pipelined round-trips. Must run inside a
// transaction.
func (r *ProductRepo) InsertBatch(ctx context.Context, products []product.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}
	rows := make([][]any, len(products))
	for i := range products {
		rows[i] = insertValues(&products[i])
	}

	n, err := r.batch.InsertRows(ctx, tableName, insertColumns, rows)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return n, apperror.NewConflict("product_code repeats an existing code").WithCause(err)
		}
		return n, apperror.NewDatabase("bulk insert products", err)
	}
	return n, nil
}

func insertValues(p *product.Product) []any {
	data := postgres.StructToMap(p)
	values := make([]any, len(insertColumns))
	for i, col := range insertColumns {
		values[i] = data[col]
	}
	return values
}
