package product_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventrack/internal/core/types"
	"inventrack/internal/domain/product"
)

const selectList = "SELECT id, product_code, category, subcategory, original_quantity, current_quantity, " +
	"wholesale_price, retail_price, wholesale_total_price, retail_total_price, barcode_value, created_at, updated_at " +
	"FROM products"

func sampleProduct() *product.Product {
	code := "CL-SHI-001"
	p := &product.Product{
		ID:               7,
		ProductCode:      code,
		Category:         "Clothing",
		Subcategory:      "Shirts",
		OriginalQuantity: 10,
		CurrentQuantity:  10,
		WholesalePrice:   types.MustMoney("5"),
		RetailPrice:      decimal.NewNullDecimal(types.MustMoney("12.5")),
		BarcodeValue:     &code,
	}
	p.RecomputeTotals()
	return p
}

func TestProductRepo_InsertQuery(t *testing.T) {
	repo := NewProductRepo(nil)
	p := sampleProduct()

	sql, args, err := repo.insertQuery(p).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO products (barcode_value,category,current_quantity,original_quantity,product_code,"+
			"retail_price,retail_total_price,subcategory,wholesale_price,wholesale_total_price) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) "+
			"ON CONFLICT (product_code) DO NOTHING RETURNING id, created_at, updated_at",
		sql)
	require.Len(t, args, 10)
	assert.Equal(t, "Clothing", args[1])
	assert.Equal(t, "CL-SHI-001", args[4])
	assert.NotContains(t, sql, "created_at,")
}

func TestProductRepo_SelectQueries(t *testing.T) {
	repo := NewProductRepo(nil)

	tests := []struct {
		name     string
		build    func() (string, []any, error)
		wantSQL  string
		wantArgs []any
	}{
		{
			name: "list without filter",
			build: func() (string, []any, error) {
				return repo.listQuery(product.Filter{}).ToSql()
			},
			wantSQL: selectList + " ORDER BY id",
		},
		{
			name: "list by category and subcategory",
			build: func() (string, []any, error) {
				return repo.listQuery(product.Filter{Category: "Clothing", Subcategory: "Shirts"}).ToSql()
			},
			wantSQL:  selectList + " WHERE category = $1 AND subcategory = $2 ORDER BY id",
			wantArgs: []any{"Clothing", "Shirts"},
		},
		{
			name: "by code",
			build: func() (string, []any, error) {
				return repo.byCodeQuery("cl-shi-001").ToSql()
			},
			wantSQL:  selectList + " WHERE lower(product_code) = lower($1) ORDER BY id LIMIT 1",
			wantArgs: []any{"cl-shi-001"},
		},
		{
			name: "distinct categories",
			build: func() (string, []any, error) {
				return repo.distinctQuery("category", nil).ToSql()
			},
			wantSQL:  "SELECT DISTINCT category FROM products WHERE category <> $1 ORDER BY category",
			wantArgs: []any{""},
		},
		{
			name: "distinct subcategories",
			build: func() (string, []any, error) {
				return repo.distinctQuery("subcategory", squirrel.Eq{"category": "Clothing"}).ToSql()
			},
			wantSQL:  "SELECT DISTINCT subcategory FROM products WHERE subcategory <> $1 AND category = $2 ORDER BY subcategory",
			wantArgs: []any{"", "Clothing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestProductRepo_UpdateQuery(t *testing.T) {
	repo := NewProductRepo(nil)

	sql, args, err := repo.updateQuery(sampleProduct()).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE products SET category = $1, current_quantity = $2, original_quantity = $3, retail_price = $4, "+
			"retail_total_price = $5, subcategory = $6, wholesale_price = $7, wholesale_total_price = $8, "+
			"updated_at = now() WHERE id = $9",
		sql)
	require.Len(t, args, 9)
	assert.Equal(t, int64(7), args[8])
	assert.NotContains(t, sql, "product_code", "codes are immutable")
}

func TestInsertValues_FollowInsertColumns(t *testing.T) {
	p := sampleProduct()
	values := insertValues(p)

	require.Len(t, values, len(insertColumns))
	assert.Equal(t, "CL-SHI-001", values[0])
	assert.Equal(t, "Clothing", values[1])
	assert.Equal(t, int64(10), values[4])
	assert.Equal(t, p.WholesaleTotalPrice, values[7])
}
