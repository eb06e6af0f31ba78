package sales_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventrack/internal/core/types"
	"inventrack/internal/domain/sales"
)

func TestSalesRepo_AppendQuery(t *testing.T) {
	repo := NewSalesRepo(nil)

	sql, args, err := repo.appendQuery(sales.Entry{
		ProductID:                   3,
		QuantitySold:                2,
		SalePricePerItem:            types.MustMoney("12.5"),
		WholesalePricePerItemAtSale: types.MustMoney("5"),
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO sales_log (product_id,quantity_sold,sale_price_per_item,wholesale_price_per_item_at_sale) "+
			"VALUES ($1,$2,$3,$4) RETURNING log_id, sale_timestamp",
		sql)
	require.Len(t, args, 4)
	assert.Equal(t, int64(3), args[0])
	assert.Equal(t, int64(2), args[1])
}

func TestSalesRepo_ByProductQuery(t *testing.T) {
	repo := NewSalesRepo(nil)

	sql, args, err := repo.byProductQuery(9).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT log_id, product_id, quantity_sold, sale_price_per_item, wholesale_price_per_item_at_sale, sale_timestamp "+
			"FROM sales_log WHERE product_id = $1 ORDER BY sale_timestamp DESC, log_id DESC",
		sql)
	assert.Equal(t, []any{int64(9)}, args)
}

func TestMonthlySummaryQuery_GroupsByUTCMonth(t *testing.T) {
	assert.Contains(t, monthlySummaryQuery, "AT TIME ZONE 'UTC', 'YYYY-MM'")
	assert.Contains(t, monthlySummaryQuery, "ORDER BY sale_month DESC")
	for _, col := range []string{"sale_month", "total_items_sold", "total_revenue", "total_cogs", "total_profit"} {
		assert.Contains(t, monthlySummaryQuery, "AS "+col)
	}
}
