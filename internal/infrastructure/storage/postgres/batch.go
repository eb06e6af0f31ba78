package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// DefaultBatchSize is how many statements go into one round-trip.
const DefaultBatchSize = 500

// BatchQuery represents a query in a batch.
type BatchQuery struct {
	SQL  string
	Args []any
}

// BatchExecutor sends many statements per round-trip inside the current
// transaction.
//
// Bulk loads use this instead of COPY: COPY only speaks the binary format and
// decimal.Decimal has no binary codec registered with pgx, while plain
// statements fall back to the text encoding.
type BatchExecutor struct {
	txManager *TxManager
	size      int
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(txManager *TxManager) *BatchExecutor {
	return &BatchExecutor{txManager: txManager, size: DefaultBatchSize}
}

// WithBatchSize returns a copy that flushes every size statements.
func (e *BatchExecutor) WithBatchSize(size int) *BatchExecutor {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return &BatchExecutor{txManager: e.txManager, size: size}
}

// ExecuteBatch executes queries in round-trips of at most the batch size and
// returns the total rows affected. A transaction must be present in ctx.
func (e *BatchExecutor) ExecuteBatch(ctx context.Context, queries []BatchQuery) (int64, error) {
	tx := e.txManager.GetTx(ctx)
	if tx == nil {
		return 0, fmt.Errorf("ExecuteBatch requires transaction context")
	}

	var affected int64
	for start := 0; start < len(queries); start += e.size {
		end := min(start+e.size, len(queries))
		n, err := sendBatch(ctx, tx, queries[start:end])
		if err != nil {
			return affected, fmt.Errorf("batch at statement %d: %w", start, err)
		}
		affected += n
	}
	return affected, nil
}

// InsertRows inserts rows into table, one INSERT per row.
func (e *BatchExecutor) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	stmt := InsertStatement(table, columns)
	queries := make([]BatchQuery, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
		queries[i] = BatchQuery{SQL: stmt, Args: row}
	}
	return e.ExecuteBatch(ctx, queries)
}

// InsertStatement builds "INSERT INTO table (a, b) VALUES ($1, $2)".
func InsertStatement(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = pgx.Identifier{col}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{table}.Sanitize(),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))
}

func sendBatch(ctx context.Context, tx pgx.Tx, queries []BatchQuery) (int64, error) {
	batch := &pgx.Batch{}
	for _, q := range queries {
		batch.Queue(q.SQL, q.Args...)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	var affected int64
	for range queries {
		tag, err := results.Exec()
		if err != nil {
			return affected, err
		}
		affected += tag.RowsAffected()
	}
	return affected, nil
}
