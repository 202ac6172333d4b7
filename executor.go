package rankpager

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Executor runs built ranked queries against the backing store.
type Executor interface {
	// Placeholder returns the bind variable format queries must be built with.
	Placeholder() sq.PlaceholderFormat
	// QueryContext executes the query. Cancelling ctx aborts it.
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// GORMExecutor executes ranked queries through gorm. Queries are built with
// "?" placeholders and rebound by the gorm dialect.
type GORMExecutor struct {
	db *gorm.DB
}

func NewGORMExecutor(db *gorm.DB) *GORMExecutor {
	return &GORMExecutor{db: db}
}

// Placeholder - implements Executor.
func (e *GORMExecutor) Placeholder() sq.PlaceholderFormat {
	return sq.Question
}

// QueryContext - implements Executor.
func (e *GORMExecutor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return e.db.WithContext(ctx).Raw(query, args...).Rows()
}

// SQLExecutor executes ranked queries through sqlx. The placeholder format
// follows the bind type of the sqlx driver.
type SQLExecutor struct {
	db *sqlx.DB
}

func NewSQLExecutor(db *sqlx.DB) *SQLExecutor {
	return &SQLExecutor{db: db}
}

// Placeholder - implements Executor.
func (e *SQLExecutor) Placeholder() sq.PlaceholderFormat {
	switch sqlx.BindType(e.db.DriverName()) {
	case sqlx.DOLLAR:
		return sq.Dollar
	case sqlx.AT:
		return sq.AtP
	case sqlx.NAMED:
		return sq.Colon
	default:
		return sq.Question
	}
}

// QueryContext - implements Executor.
func (e *SQLExecutor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return e.db.QueryContext(ctx, query, args...)
}

var (
	_ Executor = (*GORMExecutor)(nil)
	_ Executor = (*SQLExecutor)(nil)
)

// QueryRanked executes q and scans the result into ranked rows in rank order.
// No rows are returned on error.
func QueryRanked[T any](ctx context.Context, executor Executor, schema Schema[T], q *RankedQuery) ([]RankedRow[T], error) {
	rows, err := executor.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer rows.Close()

	ret := make([]RankedRow[T], 0, q.Limit())
	for rows.Next() {
		var item RankedRow[T]
		if err = rows.Scan(schema.scanTargets(&item.Row, &item.Rank, q.Columns)...); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", ErrQuery, err)
		}

		ret = append(ret, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %w", ErrQuery, err)
	}

	return ret, nil
}
