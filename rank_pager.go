package rankpager

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// RankPager pages through the table described by a schema. Once configured it
// holds no mutable state and may serve concurrent requests.
type RankPager[T any, F FilterContext[F]] struct {
	schema   Schema[T]
	executor Executor
	columns  []string
	logger   logrus.FieldLogger
}

// NewRankPager validates the schema and returns a pager projecting every
// whitelisted column.
func NewRankPager[T any, F FilterContext[F]](schema Schema[T], executor Executor) (*RankPager[T, F], error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("cannot create rank pager: %w", err)
	}

	if executor == nil {
		return nil, fmt.Errorf("cannot create rank pager: nil executor")
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	return &RankPager[T, F]{
		schema:   schema,
		executor: executor,
		columns:  schema.Fields.Columns(),
		logger:   discard,
	}, nil
}

// WithColumns narrows the projection. Columns are validated when a query is
// built.
//
// IMPORTANT:
// Columns not listed are left zero in returned rows. Do not call concurrently
// with GetPage.
func (p *RankPager[T, F]) WithColumns(columns ...string) *RankPager[T, F] {
	p.columns = slices.Clone(columns)

	return p
}

// WithLogger sets the logger used for cursor diagnostics.
func (p *RankPager[T, F]) WithLogger(logger logrus.FieldLogger) *RankPager[T, F] {
	if logger != nil {
		p.logger = logger
	}

	return p
}

// GetSchema returns the schema the pager was created with.
func (p *RankPager[T, F]) GetSchema() Schema[T] {
	return p.schema
}

// GetPage returns the page following (isNext) or preceding the position the
// cursor token points at, under filter.
//
// Malformed and stale tokens restart the sequence from the first page.
// Backward navigation without a token and non-positive page sizes are
// rejected before any query is issued. On error no page is returned.
func (p *RankPager[T, F]) GetPage(
	ctx context.Context,
	cursorToken string,
	isNext bool,
	filter F,
	pageSize int,
) (*ResultPage[T], error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("cannot get page: %w: got %d", ErrInvalidPageSize, pageSize)
	}

	if strings.TrimSpace(cursorToken) == "" && !isNext {
		return nil, fmt.Errorf("cannot get page: %w", ErrBackwardWithoutCursor)
	}

	cursor, state := ResolveCursor(cursorToken, filter)
	offset := offsetFrom(cursor, pageSize, isNext)

	log := p.logger.WithFields(logrus.Fields{
		"table":     p.schema.Table,
		"cursor":    state.String(),
		"is_next":   isNext,
		"offset":    offset,
		"page_size": pageSize,
	})
	log.Debug("resolved page window")

	query, err := BuildRankedQuery(p.schema, RankedQuerySpec{
		Columns:     p.columns,
		Orderings:   filter.Orderings().WithTieBreaker(p.schema.Key),
		Conditions:  filter.Conditions(),
		StartIndex:  offset,
		PageSize:    pageSize,
		Placeholder: p.executor.Placeholder(),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot get page: %w", err)
	}

	rows, err := QueryRanked(ctx, p.executor, p.schema, query)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("cannot get page: %w: %w", ErrQuery, ctxErr)
		}

		return nil, fmt.Errorf("cannot get page: %w", err)
	}

	if err = checkRanks(rows, offset, query.Limit()); err != nil {
		return nil, fmt.Errorf("cannot get page: %w", err)
	}

	if state == CursorValid && isNext && len(rows) > 0 {
		if first := p.schema.Identity(rows[0].Row); first != cursor.GetLastID() {
			log.WithFields(logrus.Fields{
				"expected_id": cursor.GetLastID().String(),
				"actual_id":   first.String(),
			}).Warn("dataset changed since cursor was minted")
		}
	}

	page, err := p.assemble(rows, filter, offset, pageSize)
	if err != nil {
		return nil, fmt.Errorf("cannot get page: %w", err)
	}

	return page, nil
}

func (p *RankPager[T, F]) assemble(rows []RankedRow[T], filter F, offset, pageSize int) (*ResultPage[T], error) {
	hasMore := !IsLastPage(pageSize, rows)
	trimmed := TrimResultSet(pageSize, rows)

	page := &ResultPage[T]{
		Items: lo.Map(trimmed, func(item RankedRow[T], _ int) T {
			return item.Row
		}),
		HasPrevious: offset > 0,
		HasMore:     hasMore,
	}

	var reference T
	switch {
	case hasMore:
		reference = rows[len(rows)-1].Row
	case offset > 0 && len(page.Items) > 0:
		// Last page: the cursor no longer advances but still leads back.
		reference = lo.LastOrEmpty(page.Items)
	default:
		return page, nil
	}

	id := p.schema.Identity(reference)
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: cannot mint cursor for '%s'", ErrNilIdentity, p.schema.Table)
	}

	token := EncodeRankCursor(id, filter, offset)
	page.Cursor = &token

	return page, nil
}

// checkRanks verifies that rows hold ranks offset+1, offset+2, ... and that
// the store respected the limit.
func checkRanks[T any](rows []RankedRow[T], offset, limit int) error {
	if len(rows) > limit {
		return fmt.Errorf("%w: got %d rows, limit %d", ErrSentinelMismatch, len(rows), limit)
	}

	for i, row := range rows {
		if want := offset + i + 1; row.Rank != want {
			return fmt.Errorf("%w: row %d has rank %d, want %d", ErrSentinelMismatch, i, row.Rank, want)
		}
	}

	return nil
}

// IsLastPage returns true if the result set fetched with one lookahead row
// holds no rows after the page, that is its length does not exceed pageSize.
func IsLastPage[T any](pageSize int, resultSet []T) bool {
	return len(resultSet) <= pageSize
}

// TrimResultSet trims the result set to what should be returned to the client.
//
// The lookahead row is dropped when present. Suppose pageSize = 2:
//
//   - resultSet = [a, b, c] → [a, b].
//   - resultSet = [a, b] → [a, b].
func TrimResultSet[T any](pageSize int, resultSet []T) []T {
	if len(resultSet) > pageSize {
		resultSet = resultSet[:pageSize]
	}

	return resultSet
}
