package rankpager

import (
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

const (
	// RankColumn is the name of the computed rank column.
	RankColumn = "row_rank"

	rankedAlias = "ranked"
)

// RankedQuerySpec describes a row window over a schema.
type RankedQuerySpec struct {
	// Columns projection, every entry must be whitelisted by the schema.
	Columns []string
	// Orderings total order the ranks are assigned under.
	Orderings Orderings
	// Conditions equality predicates applied before ranking.
	Conditions map[string]any
	// StartIndex rank after which the window starts.
	StartIndex int
	// PageSize number of rows the caller wants. One more row is fetched.
	PageSize int
	// Placeholder bind variable format, sq.Question if nil.
	Placeholder sq.PlaceholderFormat
}

// RankedQuery is a built window query. Its text contains only whitelisted
// identifiers, every value is carried in Args.
type RankedQuery struct {
	SQL     string
	Args    []any
	Columns []string

	StartIndex int
	PageSize   int
}

// Limit returns the number of rows the query may return: PageSize plus the
// sentinel row.
func (q *RankedQuery) Limit() int {
	return q.PageSize + 1
}

// Apply returns a gorm raw statement for the query. The query must have been
// built with sq.Question placeholders, gorm rebinds them per dialect.
func (q *RankedQuery) Apply(db *gorm.DB) *gorm.DB {
	return db.Raw(q.SQL, q.Args...)
}

// BuildRankedQuery builds
//
//	SELECT <cols>, row_rank FROM (
//		SELECT <cols>, ROW_NUMBER() OVER (ORDER BY <orderings>) AS row_rank
//		FROM <table> WHERE <conditions>
//	) AS ranked WHERE row_rank > ? ORDER BY row_rank LIMIT <page size + 1>
//
// Every column is checked against the schema before any text is produced.
func BuildRankedQuery[T any](schema Schema[T], spec RankedQuerySpec) (*RankedQuery, error) {
	if err := validateRankedQuerySpec(schema, spec); err != nil {
		return nil, fmt.Errorf("cannot build ranked query: %w", err)
	}

	placeholder := spec.Placeholder
	if placeholder == nil {
		placeholder = sq.Question
	}

	window := fmt.Sprintf("ROW_NUMBER() OVER (ORDER BY %s) AS %s", spec.Orderings.ToSQL(), RankColumn)
	inner := sq.Select(spec.Columns...).
		Column(window).
		From(schema.Table)
	if len(spec.Conditions) > 0 {
		inner = inner.Where(sq.Eq(spec.Conditions))
	}

	outerColumns := append(slices.Clone(spec.Columns), RankColumn)
	outer := sq.Select(outerColumns...).
		FromSelect(inner, rankedAlias).
		Where(sq.Gt{RankColumn: spec.StartIndex}).
		OrderBy(RankColumn).
		Limit(uint64(spec.PageSize + 1)).
		PlaceholderFormat(placeholder)

	sqlText, args, err := outer.ToSql()
	if err != nil {
		return nil, fmt.Errorf("cannot build ranked query: %w", err)
	}

	return &RankedQuery{
		SQL:        sqlText,
		Args:       args,
		Columns:    slices.Clone(spec.Columns),
		StartIndex: spec.StartIndex,
		PageSize:   spec.PageSize,
	}, nil
}

func validateRankedQuerySpec[T any](schema Schema[T], spec RankedQuerySpec) error {
	if spec.PageSize <= 0 {
		return ErrInvalidPageSize
	}

	if spec.StartIndex < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidStartIndex, spec.StartIndex)
	}

	if len(spec.Columns) == 0 {
		return ErrEmptyProjection
	}

	if err := spec.Orderings.validate(); err != nil {
		return err
	}

	if err := schema.checkColumns(spec.Columns...); err != nil {
		return err
	}

	if slices.Contains(spec.Columns, RankColumn) {
		return fmt.Errorf("%w: '%s' is reserved", ErrInvalidColumn, RankColumn)
	}

	if len(slices.Compact(slices.Sorted(slices.Values(spec.Columns)))) != len(spec.Columns) {
		return fmt.Errorf("%w: duplicate projection column", ErrInvalidColumn)
	}

	for _, ordering := range spec.Orderings {
		if err := schema.checkColumns(ordering.Column); err != nil {
			return err
		}
	}

	for column := range spec.Conditions {
		if err := schema.checkColumns(column); err != nil {
			return err
		}
	}

	return nil
}
