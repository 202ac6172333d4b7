package rankpager

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Fields - dictionary of scan targets of a row shape. Its keys are the only
// column names allowed to reach query text.
// Example:
//
//	rankpager.Fields[User]{
//		"id":   func(u *User) any { return &u.ID },
//		"name": func(u *User) any { return &u.Name },
//	}
type Fields[T any] map[string]func(*T) any

// Columns returns whitelisted column names in a stable order.
func (f Fields[T]) Columns() []string {
	columns := lo.Keys(f)
	slices.Sort(columns)

	return columns
}

// Schema describes a table a RankPager pages through.
type Schema[T any] struct {
	// Table name of the backing relation.
	Table string
	// Key unique column used to make orderings total.
	Key string
	// Identity returns the unique identity of a row.
	Identity func(T) uuid.UUID
	// Fields whitelist of selectable and orderable columns.
	Fields Fields[T]
}

// Validate checks that the schema can be interpolated into query text.
func (s Schema[T]) Validate() error {
	if !isSafeIdentifier(s.Table) {
		return fmt.Errorf("%w: table name '%s'", ErrInvalidColumn, s.Table)
	}

	if s.Identity == nil {
		return fmt.Errorf("schema of '%s' has no identity getter", s.Table)
	}

	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: schema of '%s' has no fields", ErrEmptyProjection, s.Table)
	}

	for column, target := range s.Fields {
		if !isSafeIdentifier(column) {
			return fmt.Errorf("%w: column name contains forbidden symbols '%s'", ErrInvalidColumn, column)
		}
		if target == nil {
			return fmt.Errorf("column '%s' has no scan target", column)
		}
	}

	return s.checkColumns(s.Key)
}

// Has returns true if column is whitelisted.
func (s Schema[T]) Has(column string) bool {
	_, ok := s.Fields[column]
	return ok
}

// checkColumns rejects any column the schema does not whitelist.
func (s Schema[T]) checkColumns(columns ...string) error {
	for _, column := range columns {
		if !s.Has(column) {
			return fmt.Errorf("%w: unknown column '%s' for '%s'", ErrInvalidColumn, column, s.Table)
		}
	}

	return nil
}

// ColumnMapping exposes whitelisted columns as sort aliases of themselves.
func (s Schema[T]) ColumnMapping() ColumnMapping {
	return lo.SliceToMap(s.Fields.Columns(), func(column string) (ColumnAlias, string) {
		return column, column
	})
}

// scanTargets returns pointers into row for the given projection followed by
// rank.
func (s Schema[T]) scanTargets(row *T, rank *int, columns []string) []any {
	targets := make([]any, 0, len(columns)+1)
	for _, column := range columns {
		targets = append(targets, s.Fields[column](row))
	}

	return append(targets, rank)
}
