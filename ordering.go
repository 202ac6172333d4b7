package rankpager

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

// Direction defines the sort direction for the requested dataset.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

type (
	Orderings []OrderBy
	OrderBy   struct {
		Column    string    `json:"column"`
		Direction Direction `json:"direction"`
	}

	ColumnAlias = string

	// ColumnMapping maps external column aliases to whitelisted column names.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

var _availableColumnNameSymbols = append([]rune("_."), lo.AlphanumericCharset...)

// isSafeIdentifier restricts identifiers to symbols that cannot break out of
// the query text they are interpolated into.
func isSafeIdentifier(column string) bool {
	return column != "" && lo.Every(_availableColumnNameSymbols, []rune(column))
}

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("%w: direction '%s'", ErrInvalidOrdering, o.Direction)
	}

	if !isSafeIdentifier(o.Column) {
		return fmt.Errorf("%w: ordering column name contains forbidden symbols '%s'", ErrInvalidColumn, o.Column)
	}

	return nil
}

// ToSQLSlice converts Orderings to a slice of strings in the form
// "<order_column> <order_direction>".
//
// Example: for Orderings: [{"a", "ASC"}, {"b", "DESC"}] returns ["a ASC", "b DESC"].
func (o Orderings) ToSQLSlice() []string {
	ret := make([]string, 0, len(o))
	for _, ordering := range o {
		ret = append(ret, fmt.Sprintf("%s %s", ordering.Column, ordering.Direction))
	}

	return ret
}

// ToSQL converts Orderings to a single string
// "<order_column_1> <order_direction_1>, <order_column_2> <order_direction_2>".
//
// Usage:
//
//	window := fmt.Sprintf("ROW_NUMBER() OVER (ORDER BY %s)", orderings.ToSQL())
func (o Orderings) ToSQL() string {
	return strings.Join(o.ToSQLSlice(), ", ")
}

// WithTieBreaker returns orderings extended with key ASC unless key is
// already ordered on. Ranks are only reproducible under a total order, so the
// trailing unique column breaks any remaining ties.
func (o Orderings) WithTieBreaker(key string) Orderings {
	if lo.ContainsBy(o, func(item OrderBy) bool { return item.Column == key }) {
		return o
	}

	ret := make(Orderings, 0, len(o)+1)
	ret = append(ret, o...)

	return append(ret, OrderBy{Column: key, Direction: DirectionASC})
}

// Equal reports whether both orderings list the same columns in the same
// order and direction.
func (o Orderings) Equal(other Orderings) bool {
	if len(o) != len(other) {
		return false
	}

	for i := range o {
		if o[i] != other[i] {
			return false
		}
	}

	return true
}

func (o Orderings) validate() error {
	if len(o) == 0 {
		return ErrEmptyOrdering
	}

	seen := make(map[string]struct{}, len(o))
	for _, ordering := range o {
		if err := ordering.validate(); err != nil {
			return err
		}

		if _, ok := seen[ordering.Column]; ok {
			return fmt.Errorf("%w: duplicate column '%s'", ErrInvalidOrdering, ordering.Column)
		}
		seen[ordering.Column] = struct{}{}
	}

	return nil
}

// ParseSort builds Orderings from a list of strings in the format
// "column asc|desc". Column aliases are resolved via ColumnMapping.
// Returns an error if an alias is not found in the mapping or a column is
// ordered on twice.
func ParseSort(stringsOrderings []string, columnMapping ColumnMapping) (Orderings, error) {
	ret := make([]OrderBy, 0, len(stringsOrderings))
	aliases := lo.Keys(columnMapping)
	seen := make(map[string]struct{}, len(stringsOrderings))

	for _, stringOrdering := range stringsOrderings {
		cutStringOrdering := strings.Fields(stringOrdering)
		if len(cutStringOrdering) != 2 {
			return nil, fmt.Errorf("%w: format '%s'", ErrInvalidOrdering, stringOrdering)
		}

		columnAlias := cutStringOrdering[0]
		direction := Direction(strings.ToUpper(cutStringOrdering[1]))
		if !direction.Valid() {
			return nil, fmt.Errorf("%w: direction '%s'", ErrInvalidOrdering, cutStringOrdering[1])
		}

		columnName := columnMapping[columnAlias]
		if columnName == "" {
			return nil, fmt.Errorf(
				"%w: invalid column alias. closest: '%s'",
				ErrInvalidColumn,
				closestAlias(columnAlias, aliases),
			)
		}

		if _, ok := seen[columnName]; ok {
			return nil, fmt.Errorf("%w: duplicate column '%s'", ErrInvalidOrdering, columnAlias)
		}
		seen[columnName] = struct{}{}

		ret = append(ret, OrderBy{
			Column:    columnName,
			Direction: direction,
		})
	}

	return ret, nil
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist || (dist == minDist && dataSetAlias < closest) {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
