package rankpager

import (
	"encoding/base64"
)

var _encoder = base64.RawURLEncoding

// FilterContext is implemented by every filter shape that can be embedded into
// a cursor. Equality is explicit so that a change of the shape breaks the
// build instead of silently comparing fewer fields.
type FilterContext[F any] interface {
	// FilterKind is the wire discriminant of the shape, e.g. "users.v1".
	FilterKind() string
	// Equal reports whether two filters select and order the same rows.
	Equal(other F) bool
	// Conditions returns column -> value equality predicates.
	Conditions() map[string]any
	// Orderings returns the ordering implied by the filter.
	Orderings() Orderings
}

// RankedRow pairs a row with its 1-based rank under the query ordering.
type RankedRow[T any] struct {
	Row  T
	Rank int
}

// ResultPage is the response envelope of a single page request.
type ResultPage[T any] struct {
	// Items page elements, sentinel row excluded.
	Items []T `json:"items"`
	// Cursor token for further navigation, nil when there is nowhere to go.
	Cursor *string `json:"cursor"`
	// HasPrevious is true when the page does not start at the first rank.
	HasPrevious bool `json:"hasPrevious"`
	// HasMore is true when rows exist after the page.
	HasMore bool `json:"hasMore"`
}

// IsEmpty returns true if the page carries no items.
func (p *ResultPage[T]) IsEmpty() bool {
	return p == nil || len(p.Items) == 0
}
