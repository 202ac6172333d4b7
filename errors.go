package rankpager

import "errors"

var (
	// ErrInvalidPageSize is returned when the requested page size is not positive.
	ErrInvalidPageSize = errors.New("page size must be positive")
	// ErrBackwardWithoutCursor is returned for backward navigation without a cursor token.
	ErrBackwardWithoutCursor = errors.New("cannot navigate backward without a cursor")
	// ErrNilFilter is returned when a required filter context is missing.
	ErrNilFilter = errors.New("filter context is required")

	// ErrInvalidColumn is returned when a column is not whitelisted by the row schema.
	ErrInvalidColumn = errors.New("invalid column")
	// ErrEmptyOrdering is returned when a ranked query has no order columns.
	ErrEmptyOrdering = errors.New("empty ordering list")
	// ErrInvalidOrdering is returned for malformed, misdirected or repeated order columns.
	ErrInvalidOrdering = errors.New("invalid ordering")
	// ErrInvalidStartIndex is returned when a ranked window starts before the first rank.
	ErrInvalidStartIndex = errors.New("start index must not be negative")
	// ErrEmptyProjection is returned when a ranked query selects no columns.
	ErrEmptyProjection = errors.New("empty projection list")

	// ErrQuery wraps backing store failures.
	ErrQuery = errors.New("ranked query failed")
	// ErrNilIdentity is returned when a fetched row carries no identity to mint a cursor from.
	ErrNilIdentity = errors.New("row has no identity")
	// ErrSentinelMismatch signals that the fetched window does not match the
	// requested rank range. It indicates a defect, not a user error.
	ErrSentinelMismatch = errors.New("sentinel row accounting mismatch")
)

// IsContractViolation reports whether err was caused by the caller and should
// be surfaced as a client error.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrInvalidPageSize) ||
		errors.Is(err, ErrBackwardWithoutCursor) ||
		errors.Is(err, ErrNilFilter) ||
		errors.Is(err, ErrInvalidColumn) ||
		errors.Is(err, ErrEmptyOrdering) ||
		errors.Is(err, ErrInvalidOrdering) ||
		errors.Is(err, ErrInvalidStartIndex) ||
		errors.Is(err, ErrEmptyProjection)
}
