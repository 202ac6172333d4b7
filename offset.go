package rankpager

import "fmt"

// CursorState is the outcome of resolving a cursor token against the current
// filter.
type CursorState int

const (
	// CursorAbsent - no token was supplied.
	CursorAbsent CursorState = iota
	// CursorMalformed - the token could not be decoded and is ignored.
	CursorMalformed
	// CursorStale - the token was minted under another filter and is ignored.
	CursorStale
	// CursorValid - the token is honored.
	CursorValid
)

func (s CursorState) String() string {
	switch s {
	case CursorAbsent:
		return "absent"
	case CursorMalformed:
		return "malformed"
	case CursorStale:
		return "stale"
	case CursorValid:
		return "valid"
	default:
		return fmt.Sprintf("CursorState(%d)", int(s))
	}
}

// ResolveCursor decodes token and checks it against the current filter. The
// cursor is returned only in the CursorValid state.
func ResolveCursor[F FilterContext[F]](token string, currentFilter F) (*RankCursor[F], CursorState) {
	cursor, err := ParseRankCursor[F](token)
	switch {
	case err != nil:
		return nil, CursorMalformed
	case cursor == nil:
		return nil, CursorAbsent
	case !cursor.GetEntity().Equal(currentFilter):
		return nil, CursorStale
	default:
		return cursor, CursorValid
	}
}

// ComputeOffset returns the rank after which the requested page starts.
//
// Absent, malformed and stale cursors restart the sequence at 0. Otherwise,
// with k the cursor position:
//   - forward: k + pageSize
//   - backward: max(0, k - pageSize)
//
// pageSize must be positive, violating that is a programming error.
func ComputeOffset[F FilterContext[F]](cursorToken string, pageSize int, isNext bool, currentFilter F) int {
	cursor, _ := ResolveCursor(cursorToken, currentFilter)
	return offsetFrom(cursor, pageSize, isNext)
}

func offsetFrom[F FilterContext[F]](cursor *RankCursor[F], pageSize int, isNext bool) int {
	if pageSize <= 0 {
		panic(fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize))
	}

	if cursor == nil {
		return 0
	}

	lastIndex := cursor.GetPosition()
	if isNext {
		return lastIndex + pageSize
	}

	return max(0, lastIndex-pageSize)
}
