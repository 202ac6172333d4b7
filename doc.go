// Package rankpager provides rank-window cursor pagination primitives.
//
// Overview
//
// rankpager pages through a relational table by numbering rows under a fixed
// total order (ROW_NUMBER() OVER (ORDER BY ...)) and remembering the rank at
// which the current page starts. The position travels to the client inside an
// opaque token together with the filter it was computed under:
//   - RankCursor: versioned, kind-tagged token carrying (LastId, Entity, Position).
//     Tokens that cannot be decoded, or that were minted under another filter,
//     silently restart the sequence.
//   - ComputeOffset: turns a token, a page size and a direction into the rank
//     after which the next window begins.
//   - RankedQuery: builds the windowed query with a +1 lookahead row.
//   - RankPager: orchestrates decoding, querying, trimming and re-encoding.
//
// Key concepts
//   - Schema: whitelisted columns of a row shape together with an explicit scan
//     plan. Only schema columns may reach query text; values are always bound.
//   - Orderings: multi-column ordering, made total by a unique tie-breaker.
//   - Executor: the backing store (gorm or sqlx) running the built query.
package rankpager
