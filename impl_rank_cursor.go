package rankpager

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RankCursorVersion is the current wire version of RankCursor tokens. Tokens
// of any other version are treated as absent.
const RankCursorVersion = 1

// RankCursor points at a position in a ranked sequence. It remembers the
// identity of a reference row, the filter the position was computed under and
// the rank after which the page it was minted for begins. Zero position
// denotes the start of the sequence.
//
// A cursor is never mutated: a new one is minted for every page.
type RankCursor[F FilterContext[F]] struct {
	lastID   uuid.UUID
	entity   F
	position int
}

// rankCursorPayload is the wire envelope. LastId, Entity and Position are the
// public token fields, Version and Kind tag the embedded entity shape.
type rankCursorPayload struct {
	Version  int             `json:"Version"`
	Kind     string          `json:"Kind"`
	LastID   uuid.UUID       `json:"LastId"`
	Entity   json.RawMessage `json:"Entity"`
	Position int             `json:"Position"`
}

// NewRankCursor panics on a nil lastID or a negative position: such a cursor
// could never be decoded back.
func NewRankCursor[F FilterContext[F]](lastID uuid.UUID, entity F, position int) *RankCursor[F] {
	if lastID == uuid.Nil {
		panic(errors.New("rank cursor without reference id"))
	}

	if position < 0 {
		panic(fmt.Errorf("negative cursor position %d", position))
	}

	return &RankCursor[F]{
		lastID:   lastID,
		entity:   entity,
		position: position,
	}
}

// EncodeRankCursor serializes the triple into an opaque URL-safe token.
func EncodeRankCursor[F FilterContext[F]](lastID uuid.UUID, entity F, position int) string {
	return NewRankCursor(lastID, entity, position).String()
}

// DecodeRankCursor decodes a token produced by EncodeRankCursor. It never
// fails: empty, malformed, tampered and foreign tokens yield nil, which
// callers treat as "start from the beginning".
func DecodeRankCursor[F FilterContext[F]](token string) *RankCursor[F] {
	cursor, err := ParseRankCursor[F](token)
	if err != nil {
		return nil
	}

	return cursor
}

// ParseRankCursor is the diagnostic form of DecodeRankCursor. It returns
// (nil, nil) for an empty or whitespace-only token and an error describing why
// any other unusable token was rejected.
func ParseRankCursor[F FilterContext[F]](token string) (*RankCursor[F], error) {
	token = strings.TrimSpace(token)
	if len(token) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 encoded rank cursor: %w", err)
	}

	var payload rankCursorPayload
	if err = strictUnmarshal(jsonData, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json encoded rank cursor: %w", err)
	}

	if payload.Version != RankCursorVersion {
		return nil, fmt.Errorf("unsupported rank cursor version %d", payload.Version)
	}

	var entity F
	if kind := entity.FilterKind(); payload.Kind != kind {
		return nil, fmt.Errorf("unexpected rank cursor kind '%s', want '%s'", payload.Kind, kind)
	}

	if payload.LastID == uuid.Nil {
		return nil, errors.New("rank cursor has no reference id")
	}

	if payload.Position < 0 {
		return nil, fmt.Errorf("negative rank cursor position %d", payload.Position)
	}

	if len(payload.Entity) == 0 {
		return nil, errors.New("rank cursor has no entity")
	}

	if err = strictUnmarshal(payload.Entity, &entity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rank cursor entity: %w", err)
	}

	return &RankCursor[F]{
		lastID:   payload.LastID,
		entity:   entity,
		position: payload.Position,
	}, nil
}

// strictUnmarshal rejects unknown fields and trailing data.
func strictUnmarshal(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}

	if dec.More() {
		return errors.New("unexpected trailing data")
	}

	return nil
}

// String - implements fmt.Stringer.
func (c *RankCursor[F]) String() string {
	if c == nil {
		return ""
	}

	entity, err := json.Marshal(c.entity)
	if err != nil {
		panic(fmt.Errorf("cannot marshal rank cursor entity: %w", err))
	}

	jTok, err := json.Marshal(rankCursorPayload{
		Version:  RankCursorVersion,
		Kind:     c.entity.FilterKind(),
		LastID:   c.lastID,
		Entity:   entity,
		Position: c.position,
	})
	if err != nil {
		panic(fmt.Errorf("cannot marshal rank cursor value: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		panic(fmt.Errorf("cannot compact rank cursor value: %w", err))
	}

	return _encoder.EncodeToString(buf.Bytes())
}

// IsStart returns true if the cursor points at the start of the sequence.
func (c *RankCursor[F]) IsStart() bool {
	return c == nil || c.position == 0
}

// GetLastID returns the identity of the reference row.
func (c *RankCursor[F]) GetLastID() uuid.UUID {
	if c == nil {
		return uuid.Nil
	}

	return c.lastID
}

// GetEntity returns the filter the cursor was minted under.
func (c *RankCursor[F]) GetEntity() F {
	if c == nil {
		var zero F
		return zero
	}

	return c.entity
}

// GetPosition returns the rank after which the page the cursor was minted for begins.
func (c *RankCursor[F]) GetPosition() int {
	if c == nil {
		return 0
	}

	return c.position
}
