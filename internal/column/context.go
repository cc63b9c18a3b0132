package column

import (
	"context"
	"fmt"
)

type contextKey string

const ctxKeyPosition contextKey = "column_position"

// Position locates a field within a file. Record engines attach it to the
// per-row context so conversion errors can say where they happened.
type Position struct {
	Record int // 1-based logical record number
	Line   int // 1-based physical line, 0 if unknown
	Column int // 0-based field index within the record
}

func (p Position) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("record %d (line %d), column %d", p.Record, p.Line, p.Column)
	}
	return fmt.Sprintf("record %d, column %d", p.Record, p.Column)
}

// WithPosition adds the field position to ctx.
func WithPosition(ctx context.Context, pos Position) context.Context {
	return context.WithValue(ctx, ctxKeyPosition, pos)
}

// PositionFromContext extracts the field position from ctx.
func PositionFromContext(ctx context.Context) (Position, bool) {
	if ctx == nil {
		return Position{}, false
	}
	pos, ok := ctx.Value(ctxKeyPosition).(Position)
	return pos, ok
}

func positionOf(ctx context.Context) *Position {
	if pos, ok := PositionFromContext(ctx); ok {
		return &pos
	}
	return nil
}
