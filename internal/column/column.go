package column

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Definition is the conversion contract of one named, typed field.
//
// Parse returns nil with a nil error when raw is the column's null
// representation. Format accepts nil, a value of the column's type or a
// pointer to one.
type Definition interface {
	Name() string
	Type() reflect.Type
	Parse(ctx context.Context, raw string) (any, error)
	Format(ctx context.Context, v any) (string, error)
}

// Options holds the settings shared by every column type.
type Options struct {
	NullHandler  NullHandler  // nil means DefaultNullHandler
	Preprocessor Preprocessor // nil means no preprocessing
	Trim         TrimPolicy   // zero value is TrimWhitespace
}

// codec is the type-specific half of a column.
type codec[T any] struct {
	parse  func(s string) (T, error)
	format func(v T) (string, error)
	isNull func(v T) bool // optional; reports values that stand for null
}

// Column is a frozen column definition producing values of type T. It is
// safe for concurrent use.
type Column[T any] struct {
	name  string
	kind  string
	typ   reflect.Type
	nulls NullHandler
	pre   Preprocessor
	trim  TrimPolicy
	codec codec[T]
}

var _ Definition = (*Column[float64])(nil)

func newColumn[T any](name, kind string, opts Options, c codec[T]) (*Column[T], error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%s column: %w", kind, ErrEmptyName)
	}
	if err := opts.Trim.validate(); err != nil {
		return nil, fmt.Errorf("%s column %q: %w", kind, name, err)
	}
	nulls := opts.NullHandler
	if nulls == nil {
		nulls = DefaultNullHandler()
	}
	return &Column[T]{
		name:  name,
		kind:  kind,
		typ:   reflect.TypeFor[T](),
		nulls: nulls,
		pre:   opts.Preprocessor,
		trim:  opts.Trim,
		codec: c,
	}, nil
}

func (c *Column[T]) Name() string { return c.name }

// Kind is the registry name of the column type, e.g. "double".
func (c *Column[T]) Kind() string { return c.kind }

func (c *Column[T]) Type() reflect.Type { return c.typ }

func (c *Column[T]) NullHandler() NullHandler { return c.nulls }

// Parse implements Definition.
func (c *Column[T]) Parse(ctx context.Context, raw string) (any, error) {
	v, ok, err := c.ParseValue(ctx, raw)
	if err != nil || !ok {
		return nil, err
	}
	return v, nil
}

// ParseValue runs the parse pipeline. ok is false when raw is the null
// representation.
func (c *Column[T]) ParseValue(ctx context.Context, raw string) (v T, ok bool, err error) {
	if c.pre != nil {
		raw = c.pre(raw)
	}
	if c.nulls.IsNullRepresentation(raw) {
		return v, false, nil
	}

	s := c.trim.Trim(raw)
	parsed, err := c.codec.parse(s)
	if err != nil {
		return v, false, &FormatError{
			Column:   c.name,
			Value:    s,
			Type:     c.typ,
			Position: positionOf(ctx),
			Err:      err,
		}
	}
	return parsed, true, nil
}

// Format implements Definition.
func (c *Column[T]) Format(ctx context.Context, v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return c.nulls.GetNullRepresentation(), nil
	case T:
		return c.FormatValue(ctx, x)
	case *T:
		if x == nil {
			return c.nulls.GetNullRepresentation(), nil
		}
		return c.FormatValue(ctx, *x)
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return c.nulls.GetNullRepresentation(), nil
	}
	return "", &TypeMismatchError{
		Column:   c.name,
		Want:     c.typ,
		Got:      reflect.TypeOf(v),
		Position: positionOf(ctx),
	}
}

// FormatValue renders v, or the null representation when the value type
// has its own notion of null (pgtype.Numeric with Valid unset).
func (c *Column[T]) FormatValue(ctx context.Context, v T) (string, error) {
	if c.codec.isNull != nil && c.codec.isNull(v) {
		return c.nulls.GetNullRepresentation(), nil
	}
	s, err := c.codec.format(v)
	if err != nil {
		return "", fmt.Errorf("column %q: %w", c.name, err)
	}
	return s, nil
}

// Info summarizes a column for listings.
type Info struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Type string `json:"type"`
	Null string `json:"null"`
}

type describer interface {
	Kind() string
	NullHandler() NullHandler
}

// Describe returns the listing summary of d.
func Describe(d Definition) Info {
	info := Info{Name: d.Name(), Type: typeLabel(d.Type())}
	if x, ok := d.(describer); ok {
		info.Kind = x.Kind()
		info.Null = x.NullHandler().GetNullRepresentation()
	}
	return info
}
