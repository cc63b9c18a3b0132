package column

import (
	"fmt"

	"github.com/JonMunkholm/flatfiles/internal/numfmt"
)

type signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

func newSigned[T signed](name, kind string, bitSize int, opts IntegerOptions) (*Column[T], error) {
	o, err := opts.resolve(numfmt.Integer, numfmt.KindInteger)
	if err != nil {
		return nil, fmt.Errorf("%s column %q: %w", kind, name, err)
	}
	return newColumn(name, kind, o.Options, codec[T]{
		parse: func(s string) (T, error) {
			v, err := numfmt.ParseInt(s, o.Styles, o.Culture, bitSize)
			return T(v), err
		},
		format: func(v T) (string, error) {
			return numfmt.FormatInt(int64(v), bitSize, o.OutputFormat, o.Culture)
		},
	})
}

// NewInt16 returns an int16 column.
func NewInt16(name string, opts IntegerOptions) (*Column[int16], error) {
	return newSigned[int16](name, "int16", 16, opts)
}

// NewInt32 returns an int32 column.
func NewInt32(name string, opts IntegerOptions) (*Column[int32], error) {
	return newSigned[int32](name, "int32", 32, opts)
}

// NewInt64 returns an int64 column.
func NewInt64(name string, opts IntegerOptions) (*Column[int64], error) {
	return newSigned[int64](name, "int64", 64, opts)
}

// NewByte returns a uint8 column. Negative text fails with a range error.
func NewByte(name string, opts IntegerOptions) (*Column[uint8], error) {
	o, err := opts.resolve(numfmt.Integer, numfmt.KindInteger)
	if err != nil {
		return nil, fmt.Errorf("byte column %q: %w", name, err)
	}
	return newColumn(name, "byte", o.Options, codec[uint8]{
		parse: func(s string) (uint8, error) {
			v, err := numfmt.ParseUint(s, o.Styles, o.Culture, 8)
			return uint8(v), err
		},
		format: func(v uint8) (string, error) {
			return numfmt.FormatUint(uint64(v), 8, o.OutputFormat, o.Culture)
		},
	})
}
