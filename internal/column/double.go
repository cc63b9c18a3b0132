package column

import (
	"fmt"

	"github.com/JonMunkholm/flatfiles/internal/numfmt"
)

// NumberOptions configures the numeric column types.
type NumberOptions struct {
	Options

	// Culture supplies separators, signs and symbols. nil means
	// numfmt.Invariant; process locale settings are never consulted.
	Culture *numfmt.Culture
	// Styles selects the accepted lexical forms. Zero selects the type's
	// default (Float for floating point, Integer for integers, Number for
	// decimals).
	Styles numfmt.Styles
	// OutputFormat is a standard ("F2", "N0", "E3") or custom ("#,##0.00")
	// pattern. Empty renders the culture's default representation.
	OutputFormat string
}

type (
	DoubleOptions  = NumberOptions
	SingleOptions  = NumberOptions
	IntegerOptions = NumberOptions
	DecimalOptions = NumberOptions
)

// resolve fills defaults and checks the options against kind.
func (o NumberOptions) resolve(def numfmt.Styles, kind numfmt.Kind) (NumberOptions, error) {
	if o.Culture == nil {
		o.Culture = numfmt.Invariant
	}
	if o.Styles == 0 {
		o.Styles = def
	}
	if o.Styles.Has(numfmt.AllowHexSpecifier) && kind != numfmt.KindInteger {
		return o, fmt.Errorf("%w: hex styles apply to integer columns only", ErrInvalidOption)
	}
	if err := numfmt.ValidatePattern(o.OutputFormat, kind); err != nil {
		return o, fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	return o, nil
}

// NewDouble returns a float64 column. Text outside the float64 range parses
// to ±Inf.
func NewDouble(name string, opts DoubleOptions) (*Column[float64], error) {
	o, err := opts.resolve(numfmt.Float, numfmt.KindFloat)
	if err != nil {
		return nil, fmt.Errorf("double column %q: %w", name, err)
	}
	return newColumn(name, "double", o.Options, codec[float64]{
		parse: func(s string) (float64, error) {
			return numfmt.ParseFloat(s, o.Styles, o.Culture)
		},
		format: func(v float64) (string, error) {
			return numfmt.FormatFloat(v, o.OutputFormat, o.Culture)
		},
	})
}

// NewSingle returns a float32 column.
func NewSingle(name string, opts SingleOptions) (*Column[float32], error) {
	o, err := opts.resolve(numfmt.Float, numfmt.KindFloat)
	if err != nil {
		return nil, fmt.Errorf("single column %q: %w", name, err)
	}
	return newColumn(name, "single", o.Options, codec[float32]{
		parse: func(s string) (float32, error) {
			return numfmt.ParseFloat32(s, o.Styles, o.Culture)
		},
		format: func(v float32) (string, error) {
			return numfmt.FormatFloat32(v, o.OutputFormat, o.Culture)
		},
	})
}
