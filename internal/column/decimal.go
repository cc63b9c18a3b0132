package column

import (
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/flatfiles/internal/numfmt"
)

// NewDecimal returns an exact decimal column whose values are
// pgtype.Numeric, ready to hand to pgx. Parsing keeps the written scale, so
// "1.50" formats back as "1.50" under the default output format. A Numeric
// with Valid unset formats as null.
func NewDecimal(name string, opts DecimalOptions) (*Column[pgtype.Numeric], error) {
	o, err := opts.resolve(numfmt.Number, numfmt.KindDecimal)
	if err != nil {
		return nil, fmt.Errorf("decimal column %q: %w", name, err)
	}
	return newColumn(name, "decimal", o.Options, codec[pgtype.Numeric]{
		parse: func(s string) (pgtype.Numeric, error) {
			d, err := numfmt.ParseDecimal(s, o.Styles, o.Culture)
			if err != nil {
				return pgtype.Numeric{}, err
			}
			return toNumeric(d), nil
		},
		format: func(v pgtype.Numeric) (string, error) {
			return numfmt.FormatDecimal(fromNumeric(v), o.OutputFormat, o.Culture)
		},
		isNull: func(v pgtype.Numeric) bool { return !v.Valid },
	})
}

func toNumeric(d numfmt.Decimal) pgtype.Numeric {
	switch d.Special {
	case numfmt.NaN:
		return pgtype.Numeric{NaN: true, Valid: true}
	case numfmt.PosInf:
		return pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true}
	case numfmt.NegInf:
		return pgtype.Numeric{InfinityModifier: pgtype.NegativeInfinity, Valid: true}
	}
	return pgtype.Numeric{Int: d.Coef, Exp: d.Exp, Valid: true}
}

func fromNumeric(v pgtype.Numeric) numfmt.Decimal {
	switch {
	case v.NaN:
		return numfmt.Decimal{Special: numfmt.NaN}
	case v.InfinityModifier == pgtype.Infinity:
		return numfmt.Decimal{Special: numfmt.PosInf}
	case v.InfinityModifier == pgtype.NegativeInfinity:
		return numfmt.Decimal{Special: numfmt.NegInf}
	case v.Int == nil:
		return numfmt.Decimal{Coef: new(big.Int), Exp: v.Exp}
	}
	return numfmt.Decimal{Coef: v.Int, Exp: v.Exp}
}
