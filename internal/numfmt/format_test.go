package numfmt

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFloat_Default(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"fraction", 3.14, "3.14"},
		{"whole", 3.0, "3"},
		{"negative", -0.5, "-0.5"},
		{"zero", 0, "0"},
		{"negative zero", math.Copysign(0, -1), "-0"},
		{"shortest digits", 0.1, "0.1"},
		{"fourteen digit exponent", 123456789012345, "123456789012345"},
		{"scientific above threshold", 1e15, "1E+15"},
		{"small fixed", 0.0001, "0.0001"},
		{"small scientific", 0.00001, "1E-05"},
		{"large mantissa", 1.5e300, "1.5E+300"},
		{"nan", math.NaN(), "NaN"},
		{"positive infinity", math.Inf(1), "Infinity"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFloat(tt.input, "", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFloat_Standard(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		pattern string
		culture string
		want    string
	}{
		{"fixed two", 3.0, "F2", "", "3.00"},
		{"fixed two german", 3.0, "F2", "de-DE", "3,00"},
		{"fixed default precision", 1.5, "F", "", "1.50"},
		{"fixed rounds half away", 0.125, "F2", "", "0.13"},
		{"fixed uses exact binary value", 1.005, "F2", "", "1.00"},
		{"fixed zero digits", 2.5, "F0", "", "3"},
		{"fixed negative half", -2.5, "F0", "", "-3"},
		{"number en", 1234567.891, "N2", "en-US", "1,234,567.89"},
		{"number de", 1234567.891, "N2", "de-DE", "1.234.567,89"},
		{"number indian grouping", 1234567, "N0", "en-IN", "12,34,567"},
		{"number swiss", 1234.5, "N1", "de-CH", "1’234.5"},
		{"exponent", 1234.5678, "E2", "", "1.23E+003"},
		{"exponent lower", 1234.5678, "e3", "", "1.235e+003"},
		{"exponent negative", 0.00012, "E1", "", "1.2E-004"},
		{"general precision", 12345.6789, "G4", "", "1.235E+04"},
		{"general fixed", 12.5, "G4", "", "12.5"},
		{"general shortest", 0.5, "G", "", "0.5"},
		{"round trip", 0.1, "R", "", "0.1"},
		{"percent en", 0.1234, "P1", "en-US", "12.3%"},
		{"percent invariant", 0.1234, "P1", "", "12.3 %"},
		{"percent negative", -0.5, "P0", "en-US", "-50%"},
		{"currency en", 1234.5, "C", "en-US", "$1,234.50"},
		{"currency en negative", -1234.5, "C", "en-US", "-$1,234.50"},
		{"currency de", 1234.5, "C", "de-DE", "1.234,50 €"},
		{"currency de negative", -1234.5, "C", "de-DE", "-1.234,50 €"},
		{"currency yen no decimals", 1234.5, "C", "ja-JP", "￥1,235"},
		{"unicode minus", -1.5, "F1", "sv-SE", "−1,5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFloat(tt.input, tt.pattern, mustCulture(t, tt.culture))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFloat_Custom(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		pattern string
		want    string
	}{
		{"grouped two decimals", 1234567.891, "#,##0.00", "1,234,567.89"},
		{"fixed decimals", 3, "0.00", "3.00"},
		{"optional digits", 0.5, "#.##", ".5"},
		{"optional digits trimmed", 1.5, "0.##", "1.5"},
		{"padded integer", 5, "000", "005"},
		{"digits around literal", 5, "00-00", "00-05"},
		{"negative section", -5, "0.0;(0.0)", "(5.0)"},
		{"negative without section", -5, "0.0", "-5.0"},
		{"zero section", 0, "0;-0;'zero'", "zero"},
		{"rounds into zero section", 0.001, "0.0;-0.0;nil", "nil"},
		{"scaling commas", 1234567, "#,,", "1"},
		{"scaling before point", 1234567, "#,##0,.0", "1,234.6"},
		{"percent", 0.25, "0%", "25%"},
		{"per mille", 0.025, "0‰", "25‰"},
		{"scientific", 12345, "0.###E+0", "1.235E+4"},
		{"scientific padded exponent", 0.00012, "0.0e-00", "1.2e-04"},
		{"quoted literal", 42, "'#'0", "#42"},
		{"escaped literal", 42, `\#0`, "#42"},
		{"extra integer digits", 12345, "0", "12345"},
		{"literal only", 7, "abc", "abc"},
		{"nan", math.NaN(), "0.00", "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFloat(tt.input, tt.pattern, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFloat_CustomGerman(t *testing.T) {
	got, err := FormatFloat(1234.5, "#,##0.00", mustCulture(t, "de-DE"))
	require.NoError(t, err)
	assert.Equal(t, "1.234,50", got)
}

func TestFormatFloat32(t *testing.T) {
	got, err := FormatFloat32(0.1, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "0.1", got)

	got, err = FormatFloat32(1e7, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "1E+07", got)

	got, err = FormatFloat32(1234567, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "1234567", got)
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		name    string
		input   int64
		bitSize int
		pattern string
		culture string
		want    string
	}{
		{"default", 42, 64, "", "", "42"},
		{"default negative", -42, 64, "", "", "-42"},
		{"min int64", math.MinInt64, 64, "", "", "-9223372036854775808"},
		{"decimal padded", 42, 64, "D5", "", "00042"},
		{"decimal padded negative", -42, 64, "D5", "", "-00042"},
		{"hex padded", 255, 64, "X4", "", "00FF"},
		{"hex negative int8", -1, 8, "X", "", "FF"},
		{"hex negative int32 lower", -1, 32, "x", "", "ffffffff"},
		{"number", 1234567, 64, "N0", "en-US", "1,234,567"},
		{"number with decimals", 1234, 64, "N", "de-DE", "1.234,00"},
		{"fixed", 7, 64, "F1", "", "7.0"},
		{"general with precision", 123456, 64, "G3", "", "1.23E+05"},
		{"custom", 1234, 64, "#,##0", "en-US", "1,234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatInt(tt.input, tt.bitSize, tt.pattern, mustCulture(t, tt.culture))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := FormatUint(math.MaxUint64, 64, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", got)
}

func TestFormatDecimal(t *testing.T) {
	dec := func(coef int64, exp int32) Decimal {
		return Decimal{Coef: big.NewInt(coef), Exp: exp}
	}

	tests := []struct {
		name    string
		input   Decimal
		pattern string
		culture string
		want    string
	}{
		{"keeps scale", dec(150, -2), "", "", "1.50"},
		{"keeps scale german", dec(150, -2), "", "de-DE", "1,50"},
		{"below one", dec(-5, -2), "", "", "-0.05"},
		{"positive exponent", dec(12, 3), "", "", "12000"},
		{"zero", dec(0, -2), "", "", "0.00"},
		{"general keeps scale", dec(150, -2), "G", "", "1.50"},
		{"fixed rounds half away", dec(125, -2), "N1", "", "1.3"},
		{"grouped", dec(123456789, -2), "N2", "en-US", "1,234,567.89"},
		{"custom", dec(5, 0), "0.00", "", "5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDecimal(tt.input, tt.pattern, mustCulture(t, tt.culture))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := FormatDecimal(Decimal{Special: NaN}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "NaN", got)

	_, err = FormatDecimal(Decimal{}, "", nil)
	assert.Error(t, err)
}

func TestFormatDecimal_ExponentBound(t *testing.T) {
	for _, exp := range []int32{1 << 30, -(1 << 30), MaxDecimalExp + 1, math.MinInt32} {
		for _, pattern := range []string{"", "F2", "N0", "0.00", "E3"} {
			_, err := FormatDecimal(Decimal{Coef: big.NewInt(7), Exp: exp}, pattern, nil)
			assert.ErrorIs(t, err, ErrOverflow, "exp %d pattern %q", exp, pattern)
		}
	}

	got, err := FormatDecimal(Decimal{Coef: big.NewInt(1), Exp: 20}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "1"+strings.Repeat("0", 20), got)

	got, err = FormatDecimal(Decimal{Coef: big.NewInt(1), Exp: MaxDecimalExp}, "E2", nil)
	require.NoError(t, err)
	assert.Equal(t, "1.00E+131072", got)
}

func TestValidatePattern(t *testing.T) {
	assert.NoError(t, ValidatePattern("", KindFloat))
	assert.NoError(t, ValidatePattern("N2", KindFloat))
	assert.NoError(t, ValidatePattern("#,##0.00", KindFloat))
	assert.NoError(t, ValidatePattern("X8", KindInteger))
	assert.NoError(t, ValidatePattern("R", KindFloat))

	assert.Error(t, ValidatePattern("D", KindFloat))
	assert.Error(t, ValidatePattern("X", KindDecimal))
	assert.Error(t, ValidatePattern("R", KindDecimal))
	assert.Error(t, ValidatePattern("Q", KindFloat))
	assert.Error(t, ValidatePattern("Z2", KindInteger))

	_, err := FormatFloat(1, "D2", nil)
	assert.Error(t, err)
}

func TestFormatFloat_RoundTrip(t *testing.T) {
	values := []float64{
		0, 1, -1, 3.14, 0.1, 1.0 / 3.0, 2.0 / 3.0, 1e-10, 1e21, -123456.789,
		math.MaxFloat64, math.SmallestNonzeroFloat64, 5e-324, 1e15, 1e-5,
	}
	for _, name := range []string{"", "en-US", "de-DE", "fr-FR", "sv-SE"} {
		c := mustCulture(t, name)
		for _, v := range values {
			text, err := FormatFloat(v, "", c)
			require.NoError(t, err)

			back, err := ParseFloat(text, Float, c)
			require.NoError(t, err, "culture %q text %q", name, text)
			assert.Equal(t, v, back, "culture %q text %q", name, text)
		}
	}
}

func TestGroup(t *testing.T) {
	assert.Equal(t, "1,234,567", group("1234567", []int{3}, ","))
	assert.Equal(t, "12,34,567", group("1234567", []int{3, 2}, ","))
	assert.Equal(t, "1234,567", group("1234567", []int{3, 0}, ","))
	assert.Equal(t, "123", group("123", []int{3}, ","))
	assert.Equal(t, "1234567", group("1234567", nil, ","))
}
