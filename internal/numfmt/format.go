package numfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the class of value a pattern is applied to. Some standard
// specifiers ("D", "X") are only defined for integers.
type Kind int

const (
	KindFloat Kind = iota
	KindInteger
	KindDecimal
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	default:
		return "unknown"
	}
}

// source is a value awaiting formatting.
type source struct {
	kind    Kind
	bitSize int
	float   float64
	mag     uint64 // integer magnitude
	bits    uint64 // integer two's complement bits, for hex
	neg     bool
	dec     Decimal
}

func (s source) number(exact bool) number {
	switch s.kind {
	case KindFloat:
		return floatNumber(s.float, s.bitSize, exact)
	case KindInteger:
		return intNumber(s.mag, s.neg)
	default:
		if s.dec.Special != Finite {
			return number{special: s.dec.Special, neg: s.dec.Special == NegInf}
		}
		return bigNumber(s.dec.Coef, s.dec.Exp)
	}
}

// FormatFloat renders v. An empty pattern produces the shortest text that
// parses back to v.
func FormatFloat(v float64, pattern string, c *Culture) (string, error) {
	return format(source{kind: KindFloat, bitSize: 64, float: v}, pattern, or(c))
}

// FormatFloat32 renders v with float32 shortest-digit semantics.
func FormatFloat32(v float32, pattern string, c *Culture) (string, error) {
	return format(source{kind: KindFloat, bitSize: 32, float: float64(v)}, pattern, or(c))
}

// FormatInt renders a signed integer of the given bit size.
func FormatInt(v int64, bitSize int, pattern string, c *Culture) (string, error) {
	mag := uint64(v)
	if v < 0 {
		mag = uint64(-(v + 1)) + 1
	}
	return format(source{
		kind:    KindInteger,
		bitSize: bitSize,
		mag:     mag,
		bits:    uint64(v) & mask(bitSize),
		neg:     v < 0,
	}, pattern, or(c))
}

// FormatUint renders an unsigned integer.
func FormatUint(v uint64, bitSize int, pattern string, c *Culture) (string, error) {
	return format(source{kind: KindInteger, bitSize: bitSize, mag: v, bits: v}, pattern, or(c))
}

// MaxDecimalExp bounds the power-of-ten exponent of a decimal in either
// direction. It matches the 131072 integer digits of a PostgreSQL numeric
// and keeps rendered text to a bounded length.
const MaxDecimalExp = 1 << 17

// FormatDecimal renders d. An empty pattern keeps the value's scale, so a
// decimal parsed from "1.50" renders as "1.50". An exponent beyond
// MaxDecimalExp is ErrOverflow.
func FormatDecimal(d Decimal, pattern string, c *Culture) (string, error) {
	if d.Special == Finite {
		if d.Coef == nil {
			return "", fmt.Errorf("numfmt: decimal has no coefficient")
		}
		if d.Exp > MaxDecimalExp || d.Exp < -MaxDecimalExp {
			return "", fmt.Errorf("numfmt: decimal exponent %d: %w", d.Exp, ErrOverflow)
		}
	}
	return format(source{kind: KindDecimal, dec: d}, pattern, or(c))
}

func mask(bitSize int) uint64 {
	if bitSize >= 64 || bitSize <= 0 {
		return math.MaxUint64
	}
	return 1<<uint(bitSize) - 1
}

// parseStandard splits a standard pattern into specifier and precision.
// prec is -1 when absent.
func parseStandard(pattern string) (spec byte, prec int, ok bool) {
	if len(pattern) == 0 || len(pattern) > 3 {
		return 0, 0, false
	}
	spec = pattern[0]
	if !((spec >= 'A' && spec <= 'Z') || (spec >= 'a' && spec <= 'z')) {
		return 0, 0, false
	}
	if len(pattern) == 1 {
		return spec, -1, true
	}
	p, err := strconv.Atoi(pattern[1:])
	if err != nil || p < 0 || pattern[1] == '+' || pattern[1] == '-' {
		return 0, 0, false
	}
	return spec, p, true
}

// ValidatePattern reports whether pattern can format values of kind.
// Unknown standard specifiers and integer-only specifiers applied to other
// kinds are rejected; any other text is a custom pattern.
func ValidatePattern(pattern string, kind Kind) error {
	if pattern == "" {
		return nil
	}
	spec, _, ok := parseStandard(pattern)
	if !ok {
		return nil
	}
	switch spec {
	case 'C', 'c', 'E', 'e', 'F', 'f', 'G', 'g', 'N', 'n', 'P', 'p':
		return nil
	case 'R', 'r':
		if kind == KindDecimal {
			return fmt.Errorf("numfmt: format %q is not defined for %s values", pattern, kind)
		}
		return nil
	case 'D', 'd', 'X', 'x':
		if kind != KindInteger {
			return fmt.Errorf("numfmt: format %q is only defined for integers", pattern)
		}
		return nil
	}
	return fmt.Errorf("numfmt: unknown format specifier %q", pattern)
}

func format(src source, pattern string, c *Culture) (string, error) {
	if err := ValidatePattern(pattern, src.kind); err != nil {
		return "", err
	}
	if pattern == "" {
		return formatDefault(src, c), nil
	}
	spec, prec, ok := parseStandard(pattern)
	if !ok {
		return formatCustom(src, pattern, c), nil
	}

	n := src.number(true)
	if n.special != Finite {
		return specialSymbol(n.special, c), nil
	}

	switch spec {
	case 'R', 'r':
		return formatDefault(src, c), nil
	case 'G', 'g':
		if prec <= 0 {
			if src.kind == KindDecimal {
				return formatDefault(src, c), nil
			}
			n = src.number(false)
			return general(n, generalThreshold(src), c, spec-('G'-'E'), false), nil
		}
		n.round(prec)
		return general(n, prec, c, spec-('G'-'E'), false), nil
	case 'F', 'f':
		return fixed(src, n, precOr(prec, c.NumberDecimals), c, false), nil
	case 'N', 'n':
		return fixed(src, n, precOr(prec, c.NumberDecimals), c, true), nil
	case 'E', 'e':
		return scientific(src, n, precOr(prec, 6), c, spec, 3), nil
	case 'C', 'c':
		p := precOr(prec, c.CurrencyDecimals)
		n.roundFrac(p)
		body := groupedFixed(n, p, c)
		if n.neg && !n.isZero() {
			return expand(currencyNegativePatterns[clampIdx(c.CurrencyNegativePattern, currencyNegativePatterns)], body, c), nil
		}
		return expand(currencyPositivePatterns[clampIdx(c.CurrencyPositivePattern, currencyPositivePatterns)], body, c), nil
	case 'P', 'p':
		p := precOr(prec, c.PercentDecimals)
		if !n.isZero() {
			n.scale += 2
		}
		n.roundFrac(p)
		body := groupedFixed(n, p, c)
		if n.neg && !n.isZero() {
			return expand(percentNegativePatterns[clampIdx(c.PercentNegativePattern, percentNegativePatterns)], body, c), nil
		}
		return expand(percentPositivePatterns[clampIdx(c.PercentPositivePattern, percentPositivePatterns)], body, c), nil
	case 'D', 'd':
		digits := strconv.FormatUint(src.mag, 10)
		if prec > len(digits) {
			digits = strings.Repeat("0", prec-len(digits)) + digits
		}
		if src.neg {
			return c.NegativeSign + digits, nil
		}
		return digits, nil
	case 'X', 'x':
		digits := strconv.FormatUint(src.bits, 16)
		if spec == 'X' {
			digits = strings.ToUpper(digits)
		}
		if prec > len(digits) {
			digits = strings.Repeat("0", prec-len(digits)) + digits
		}
		return digits, nil
	}
	return "", fmt.Errorf("numfmt: unknown format specifier %q", pattern)
}

func precOr(prec, def int) int {
	if prec < 0 {
		return def
	}
	return prec
}

func clampIdx(i int, table []string) int {
	if i < 0 || i >= len(table) {
		return 0
	}
	return i
}

func specialSymbol(s Special, c *Culture) string {
	switch s {
	case NaN:
		return c.NaNSymbol
	case PosInf:
		return c.PositiveInfinity
	default:
		return c.NegativeInfinity
	}
}

// generalThreshold is the decimal exponent at which shortest rendering
// switches to scientific notation.
func generalThreshold(src source) int {
	switch {
	case src.kind == KindInteger:
		return math.MaxInt32
	case src.bitSize == 32:
		return 7
	default:
		return 15
	}
}

func formatDefault(src source, c *Culture) string {
	switch src.kind {
	case KindFloat:
		n := src.number(false)
		if n.special != Finite {
			return specialSymbol(n.special, c)
		}
		return general(n, generalThreshold(src), c, 'E', true)
	case KindInteger:
		n := src.number(false)
		return general(n, generalThreshold(src), c, 'E', false)
	}

	d := src.dec
	if d.Special != Finite {
		return specialSymbol(d.Special, c)
	}
	var b strings.Builder
	if d.Coef.Sign() < 0 {
		b.WriteString(c.NegativeSign)
	}
	digits := strings.TrimPrefix(d.Coef.String(), "-")
	switch {
	case d.Exp >= 0:
		b.WriteString(digits)
		if digits != "0" {
			b.WriteString(strings.Repeat("0", int(d.Exp)))
		}
	default:
		scale := int(-d.Exp)
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		b.WriteString(digits[:len(digits)-scale])
		b.WriteString(c.DecimalSeparator)
		b.WriteString(digits[len(digits)-scale:])
	}
	return b.String()
}

// general renders n in fixed notation when its exponent lies in
// (-5, threshold), otherwise in scientific notation with at least two
// exponent digits. Trailing zeros are never emitted.
func general(n number, threshold int, c *Culture, expChar byte, signedZero bool) string {
	var b strings.Builder
	if n.neg && (!n.isZero() || signedZero) {
		b.WriteString(c.NegativeSign)
	}
	if n.isZero() {
		b.WriteByte('0')
		return b.String()
	}
	exp := n.scale - 1
	if exp > -5 && exp < threshold {
		ip := n.intPart()
		if ip == "" {
			ip = "0"
		}
		b.WriteString(ip)
		if f := n.fracDigits(); f != "" {
			b.WriteString(c.DecimalSeparator)
			b.WriteString(f)
		}
		return b.String()
	}
	b.WriteByte(n.digits[0])
	if len(n.digits) > 1 {
		b.WriteString(c.DecimalSeparator)
		b.Write(n.digits[1:])
	}
	writeExponent(&b, expChar, exp, 2, true, c)
	return b.String()
}

func writeExponent(b *strings.Builder, expChar byte, exp, minDigits int, plus bool, c *Culture) {
	b.WriteByte(expChar)
	if exp < 0 {
		b.WriteString(c.NegativeSign)
		exp = -exp
	} else if plus {
		b.WriteString(c.PositiveSign)
	}
	digits := strconv.Itoa(exp)
	if len(digits) < minDigits {
		digits = strings.Repeat("0", minDigits-len(digits)) + digits
	}
	b.WriteString(digits)
}

func fixed(src source, n number, p int, c *Culture, grouped bool) string {
	n.roundFrac(p)
	var b strings.Builder
	if n.neg && (!n.isZero() || src.kind == KindFloat) {
		b.WriteString(c.NegativeSign)
	}
	if grouped {
		b.WriteString(groupedFixed(n, p, c))
		return b.String()
	}
	ip := n.intPart()
	if ip == "" {
		ip = "0"
	}
	b.WriteString(ip)
	if p > 0 {
		b.WriteString(c.DecimalSeparator)
		b.WriteString(n.fracPart(p))
	}
	return b.String()
}

// groupedFixed renders the unsigned magnitude of n with group separators
// and exactly p fraction digits. n must already be rounded.
func groupedFixed(n number, p int, c *Culture) string {
	ip := n.intPart()
	if ip == "" {
		ip = "0"
	}
	s := group(ip, c.GroupSizes, c.GroupSeparator)
	if p > 0 {
		s += c.DecimalSeparator + n.fracPart(p)
	}
	return s
}

func scientific(src source, n number, p int, c *Culture, expChar byte, minExp int) string {
	n.round(p + 1)
	var b strings.Builder
	if n.neg && (!n.isZero() || src.kind == KindFloat) {
		b.WriteString(c.NegativeSign)
	}
	exp := 0
	if !n.isZero() {
		exp = n.scale - 1
	}
	b.WriteByte(n.digitAt(0))
	if p > 0 {
		b.WriteString(c.DecimalSeparator)
		for i := 1; i <= p; i++ {
			b.WriteByte(n.digitAt(i))
		}
	}
	writeExponent(&b, expChar, exp, minExp, true, c)
	return b.String()
}

// group inserts sep into digits according to sizes, right to left. The last
// size repeats; a size of zero leaves the remaining digits ungrouped.
func group(digits string, sizes []int, sep string) string {
	if len(sizes) == 0 || sep == "" {
		return digits
	}
	var parts []string
	end := len(digits)
	i, size := 0, sizes[0]
	for end > 0 {
		if size <= 0 || end-size <= 0 {
			parts = append(parts, digits[:end])
			break
		}
		parts = append(parts, digits[end-size:end])
		end -= size
		if i < len(sizes)-1 {
			i++
			size = sizes[i]
		}
	}
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return strings.Join(parts, sep)
}

// expand substitutes the placeholders of a currency or percent pattern.
func expand(pattern, body string, c *Culture) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case 'n':
			b.WriteString(body)
		case '$':
			b.WriteString(c.CurrencySymbol)
		case '%':
			b.WriteString(c.PercentSymbol)
		case '-':
			b.WriteString(c.NegativeSign)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
