package numfmt

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrSyntax reports text that is not a number under the given styles and culture.
	ErrSyntax = errors.New("invalid number syntax")
	// ErrOverflow reports a number outside the range of the target type.
	ErrOverflow = errors.New("value out of range")
)

// NumError records a failed conversion.
type NumError struct {
	Func string // ParseFloat, ParseInt, ...
	Num  string // the input
	Err  error  // ErrSyntax or ErrOverflow
}

func (e *NumError) Error() string {
	return "numfmt." + e.Func + ": parsing " + strconv.Quote(e.Num) + ": " + e.Err.Error()
}

func (e *NumError) Unwrap() error { return e.Err }

// Special classifies non-finite values.
type Special int

const (
	Finite Special = iota
	NaN
	PosInf
	NegInf
)

// Decimal is an exact decimal value: Coef × 10^Exp. Scale is preserved, so
// "1.50" parses to Coef 150, Exp -2.
type Decimal struct {
	Coef    *big.Int
	Exp     int32
	Special Special
}

// scanned is the lexical decomposition of a number.
type scanned struct {
	neg     bool
	intPart string // integer digits as written
	frac    string // fraction digits as written
	exp     int
	special Special
	hex     string // set only under AllowHexSpecifier
}

// maxExp bounds parsed exponents; anything larger already over- or underflows
// every supported type.
const maxExp = 999999

// isWhite matches the whitespace set accepted by leading/trailing white styles.
func isWhite(r rune) bool {
	return r == ' ' || (r >= '\t' && r <= '\r')
}

type scanner struct {
	s   string
	pos int
	c   *Culture
}

func (p *scanner) more() bool { return p.pos < len(p.s) }

func (p *scanner) consume(tok string) bool {
	if tok != "" && strings.HasPrefix(p.s[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *scanner) consumeNeg() bool {
	if p.consume(p.c.NegativeSign) {
		return true
	}
	// A culture using U+2212 still accepts the ASCII hyphen.
	return p.c.NegativeSign != "-" && p.consume("-")
}

func (p *scanner) consumePos() bool {
	return p.consume(p.c.PositiveSign)
}

func (p *scanner) consumeGroup() bool {
	if p.consume(p.c.GroupSeparator) {
		return true
	}
	switch p.c.GroupSeparator {
	case "\u00a0", "\u202f":
		return p.consume(" ") || p.consume("\u00a0") || p.consume("\u202f")
	}
	return false
}

// consumeCurrency accepts the currency symbol, optionally separated from the
// number by spaces.
func (p *scanner) consumeCurrency(leading bool) bool {
	save := p.pos
	if !leading {
		p.skipSpaces()
	}
	if p.consume(p.c.CurrencySymbol) {
		if leading {
			p.skipSpaces()
		}
		return true
	}
	p.pos = save
	return false
}

func (p *scanner) skipSpaces() {
	for p.more() {
		r, size := utf8.DecodeRuneInString(p.s[p.pos:])
		if r != ' ' && r != '\u00a0' && r != '\u202f' {
			return
		}
		p.pos += size
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// matchSpecial recognizes the culture's NaN and infinity symbols, ignoring case.
func matchSpecial(s string, c *Culture) (Special, bool) {
	switch {
	case strings.EqualFold(s, c.NaNSymbol),
		strings.EqualFold(s, c.PositiveSign+c.NaNSymbol),
		strings.EqualFold(s, c.NegativeSign+c.NaNSymbol):
		return NaN, true
	case strings.EqualFold(s, c.PositiveInfinity),
		strings.EqualFold(s, c.PositiveSign+c.PositiveInfinity):
		return PosInf, true
	case strings.EqualFold(s, c.NegativeInfinity),
		strings.EqualFold(s, c.NegativeSign+c.PositiveInfinity):
		return NegInf, true
	}
	return Finite, false
}

// scan decomposes s according to st. It reports false when s is not a
// complete number.
func scan(s string, st Styles, c *Culture) (scanned, bool) {
	var n scanned
	if st.Has(AllowLeadingWhite) {
		s = strings.TrimLeftFunc(s, isWhite)
	}
	if st.Has(AllowTrailingWhite) {
		s = strings.TrimRightFunc(s, isWhite)
	}
	if s == "" {
		return n, false
	}

	if st.Has(AllowHexSpecifier) {
		for i := 0; i < len(s); i++ {
			if !isHex(s[i]) {
				return n, false
			}
		}
		n.hex = s
		return n, true
	}

	if sp, ok := matchSpecial(s, c); ok {
		n.special = sp
		n.neg = sp == NegInf
		return n, true
	}

	p := &scanner{s: s, c: c}
	var sawSign, sawParen, sawCurrency bool

lead:
	for {
		switch {
		case st.Has(AllowLeadingSign) && !sawSign && !sawParen && p.consumeNeg():
			n.neg, sawSign = true, true
		case st.Has(AllowLeadingSign) && !sawSign && !sawParen && p.consumePos():
			sawSign = true
		case st.Has(AllowParentheses) && !sawSign && !sawParen && p.consume("("):
			n.neg, sawParen = true, true
		case st.Has(AllowCurrencySymbol) && !sawCurrency && p.consumeCurrency(true):
			sawCurrency = true
		default:
			break lead
		}
	}

	var intb, fracb strings.Builder
	count := 0
	inFrac := false
loop:
	for p.more() {
		ch := p.s[p.pos]
		switch {
		case isDigit(ch):
			if inFrac {
				fracb.WriteByte(ch)
			} else {
				intb.WriteByte(ch)
			}
			count++
			p.pos++
		case st.Has(AllowDecimalPoint) && !inFrac && p.consume(c.DecimalSeparator):
			inFrac = true
		case st.Has(AllowThousands) && !inFrac && count > 0 && p.consumeGroup():
		default:
			break loop
		}
	}
	if count == 0 {
		return n, false
	}
	n.intPart, n.frac = intb.String(), fracb.String()

	if st.Has(AllowExponent) && p.more() && (p.s[p.pos] == 'e' || p.s[p.pos] == 'E') {
		save := p.pos
		p.pos++
		eneg := false
		switch {
		case p.consume("-") || p.consumeNeg():
			eneg = true
		case p.consume("+") || p.consumePos():
		}
		start := p.pos
		e := 0
		for p.more() && isDigit(p.s[p.pos]) {
			if e < maxExp {
				e = e*10 + int(p.s[p.pos]-'0')
			}
			p.pos++
		}
		if p.pos == start {
			p.pos = save
		} else {
			if e > maxExp {
				e = maxExp
			}
			if eneg {
				e = -e
			}
			n.exp = e
		}
	}

	closed := false
	for progressed := true; progressed; {
		progressed = false
		switch {
		case st.Has(AllowCurrencySymbol) && !sawCurrency && p.consumeCurrency(false):
			sawCurrency, progressed = true, true
		case st.Has(AllowTrailingSign) && !sawSign && !sawParen && p.consumeNeg():
			n.neg, sawSign, progressed = true, true, true
		case st.Has(AllowTrailingSign) && !sawSign && !sawParen && p.consumePos():
			sawSign, progressed = true, true
		case sawParen && !closed && p.consume(")"):
			closed, progressed = true, true
		}
	}
	if sawParen && !closed {
		return n, false
	}
	return n, !p.more()
}

// ParseFloat parses s as a float64. Overflow yields ±Inf and underflow
// yields zero, matching IEEE 754 rounding rather than failing.
func ParseFloat(s string, st Styles, c *Culture) (float64, error) {
	return parseFloat("ParseFloat", s, st, c, 64)
}

// ParseFloat32 is ParseFloat for float32 results.
func ParseFloat32(s string, st Styles, c *Culture) (float32, error) {
	f, err := parseFloat("ParseFloat32", s, st, c, 32)
	return float32(f), err
}

func parseFloat(fn, s string, st Styles, c *Culture, bitSize int) (float64, error) {
	c = or(c)
	if st.Has(AllowHexSpecifier) {
		return 0, &NumError{fn, s, fmt.Errorf("%w: hex styles are not supported for floating point", ErrSyntax)}
	}
	n, ok := scan(s, st, c)
	if !ok {
		return 0, &NumError{fn, s, ErrSyntax}
	}
	switch n.special {
	case NaN:
		return math.NaN(), nil
	case PosInf:
		return math.Inf(1), nil
	case NegInf:
		return math.Inf(-1), nil
	}

	var b strings.Builder
	if n.neg {
		b.WriteByte('-')
	}
	if n.intPart == "" {
		b.WriteByte('0')
	}
	b.WriteString(n.intPart)
	if n.frac != "" {
		b.WriteByte('.')
		b.WriteString(n.frac)
	}
	if n.exp != 0 {
		b.WriteByte('e')
		b.WriteString(strconv.Itoa(n.exp))
	}
	f, err := strconv.ParseFloat(b.String(), bitSize)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &NumError{fn, s, ErrSyntax}
	}
	return f, nil
}

// integerDigits returns the integer value of n as a digit string, or
// ErrOverflow when n has a non-zero fractional part or is absurdly large.
func (n scanned) integerDigits() (string, error) {
	digits := strings.TrimLeft(n.intPart+n.frac, "0")
	if strings.Trim(digits, "0") == "" {
		return "0", nil
	}
	point := len(digits) - len(n.frac) + n.exp
	if point > 64 {
		return "", ErrOverflow
	}
	if point < 0 {
		point = 0
	}
	if point < len(digits) {
		if strings.Trim(digits[point:], "0") != "" {
			return "", ErrOverflow
		}
		digits = digits[:point]
	} else {
		digits += strings.Repeat("0", point-len(digits))
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	return digits, nil
}

// ParseInt parses s as a signed integer of the given bit size. Under
// AllowHexSpecifier the digits are read as a two's complement bit pattern,
// so "FF" with bitSize 8 is -1.
func ParseInt(s string, st Styles, c *Culture, bitSize int) (int64, error) {
	const fn = "ParseInt"
	c = or(c)
	n, ok := scan(s, st, c)
	if !ok || n.special != Finite {
		return 0, &NumError{fn, s, ErrSyntax}
	}
	if n.hex != "" {
		u, err := strconv.ParseUint(n.hex, 16, bitSize)
		if err != nil {
			return 0, &NumError{fn, s, ErrOverflow}
		}
		if bitSize < 64 && u&(1<<(bitSize-1)) != 0 {
			return int64(u) - int64(1)<<bitSize, nil
		}
		return int64(u), nil
	}
	digits, err := n.integerDigits()
	if err != nil {
		return 0, &NumError{fn, s, err}
	}
	if n.neg {
		digits = "-" + digits
	}
	v, err := strconv.ParseInt(digits, 10, bitSize)
	if err != nil {
		return 0, &NumError{fn, s, ErrOverflow}
	}
	return v, nil
}

// ParseUint parses s as an unsigned integer. "-0" is accepted; any other
// negative value overflows.
func ParseUint(s string, st Styles, c *Culture, bitSize int) (uint64, error) {
	const fn = "ParseUint"
	c = or(c)
	n, ok := scan(s, st, c)
	if !ok || n.special != Finite {
		return 0, &NumError{fn, s, ErrSyntax}
	}
	if n.hex != "" {
		u, err := strconv.ParseUint(n.hex, 16, bitSize)
		if err != nil {
			return 0, &NumError{fn, s, ErrOverflow}
		}
		return u, nil
	}
	digits, err := n.integerDigits()
	if err != nil {
		return 0, &NumError{fn, s, err}
	}
	if n.neg && digits != "0" {
		return 0, &NumError{fn, s, ErrOverflow}
	}
	v, err := strconv.ParseUint(digits, 10, bitSize)
	if err != nil {
		return 0, &NumError{fn, s, ErrOverflow}
	}
	return v, nil
}

// ParseDecimal parses s as an exact decimal, keeping the written scale.
// NaN and the infinity symbols are reported through Decimal.Special.
func ParseDecimal(s string, st Styles, c *Culture) (Decimal, error) {
	const fn = "ParseDecimal"
	c = or(c)
	if st.Has(AllowHexSpecifier) {
		return Decimal{}, &NumError{fn, s, fmt.Errorf("%w: hex styles are not supported for decimals", ErrSyntax)}
	}
	n, ok := scan(s, st, c)
	if !ok {
		return Decimal{}, &NumError{fn, s, ErrSyntax}
	}
	if n.special != Finite {
		return Decimal{Coef: new(big.Int), Special: n.special}, nil
	}
	exp := int64(n.exp) - int64(len(n.frac))
	if exp > MaxDecimalExp || exp < -MaxDecimalExp {
		return Decimal{}, &NumError{fn, s, ErrOverflow}
	}
	coef, ok := new(big.Int).SetString(n.intPart+n.frac, 10)
	if !ok {
		return Decimal{}, &NumError{fn, s, ErrSyntax}
	}
	if n.neg {
		coef.Neg(coef)
	}
	return Decimal{Coef: coef, Exp: int32(exp)}, nil
}
