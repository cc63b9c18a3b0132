package numfmt

import (
	"strconv"
	"strings"
)

// Custom patterns
//
//	0        digit, zero-padded
//	#        digit, omitted when insignificant
//	.        decimal separator (first occurrence)
//	,        group separator between integer placeholders; scaling by 1000
//	         when it directly precedes the decimal point or ends the number
//	%  ‰     multiply by 100 or 1000 and emit the culture symbol
//	E0 E+0   scientific notation; e-0 and the lower-case forms work too
//	'x' "x"  literal text
//	\x       literal character
//	;        section separator: positive;negative;zero

// section is the analysis of one pattern section.
type section struct {
	runes    []rune
	intPh    int
	minInt   int
	fracPh   int
	minFrac  int
	grouping bool
	scaleDiv int
	percent  int
	permille int
	hasExp   bool
}

// splitSections splits on ';' outside quotes and escapes; at most three
// sections are significant.
func splitSections(pattern string) []string {
	var secs []string
	runes := []rune(pattern)
	start := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\'', '"':
			q := runes[i]
			for i++; i < len(runes) && runes[i] != q; i++ {
			}
		case '\\':
			i++
		case ';':
			secs = append(secs, string(runes[start:i]))
			start = i + 1
		}
	}
	secs = append(secs, string(runes[start:]))
	if len(secs) > 3 {
		secs = secs[:3]
	}
	return secs
}

// expSpec reports whether an exponent specifier starts at i, returning the
// index just past it, whether a '+' was requested and the minimum digits.
func expSpec(runes []rune, i int) (end int, plus bool, minDigits int, ok bool) {
	j := i + 1
	if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
		plus = runes[j] == '+'
		j++
	}
	k := j
	for k < len(runes) && runes[k] == '0' {
		k++
	}
	if k == j {
		return 0, false, 0, false
	}
	return k, plus, k - j, true
}

func analyze(sec string) section {
	s := section{runes: []rune(sec)}
	firstZero := -1
	pastPoint := false
	commas := 0
	r := s.runes
	for i := 0; i < len(r); i++ {
		switch r[i] {
		case '\'', '"':
			q := r[i]
			for i++; i < len(r) && r[i] != q; i++ {
			}
		case '\\':
			i++
		case '0', '#':
			if s.hasExp {
				continue
			}
			if pastPoint {
				s.fracPh++
				if r[i] == '0' {
					s.minFrac = s.fracPh
				}
				continue
			}
			if commas > 0 {
				s.grouping = true
				commas = 0
			}
			if r[i] == '0' && firstZero < 0 {
				firstZero = s.intPh
			}
			s.intPh++
		case ',':
			if !pastPoint && s.intPh > 0 && !s.hasExp {
				commas++
			}
		case '.':
			if !pastPoint && !s.hasExp {
				pastPoint = true
				s.scaleDiv += commas
				commas = 0
			}
		case '%':
			s.percent++
		case '‰':
			s.permille++
		case 'E', 'e':
			if end, _, _, ok := expSpec(r, i); ok && !s.hasExp {
				s.hasExp = true
				s.scaleDiv += commas
				commas = 0
				i = end - 1
			}
		}
	}
	s.scaleDiv += commas
	if firstZero >= 0 {
		s.minInt = s.intPh - firstZero
	}
	return s
}

// formatCustom renders src with a custom pattern.
func formatCustom(src source, pattern string, c *Culture) string {
	base := src.number(true)
	if base.special != Finite {
		return specialSymbol(base.special, c)
	}
	secs := splitSections(pattern)
	negative := base.neg && !base.isZero()

	idx := 0
	switch {
	case base.isZero() && len(secs) >= 3 && secs[2] != "":
		idx = 2
	case negative && len(secs) >= 2 && secs[1] != "":
		idx = 1
	}

	out, zero := renderSection(base, analyze(secs[idx]), c, idx == 0 && negative)
	if zero && idx != 2 && len(secs) >= 3 && secs[2] != "" {
		out, _ = renderSection(base, analyze(secs[2]), c, false)
	}
	return out
}

// renderSection renders n with one analyzed section. It reports whether the
// value rounded to zero.
func renderSection(n number, s section, c *Culture, sign bool) (string, bool) {
	n.digits = append([]byte(nil), n.digits...)
	if !n.isZero() {
		n.scale += 2*s.percent + 3*s.permille - 3*s.scaleDiv
	}

	exp := 0
	if s.hasExp {
		nd := s.intPh + s.fracPh
		if nd < 1 {
			nd = 1
		}
		n.round(nd)
		if !n.isZero() {
			exp = n.scale - s.intPh
			n.scale = s.intPh
		}
	} else {
		n.roundFrac(s.fracPh)
	}

	intStr := n.intPart()
	if len(intStr) < s.minInt {
		intStr = strings.Repeat("0", s.minInt-len(intStr)) + intStr
	}
	fracStr := n.fracPart(s.fracPh)
	for len(fracStr) > s.minFrac && fracStr[len(fracStr)-1] == '0' {
		fracStr = fracStr[:len(fracStr)-1]
	}

	var b strings.Builder
	if sign && !n.isZero() {
		b.WriteString(c.NegativeSign)
	}

	// emitInt writes the integer digit q places from the right, followed by
	// a group separator when q closes a group.
	L := len(intStr)
	emitInt := func(q int) {
		b.WriteByte(intStr[L-1-q])
		if s.grouping && q > 0 && groupBoundary(q, c.GroupSizes) {
			b.WriteString(c.GroupSeparator)
		}
	}

	r := s.runes
	intIdx, fracIdx := 0, 0
	pastPoint, expDone := false, false
	for i := 0; i < len(r); i++ {
		switch r[i] {
		case '\'', '"':
			q := r[i]
			for i++; i < len(r) && r[i] != q; i++ {
				b.WriteRune(r[i])
			}
		case '\\':
			if i+1 < len(r) {
				i++
				b.WriteRune(r[i])
			}
		case '0', '#':
			if expDone {
				b.WriteRune(r[i])
				continue
			}
			if pastPoint {
				if fracIdx < len(fracStr) {
					b.WriteByte(fracStr[fracIdx])
				}
				fracIdx++
				continue
			}
			pos := s.intPh - 1 - intIdx
			if intIdx == 0 {
				for q := L - 1; q > pos; q-- {
					emitInt(q)
				}
			}
			if pos < L {
				emitInt(pos)
			}
			intIdx++
		case '.':
			if pastPoint || expDone {
				continue
			}
			if s.intPh == 0 {
				for q := L - 1; q >= 0; q-- {
					emitInt(q)
				}
			}
			pastPoint = true
			if len(fracStr) > 0 {
				b.WriteString(c.DecimalSeparator)
			}
		case ',':
		case '%':
			b.WriteString(c.PercentSymbol)
		case '‰':
			b.WriteString(c.PerMilleSymbol)
		case 'E', 'e':
			end, plus, minDigits, ok := expSpec(r, i)
			if !ok || expDone {
				b.WriteRune(r[i])
				continue
			}
			if s.intPh == 0 && !pastPoint {
				for q := L - 1; q >= 0; q-- {
					emitInt(q)
				}
			}
			expDone = true
			b.WriteRune(r[i])
			if exp < 0 {
				b.WriteString(c.NegativeSign)
			} else if plus {
				b.WriteString(c.PositiveSign)
			}
			digits := strconv.Itoa(abs(exp))
			if len(digits) < minDigits {
				digits = strings.Repeat("0", minDigits-len(digits)) + digits
			}
			b.WriteString(digits)
			i = end - 1
		default:
			b.WriteRune(r[i])
		}
	}
	return b.String(), n.isZero()
}

// groupBoundary reports whether a separator follows the digit q places from
// the right.
func groupBoundary(q int, sizes []int) bool {
	if len(sizes) == 0 {
		return false
	}
	pos := 0
	for i := 0; ; i++ {
		size := sizes[min(i, len(sizes)-1)]
		if size <= 0 {
			return false
		}
		pos += size
		if pos == q {
			return true
		}
		if pos > q {
			return false
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
