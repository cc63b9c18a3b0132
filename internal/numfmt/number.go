package numfmt

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// number is a sign-magnitude decimal: 0.digits × 10^scale.
// digits carries no leading or trailing zeros; an empty digits is zero.
type number struct {
	digits  []byte
	scale   int
	neg     bool
	special Special
}

// exactDigits bounds the expansion of a float64; every binary fraction
// terminates within this many significant decimal digits.
const exactDigits = 767

// floatNumber decomposes v. With exact set the full binary expansion is kept,
// which makes later rounding half-away-from-zero exact; otherwise the shortest
// digits that round-trip are used.
func floatNumber(v float64, bitSize int, exact bool) number {
	switch {
	case math.IsNaN(v):
		return number{special: NaN}
	case math.IsInf(v, 1):
		return number{special: PosInf}
	case math.IsInf(v, -1):
		return number{special: NegInf, neg: true}
	}
	n := number{neg: math.Signbit(v)}
	v = math.Abs(v)
	if v == 0 {
		return n
	}
	prec := -1
	if exact {
		prec = exactDigits
	}
	s := strconv.FormatFloat(v, 'e', prec, bitSize)
	mant, expPart, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expPart)
	mant = strings.Replace(mant, ".", "", 1)
	n.digits = []byte(strings.TrimRight(mant, "0"))
	n.scale = exp + 1
	return n
}

// intNumber decomposes an integer magnitude.
func intNumber(abs uint64, neg bool) number {
	n := number{neg: neg}
	if abs == 0 {
		return n
	}
	s := strconv.FormatUint(abs, 10)
	n.scale = len(s)
	n.digits = []byte(strings.TrimRight(s, "0"))
	return n
}

// bigNumber decomposes coef × 10^exp.
func bigNumber(coef *big.Int, exp int32) number {
	n := number{neg: coef.Sign() < 0}
	if coef.Sign() == 0 {
		return n
	}
	s := new(big.Int).Abs(coef).String()
	n.scale = len(s) + int(exp)
	n.digits = []byte(strings.TrimRight(s, "0"))
	return n
}

func (n *number) isZero() bool { return len(n.digits) == 0 }

// round keeps the first nd significant digits, rounding half away from zero.
func (n *number) round(nd int) {
	if nd >= len(n.digits) {
		return
	}
	if nd < 0 {
		n.digits, n.scale = n.digits[:0], 0
		return
	}
	up := n.digits[nd] >= '5'
	n.digits = n.digits[:nd]
	if up {
		i := nd - 1
		for ; i >= 0; i-- {
			if n.digits[i] < '9' {
				n.digits[i]++
				break
			}
		}
		if i < 0 {
			n.digits = append(n.digits[:0], '1')
			n.scale++
		} else {
			n.digits = n.digits[:i+1]
		}
	}
	for len(n.digits) > 0 && n.digits[len(n.digits)-1] == '0' {
		n.digits = n.digits[:len(n.digits)-1]
	}
	if len(n.digits) == 0 {
		n.scale = 0
	}
}

// roundFrac rounds to p digits after the decimal point.
func (n *number) roundFrac(p int) {
	n.round(n.scale + p)
}

// digitAt returns digits[pos], or '0' outside the stored digits.
func (n *number) digitAt(pos int) byte {
	if pos < 0 || pos >= len(n.digits) {
		return '0'
	}
	return n.digits[pos]
}

// intPart renders the integer digits, "" for values below one.
func (n *number) intPart() string {
	if n.scale <= 0 || n.isZero() {
		return ""
	}
	var b strings.Builder
	for i := 0; i < n.scale; i++ {
		b.WriteByte(n.digitAt(i))
	}
	return b.String()
}

// fracPart renders exactly p fraction digits.
func (n *number) fracPart(p int) string {
	var b strings.Builder
	for i := 0; i < p; i++ {
		b.WriteByte(n.digitAt(n.scale + i))
	}
	return b.String()
}

// fracDigits returns the fraction digits without trailing zeros.
func (n *number) fracDigits() string {
	if n.isZero() || len(n.digits) <= n.scale {
		return ""
	}
	return n.fracPart(len(n.digits) - n.scale)
}
