package numfmt

import (
	"fmt"
	"strings"
)

// Styles is a bit set selecting the lexical forms a parser accepts.
type Styles uint32

const (
	AllowLeadingWhite Styles = 1 << iota
	AllowTrailingWhite
	AllowLeadingSign
	AllowTrailingSign
	AllowParentheses
	AllowDecimalPoint
	AllowThousands
	AllowExponent
	AllowCurrencySymbol
	AllowHexSpecifier
)

// Composite styles.
const (
	None      Styles = 0
	Integer          = AllowLeadingWhite | AllowTrailingWhite | AllowLeadingSign
	HexNumber        = AllowLeadingWhite | AllowTrailingWhite | AllowHexSpecifier
	Number           = Integer | AllowTrailingSign | AllowDecimalPoint | AllowThousands
	Float            = Integer | AllowDecimalPoint | AllowExponent
	Currency         = Number | AllowParentheses | AllowCurrencySymbol
	Any              = Currency | AllowExponent
)

var styleNames = []struct {
	name  string
	style Styles
}{
	// Composites first so String prefers them.
	{"Any", Any},
	{"Currency", Currency},
	{"Float", Float},
	{"Number", Number},
	{"HexNumber", HexNumber},
	{"Integer", Integer},
	{"AllowLeadingWhite", AllowLeadingWhite},
	{"AllowTrailingWhite", AllowTrailingWhite},
	{"AllowLeadingSign", AllowLeadingSign},
	{"AllowTrailingSign", AllowTrailingSign},
	{"AllowParentheses", AllowParentheses},
	{"AllowDecimalPoint", AllowDecimalPoint},
	{"AllowThousands", AllowThousands},
	{"AllowExponent", AllowExponent},
	{"AllowCurrencySymbol", AllowCurrencySymbol},
	{"AllowHexSpecifier", AllowHexSpecifier},
}

// Has reports whether every bit of flag is set in s.
func (s Styles) Has(flag Styles) bool {
	return s&flag == flag
}

// String renders s as a "|"-joined list of names, composites first.
func (s Styles) String() string {
	if s == None {
		return "None"
	}
	var parts []string
	rest := s
	for _, n := range styleNames {
		if rest&n.style == n.style && rest&n.style != 0 {
			parts = append(parts, n.name)
			rest &^= n.style
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseStyles parses a "|" or ","-separated list of style names such as
// "Float|AllowThousands". Names are case-insensitive.
func ParseStyles(s string) (Styles, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return None, fmt.Errorf("numfmt: empty styles")
	}
	var out Styles
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.TrimSpace(part)
		if strings.EqualFold(part, "None") {
			continue
		}
		found := false
		for _, n := range styleNames {
			if strings.EqualFold(part, n.name) {
				out |= n.style
				found = true
				break
			}
		}
		if !found {
			return None, fmt.Errorf("numfmt: unknown style %q", part)
		}
	}
	if err := out.validate(); err != nil {
		return None, err
	}
	return out, nil
}

// validate rejects hex parsing combined with anything but whitespace.
func (s Styles) validate() error {
	if s.Has(AllowHexSpecifier) && s&^HexNumber != 0 {
		return fmt.Errorf("numfmt: AllowHexSpecifier may only be combined with whitespace styles")
	}
	return nil
}
