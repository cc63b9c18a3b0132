package column

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TrimPolicy removes insignificant padding from field text after null
// detection and before type-specific parsing.
type TrimPolicy struct {
	mode   trimMode
	cutset string
}

type trimMode int

const (
	trimWhitespace trimMode = iota
	trimNone
	trimChars
	trimLeading
	trimTrailing
)

var (
	// TrimWhitespace removes Unicode white space from both ends. It is the
	// zero value and therefore the default.
	TrimWhitespace = TrimPolicy{mode: trimWhitespace}
	// TrimNone passes field text through unchanged.
	TrimNone = TrimPolicy{mode: trimNone}
)

// TrimChars removes any of the runes in cutset from both ends, e.g. "*" for
// star-padded fields. White space is not removed unless it is part of cutset.
// A cutset containing a digit is rejected when the column is built, because
// stripping it from both ends changes the value; use TrimLeadingChars for
// right-aligned zero padding.
func TrimChars(cutset string) TrimPolicy {
	return TrimPolicy{mode: trimChars, cutset: cutset}
}

// TrimLeadingChars removes runes in cutset from the start of the field, for
// right-aligned fixed-width fields such as "000120".
func TrimLeadingChars(cutset string) TrimPolicy {
	return TrimPolicy{mode: trimLeading, cutset: cutset}
}

// TrimTrailingChars removes runes in cutset from the end of the field, for
// left-aligned fixed-width fields such as "12____".
func TrimTrailingChars(cutset string) TrimPolicy {
	return TrimPolicy{mode: trimTrailing, cutset: cutset}
}

// ParseTrimPolicy maps a configuration value to a policy. Accepted values are
// "whitespace" (or ""), "none", and "chars", "leading" or "trailing", which
// use cutset.
func ParseTrimPolicy(name, cutset string) (TrimPolicy, error) {
	var p TrimPolicy
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "whitespace", "space":
		return TrimWhitespace, nil
	case "none":
		return TrimNone, nil
	case "chars":
		p = TrimChars(cutset)
	case "leading", "left":
		p = TrimLeadingChars(cutset)
	case "trailing", "right":
		p = TrimTrailingChars(cutset)
	default:
		return TrimPolicy{}, fmt.Errorf("%w: unknown trim policy %q", ErrInvalidOption, name)
	}
	if err := p.validate(); err != nil {
		return TrimPolicy{}, err
	}
	return p, nil
}

func (p TrimPolicy) validate() error {
	switch p.mode {
	case trimChars, trimLeading, trimTrailing:
	default:
		return nil
	}
	if p.cutset == "" {
		return fmt.Errorf("%w: trim policy %s requires trim characters", ErrInvalidOption, p)
	}
	if p.mode == trimChars && strings.IndexFunc(p.cutset, unicode.IsDigit) >= 0 {
		return fmt.Errorf("%w: trim policy %s strips digits from both ends, use leading or trailing", ErrInvalidOption, p)
	}
	return nil
}

// Trim applies the policy to s. One-sided trims never reduce a field to ""
// when the padding is a digit: "0000" under TrimLeadingChars("0") is "0".
func (p TrimPolicy) Trim(s string) string {
	switch p.mode {
	case trimNone:
		return s
	case trimChars:
		return strings.Trim(s, p.cutset)
	case trimLeading:
		t := strings.TrimLeft(s, p.cutset)
		if t == "" && s != "" && p.digitPadding() {
			_, size := utf8.DecodeLastRuneInString(s)
			t = s[len(s)-size:]
		}
		return t
	case trimTrailing:
		t := strings.TrimRight(s, p.cutset)
		if t == "" && s != "" && p.digitPadding() {
			_, size := utf8.DecodeRuneInString(s)
			t = s[:size]
		}
		return t
	default:
		return strings.TrimSpace(s)
	}
}

func (p TrimPolicy) digitPadding() bool {
	return strings.IndexFunc(p.cutset, unicode.IsDigit) >= 0
}

func (p TrimPolicy) String() string {
	switch p.mode {
	case trimNone:
		return "none"
	case trimChars:
		return fmt.Sprintf("chars(%q)", p.cutset)
	case trimLeading:
		return fmt.Sprintf("leading(%q)", p.cutset)
	case trimTrailing:
		return fmt.Sprintf("trailing(%q)", p.cutset)
	default:
		return "whitespace"
	}
}
