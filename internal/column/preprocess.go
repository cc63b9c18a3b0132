package column

import "strings"

// Preprocessor rewrites raw field text before null detection and parsing.
// It is never applied when formatting. A nil Preprocessor is the identity.
type Preprocessor func(string) string

// StripChars removes every occurrence of the runes in chars, e.g. "$," for
// currency symbols and thousands separators.
func StripChars(chars string) Preprocessor {
	return func(s string) string {
		return strings.Map(func(r rune) rune {
			if strings.ContainsRune(chars, r) {
				return -1
			}
			return r
		}, s)
	}
}

// CleanCell removes common spreadsheet export artifacts: surrounding
// whitespace, a leading byte order mark, the Excel formula wrapper ="..." or a
// bare leading '=', and surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// Chain applies each non-nil preprocessor in order.
func Chain(ps ...Preprocessor) Preprocessor {
	return func(s string) string {
		for _, p := range ps {
			if p != nil {
				s = p(s)
			}
		}
		return s
	}
}
