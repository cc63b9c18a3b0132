package column

import "strings"

// NullHandler decides which text denotes a missing value and what text to
// write for one. Implementations must be deterministic and safe for
// concurrent use.
type NullHandler interface {
	IsNullRepresentation(s string) bool
	GetNullRepresentation() string
}

// constantNullHandler treats exactly one token as null.
type constantNullHandler struct {
	token string
}

func (h constantNullHandler) IsNullRepresentation(s string) bool { return s == h.token }
func (h constantNullHandler) GetNullRepresentation() string      { return h.token }

// DefaultNullHandler recognizes only the empty string and writes the empty
// string for null.
func DefaultNullHandler() NullHandler {
	return constantNullHandler{}
}

// ConstantNullHandler recognizes token (case-sensitive) and writes it back
// for null. Typical tokens are "NULL" and `\N`.
func ConstantNullHandler(token string) NullHandler {
	return constantNullHandler{token: token}
}

// setNullHandler accepts several tokens and writes a canonical one.
type setNullHandler struct {
	canonical  string
	tokens     map[string]struct{}
	ignoreCase bool
}

// SetNullHandler recognizes canonical and every alternate, and writes
// canonical for null.
func SetNullHandler(canonical string, alternates ...string) NullHandler {
	return newSetNullHandler(false, canonical, alternates)
}

// FoldedSetNullHandler is SetNullHandler with case-insensitive matching.
func FoldedSetNullHandler(canonical string, alternates ...string) NullHandler {
	return newSetNullHandler(true, canonical, alternates)
}

func newSetNullHandler(ignoreCase bool, canonical string, alternates []string) setNullHandler {
	h := setNullHandler{
		canonical:  canonical,
		tokens:     make(map[string]struct{}, len(alternates)+1),
		ignoreCase: ignoreCase,
	}
	for _, tok := range append([]string{canonical}, alternates...) {
		h.tokens[h.key(tok)] = struct{}{}
	}
	return h
}

func (h setNullHandler) key(s string) string {
	if h.ignoreCase {
		return strings.ToLower(s)
	}
	return s
}

func (h setNullHandler) IsNullRepresentation(s string) bool {
	_, ok := h.tokens[h.key(s)]
	return ok
}

func (h setNullHandler) GetNullRepresentation() string { return h.canonical }
