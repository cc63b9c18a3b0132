package column

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GUIDOptions configures a GUID column.
type GUIDOptions struct {
	Options
	// OutputFormat is one of
	//	D  xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx (default)
	//	N  32 hex digits
	//	B  {xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx}
	//	P  (xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx)
	OutputFormat string
}

// NewGUID returns a uuid.UUID column. Any of the output forms, and the
// urn:uuid: prefix, are accepted when parsing.
func NewGUID(name string, opts GUIDOptions) (*Column[uuid.UUID], error) {
	format := strings.ToUpper(opts.OutputFormat)
	switch format {
	case "":
		format = "D"
	case "D", "N", "B", "P":
	default:
		return nil, fmt.Errorf("guid column %q: %w: unknown output format %q", name, ErrInvalidOption, opts.OutputFormat)
	}

	return newColumn(name, "guid", opts.Options, codec[uuid.UUID]{
		parse: func(s string) (uuid.UUID, error) {
			if len(s) == 38 && s[0] == '(' && s[37] == ')' {
				s = s[1:37]
			}
			return uuid.Parse(s)
		},
		format: func(v uuid.UUID) (string, error) {
			switch format {
			case "N":
				return hex.EncodeToString(v[:]), nil
			case "B":
				return "{" + v.String() + "}", nil
			case "P":
				return "(" + v.String() + ")", nil
			}
			return v.String(), nil
		},
	})
}
