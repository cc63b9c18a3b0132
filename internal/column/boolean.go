package column

import (
	"errors"
	"fmt"
	"strings"
)

var errNotBoolean = errors.New("not a boolean")

// BooleanOptions configures a boolean column.
type BooleanOptions struct {
	Options
	TrueString  string // "" means "True"
	FalseString string // "" means "False"
	// Lenient also accepts true/t/yes/y/1 and false/f/no/n/0.
	Lenient bool
}

// NewBoolean returns a bool column. Matching of the true and false strings
// ignores case; formatting writes them exactly as configured.
func NewBoolean(name string, opts BooleanOptions) (*Column[bool], error) {
	if opts.TrueString == "" {
		opts.TrueString = "True"
	}
	if opts.FalseString == "" {
		opts.FalseString = "False"
	}
	if strings.EqualFold(opts.TrueString, opts.FalseString) {
		return nil, fmt.Errorf("boolean column %q: %w: true and false strings are both %q",
			name, ErrInvalidOption, opts.TrueString)
	}

	return newColumn(name, "boolean", opts.Options, codec[bool]{
		parse: func(s string) (bool, error) {
			switch {
			case strings.EqualFold(s, opts.TrueString):
				return true, nil
			case strings.EqualFold(s, opts.FalseString):
				return false, nil
			}
			if opts.Lenient {
				switch strings.ToLower(s) {
				case "true", "t", "yes", "y", "1":
					return true, nil
				case "false", "f", "no", "n", "0":
					return false, nil
				}
			}
			return false, errNotBoolean
		},
		format: func(v bool) (string, error) {
			if v {
				return opts.TrueString, nil
			}
			return opts.FalseString, nil
		},
	})
}
