package column

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var errNoLayout = errors.New("does not match any input layout")

// DefaultTwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
const DefaultTwoDigitYearPivot = 20

// DefaultDateLayouts are tried in order when no input layouts are set.
// Four-digit year layouts come first because they are unambiguous.
var DefaultDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
	"2006/01/02", "2006.01.02",
	"Jan 2, 2006", "2 Jan 2006",
	"20060102",
	"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
}

// DateTimeOptions configures a date/time column.
type DateTimeOptions struct {
	Options
	InputLayouts []string // nil means DefaultDateLayouts
	OutputLayout string   // "" means time.RFC3339
	// Location is used for text without a zone offset and for output.
	// nil means UTC.
	Location *time.Location
	// TwoDigitYearPivot overrides DefaultTwoDigitYearPivot when positive.
	TwoDigitYearPivot int
}

// NewDateTime returns a time.Time column. The two-digit year cutoff is
// fixed when the column is built.
func NewDateTime(name string, opts DateTimeOptions) (*Column[time.Time], error) {
	layouts := opts.InputLayouts
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	layouts = append([]string(nil), layouts...)
	for _, l := range layouts {
		if strings.TrimSpace(l) == "" {
			return nil, fmt.Errorf("datetime column %q: %w: empty input layout", name, ErrInvalidOption)
		}
	}
	output := opts.OutputLayout
	if output == "" {
		output = time.RFC3339
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	pivot := opts.TwoDigitYearPivot
	if pivot <= 0 {
		pivot = DefaultTwoDigitYearPivot
	}
	pivotYear := time.Now().Year() + pivot

	return newColumn(name, "datetime", opts.Options, codec[time.Time]{
		parse: func(s string) (time.Time, error) {
			for _, layout := range layouts {
				t, err := time.ParseInLocation(layout, s, loc)
				if err != nil {
					continue
				}
				if hasTwoDigitYear(layout) && t.Year() > pivotYear {
					t = t.AddDate(-100, 0, 0)
				}
				return t, nil
			}
			return time.Time{}, errNoLayout
		},
		format: func(v time.Time) (string, error) {
			return v.In(loc).Format(output), nil
		},
	})
}

func hasTwoDigitYear(layout string) bool {
	return strings.Contains(strings.ReplaceAll(layout, "2006", ""), "06")
}
