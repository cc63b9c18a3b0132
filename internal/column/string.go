package column

// StringOptions configures a string column.
type StringOptions struct {
	Options
}

// NewString returns a text column. Parsing never fails; the value is the
// field text after preprocessing and trimming.
//
// With the default null handler an empty string formats as "" and parses
// back as null. Use a distinct null token when the two must differ.
func NewString(name string, opts StringOptions) (*Column[string], error) {
	return newColumn(name, "string", opts.Options, codec[string]{
		parse:  func(s string) (string, error) { return s, nil },
		format: func(v string) (string, error) { return v, nil },
	})
}
