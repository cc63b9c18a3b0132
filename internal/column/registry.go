package column

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JonMunkholm/flatfiles/internal/numfmt"
)

// ErrUnknownType is returned when a Spec names an unregistered column type.
var ErrUnknownType = errors.New("unknown column type")

// Spec describes a column in configuration terms. Fields that do not apply
// to the column type are ignored.
type Spec struct {
	Name string `mapstructure:"name" json:"name"`
	Type string `mapstructure:"type" json:"type"`

	NullValues     []string `mapstructure:"null_values" json:"null_values,omitempty"`
	NullIgnoreCase bool     `mapstructure:"null_ignore_case" json:"null_ignore_case,omitempty"`
	Trim           string   `mapstructure:"trim" json:"trim,omitempty"`
	TrimChars      string   `mapstructure:"trim_chars" json:"trim_chars,omitempty"`
	Preprocess     []string `mapstructure:"preprocess" json:"preprocess,omitempty"` // "clean", "strip"
	StripChars     string   `mapstructure:"strip_chars" json:"strip_chars,omitempty"`

	// Numeric columns.
	Culture      string `mapstructure:"culture" json:"culture,omitempty"`
	Styles       string `mapstructure:"styles" json:"styles,omitempty"`
	OutputFormat string `mapstructure:"output_format" json:"output_format,omitempty"`

	// Boolean columns.
	TrueString  string `mapstructure:"true_string" json:"true_string,omitempty"`
	FalseString string `mapstructure:"false_string" json:"false_string,omitempty"`
	Lenient     bool   `mapstructure:"lenient" json:"lenient,omitempty"`

	// Date/time columns.
	InputLayouts []string `mapstructure:"input_layouts" json:"input_layouts,omitempty"`
	OutputLayout string   `mapstructure:"output_layout" json:"output_layout,omitempty"`
	Location     string   `mapstructure:"location" json:"location,omitempty"`
}

// Factory builds a column from a spec.
type Factory func(spec Spec) (Definition, error)

// Registry maps column type names to factories. The zero value is not
// usable; call NewRegistry.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in column types.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	for _, names := range [][]string{
		{"double", "float64"},
		{"single", "float32"},
		{"int16"},
		{"int32", "int"},
		{"int64", "long"},
		{"byte", "uint8"},
		{"decimal", "numeric"},
		{"boolean", "bool"},
		{"string", "text"},
		{"datetime", "date"},
		{"guid", "uuid"},
	} {
		f := builtins[names[0]]
		for _, name := range names {
			r.Register(name, f)
		}
	}
	return r
}

// Register adds a factory under name (case-insensitive).
// Panics if the name is already registered.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, exists := r.factories[key]; exists {
		panic(fmt.Sprintf("column type already registered: %s", name))
	}
	r.factories[key] = f
}

// Build constructs the column described by spec.
func (r *Registry) Build(spec Spec) (Definition, error) {
	r.mu.RLock()
	f, ok := r.factories[strings.ToLower(strings.TrimSpace(spec.Type))]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("column %q: %w %q", spec.Name, ErrUnknownType, spec.Type)
	}
	return f(spec)
}

// Types returns all registered type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Register adds a factory to the default registry.
func Register(name string, f Factory) { defaultRegistry.Register(name, f) }

// Build constructs a column through the default registry.
func Build(spec Spec) (Definition, error) { return defaultRegistry.Build(spec) }

// Types lists the type names known to the default registry.
func Types() []string { return defaultRegistry.Types() }

var builtins = map[string]Factory{
	"double": func(s Spec) (Definition, error) {
		o, err := s.numberOptions()
		if err != nil {
			return nil, err
		}
		return definition(NewDouble(s.Name, o))
	},
	"single": func(s Spec) (Definition, error) {
		o, err := s.numberOptions()
		if err != nil {
			return nil, err
		}
		return definition(NewSingle(s.Name, o))
	},
	"int16": func(s Spec) (Definition, error) {
		o, err := s.numberOptions()
		if err != nil {
			return nil, err
		}
		return definition(NewInt16(s.Name, o))
	},
	"int32": func(s Spec) (Definition, error) {
		o, err := s.numberOptions()
		if err != nil {
			return nil, err
		}
		return definition(NewInt32(s.Name, o))
	},
	"int64": func(s Spec) (Definition, error) {
		o, err := s.numberOptions()
		if err != nil {
			return nil, err
		}
		return definition(NewInt64(s.Name, o))
	},
	"byte": func(s Spec) (Definition, error) {
		o, err := s.numberOptions()
		if err != nil {
			return nil, err
		}
		return definition(NewByte(s.Name, o))
	},
	"decimal": func(s Spec) (Definition, error) {
		o, err := s.numberOptions()
		if err != nil {
			return nil, err
		}
		return definition(NewDecimal(s.Name, o))
	},
	"boolean": func(s Spec) (Definition, error) {
		base, err := s.options()
		if err != nil {
			return nil, err
		}
		return definition(NewBoolean(s.Name, BooleanOptions{
			Options:     base,
			TrueString:  s.TrueString,
			FalseString: s.FalseString,
			Lenient:     s.Lenient,
		}))
	},
	"string": func(s Spec) (Definition, error) {
		base, err := s.options()
		if err != nil {
			return nil, err
		}
		return definition(NewString(s.Name, StringOptions{Options: base}))
	},
	"datetime": func(s Spec) (Definition, error) {
		base, err := s.options()
		if err != nil {
			return nil, err
		}
		var loc *time.Location
		if s.Location != "" {
			if loc, err = time.LoadLocation(s.Location); err != nil {
				return nil, fmt.Errorf("column %q: %w: %v", s.Name, ErrInvalidOption, err)
			}
		}
		return definition(NewDateTime(s.Name, DateTimeOptions{
			Options:      base,
			InputLayouts: s.InputLayouts,
			OutputLayout: s.OutputLayout,
			Location:     loc,
		}))
	},
	"guid": func(s Spec) (Definition, error) {
		base, err := s.options()
		if err != nil {
			return nil, err
		}
		return definition(NewGUID(s.Name, GUIDOptions{Options: base, OutputFormat: s.OutputFormat}))
	},
}

// definition keeps a failed constructor from yielding a non-nil interface.
func definition[T any](c *Column[T], err error) (Definition, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

// options resolves the settings shared by every column type.
func (s Spec) options() (Options, error) {
	var o Options

	switch {
	case len(s.NullValues) == 0:
	case s.NullIgnoreCase:
		o.NullHandler = FoldedSetNullHandler(s.NullValues[0], s.NullValues[1:]...)
	case len(s.NullValues) == 1:
		o.NullHandler = ConstantNullHandler(s.NullValues[0])
	default:
		o.NullHandler = SetNullHandler(s.NullValues[0], s.NullValues[1:]...)
	}

	trim, err := ParseTrimPolicy(s.Trim, s.TrimChars)
	if err != nil {
		return o, fmt.Errorf("column %q: %w", s.Name, err)
	}
	o.Trim = trim

	var pre []Preprocessor
	for _, name := range s.Preprocess {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "clean":
			pre = append(pre, CleanCell)
		case "strip":
			if s.StripChars == "" {
				return o, fmt.Errorf("column %q: %w: strip preprocessor requires strip_chars", s.Name, ErrInvalidOption)
			}
			pre = append(pre, StripChars(s.StripChars))
		default:
			return o, fmt.Errorf("column %q: %w: unknown preprocessor %q", s.Name, ErrInvalidOption, name)
		}
	}
	switch len(pre) {
	case 0:
	case 1:
		o.Preprocessor = pre[0]
	default:
		o.Preprocessor = Chain(pre...)
	}
	return o, nil
}

func (s Spec) numberOptions() (NumberOptions, error) {
	base, err := s.options()
	if err != nil {
		return NumberOptions{}, err
	}
	o := NumberOptions{Options: base, OutputFormat: s.OutputFormat}

	if o.Culture, err = numfmt.LookupCulture(s.Culture); err != nil {
		return o, fmt.Errorf("column %q: %w: %v", s.Name, ErrInvalidOption, err)
	}
	if s.Styles != "" {
		if o.Styles, err = numfmt.ParseStyles(s.Styles); err != nil {
			return o, fmt.Errorf("column %q: %w: %v", s.Name, ErrInvalidOption, err)
		}
	}
	return o, nil
}
