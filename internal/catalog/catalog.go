// Package catalog loads named column definitions from a configuration file.
//
// A catalog file lists columns and their policies:
//
//	columns:
//	  - name: amount
//	    type: double
//	    culture: de-DE
//	    styles: Number
//	    output_format: N2
//	    null_values: ["NULL", "n/a"]
//	  - name: posted
//	    type: datetime
//	    output_layout: "2006-01-02"
//
// YAML, JSON and TOML are accepted. Every column is built when the catalog
// loads; an unknown type, culture or pattern fails the whole load.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/JonMunkholm/flatfiles/internal/column"
)

// ErrDuplicateColumn is returned when two catalog entries share a name.
var ErrDuplicateColumn = errors.New("duplicate column name")

// Defaults fill settings a catalog entry leaves empty.
type Defaults struct {
	Culture    string
	NullValues []string
	Trim       string
	TrimChars  string
}

type file struct {
	Columns []column.Spec `mapstructure:"columns"`
}

// Catalog is an immutable set of frozen column definitions.
type Catalog struct {
	columns map[string]column.Definition
	names   []string
}

// Load reads the catalog at path. The format follows the file extension.
func Load(path string, defaults Defaults) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return decode(v, defaults)
}

// Read parses a catalog from r in the given format ("yaml", "json", "toml").
func Read(r io.Reader, format string, defaults Defaults) (*Catalog, error) {
	v := viper.New()
	v.SetConfigType(format)

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return decode(v, defaults)
}

func decode(v *viper.Viper, defaults Defaults) (*Catalog, error) {
	var f file
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return New(f.Columns, defaults)
}

// New builds a catalog from specs, applying defaults first.
func New(specs []column.Spec, defaults Defaults) (*Catalog, error) {
	c := &Catalog{columns: make(map[string]column.Definition, len(specs))}

	for i, spec := range specs {
		spec = defaults.apply(spec)
		key := strings.ToLower(spec.Name)
		if _, exists := c.columns[key]; exists {
			return nil, fmt.Errorf("catalog: columns[%d]: %w: %q", i, ErrDuplicateColumn, spec.Name)
		}

		def, err := column.Build(spec)
		if err != nil {
			return nil, fmt.Errorf("catalog: columns[%d]: %w", i, err)
		}
		c.columns[key] = def
		c.names = append(c.names, def.Name())
	}

	return c, nil
}

func (d Defaults) apply(s column.Spec) column.Spec {
	if s.Culture == "" {
		s.Culture = d.Culture
	}
	if s.NullValues == nil && len(d.NullValues) > 0 {
		s.NullValues = append([]string(nil), d.NullValues...)
	}
	if s.Trim == "" && d.Trim != "" {
		s.Trim = d.Trim
		if s.TrimChars == "" {
			s.TrimChars = d.TrimChars
		}
	}
	return s
}

// Get returns the column with the given name (case-insensitive).
func (c *Catalog) Get(name string) (column.Definition, bool) {
	def, ok := c.columns[strings.ToLower(name)]
	return def, ok
}

// Names returns column names in file order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of columns.
func (c *Catalog) Len() int { return len(c.names) }

// Describe lists every column in file order.
func (c *Catalog) Describe() []column.Info {
	infos := make([]column.Info, 0, len(c.names))
	for _, name := range c.names {
		def, _ := c.Get(name)
		infos = append(infos, column.Describe(def))
	}
	return infos
}
