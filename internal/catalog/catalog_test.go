package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/flatfiles/internal/column"
)

const sampleYAML = `
columns:
  - name: amount
    type: double
    culture: de-DE
    styles: Number
    output_format: N2
    null_values: ["NULL", "n/a"]
  - name: qty
    type: int32
    preprocess: [clean]
  - name: posted
    type: datetime
    output_layout: "2006-01-02"
  - name: active
    type: boolean
    true_string: "Y"
    false_string: "N"
    lenient: true
`

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "columns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cat, err := Load(path, Defaults{})
	require.NoError(t, err)
	assert.Equal(t, []string{"amount", "qty", "posted", "active"}, cat.Names())
	assert.Equal(t, 4, cat.Len())

	ctx := context.Background()

	amount, ok := cat.Get("Amount")
	require.True(t, ok)
	v, err := amount.Parse(ctx, "1.234,5")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, v)
	text, err := amount.Format(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, "1.234,50", text)

	null, err := amount.Parse(ctx, "n/a")
	require.NoError(t, err)
	assert.Nil(t, null)

	qty, _ := cat.Get("qty")
	v, err = qty.Parse(ctx, `="12"`)
	require.NoError(t, err)
	assert.Equal(t, int32(12), v)

	posted, _ := cat.Get("posted")
	v, err = posted.Parse(ctx, "1/15/2024")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC).Equal(v.(time.Time)))

	active, _ := cat.Get("active")
	v, err = active.Parse(ctx, "yes")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, ok = cat.Get("missing")
	assert.False(t, ok)
}

func TestRead_JSON(t *testing.T) {
	const doc = `{"columns": [{"name": "id", "type": "guid", "output_format": "B"}]}`

	cat, err := Read(strings.NewReader(doc), "json", Defaults{})
	require.NoError(t, err)

	id, ok := cat.Get("id")
	require.True(t, ok)
	assert.Equal(t, "uuid.UUID", id.Type().String())
}

func TestNew_Defaults(t *testing.T) {
	cat, err := New([]column.Spec{
		{Name: "a", Type: "double"},
		{Name: "b", Type: "double", Culture: "en-US", NullValues: []string{"-"}},
		{Name: "c", Type: "string", Trim: "none"},
	}, Defaults{Culture: "de-DE", NullValues: []string{"NULL"}, Trim: "chars", TrimChars: "*"})
	require.NoError(t, err)

	ctx := context.Background()
	a, _ := cat.Get("a")
	v, err := a.Parse(ctx, "**3,5")
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
	text, err := a.Format(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "NULL", text)

	b, _ := cat.Get("b")
	v, err = b.Parse(ctx, "3.5")
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
	text, err = b.Format(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "-", text)

	c, _ := cat.Get("c")
	v, err = c.Parse(ctx, " x ")
	require.NoError(t, err)
	assert.Equal(t, " x ", v)

	infos := cat.Describe()
	require.Len(t, infos, 3)
	assert.Equal(t, column.Info{Name: "a", Kind: "double", Type: "float64", Null: "NULL"}, infos[0])
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name  string
		specs []column.Spec
		want  error
	}{
		{"duplicate", []column.Spec{{Name: "a", Type: "double"}, {Name: "A", Type: "int32"}}, ErrDuplicateColumn},
		{"unknown type", []column.Spec{{Name: "a", Type: "money"}}, column.ErrUnknownType},
		{"bad pattern", []column.Spec{{Name: "a", Type: "double", OutputFormat: "D2"}}, column.ErrInvalidOption},
		{"missing name", []column.Spec{{Type: "double"}}, column.ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.specs, Defaults{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), Defaults{})
	assert.Error(t, err)
}
