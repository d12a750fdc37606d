package serializer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenlog/internal/app/errors"
)

type host struct {
	Name   string
	Port   int
	secret string
}

// headerLine returns the row holding the column names
func headerLine(t *testing.T, rendered string) string {
	t.Helper()

	lines := strings.Split(rendered, "\n")
	require.Greater(t, len(lines), 2)

	return lines[1]
}

func Test_Table(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		columns  []string
		header   []string
		cells    []string
		excluded []string
	}{
		{
			name:   "slice of maps",
			data:   []map[string]any{{"b": 2, "a": 1}, {"c": "x"}},
			header: []string{"(index)", "a", "b", "c"},
			cells:  []string{"0", "1", "2", "x"},
		},
		{
			name:     "slice of structs skips unexported fields",
			data:     []host{{Name: "alpha", Port: 80, secret: "hidden"}},
			header:   []string{"(index)", "Name", "Port"},
			cells:    []string{"alpha", "80"},
			excluded: []string{"secret", "hidden"},
		},
		{
			name:   "pointer rows",
			data:   []*host{{Name: "beta", Port: 443}},
			header: []string{"(index)", "Name", "Port"},
			cells:  []string{"beta", "443"},
		},
		{
			name:   "map of rows",
			data:   map[string]host{"web": {Name: "alpha"}, "db": {Name: "beta"}},
			header: []string{"(key)", "Name", "Port"},
			cells:  []string{"web", "db", "alpha", "beta"},
		},
		{
			name:   "scalar rows fill values",
			data:   []any{"one", 2, nil},
			header: []string{"(index)", "Values"},
			cells:  []string{"one", "2", "null"},
		},
		{
			name:   "struct as key value rows",
			data:   host{Name: "gamma", Port: 22},
			header: []string{"(key)", "Values"},
			cells:  []string{"Name", "Port", "gamma", "22"},
		},
		{
			name:     "explicit columns",
			data:     []map[string]any{{"a": 1, "b": 2}},
			columns:  []string{"b"},
			header:   []string{"(index)", "b"},
			cells:    []string{"2"},
			excluded: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered, err := Table(tt.data, tt.columns, DefaultOptions())
			require.NoError(t, err)

			header := headerLine(t, rendered)
			last := -1

			for _, column := range tt.header {
				at := strings.Index(header, column)
				require.GreaterOrEqual(t, at, 0, column)
				assert.Greater(t, at, last, column)

				last = at
			}

			for _, cell := range tt.cells {
				assert.Contains(t, rendered, cell)
			}

			for _, text := range tt.excluded {
				assert.NotContains(t, header, text)
				assert.NotContains(t, rendered, text)
			}
		})
	}
}

func Test_Table_MapRowOrder(t *testing.T) {
	rendered, err := Table(map[string]int{"zeta": 1, "alpha": 2}, nil, DefaultOptions())
	require.NoError(t, err)

	assert.Less(t, strings.Index(rendered, "alpha"), strings.Index(rendered, "zeta"))
}

func Test_Table_LongCell(t *testing.T) {
	rendered, err := Table([]string{strings.Repeat("x", 150)}, nil, DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, rendered, strings.Repeat("x", maxCellLength)+"...")
	assert.NotContains(t, rendered, strings.Repeat("x", maxCellLength+1))
}

func Test_Table_Errors(t *testing.T) {
	tests := []struct {
		name string
		data any
		err  error
	}{
		{name: "nil", data: nil, err: errors.ErrInvalidTableData},
		{name: "nil pointer", data: (*host)(nil), err: errors.ErrInvalidTableData},
		{name: "scalar", data: "text", err: errors.ErrInvalidTableData},
		{name: "empty slice", data: []int{}, err: errors.ErrEmptyTable},
		{name: "empty map", data: map[string]int{}, err: errors.ErrEmptyTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Table(tt.data, nil, DefaultOptions())
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
