package serializer

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"screenlog/internal/app/errors"
)

const (
	indexHeader   = "(index)"
	keyHeader     = "(key)"
	valuesHeader  = "Values"
	maxCellLength = 100
)

// Table renders a slice, array, map or struct as a bordered text table.
// Rows that are maps or structs spread into columns; any other row fills the Values column.
// Without explicit columns the sorted union of row keys is used.
func Table(data any, columns []string, opts Options) (string, error) {
	rv, ok := indirect(reflect.ValueOf(data))
	if !ok {
		return "", errors.ErrInvalidTableData
	}

	header := indexHeader

	var (
		keys []string
		rows []reflect.Value
	)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			keys = append(keys, strconv.Itoa(i))
			rows = append(rows, rv.Index(i))
		}
	case reflect.Map, reflect.Struct:
		header = keyHeader
		keys, rows = entries(rv)
	default:
		return "", errors.ErrInvalidTableData
	}

	if len(rows) == 0 {
		return "", errors.ErrEmptyTable
	}

	opts.PrettyPrint = false

	cells := make([]map[string]string, len(rows))
	scalars := make([]string, len(rows))
	detected := make(map[string]bool)
	hasScalar := false

	for i, row := range rows {
		if rowCells, ok := spread(row, opts); ok {
			cells[i] = rowCells
			for key := range rowCells {
				detected[key] = true
			}

			continue
		}

		hasScalar = true
		scalars[i] = cell(row.Interface(), opts)
	}

	if len(columns) == 0 {
		for key := range detected {
			columns = append(columns, key)
		}

		sort.Strings(columns)

		if hasScalar {
			columns = append(columns, valuesHeader)
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(append([]string{header}, columns...)...)

	for i, key := range keys {
		row := []string{key}

		for _, column := range columns {
			value := cells[i][column]
			if cells[i] == nil && column == valuesHeader {
				value = scalars[i]
			}

			row = append(row, value)
		}

		t.Row(row...)
	}

	return t.Render(), nil
}

// entries returns the keys and values of a map in key order, or the exported fields of a struct
func entries(rv reflect.Value) ([]string, []reflect.Value) {
	var (
		keys   []string
		values []reflect.Value
	)

	if rv.Kind() == reflect.Struct {
		t := rv.Type()

		for i := 0; i < t.NumField(); i++ {
			if sf := t.Field(i); sf.IsExported() {
				keys = append(keys, sf.Name)
				values = append(values, rv.Field(i))
			}
		}

		return keys, values
	}

	mapKeys := rv.MapKeys()
	sort.Slice(mapKeys, func(i, j int) bool {
		return fmt.Sprint(mapKeys[i].Interface()) < fmt.Sprint(mapKeys[j].Interface())
	})

	for _, k := range mapKeys {
		keys = append(keys, fmt.Sprint(k.Interface()))
		values = append(values, rv.MapIndex(k))
	}

	return keys, values
}

// spread converts a map or struct row into cells keyed by column
func spread(row reflect.Value, opts Options) (map[string]string, bool) {
	rv, ok := indirect(row)
	if !ok || (rv.Kind() != reflect.Map && rv.Kind() != reflect.Struct) {
		return nil, false
	}

	keys, values := entries(rv)
	cells := make(map[string]string, len(keys))

	for i, key := range keys {
		cells[key] = cell(values[i].Interface(), opts)
	}

	return cells, true
}

func cell(value any, opts Options) string {
	text := []rune(Stringify(value, opts))
	if len(text) > maxCellLength {
		return string(text[:maxCellLength]) + "..."
	}

	return string(text)
}

// indirect unwraps interfaces and pointers; it reports false for nil and invalid values
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return rv, false
		}

		rv = rv.Elem()
	}

	return rv, rv.IsValid()
}
