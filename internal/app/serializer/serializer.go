// Package serializer converts arbitrary values into bounded text for log entries.
//
// Every exported function is total: a value that cannot be rendered produces a
// placeholder string instead of a panic or an error.
package serializer

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"screenlog/internal/config"
)

// Placeholders rendered in place of values that cannot be descended into
const (
	MaxDepthReached   = `"[Max Depth Reached]"`
	CircularReference = `"[Circular Reference]"`
	CircularObject    = "[Circular Object]"
	Unstringifiable   = "[unstringifiable]"
)

const indentUnit = "  "

// Options bounds the rendering of structured values
type Options struct {
	MaxDepth        int
	MaxStringLength int
	MaxArrayLength  int
	PrettyPrint     bool
}

// DefaultOptions returns the default serializer bounds
func DefaultOptions() Options {
	return Options{
		MaxDepth:        config.MaxDepth,
		MaxStringLength: config.MaxStringLength,
		MaxArrayLength:  config.MaxArrayLength,
	}
}

// OptionsFromConfig builds serializer options from the application configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxDepth:        cfg.Serializer.MaxDepth,
		MaxStringLength: cfg.Serializer.MaxStringLength,
		MaxArrayLength:  cfg.Serializer.MaxArrayLength,
		PrettyPrint:     cfg.Features.PrettyPrint,
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()

	if o.MaxDepth <= 0 {
		o.MaxDepth = def.MaxDepth
	}

	if o.MaxStringLength <= 0 {
		o.MaxStringLength = def.MaxStringLength
	}

	if o.MaxArrayLength <= 0 {
		o.MaxArrayLength = def.MaxArrayLength
	}

	return o
}

// visit identifies a reference-like value currently being rendered
type visit struct {
	ptr uintptr
	typ reflect.Type
	len int
}

// printer renders one value tree; visited holds the identities on the current path
type printer struct {
	opts    Options
	visited map[visit]struct{}
}

// Serialize renders value as indented, bounded text
func Serialize(value any, opts Options) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("[Serialization failed: %v]", r)
		}
	}()

	p := &printer{
		opts:    opts.normalized(),
		visited: make(map[visit]struct{}),
	}

	return p.render(value, 0, 0)
}

// render produces the text for value at the given indentation and depth
func (p *printer) render(value any, indent, depth int) string {
	if depth > p.opts.MaxDepth {
		return MaxDepthReached
	}

	if value == nil {
		return "null"
	}

	if special, ok := renderSpecial(value, indent); ok {
		return special
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.String:
		return quote(rv.String(), p.opts.MaxStringLength)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float(), rv.Type().Bits())
	case reflect.Complex64, reflect.Complex128:
		return fmt.Sprint(value)
	case reflect.Func:
		return functionName(rv)
	case reflect.Chan, reflect.UnsafePointer:
		return "[" + rv.Type().String() + "]"
	case reflect.Pointer:
		return p.renderPointer(rv, indent, depth)
	case reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return "[]"
		}

		return p.guard(visit{ptr: rv.Pointer(), typ: rv.Type(), len: rv.Len()}, func() string {
			return p.renderSequence(rv, indent, depth)
		})
	case reflect.Array:
		if rv.Len() == 0 {
			return "[]"
		}

		return p.renderSequence(rv, indent, depth)
	case reflect.Map:
		if rv.IsNil() || rv.Len() == 0 {
			return "{}"
		}

		return p.guard(visit{ptr: rv.Pointer(), typ: rv.Type()}, func() string {
			return p.renderMap(rv, indent, depth)
		})
	case reflect.Struct:
		return p.renderStruct(rv, indent, depth)
	default:
		return fmt.Sprint(value)
	}
}

// guard marks id as visiting for the duration of fn, or reports a cycle
func (p *printer) guard(id visit, fn func() string) string {
	if _, seen := p.visited[id]; seen {
		return CircularReference
	}

	p.visited[id] = struct{}{}
	defer delete(p.visited, id)

	return fn()
}

func (p *printer) renderPointer(rv reflect.Value, indent, depth int) string {
	if rv.IsNil() {
		return "null"
	}

	return p.guard(visit{ptr: rv.Pointer(), typ: rv.Type()}, func() string {
		return p.render(rv.Elem().Interface(), indent, depth)
	})
}

func (p *printer) renderSequence(rv reflect.Value, indent, depth int) string {
	pad := strings.Repeat(indentUnit, indent)
	childPad := strings.Repeat(indentUnit, indent+1)

	shown := min(rv.Len(), p.opts.MaxArrayLength)

	var b strings.Builder

	b.WriteString("[\n")

	for i := 0; i < shown; i++ {
		b.WriteString(childPad)
		b.WriteString(p.render(rv.Index(i).Interface(), indent+1, depth+1))

		if i < shown-1 {
			b.WriteByte(',')
		}

		b.WriteByte('\n')
	}

	if rv.Len() > shown {
		fmt.Fprintf(&b, "%s... (%d more items)\n", childPad, rv.Len()-shown)
	}

	b.WriteString(pad)
	b.WriteByte(']')

	return b.String()
}

// field is one rendered key of a mapping
type field struct {
	key   string
	value any
}

func (p *printer) renderMap(rv reflect.Value, indent, depth int) string {
	fields := make([]field, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		fields = append(fields, field{
			key:   fmt.Sprint(iter.Key().Interface()),
			value: iter.Value().Interface(),
		})
	}

	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].key < fields[j].key
	})

	return p.renderFields(fields, indent, depth)
}

func (p *printer) renderStruct(rv reflect.Value, indent, depth int) string {
	t := rv.Type()
	fields := make([]field, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		fields = append(fields, field{key: sf.Name, value: rv.Field(i).Interface()})
	}

	if len(fields) == 0 {
		return "{}"
	}

	return p.renderFields(fields, indent, depth)
}

func (p *printer) renderFields(fields []field, indent, depth int) string {
	pad := strings.Repeat(indentUnit, indent)
	childPad := strings.Repeat(indentUnit, indent+1)

	var b strings.Builder

	b.WriteString("{\n")

	for i, f := range fields {
		b.WriteString(childPad)
		b.WriteString(quoteKey(f.key))
		b.WriteString(": ")
		b.WriteString(p.render(f.value, indent+1, depth+1))

		if i < len(fields)-1 {
			b.WriteByte(',')
		}

		b.WriteByte('\n')
	}

	b.WriteString(pad)
	b.WriteByte('}')

	return b.String()
}

// quote escapes and quotes s, truncating it past max runes
func quote(s string, max int) string {
	runes := []rune(s)
	suffix := ""

	if len(runes) > max {
		suffix = fmt.Sprintf("... (%d chars)", len(runes))
		s = string(runes[:max])
	}

	return `"` + escape(s) + suffix + `"`
}

// quoteKey leaves identifier-like keys bare and quotes everything else
func quoteKey(key string) string {
	if isIdentifier(key) {
		return key
	}

	return `"` + escape(key) + `"`
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}

// escape replaces backslashes, quotes and control characters with escape sequences
func escape(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}

			b.WriteRune(r)
		}
	}

	return b.String()
}

func formatFloat(f float64, bits int) string {
	return strconv.FormatFloat(f, 'g', -1, bits)
}

// isoTime formats t the way a browser renders Date.toISOString
func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
