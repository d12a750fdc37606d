package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Stringify converts one log argument to text
func Stringify(value any, opts Options) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = Unstringifiable
		}
	}()

	switch v := value.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case string:
		return v
	case time.Time:
		return isoTime(v)
	case Widget:
		if isNilPointer(value) {
			return "null"
		}

		return widgetTag(v)
	case error:
		if isNilPointer(value) {
			return "null"
		}

		return errorText(v, " ")
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Func:
		return functionName(rv)
	case reflect.String:
		return rv.String()
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return fmt.Sprint(value)
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		if opts.PrettyPrint {
			return Serialize(value, opts)
		}
	}

	return compact(value)
}

// StringifyAll converts every argument and joins them with single spaces
func StringifyAll(args []any, opts Options) string {
	parts := make([]string, len(args))

	for i, arg := range args {
		parts[i] = Stringify(arg, opts)
	}

	return strings.Join(parts, " ")
}

// compact renders value as single-line JSON, falling back to coercion
func compact(value any) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(value); err != nil {
		var unsupported *json.UnsupportedValueError
		if errors.As(err, &unsupported) && strings.Contains(unsupported.Str, "cycle") {
			return CircularObject
		}

		return coerce(value)
	}

	return strings.TrimRight(buf.String(), "\n")
}

// coerce converts a value that JSON cannot represent
func coerce(value any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = Unstringifiable
		}
	}()

	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}

	return "[object " + reflect.TypeOf(value).String() + "]"
}
