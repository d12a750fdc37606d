package serializer

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Widget is a displayable element rendered by its tag, id and classes
type Widget interface {
	Tag() string
	ID() string
	Classes() []string
}

type undefined struct{}

func (undefined) String() string {
	return "undefined"
}

// Undefined marks an argument that was explicitly absent
var Undefined = undefined{}

// stackTracer is implemented by errors created with github.com/pkg/errors
type stackTracer interface {
	StackTrace() errors.StackTrace
}

var closureName = regexp.MustCompile(`\.func\d+(\.\d+)*$`)

// renderSpecial handles values whose shape is not derived from their kind
func renderSpecial(value any, indent int) (string, bool) {
	switch v := value.(type) {
	case undefined:
		return "undefined", true
	case time.Time:
		return "[Date: " + isoTime(v) + "]", true
	case Widget:
		if isNilPointer(value) {
			return "null", true
		}

		return widgetTag(v), true
	case error:
		if isNilPointer(value) {
			return "null", true
		}

		return errorText(v, "\n"+strings.Repeat(indentUnit, indent+1)), true
	}

	return "", false
}

func isNilPointer(value any) bool {
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// errorText renders err with its stack frames separated by sep
func errorText(err error, sep string) string {
	msg := err.Error()
	if msg == "" {
		msg = "Unknown Error"
	}

	frames := stackFrames(err)
	if len(frames) == 0 {
		return "[Error: " + msg + "]"
	}

	return "[Error: " + msg + sep + "Stack: " + strings.Join(frames, sep) + "]"
}

// stackFrames returns the innermost recorded stack of err, one line per frame
func stackFrames(err error) []string {
	var st stackTracer

	for e := err; e != nil; e = errors.Unwrap(e) {
		if tracer, ok := e.(stackTracer); ok {
			st = tracer
		}
	}

	if st == nil {
		return nil
	}

	trace := st.StackTrace()
	frames := make([]string, 0, len(trace))

	for _, f := range trace {
		frames = append(frames, fmt.Sprintf("%n (%s:%d)", f, f, f))
	}

	return frames
}

// functionName renders a function value by its short name
func functionName(rv reflect.Value) string {
	if rv.IsNil() {
		return "null"
	}

	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return "[Function: anonymous]"
	}

	name := fn.Name()
	if closureName.MatchString(name) {
		return "[Function: anonymous]"
	}

	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	return "[Function: " + name + "]"
}

// widgetTag renders w as <tag#id.class1.class2>
func widgetTag(w Widget) string {
	var b strings.Builder

	b.WriteByte('<')
	b.WriteString(strings.ToLower(w.Tag()))

	if id := w.ID(); id != "" {
		b.WriteByte('#')
		b.WriteString(id)
	}

	for _, class := range w.Classes() {
		if class == "" {
			continue
		}

		b.WriteByte('.')
		b.WriteString(class)
	}

	b.WriteByte('>')

	return b.String()
}
