package serializer

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type node struct {
	Name string
	Next *node
}

type button struct {
	id      string
	classes []string
}

func (b button) Tag() string       { return "BUTTON" }
func (b button) ID() string        { return b.id }
func (b button) Classes() []string { return b.classes }

func namedHandler() {}

func Test_Serialize_Scalars(t *testing.T) {
	opts := DefaultOptions()

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "nil", value: nil, expected: "null"},
		{name: "undefined", value: Undefined, expected: "undefined"},
		{name: "string", value: "hi", expected: `"hi"`},
		{name: "escaped string", value: "a\"b\n", expected: `"a\"b\n"`},
		{name: "int", value: 42, expected: "42"},
		{name: "float", value: 1.5, expected: "1.5"},
		{name: "bool", value: true, expected: "true"},
		{name: "nil pointer", value: (*node)(nil), expected: "null"},
		{name: "empty slice", value: []int{}, expected: "[]"},
		{name: "empty map", value: map[string]int{}, expected: "{}"},
		{name: "date", value: time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC), expected: "[Date: 2024-01-02T03:04:05.006Z]"},
		{name: "widget", value: button{id: "save", classes: []string{"primary", "wide"}}, expected: "<button#save.primary.wide>"},
		{name: "widget without id", value: button{}, expected: "<button>"},
		{name: "plain error", value: fmt.Errorf("boom"), expected: "[Error: boom]"},
		{name: "empty error", value: fmt.Errorf(""), expected: "[Error: Unknown Error]"},
		{name: "anonymous function", value: func() {}, expected: "[Function: anonymous]"},
		{name: "named function", value: namedHandler, expected: "[Function: serializer.namedHandler]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Serialize(tt.value, opts))
		})
	}
}

func Test_Serialize_Structures(t *testing.T) {
	opts := DefaultOptions()

	t.Run("map keys are sorted and quoted when not identifiers", func(t *testing.T) {
		out := Serialize(map[string]any{"b": 1, "a": "x", "with space": []int{1, 2}}, opts)

		expected := "{\n  a: \"x\",\n  b: 1,\n  \"with space\": [\n    1,\n    2\n  ]\n}"
		assert.Equal(t, expected, out)
	})

	t.Run("struct renders exported fields only", func(t *testing.T) {
		type sample struct {
			Visible int
			hidden  int
		}

		assert.Equal(t, "{\n  Visible: 1\n}", Serialize(sample{Visible: 1, hidden: 2}, opts))
	})

	t.Run("error with stack renders frames", func(t *testing.T) {
		out := Serialize(errors.New("broken"), opts)

		assert.True(t, strings.HasPrefix(out, "[Error: broken\n  Stack: "))
		assert.Contains(t, out, "serializer_test.go")
		assert.True(t, strings.HasSuffix(out, "]"))
	})
}

func Test_Serialize_Bounds(t *testing.T) {
	t.Run("long string is truncated with its length", func(t *testing.T) {
		opts := Options{MaxStringLength: 5}

		assert.Equal(t, `"abcde... (8 chars)"`, Serialize("abcdefgh", opts))
	})

	t.Run("long array reports remaining items", func(t *testing.T) {
		opts := Options{MaxArrayLength: 2}

		assert.Equal(t, "[\n  1,\n  2\n  ... (3 more items)\n]", Serialize([]int{1, 2, 3, 4, 5}, opts))
	})

	t.Run("depth limit replaces deep values", func(t *testing.T) {
		opts := Options{MaxDepth: 1}
		value := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}

		assert.Equal(t, "{\n  a: {\n    b: "+MaxDepthReached+"\n  }\n}", Serialize(value, opts))
	})
}

func Test_Serialize_Cycles(t *testing.T) {
	opts := DefaultOptions()

	t.Run("self-referencing pointer", func(t *testing.T) {
		n := &node{Name: "a"}
		n.Next = n

		out := Serialize(n, opts)

		assert.Equal(t, "{\n  Name: \"a\",\n  Next: "+CircularReference+"\n}", out)
		assert.Equal(t, out, Serialize(n, opts))
	})

	t.Run("self-referencing map", func(t *testing.T) {
		m := map[string]any{"k": 1}
		m["self"] = m

		out := Serialize(m, opts)

		assert.Contains(t, out, "self: "+CircularReference)
		assert.Equal(t, out, Serialize(m, opts))
	})

	t.Run("shared value is not a cycle", func(t *testing.T) {
		shared := &node{Name: "s"}
		value := []*node{shared, shared}

		assert.NotContains(t, Serialize(value, opts), CircularReference)
	})
}

type brokenStringer struct {
	Ch chan int
}

func (brokenStringer) String() string {
	panic("no")
}

type channelStringer struct {
	Ch chan int
}

func (channelStringer) String() string {
	return "channel holder"
}

func Test_Stringify(t *testing.T) {
	opts := DefaultOptions()

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "raw string", value: "hello world", expected: "hello world"},
		{name: "nil", value: nil, expected: "null"},
		{name: "undefined", value: Undefined, expected: "undefined"},
		{name: "number", value: 3, expected: "3"},
		{name: "bool", value: false, expected: "false"},
		{name: "map as compact json", value: map[string]any{"a": 1, "b": "<x>"}, expected: `{"a":1,"b":"<x>"}`},
		{name: "slice as compact json", value: []int{1, 2}, expected: "[1,2]"},
		{name: "error", value: fmt.Errorf("boom"), expected: "[Error: boom]"},
		{name: "date", value: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), expected: "2024-01-02T03:04:05.000Z"},
		{name: "unsupported with stringer", value: channelStringer{Ch: make(chan int)}, expected: "channel holder"},
		{name: "unsupported without stringer", value: struct{ Ch chan int }{}, expected: "[object struct { Ch chan int }]"},
		{name: "panicking stringer", value: brokenStringer{Ch: make(chan int)}, expected: Unstringifiable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Stringify(tt.value, opts))
		})
	}
}

func Test_Stringify_Cycle(t *testing.T) {
	m := map[string]any{}
	m["self"] = m

	assert.Equal(t, CircularObject, Stringify(m, DefaultOptions()))
}

func Test_Stringify_PrettyPrint(t *testing.T) {
	opts := DefaultOptions()
	opts.PrettyPrint = true

	assert.Equal(t, "{\n  a: 1\n}", Stringify(map[string]int{"a": 1}, opts))
	assert.Equal(t, "plain", Stringify("plain", opts))
}

func Test_StringifyAll(t *testing.T) {
	out := StringifyAll([]any{"count", 3, map[string]int{"x": 1}}, DefaultOptions())

	assert.Equal(t, `count 3 {"x":1}`, out)
}
