package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenlog/internal/app/errors"
)

func Test_ParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
		err      error
	}{
		{name: "ping", line: "ping", expected: `{"command":"ping"}`},
		{name: "surrounding space", line: "  clearLogs  ", expected: `{"command":"clearLogs"}`},
		{name: "reload", line: "reload", expected: `{"command":"reload"}`},
		{name: "limit", line: "setLogLimit 10", expected: `{"command":"setLogLimit","limit":10}`},
		{name: "fractional limit", line: "setLogLimit 2.5", expected: `{"command":"setLogLimit","limit":2.5}`},
		{name: "levels", line: "setLogLevel debug warn=false !info", expected: `{"command":"setLogLevel","levels":{"debug":true,"info":false,"warn":false}}`},
		{name: "text size", line: "setTextSize 18px", expected: `{"command":"setTextSize","size":"18px"}`},
		{name: "enable feature", line: "enableFeature colors", expected: `{"command":"enableFeature","feature":"colors"}`},
		{name: "disable feature", line: "disableFeature timeCounter", expected: `{"command":"disableFeature","feature":"timeCounter"}`},
		{name: "script keeps spaces", line: "executeScript echo  hi", expected: `{"command":"executeScript","script":"echo  hi"}`},
		{name: "raw json", line: `{"command":"setLogLimit","limit":3}`, expected: `{"command":"setLogLimit","limit":3}`},
		{name: "raw json without command", line: `{"limit":3}`, err: errors.ErrMalformedFrame},
		{name: "broken json", line: `{"command":`, err: errors.ErrMalformedFrame},
		{name: "unknown", line: "explode now", err: errors.ErrUnknownCommand},
		{name: "limit not a number", line: "setLogLimit many", err: errors.ErrInvalidCapacity},
		{name: "levels missing", line: "setLogLevel", err: errors.ErrInvalidPayload},
		{name: "level bad bool", line: "setLogLevel debug=maybe", err: errors.ErrInvalidPayload},
		{name: "size missing", line: "setTextSize", err: errors.ErrInvalidTextSize},
		{name: "feature missing", line: "enableFeature", err: errors.ErrInvalidPayload},
		{name: "two features", line: "enableFeature colors console", err: errors.ErrInvalidPayload},
		{name: "script missing", line: "executeScript", err: errors.ErrInvalidPayload},
		{name: "ping with args", line: "ping now", err: errors.ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := ParseCommand(tt.line)

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, frame)

				return
			}

			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(frame))
		})
	}
}

func Test_Commands(t *testing.T) {
	for _, name := range Commands() {
		_, ok := parsers[name]
		assert.True(t, ok, name)
	}

	assert.Len(t, Commands(), len(parsers))
}
