package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"screenlog/internal/app/errors"
	"screenlog/internal/app/logs"
	"screenlog/internal/app/pipeline"
)

const controlPrefix = "::"

type control func(p pipeline.Pipeline, arg string)

var controls = map[string]control{
	"pause":    func(p pipeline.Pipeline, _ string) { p.Pause() },
	"resume":   func(p pipeline.Pipeline, _ string) { p.Resume() },
	"clear":    func(p pipeline.Pipeline, _ string) { p.ClearLogs() },
	"enable":   func(p pipeline.Pipeline, _ string) { p.Enable() },
	"disable":  func(p pipeline.Pipeline, _ string) { p.Disable() },
	"time":     func(p pipeline.Pipeline, arg string) { p.Time(arg) },
	"timeEnd":  func(p pipeline.Pipeline, arg string) { p.TimeEnd(arg) },
	"groupEnd": func(p pipeline.Pipeline, _ string) { p.GroupEnd() },
	"table": func(p pipeline.Pipeline, arg string) {
		_, data := parseLine(arg)
		p.Table(data)
	},
	"group": func(p pipeline.Pipeline, arg string) {
		if arg == "" {
			p.Group()
			return
		}

		p.Group(arg)
	},
}

// ingest records one input line, or runs it when it is a "::" control line
func ingest(p pipeline.Pipeline, text string) {
	if rest, ok := strings.CutPrefix(strings.TrimSpace(text), controlPrefix); ok {
		name, arg, _ := strings.Cut(rest, " ")

		run, ok := controls[name]
		if !ok {
			p.Warn(fmt.Sprintf("%s: '%s'", errors.ErrUnknownCommand, name))
			return
		}

		run(p, strings.TrimSpace(arg))

		return
	}

	level, value := parseLine(text)
	p.Emit(level, value)
}

// parseLine splits an optional "level:" prefix off text and decodes JSON objects and arrays
func parseLine(text string) (logs.Level, any) {
	level := logs.LevelLog

	if prefix, rest, ok := strings.Cut(text, ":"); ok && !strings.ContainsAny(prefix, " \t{[\"") {
		if parsed, err := logs.ParseLevel(prefix); err == nil {
			level = parsed
			text = strings.TrimPrefix(rest, " ")
		}
	}

	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var value any
		if err := json.Unmarshal([]byte(trimmed), &value); err == nil {
			return level, value
		}
	}

	return level, text
}
