package console

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"screenlog/internal/app/errors"
	"screenlog/internal/app/logs"
)

type parser func(frame *logs.CommandFrame, args string) error

var parsers = map[string]parser{
	logs.CommandSetLogLevel:    parseLevels,
	logs.CommandClearLogs:      noArgs,
	logs.CommandSetLogLimit:    parseLimit,
	logs.CommandSetTextSize:    parseSize,
	logs.CommandEnableFeature:  parseFeature,
	logs.CommandDisableFeature: parseFeature,
	logs.CommandExecuteScript:  parseScript,
	logs.CommandReload:         noArgs,
	logs.CommandPing:           noArgs,
}

// ParseCommand turns one typed line into a command frame.
// A line starting with '{' is sent as is once it names a command; otherwise the syntax is
// "<command> [args]", e.g. "setLogLimit 10" or "setLogLevel debug=true warn=false".
func ParseCommand(line string) ([]byte, error) {
	line = strings.TrimSpace(line)

	if strings.HasPrefix(line, "{") {
		var envelope logs.CommandEnvelope
		if err := json.Unmarshal([]byte(line), &envelope); err != nil || envelope.Command == "" {
			return nil, errors.ErrMalformedFrame
		}

		return []byte(line), nil
	}

	name, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)

	parse, ok := parsers[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", errors.ErrUnknownCommand, name)
	}

	frame := logs.CommandFrame{Command: name}
	if err := parse(&frame, args); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToMarshalFrame, err)
	}

	return data, nil
}

// Commands returns the names ParseCommand accepts
func Commands() []string {
	return []string{
		logs.CommandSetLogLevel,
		logs.CommandClearLogs,
		logs.CommandSetLogLimit,
		logs.CommandSetTextSize,
		logs.CommandEnableFeature,
		logs.CommandDisableFeature,
		logs.CommandExecuteScript,
		logs.CommandReload,
		logs.CommandPing,
	}
}

func noArgs(_ *logs.CommandFrame, args string) error {
	if args != "" {
		return errors.ErrInvalidPayload
	}

	return nil
}

// parseLevels accepts "level", "!level" and "level=bool" tokens
func parseLevels(frame *logs.CommandFrame, args string) error {
	tokens := strings.Fields(args)
	if len(tokens) == 0 {
		return errors.ErrInvalidPayload
	}

	frame.Levels = make(map[string]bool, len(tokens))

	for _, token := range tokens {
		name, value, hasValue := strings.Cut(token, "=")

		switch {
		case hasValue:
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%w: %w", errors.ErrInvalidPayload, err)
			}

			frame.Levels[name] = enabled
		case strings.HasPrefix(name, "!"):
			frame.Levels[strings.TrimPrefix(name, "!")] = false
		default:
			frame.Levels[name] = true
		}
	}

	return nil
}

func parseLimit(frame *logs.CommandFrame, args string) error {
	limit, err := strconv.ParseFloat(args, 64)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidCapacity, err)
	}

	frame.Limit = &limit

	return nil
}

func parseSize(frame *logs.CommandFrame, args string) error {
	if args == "" {
		return errors.ErrInvalidTextSize
	}

	frame.Size = args

	return nil
}

func parseFeature(frame *logs.CommandFrame, args string) error {
	if args == "" || strings.ContainsAny(args, " \t") {
		return errors.ErrInvalidPayload
	}

	frame.Feature = args

	return nil
}

func parseScript(frame *logs.CommandFrame, args string) error {
	if args == "" {
		return errors.ErrInvalidPayload
	}

	frame.Script = args

	return nil
}
