package remote

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"screenlog/internal/app/errors"
	"screenlog/internal/app/logs"
)

type handler func(c *channel, frame logs.CommandFrame) error

var commands = map[string]handler{
	logs.CommandSetLogLevel:    setLogLevel,
	logs.CommandClearLogs:      clearLogs,
	logs.CommandSetLogLimit:    setLogLimit,
	logs.CommandSetTextSize:    setTextSize,
	logs.CommandEnableFeature:  enableFeature,
	logs.CommandDisableFeature: disableFeature,
	logs.CommandExecuteScript:  executeScript,
	logs.CommandReload:         reload,
	logs.CommandPing:           ping,
}

// dispatch decodes one inbound frame and runs its command; failures become warn entries
func (c *channel) dispatch(data []byte) {
	var envelope logs.CommandEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Command == "" {
		c.log.Warn().Err(err).Msg("Dropped malformed frame")
		c.report(logs.LevelWarn, errors.ErrMalformedFrame.Error())

		return
	}

	handle, ok := commands[envelope.Command]
	if !ok {
		c.log.Warn().Msgf("Unknown command '%s'", envelope.Command)
		c.report(logs.LevelWarn, fmt.Sprintf("%s: '%s'", errors.ErrUnknownCommand, envelope.Command))

		return
	}

	var frame logs.CommandFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		c.log.Warn().Err(err).Msgf("Invalid payload for '%s'", envelope.Command)
		c.report(logs.LevelWarn, fmt.Sprintf("%s for '%s'", errors.ErrInvalidPayload, envelope.Command))

		return
	}

	c.log.Debug().Msgf("Processing command '%s'", frame.Command)

	if err := handle(c, frame); err != nil {
		level := logs.LevelWarn
		if errors.Is(err, errors.ErrScriptFailed) {
			level = logs.LevelError
		}

		c.report(level, fmt.Sprintf("Command '%s' failed: %s", frame.Command, err))
	}
}

func setLogLevel(c *channel, frame logs.CommandFrame) error {
	if frame.Levels == nil {
		return errors.ErrInvalidPayload
	}

	if err := c.controller.MergeLevels(frame.Levels); err != nil {
		return err
	}

	levels, err := json.Marshal(c.controller.Levels())
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToMarshalFrame, err)
	}

	c.report(logs.LevelInfo, "Log levels updated by server: "+string(levels))

	return nil
}

func clearLogs(c *channel, _ logs.CommandFrame) error {
	c.controller.ClearLogs()
	c.report(logs.LevelInfo, "Logs cleared by server command.")

	return nil
}

func setLogLimit(c *channel, frame logs.CommandFrame) error {
	if frame.Limit == nil || *frame.Limit < 1 || *frame.Limit > math.MaxInt32 {
		return errors.ErrInvalidCapacity
	}

	limit := int(*frame.Limit)
	if err := c.controller.SetLogLimit(limit); err != nil {
		return err
	}

	c.report(logs.LevelInfo, fmt.Sprintf("Log limit set to %d by server.", limit))

	return nil
}

func setTextSize(c *channel, frame logs.CommandFrame) error {
	if frame.Size == "" {
		return errors.ErrInvalidTextSize
	}

	if err := c.controller.SetTextSize(frame.Size); err != nil {
		return err
	}

	c.report(logs.LevelInfo, fmt.Sprintf("Text size set to %s by server.", frame.Size))

	return nil
}

func enableFeature(c *channel, frame logs.CommandFrame) error {
	return toggleFeature(c, frame.Feature, true)
}

func disableFeature(c *channel, frame logs.CommandFrame) error {
	return toggleFeature(c, frame.Feature, false)
}

func toggleFeature(c *channel, feature string, enabled bool) error {
	if feature == "" {
		return errors.ErrInvalidPayload
	}

	if err := c.controller.SetFeature(feature, enabled); err != nil {
		return err
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}

	c.report(logs.LevelInfo, fmt.Sprintf("Feature %q %s by server.", feature, state))

	return nil
}

func executeScript(c *channel, frame logs.CommandFrame) error {
	if frame.Script == "" {
		return errors.ErrInvalidPayload
	}

	c.report(logs.LevelWarn, "Executing script from server...")

	if err := c.controller.ExecuteScript(c.context(), frame.Script); err != nil {
		return err
	}

	c.report(logs.LevelInfo, "Script executed successfully.")

	return nil
}

func reload(c *channel, _ logs.CommandFrame) error {
	c.report(logs.LevelWarn, "Reloading by server command...")

	return c.controller.Reload()
}

func ping(c *channel, _ logs.CommandFrame) error {
	pong := logs.PongMessage{
		Type:    logs.MessagePong,
		Time:    time.Now().UnixMilli(),
		Entries: c.controller.EntryCount(),
	}

	if stats, err := c.monitor.Self(c.context()); err == nil {
		pong.Stats = &stats
	} else {
		c.log.Debug().Err(err).Msg("Failed to collect process stats")
	}

	return c.sendFrame(pong)
}
