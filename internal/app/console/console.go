package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"screenlog/internal/config/logger"
)

// Console runs the operator side: it shows device output and forwards typed commands
type Console interface {
	Run(ctx context.Context, in io.Reader, display Display) error
}

type console struct {
	server Server
	log    logger.Logger
}

// NewConsole creates a Console over server
func NewConsole(server Server, log logger.Logger) Console {
	return &console{
		server: server,
		log:    log.WithComponent("CONSOLE"),
	}
}

// Run serves devices until ctx is done or in is exhausted
func (c *console) Run(ctx context.Context, in io.Reader, display Display) error {
	if err := c.server.Start(ctx, display); err != nil {
		return err
	}

	defer func() {
		if err := c.server.Stop(); err != nil {
			c.log.Warn().Err(err).Msg("Failed to stop console server")
		}
	}()

	display.Notice(fmt.Sprintf("Waiting for devices on ws://%s", c.server.Addr()))
	display.Notice("Commands: " + strings.Join(Commands(), ", "))

	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			c.log.Warn().Err(err).Msg("Failed to read input")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			c.handle(line, display)
		}
	}
}

func (c *console) handle(line string, display Display) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	if line == "devices" {
		display.Notice(fmt.Sprintf("Connected: %v", c.server.Devices()))
		return
	}

	frame, err := ParseCommand(line)
	if err != nil {
		display.Notice("Error: " + err.Error())
		return
	}

	sent, err := c.server.Send(frame)
	if err != nil {
		display.Notice("Error: " + err.Error())
		return
	}

	display.Notice(fmt.Sprintf("Sent to %d device(s)", sent))
}
