package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/fx"

	"screenlog/internal/app/console"
	"screenlog/internal/app/errors"
	"screenlog/internal/app/logs"
	"screenlog/internal/app/pipeline"
	"screenlog/internal/app/watcher"
	"screenlog/internal/config"
	"screenlog/internal/config/logger"
)

const maxLineSize = 1024 * 1024

// CLI runs the command selected on the command line
type CLI interface {
	Execute() (int, error)
}

// Params contains the dependencies of the cli
type Params struct {
	fx.In

	Options   *Options
	Config    *config.Config
	Pipeline  pipeline.Pipeline
	Console   console.Console
	Watcher   watcher.Watcher
	Formatter *logs.Formatter
	Logger    logger.Logger
}

type cli struct {
	opts      *Options
	cfg       *config.Config
	pipeline  pipeline.Pipeline
	console   console.Console
	watcher   watcher.Watcher
	formatter *logs.Formatter
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	log       logger.Logger
}

// NewCLI creates a cli reading standard input and writing standard output
func NewCLI(p Params) CLI {
	return &cli{
		opts:      p.Options,
		cfg:       p.Config,
		pipeline:  p.Pipeline,
		console:   p.Console,
		watcher:   p.Watcher,
		formatter: p.Formatter,
		in:        os.Stdin,
		out:       os.Stdout,
		errOut:    os.Stderr,
		log:       p.Logger.WithComponent("CLI"),
	}
}

// Execute runs the selected command and returns the process exit code
func (c *cli) Execute() (int, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.execute(ctx)
}

func (c *cli) execute(ctx context.Context) (int, error) {
	var err error

	switch c.opts.Type {
	case CommandHelp:
		fmt.Fprint(c.out, RenderHelp())
	case CommandVersion:
		fmt.Fprintln(c.out, RenderTitle())
	case CommandConsole:
		err = c.handleConsole(ctx)
	case CommandStored:
		err = c.handleStored()
	default:
		err = c.handleRun(ctx)
	}

	if err != nil {
		c.log.Error().Err(err).Msgf("Command '%s' failed", c.opts.Type)
		fmt.Fprintln(c.errOut, RenderError(err))

		return 1, err
	}

	return 0, nil
}

// handleRun captures standard input into the pipeline until input ends or ctx is done
func (c *cli) handleRun(ctx context.Context) error {
	if c.opts.Init {
		if err := c.writeStarterConfig(); err != nil {
			return err
		}
	}

	path := c.opts.ConfigPath
	c.pipeline.SetLoader(func() (*config.Config, error) {
		return config.Load(path)
	})

	c.pipeline.Start(ctx)
	defer c.pipeline.Stop()

	c.pipeline.Info(fmt.Sprintf("%s v%s enabled. Limit: %d", config.AppName, config.Version, c.cfg.Buffer.Limit))

	if !c.opts.NoWatch {
		if err := c.watcher.Watch(c.reload, path, config.EnvFile); err != nil {
			c.log.Warn().Err(err).Msgf("Not watching '%s' for changes", path)
		}
	}

	return c.capture(ctx)
}

func (c *cli) writeStarterConfig() error {
	if _, err := os.Stat(c.opts.ConfigPath); err == nil {
		c.log.Info().Msgf("Keeping existing '%s'", c.opts.ConfigPath)
		return nil
	}

	if err := config.Save(c.opts.ConfigPath, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Wrote %s\n", c.opts.ConfigPath)

	return nil
}

func (c *cli) reload(paths []string) {
	c.pipeline.Info("Configuration changed: " + strings.Join(paths, ", "))

	err := c.pipeline.Reload()
	if errors.Is(err, errors.ErrReloadFailed) {
		c.pipeline.Warn(err.Error())
	}
}

// capture feeds input lines to the pipeline
func (c *cli) capture(ctx context.Context) error {
	lines := make(chan string)
	done := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(c.in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		done <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-done:
			return err
		case line := <-lines:
			c.ingestLine(line)
		}
	}
}

// ingestLine records one line; with panic capturing on, a panic is recorded instead of ending the run
func (c *cli) ingestLine(line string) {
	defer c.pipeline.Recover()

	ingest(c.pipeline, line)
}

func (c *cli) handleConsole(ctx context.Context) error {
	display, err := console.NewDisplay(c.out, c.formatter, c.opts.Match, c.cfg.Features.Colors)
	if err != nil {
		return err
	}

	return c.console.Run(ctx, c.in, display)
}

func (c *cli) handleStored() error {
	if c.opts.Reset {
		if err := c.pipeline.ResetStored(); err != nil {
			return err
		}

		fmt.Fprintln(c.out, "Stored entries deleted.")

		return nil
	}

	entries, err := c.pipeline.Stored()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No stored entries.")
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintln(c.out, c.formatter.Format(entry))
	}

	return nil
}
