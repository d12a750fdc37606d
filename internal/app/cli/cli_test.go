package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"screenlog/internal/app/console"
	"screenlog/internal/app/errors"
	"screenlog/internal/app/logs"
	"screenlog/internal/app/pipeline"
	"screenlog/internal/app/remote"
	"screenlog/internal/app/screen"
	"screenlog/internal/app/script"
	"screenlog/internal/app/storage"
	"screenlog/internal/config"
	"screenlog/internal/config/logger"
)

type fakeWatcher struct {
	paths    []string
	onChange func(paths []string)
}

func (f *fakeWatcher) Watch(onChange func(paths []string), paths ...string) error {
	f.onChange = onChange
	f.paths = paths

	return nil
}

func (f *fakeWatcher) Close() {}

// quietChannel accepts any lifecycle call and never opens
func quietChannel(c *remote.MockChannel) {
	c.EXPECT().Enabled().Return(false).AnyTimes()
	c.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes()
	c.EXPECT().Enable().AnyTimes()
	c.EXPECT().Disable().AnyTimes()
}

func newTestPipeline(t *testing.T, cfg *config.Config) (pipeline.Pipeline, *remote.MockChannel) {
	t.Helper()

	return newTestPipelineWithChannel(t, cfg, quietChannel)
}

func newTestPipelineWithChannel(t *testing.T, cfg *config.Config, expect func(c *remote.MockChannel)) (pipeline.Pipeline, *remote.MockChannel) {
	t.Helper()

	ctrl := gomock.NewController(t)

	buffer, err := logs.NewBufferFromConfig(cfg)
	require.NoError(t, err)

	log := logger.NewNopLogger()
	channel := remote.NewMockChannel(ctrl)
	runner := script.NewMockRunner(ctrl)

	expect(channel)

	p := pipeline.NewPipeline(pipeline.Params{
		Config:    cfg,
		Buffer:    buffer,
		Formatter: logs.NewFormatter(cfg),
		Screen:    screen.NewScreenWithOutput(cfg, io.Discard, false, log),
		Store:     storage.NewSessionStore(cfg.Storage.Quota),
		Channel:   channel,
		Runner:    runner,
		Logger:    log,
	})

	return p, channel
}

func entryTexts(entries []logs.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}

	return out
}

type fixture struct {
	cli     *cli
	p       pipeline.Pipeline
	channel *remote.MockChannel
	watcher *fakeWatcher
	out     *bytes.Buffer
	errOut  *bytes.Buffer
}

func newFixture(t *testing.T, opts *Options, cfg *config.Config, input string) *fixture {
	t.Helper()

	return newFixtureWithChannel(t, opts, cfg, input, quietChannel)
}

func newFixtureWithChannel(t *testing.T, opts *Options, cfg *config.Config, input string, expect func(c *remote.MockChannel)) *fixture {
	t.Helper()

	p, channel := newTestPipelineWithChannel(t, cfg, expect)
	w := &fakeWatcher{}

	var out, errOut bytes.Buffer

	c := &cli{
		opts:      opts,
		cfg:       cfg,
		pipeline:  p,
		console:   console.NewConsole(console.NewServer(cfg, logger.NewNopLogger()), logger.NewNopLogger()),
		watcher:   w,
		formatter: logs.NewFormatter(cfg),
		in:        strings.NewReader(input),
		out:       &out,
		errOut:    &errOut,
		log:       logger.NewNopLogger(),
	}

	return &fixture{cli: c, p: p, channel: channel, watcher: w, out: &out, errOut: &errOut}
}

func Test_NewCLI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := logger.NewMockLogger(ctrl)
	mockLogger.EXPECT().WithComponent("CLI").Return(mockLogger)

	cfg := config.DefaultConfig()
	opts := &Options{Type: CommandRun, ConfigPath: config.ConfigFile}
	p, _ := newTestPipeline(t, cfg)

	result := NewCLI(Params{
		Options:   opts,
		Config:    cfg,
		Pipeline:  p,
		Formatter: logs.NewFormatter(cfg),
		Logger:    mockLogger,
	})

	instance, ok := result.(*cli)
	require.True(t, ok)
	assert.Same(t, opts, instance.opts)
	assert.Same(t, cfg, instance.cfg)
	assert.Equal(t, os.Stdin, instance.in)
	assert.Equal(t, os.Stdout, instance.out)
}

func Test_Execute_Help(t *testing.T) {
	f := newFixture(t, &Options{Type: CommandHelp}, config.DefaultConfig(), "")

	code, err := f.cli.execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, f.out.String(), "Usage:")
}

func Test_Execute_Version(t *testing.T) {
	f := newFixture(t, &Options{Type: CommandVersion}, config.DefaultConfig(), "")

	code, err := f.cli.execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, f.out.String(), config.Version)
}

func Test_Execute_Run(t *testing.T) {
	cfg := config.DefaultConfig()
	opts := &Options{Type: CommandRun, ConfigPath: filepath.Join(t.TempDir(), config.ConfigFile)}
	f := newFixtureWithChannel(t, opts, cfg, "hello\nerror: broken\n::time load\n::timeEnd missing\n", func(c *remote.MockChannel) {
		c.EXPECT().Enabled().Return(false).AnyTimes()
		gomock.InOrder(
			c.EXPECT().Start(gomock.Any(), gomock.Any()),
			c.EXPECT().Disable(),
		)
	})

	code, err := f.cli.execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, code)

	history := f.p.History()
	require.Len(t, history, 4)
	assert.Equal(t, fmt.Sprintf("%s v%s enabled. Limit: %d", config.AppName, config.Version, config.DisplayLimit), history[0].Text)
	assert.Equal(t, logs.LevelInfo, history[0].Level)
	assert.Equal(t, "hello", history[1].Text)
	assert.Equal(t, logs.LevelError, history[2].Level)
	assert.Equal(t, "timer does not exist: 'missing'", history[3].Text)

	assert.Equal(t, []string{opts.ConfigPath, config.EnvFile}, f.watcher.paths)
}

func Test_Execute_Run_NoWatch(t *testing.T) {
	opts := &Options{Type: CommandRun, ConfigPath: config.ConfigFile, NoWatch: true}
	f := newFixture(t, opts, config.DefaultConfig(), "")

	_, err := f.cli.execute(context.Background())

	require.NoError(t, err)
	assert.Nil(t, f.watcher.paths)
}

func Test_Execute_Run_ContextDone(t *testing.T) {
	opts := &Options{Type: CommandRun, ConfigPath: config.ConfigFile, NoWatch: true}
	f := newFixture(t, opts, config.DefaultConfig(), "")

	reader, writer := io.Pipe()
	defer writer.Close()

	f.cli.in = reader

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		_, err := f.cli.execute(ctx)
		done <- err
	}()

	_, err := writer.Write([]byte("line\n"))
	require.NoError(t, err)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func Test_Execute_Run_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFile)
	opts := &Options{Type: CommandRun, ConfigPath: path, Init: true, NoWatch: true}
	f := newFixture(t, opts, config.DefaultConfig(), "")

	_, err := f.cli.execute(context.Background())
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Contains(t, f.out.String(), "Wrote "+path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DisplayLimit, loaded.Buffer.Limit)
}

func Test_Execute_Run_InitKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("buffer:\n  limit: 7\n"), 0644))

	opts := &Options{Type: CommandRun, ConfigPath: path, Init: true, NoWatch: true}
	f := newFixture(t, opts, config.DefaultConfig(), "")

	_, err := f.cli.execute(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "buffer:\n  limit: 7\n", string(data))
	assert.NotContains(t, f.out.String(), "Wrote")
}

func Test_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("buffer:\n  limit: 5\n"), 0644))

	opts := &Options{Type: CommandRun, ConfigPath: path}
	f := newFixture(t, opts, config.DefaultConfig(), "")

	_, err := f.cli.execute(context.Background())
	require.NoError(t, err)
	require.NotNil(t, f.watcher.onChange)

	for i := 0; i < 8; i++ {
		f.p.Log(i)
	}

	f.watcher.onChange([]string{path})

	history := f.p.History()
	assert.Contains(t, entryTexts(history), "Configuration changed: "+path)
	assert.Len(t, f.p.Snapshot(), 5)
}

func Test_Reload_Failed(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFile)

	opts := &Options{Type: CommandRun, ConfigPath: path}
	f := newFixture(t, opts, config.DefaultConfig(), "")

	_, err := f.cli.execute(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("buffer: [unclosed\n"), 0644))
	f.watcher.onChange([]string{path})

	history := f.p.History()
	last := history[len(history)-1]
	assert.Equal(t, logs.LevelWarn, last.Level)
	assert.True(t, strings.HasPrefix(last.Text, errors.ErrReloadFailed.Error()))
}

func Test_Execute_Stored(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Enabled = true

	f := newFixture(t, &Options{Type: CommandStored}, cfg, "")

	f.p.Info("persisted one")
	f.p.Warn("persisted two")

	code, err := f.cli.execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(f.out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "persisted one")
	assert.Contains(t, lines[1], "[WARN]")
}

func Test_Execute_Stored_Empty(t *testing.T) {
	f := newFixture(t, &Options{Type: CommandStored}, config.DefaultConfig(), "")

	_, err := f.cli.execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "No stored entries.\n", f.out.String())
}

func Test_Execute_Stored_Reset(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Enabled = true

	f := newFixture(t, &Options{Type: CommandStored, Reset: true}, cfg, "")
	f.p.Info("persisted")

	_, err := f.cli.execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Stored entries deleted.\n", f.out.String())

	entries, err := f.p.Stored()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func Test_Execute_Console(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Console.Host = "127.0.0.1"
	cfg.Console.Port = 0

	f := newFixture(t, &Options{Type: CommandConsole}, cfg, "devices\n")

	code, err := f.cli.execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	assert.Contains(t, f.out.String(), "Waiting for devices on ws://127.0.0.1:")
	assert.Contains(t, f.out.String(), "Connected: []")
}

func Test_Execute_Console_BadPattern(t *testing.T) {
	f := newFixture(t, &Options{Type: CommandConsole, Match: "[unclosed"}, config.DefaultConfig(), "")

	code, err := f.cli.execute(context.Background())

	assert.Equal(t, 1, code)
	assert.ErrorIs(t, err, errors.ErrInvalidMatchPattern)
	assert.Contains(t, f.errOut.String(), "Error:")
}
