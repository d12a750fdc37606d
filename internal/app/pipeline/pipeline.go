package pipeline

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"go.uber.org/fx"

	"screenlog/internal/app/errors"
	"screenlog/internal/app/logs"
	"screenlog/internal/app/remote"
	"screenlog/internal/app/screen"
	"screenlog/internal/app/script"
	"screenlog/internal/app/serializer"
	"screenlog/internal/app/sink"
	"screenlog/internal/app/storage"
	"screenlog/internal/config"
	"screenlog/internal/config/logger"
)

const (
	defaultLabel = "default"
	groupIndent  = "  "
)

// Loader returns a fresh configuration for reload requests
type Loader func() (*config.Config, error)

// Pipeline owns the buffer, level filter, sinks and control channel of one log sink
type Pipeline interface {
	remote.Controller

	Start(ctx context.Context)
	Stop()

	Debug(values ...any)
	Log(values ...any)
	Info(values ...any)
	Warn(values ...any)
	Error(values ...any)

	Enable()
	Disable()
	Enabled() bool
	Pause()
	Resume()
	Paused() bool

	Time(label string)
	TimeEnd(label string)
	Assert(condition bool, values ...any)
	Group(values ...any)
	GroupEnd()
	Table(data any, columns ...string)
	Recover()

	SetLevels(levels map[string]bool) error
	ApplyConfig(cfg *config.Config) error
	SetLoader(loader Loader)

	Snapshot() []logs.Entry
	History() []logs.Entry
	Stored() ([]logs.Entry, error)
	ResetStored() error
	Suppressed() uint64
}

// Params contains the dependencies of a pipeline
type Params struct {
	fx.In

	Config    *config.Config
	Buffer    logs.Buffer
	Formatter *logs.Formatter
	Screen    screen.Screen
	Store     storage.Store
	Channel   remote.Channel
	Runner    script.Runner
	Logger    logger.Logger
}

type pipeline struct {
	mu         sync.Mutex
	buffer     logs.Buffer
	filter     *logs.LevelFilter
	formatter  *logs.Formatter
	screen     screen.Screen
	router     sink.Router
	mirror     *sink.ConsoleMirror
	storage    *sink.Storage
	channel    remote.Channel
	runner     script.Runner
	loader     Loader
	options    serializer.Options
	timers     map[string]time.Time
	groupDepth int
	enabled    bool
	paused     bool
	socket     bool
	panics     bool
	tickStop   chan struct{}
	now        func() time.Time
	log        logger.Logger
}

// NewPipeline creates an enabled pipeline routing to render, console, storage and remote sinks in that order
func NewPipeline(p Params) Pipeline {
	log := p.Logger.WithComponent("PIPELINE")

	filter := logs.DefaultLevelFilter()
	if len(p.Config.Levels) > 0 {
		if err := filter.Replace(p.Config.Levels); err != nil {
			log.Warn().Err(err).Msg("Ignoring configured levels")
		}
	}

	options := serializer.OptionsFromConfig(p.Config)
	options.PrettyPrint = p.Config.Features.PrettyPrint

	mirror := sink.NewConsoleMirror(p.Logger, p.Config.Features.Console)
	storageSink := sink.NewStorageFromConfig(p.Config, p.Store, p.Logger)

	router := sink.NewRouter(
		p.Logger,
		sink.NewRender(p.Screen, p.Formatter),
		mirror,
		storageSink,
		sink.NewRemote(p.Channel),
	)

	p.Screen.SetLimit(p.Buffer.DisplayCapacity())

	return &pipeline{
		buffer:    p.Buffer,
		filter:    filter,
		formatter: p.Formatter,
		screen:    p.Screen,
		router:    router,
		mirror:    mirror,
		storage:   storageSink,
		channel:   p.Channel,
		runner:    p.Runner,
		options:   options,
		timers:    make(map[string]time.Time),
		enabled:   true,
		socket:    p.Config.Socket.Enabled,
		panics:    p.Config.Features.CapturePanics,
		now:       time.Now,
		log:       log,
	}
}

// Start binds the control channel to this pipeline and starts the time counter when configured
func (p *pipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.formatter.TimeCounter() {
		p.startTicker()
	}
	p.mu.Unlock()

	p.channel.Start(ctx, p)
}

// Stop halts the time counter and closes the control channel
func (p *pipeline) Stop() {
	p.mu.Lock()
	p.stopTicker()
	p.mu.Unlock()

	p.channel.Disable()
}

// Emit converts values to text and records one entry at level
func (p *pipeline) Emit(level logs.Level, values ...any) {
	if p.nested() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.emit(level, serializer.StringifyAll(values, p.options))
}

// Debug emits at debug level
func (p *pipeline) Debug(values ...any) { p.Emit(logs.LevelDebug, values...) }

// Log emits at log level
func (p *pipeline) Log(values ...any) { p.Emit(logs.LevelLog, values...) }

// Info emits at info level
func (p *pipeline) Info(values ...any) { p.Emit(logs.LevelInfo, values...) }

// Warn emits at warn level
func (p *pipeline) Warn(values ...any) { p.Emit(logs.LevelWarn, values...) }

// Error emits at error level
func (p *pipeline) Error(values ...any) { p.Emit(logs.LevelError, values...) }

// nested reports whether a sink is emitting while it delivers, counting the dropped entry.
// It must be checked before taking mu.
func (p *pipeline) nested() bool {
	if !p.router.Reentrant() {
		return false
	}

	p.router.Suppress()

	return true
}

// emit appends one entry and routes it; callers hold mu
func (p *pipeline) emit(level logs.Level, text string) {
	if !p.enabled {
		return
	}

	if !level.Valid() {
		p.log.Debug().Msgf("Unknown level '%s' recorded as log", level)
		level = logs.LevelLog
	}

	if p.groupDepth > 0 {
		text = strings.Repeat(groupIndent, p.groupDepth) + text
	}

	p.route(p.buffer.Append(level, text))
}

// route delivers a buffered entry unless output is paused or the level is filtered out.
// Sinks that disabled themselves are announced by one warn entry each.
func (p *pipeline) route(entry logs.Entry) {
	if p.paused || !p.filter.Allows(entry.Level) {
		return
	}

	outcome := p.router.Route(entry)

	for _, name := range outcome.Disabled {
		warning := p.buffer.Append(logs.LevelWarn, fmt.Sprintf("Disabling %s sink due to error.", name))
		p.route(warning)
	}
}

// Enable resumes capturing and reconnects the control channel when it is configured
func (p *pipeline) Enable() {
	p.mu.Lock()
	if p.enabled {
		p.mu.Unlock()
		return
	}

	p.enabled = true
	p.paused = false

	if p.formatter.TimeCounter() {
		p.startTicker()
	}

	socket := p.socket
	p.mu.Unlock()

	if socket {
		p.channel.Enable()
	}
}

// Disable stops capturing and closes the control channel
func (p *pipeline) Disable() {
	p.mu.Lock()
	if !p.enabled {
		p.mu.Unlock()
		return
	}

	p.emit(logs.LevelInfo, config.AppName+" disabling...")
	p.enabled = false
	p.stopTicker()
	p.mu.Unlock()

	p.channel.Disable()
}

// Enabled reports whether entries are captured
func (p *pipeline) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.enabled
}

// Pause stops routing; entries are still captured in the buffer
func (p *pipeline) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused {
		return
	}

	p.emit(logs.LevelInfo, "Logger output paused.")
	p.paused = true
}

// Resume restarts routing and redraws the display from the buffer
func (p *pipeline) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.paused {
		return
	}

	p.paused = false
	p.emit(logs.LevelInfo, "Logger output resumed.")
	p.refresh()
}

// Paused reports whether routing is paused
func (p *pipeline) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.paused
}

// Levels returns the level filter keyed by level name
func (p *pipeline) Levels() map[string]bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.filter.Snapshot()
}

// SetLevels replaces the level filter and re-renders the display
func (p *pipeline) SetLevels(levels map[string]bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.filter.Replace(levels); err != nil {
		return err
	}

	p.refresh()

	return nil
}

// MergeLevels updates the listed levels and re-renders the display
func (p *pipeline) MergeLevels(levels map[string]bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.filter.Merge(levels); err != nil {
		return err
	}

	p.refresh()

	return nil
}

// ClearLogs empties the buffer and the screen and resets timers and grouping
func (p *pipeline) ClearLogs() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buffer.Clear()
	p.timers = make(map[string]time.Time)
	p.groupDepth = 0
	p.screen.Clear()
	p.emit(logs.LevelInfo, "Log display cleared.")
}

// SetLogLimit sets the display capacity, trimming the buffer immediately
func (p *pipeline) SetLogLimit(limit int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.buffer.SetDisplayCapacity(limit); err != nil {
		return err
	}

	p.screen.SetLimit(limit)
	p.refresh()

	return nil
}

// SetTextSize forwards a text size to the screen
func (p *pipeline) SetTextSize(size string) error {
	size = strings.TrimSpace(size)
	if size == "" {
		return errors.ErrInvalidTextSize
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.screen.SetTextSize(size)

	return nil
}

// SetFeature toggles one of the runtime features
func (p *pipeline) SetFeature(name string, enabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var notice string

	switch name {
	case logs.FeatureTimeCounter:
		notice = "Relative time counter"
		p.formatter.SetTimeCounter(enabled)

		if enabled {
			p.startTicker()
		} else {
			p.stopTicker()
		}

		p.refresh()
	case logs.FeaturePrettyPrint:
		notice = "Pretty printing"
		p.options.PrettyPrint = enabled
	case logs.FeatureColors:
		notice = "Log message coloring"
		p.formatter.SetColors(enabled)
		p.refresh()
	case logs.FeatureConsole:
		notice = "Console mirroring"
		p.mirror.SetEnabled(enabled)
	case logs.FeaturePanics:
		notice = "Panic capturing"
		p.panics = enabled
	default:
		return fmt.Errorf("%w: '%s'", errors.ErrUnknownFeature, name)
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}

	p.emit(logs.LevelInfo, fmt.Sprintf("%s %s.", notice, state))

	return nil
}

// ExecuteScript runs script on the host and records its output as a log entry
func (p *pipeline) ExecuteScript(ctx context.Context, script string) error {
	output, err := p.runner.Run(ctx, script)

	if output != "" {
		p.Log(output)
	}

	return err
}

// Reload loads the configuration again and applies it
func (p *pipeline) Reload() error {
	p.mu.Lock()
	loader := p.loader
	p.mu.Unlock()

	if loader == nil {
		return errors.ErrNoConfigSource
	}

	cfg, err := loader()
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrReloadFailed, err)
	}

	return p.ApplyConfig(cfg)
}

// SetLoader sets where Reload reads the configuration from
func (p *pipeline) SetLoader(loader Loader) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loader = loader
}

// ApplyConfig applies limits, levels, text size, features and socket enablement at runtime.
// Invalid settings are skipped and returned together; valid ones still apply.
func (p *pipeline) ApplyConfig(cfg *config.Config) error {
	p.mu.Lock()

	p.emit(logs.LevelDebug, "Applying configuration")

	var errs []error

	if err := p.buffer.SetDisplayCapacity(cfg.Buffer.Limit); err != nil {
		errs = append(errs, err)
	} else {
		p.screen.SetLimit(cfg.Buffer.Limit)
	}

	if cfg.Buffer.History != 0 {
		if err := p.buffer.SetHistoryCapacity(cfg.Buffer.History); err != nil {
			errs = append(errs, err)
		}
	}

	if len(cfg.Levels) > 0 {
		if err := p.filter.Replace(cfg.Levels); err != nil {
			errs = append(errs, err)
		}
	}

	if size := strings.TrimSpace(cfg.Features.TextSize); size != "" {
		p.screen.SetTextSize(size)
	}

	p.options = serializer.OptionsFromConfig(cfg)
	p.options.PrettyPrint = cfg.Features.PrettyPrint

	p.formatter.SetColors(cfg.Features.Colors)
	p.formatter.SetTimeCounter(cfg.Features.TimeCounter)

	if cfg.Features.TimeCounter {
		p.startTicker()
	} else {
		p.stopTicker()
	}

	p.mirror.SetEnabled(cfg.Features.Console)
	p.panics = cfg.Features.CapturePanics
	p.storage.SetEnabled(cfg.Storage.Enabled)
	p.refresh()

	for _, err := range errs {
		p.emit(logs.LevelWarn, "Invalid configuration: "+err.Error())
	}

	toggle := p.enabled && cfg.Socket.Enabled != p.socket
	p.socket = cfg.Socket.Enabled
	p.mu.Unlock()

	if toggle {
		if cfg.Socket.Enabled {
			p.channel.Enable()
		} else {
			p.channel.Disable()
		}
	}

	return errors.Join(errs...)
}

// Time starts a labelled timer
func (p *pipeline) Time(label string) {
	if p.nested() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	label = labelOrDefault(label)

	if _, ok := p.timers[label]; ok {
		p.emit(logs.LevelWarn, fmt.Sprintf("%s: '%s'", errors.ErrTimerExists, label))
	}

	p.timers[label] = p.now()
}

// TimeEnd stops a labelled timer and records its duration
func (p *pipeline) TimeEnd(label string) {
	if p.nested() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	label = labelOrDefault(label)

	start, ok := p.timers[label]
	if !ok {
		p.emit(logs.LevelWarn, fmt.Sprintf("%s: '%s'", errors.ErrTimerNotFound, label))
		return
	}

	delete(p.timers, label)
	p.emit(logs.LevelInfo, fmt.Sprintf("%s: %dms", label, p.now().Sub(start).Milliseconds()))
}

// Assert records an error entry when condition is false
func (p *pipeline) Assert(condition bool, values ...any) {
	if condition || p.nested() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	message := "Assertion failed"
	if len(values) > 0 {
		message += ": " + serializer.StringifyAll(values, p.options)
	}

	p.emit(logs.LevelError, message)
}

// Group records a group header and indents the following entries
func (p *pipeline) Group(values ...any) {
	if p.nested() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	label := "Group"
	if len(values) > 0 {
		label = serializer.StringifyAll(values, p.options)
	}

	p.emit(logs.LevelLog, "▶ "+label)
	p.groupDepth++
}

// GroupEnd closes the innermost group
func (p *pipeline) GroupEnd() {
	if p.nested() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.groupDepth = max(0, p.groupDepth-1)
	p.emit(logs.LevelLog, "◀ Group End")
}

// Table records data rendered as a text table at log level; unrenderable data is reported as a warning
func (p *pipeline) Table(data any, columns ...string) {
	if p.nested() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	table, err := serializer.Table(data, columns, p.options)
	if err != nil {
		p.emit(logs.LevelWarn, "Could not render table: "+err.Error())
		return
	}

	p.emit(logs.LevelLog, table)
}

// Recover records a panic of the calling goroutine as an error entry with its stack.
// It must be deferred directly. Without panic capturing the panic continues.
func (p *pipeline) Recover() {
	r := recover()
	if r == nil {
		return
	}

	p.mu.Lock()
	capture := p.panics
	p.mu.Unlock()

	if !capture {
		panic(r)
	}

	p.Emit(logs.LevelError, fmt.Sprintf("Uncaught panic: %v\n%s", r, debug.Stack()))
}

// EntryCount returns the number of buffered entries
func (p *pipeline) EntryCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.buffer.Len()
}

// Snapshot returns the display view of the buffer
func (p *pipeline) Snapshot() []logs.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.buffer.Snapshot()
}

// History returns every retained entry
func (p *pipeline) History() []logs.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.buffer.History()
}

// Stored returns the entries persisted by the storage sink
func (p *pipeline) Stored() ([]logs.Entry, error) {
	return p.storage.Load()
}

// ResetStored deletes the persisted entries
func (p *pipeline) ResetStored() error {
	return p.storage.Reset()
}

// Suppressed returns how many nested routes were dropped
func (p *pipeline) Suppressed() uint64 {
	return p.router.Suppressed()
}

// refresh redraws the newest displayable entries that pass the filter; callers hold mu
func (p *pipeline) refresh() {
	if p.paused {
		return
	}

	var lines []string

	for _, entry := range p.buffer.History() {
		if p.filter.Allows(entry.Level) {
			lines = append(lines, p.formatter.Format(entry))
		}
	}

	if limit := p.buffer.DisplayCapacity(); len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	p.screen.Refresh(lines)
}

// startTicker redraws relative timestamps every tick; callers hold mu
func (p *pipeline) startTicker() {
	if p.tickStop != nil {
		return
	}

	stop := make(chan struct{})
	p.tickStop = stop

	go func() {
		ticker := time.NewTicker(config.TimeCounterTick)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				p.tick()
			}
		}
	}()
}

// stopTicker stops the time counter goroutine; callers hold mu
func (p *pipeline) stopTicker() {
	if p.tickStop != nil {
		close(p.tickStop)
		p.tickStop = nil
	}
}

func (p *pipeline) tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled && p.formatter.TimeCounter() {
		p.refresh()
	}
}

func labelOrDefault(label string) string {
	if label == "" {
		return defaultLabel
	}

	return label
}
